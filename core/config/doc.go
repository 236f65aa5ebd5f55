// Package config provides configuration management for the storefront
// service.
//
// It utilizes Viper for loading configuration from environment variables and
// a .env file (via godotenv).
//
// # Configuration Structure
//
// The Config struct is the central repository for all application settings,
// divided into subsections:
//   - Server: HTTP port, admin API key, app identity and token signing secret
//   - Database: MySQL connection details
//   - Storage: S3/MinIO credentials and item picture bucket settings
//   - Log: Logging level and format
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(cfg.Server.Port)
package config
