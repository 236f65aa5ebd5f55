// Package server holds the HTTP server configuration and application
// identity.
//
// While the start command handles the actual server startup, this package
// defines the configuration structure for server settings: the listen port,
// the administrative API key, and the token signing parameters (application
// id, symmetric secret, maximum credential validity).
//
// # Usage
//
// This package is primarily used by the core/config package to embed server
// settings and by the token feature to sign and validate credentials.
package server
