// Package database handles database connections and schema inspection.
//
// It provides a wrapper around GORM to properly configure MySQL connections
// based on the application's configuration.
//
// # Connect
//
// The Connect function establishes a connection to the storefront database
// with sane pool settings and a connect-time ping.
//
// # Schema Inspection
//
// The package also includes tools to inspect the live schema. The start
// command uses MissingColumns to verify, before serving traffic, that the
// tables the batch collections write to actually carry the declared columns.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    log.Fatal("Database connection failed", err)
//	}
//
//	missing, err := database.MissingColumns(db, "sales_items", declared)
package database
