// Package utils provides common utility functions for the storefront
// application. It includes helper functions for coercing loosely typed
// values (JSON payload fields, database scan results) into the concrete
// types the models use.
package utils
