// Package batch implements the generic warehouse reconciliation engine.
//
// It provides two model-agnostic operations over a keyed collection:
//
//   - DeleteItems: removes entities matched by a key column.
//   - UpdateItems: upserts entities, driven by a declarative field mapping.
//
// # Collections
//
// Operations are parameterized by a Collection, built once at startup from
// the GORM model of the entity. The collection carries the declared column
// set and a static table of (column, setter) pairs, so invalid key columns
// or mapping targets are caught before a single row is touched.
//
// # Transactions
//
// Each operation runs inside one transaction with a single commit at the
// end. Any persistence failure rolls back the whole batch, which is why a
// Failure outcome always reports zeroed side-effect counters.
//
// # Outcomes
//
// Every operation returns an Outcome: a per-call accounting record with a
// status, a human-readable message, an HTTP status hint, and counters for
// deleted, updated, added, erroneous, and not-found records. Per-record data
// errors (a missing key or mapped field) degrade gracefully into the
// erroneous counter; only schema mistakes and store failures fail a batch.
package batch
