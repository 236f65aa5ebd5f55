// Package catalog implements the sales item catalog feature.
//
// It owns the persistent models of the store (sales items and purchase
// history) and the static setter table the batch reconciliation engine uses
// to write sales item columns. The HTTP surface is a single detail endpoint
// that reports an item together with the integrity of its picture object in
// storage.
//
// # Components
//
//   - models: GORM models for sales_items and purchase_history.
//   - Collection: the batch engine descriptor for sales items.
//   - Service/Handler: item detail lookup with picture presence check.
//
// # HTTP Endpoints
//
//   - GET /catalog/items/:code : Get a sales item with picture status.
package catalog
