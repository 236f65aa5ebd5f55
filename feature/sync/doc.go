// Package sync implements the warehouse synchronization gateway: the bulk
// update endpoint that reconciles store inventory against warehouse
// deliveries, the purchase export pulled by the warehouse, the full store
// reset, and the session history recording each of them.
package sync
