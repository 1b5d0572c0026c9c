// Package snapshot keeps a local mirror of the remote inventory in a gorm database.
//
// Each remote object is a Record holding its type and its attributes as JSON.
// The record id is the remote id the inventory indexes.
//
// # Loading
//
// Load queries every registered type concurrently (errgroup) and
// HydrateInventory feeds the results into an inventory in dependency order,
// then resolves all relations.
//
// # Writing
//
// Store implements reconcile.Mutator: Create, Update and Unset receive the
// remote-shaped payloads built by the plan applier.
//
//	store, _ := snapshot.NewStore(db, log)
//	_ = store.Migrate(ctx)
//	_, _ = store.HydrateInventory(ctx, inv)
//	_, _, err := reconcile.PlanAndApply(ctx, inv, store, opts)
package snapshot
