// Package reconcile turns the state of an inventory into a plan of remote
// mutations and applies it.
//
// # Planning
//
// BuildPlan walks the inventory in type dependency order. Per entity it emits
//
//  1. an unset action for attributes marked for remote deletion,
//  2. a create action for entities not known remotely, or
//  3. an update action listing the changed attributes.
//
// Entities of prune-flagged types that exist remotely but were not touched by
// any source are reported as prune candidates. They are never deleted here.
//
// # Applying
//
// ApplyPlan executes only when the options are confirmed and not a dry run.
// Payloads are rendered at apply time, so remote ids assigned to dependencies
// earlier in the same plan are visible to the entities referencing them.
// References that still point to objects without a remote id (forward
// references such as primary IPs) are retried in a second pass after all
// other actions ran.
//
// # Caching
//
// PlanCache keeps a built plan for a TTL and collapses concurrent rebuilds
// into one, which the inspect server uses for its plan endpoint.
//
// # Usage Example
//
//	plan := reconcile.BuildPlan(inv)
//	executed, err := reconcile.ApplyPlan(ctx, plan, inv, mutator, reconcile.ReconcileOptions{Confirmed: true})
package reconcile
