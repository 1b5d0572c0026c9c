// Package inspect exposes a loaded inventory read-only over HTTP.
//
// # Routes
//
//   - GET /inspect/types: registered types in dependency order with object counts
//   - GET /inspect/objects/:type: serialized entities of a type
//   - GET /inspect/objects/:type/:name: one entity by display name
//   - GET /inspect/plan: the reconcile plan, cached for server.plan_cache_seconds
//
// Unknown types and names answer 404. The inventory is never modified, so
// concurrent requests only read it.
package inspect
