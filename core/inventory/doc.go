// Package inventory holds every entity known during one reconciliation pass.
//
// It implements the lookups the object model consumes (get-or-create by natural
// key, find by data, find by remote id) and owns the canonical entity set;
// every other reference to an entity is a non-owning handle into it.
//
// # Lookups
//
//   - A key carrying "id" is looked up by remote id.
//   - A key carrying "slug" is matched against stored slugs.
//   - Anything else is matched by display name including the secondary key,
//     falling back to a slug derived from the primary key for slug types.
//
// Remote ids are indexed in an in-memory go-memdb table keyed by object type
// and id.
//
// The inventory is not safe for concurrent use; a pass has a single writer.
package inventory
