// Package object implements the schema validated object model.
//
// An Entity is one record of a remote object type. Its attributes are bound
// to the type's schema.Schema: every update is validated and normalized
// against the attribute descriptors, references to other objects are resolved
// into live *Entity handles through an Inventory, and every attribute that
// actually changed is recorded so a later flush stage only sends what differs
// from the last known remote state.
//
// # Lifecycle
//
// Entities are created either from confirmed remote data (New with fromRemote
// set: no validation, change log cleared) or from source data (full validation,
// IsNew true until Confirm is called with the remote id).
//
// # Relations
//
// Raw reference values (remote ids, nested mappings) are kept as Unresolved
// until ResolveRelations finds the referenced entity. Resolution can run any
// number of times; a reference that could not be resolved earlier is retried
// on every pass.
//
// # Collections
//
// Tags merge: adding tags never drops existing ones. VLAN lists replace: the
// submitted list is the complete new membership.
//
// The package is not safe for concurrent use; a reconciliation pass owns its
// inventory exclusively.
package object
