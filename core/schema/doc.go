// Package schema is the type descriptor registry of the object model.
//
// Every remote object type is declared once as a Schema: an ordered table of
// attribute names and the Descriptor that constrains each attribute. The same
// table drives validation, relation resolution, dependency ordering and the
// debug serialization of entities, so nothing in the object model inspects Go
// types at runtime to learn about the remote data model.
//
// # Descriptors
//
//   - BoundedString(n): string truncated to n runes (slugs are formatted instead)
//   - FreeString: string without length limit
//   - Bool, Integer, Float: primitive values
//   - Choice(values...): one of a fixed set of string literals
//   - Network: an IP prefix literal
//   - Reference(t): a single object of type t
//   - AddressReference(t): a reference compared by its "address" while unresolved
//   - TagList, VLANList: collections of tags (merged) or VLANs (replaced)
//   - Polymorphic(attr, relation): a reference whose type is selected by attr
//
// # Registry
//
// Default returns the process-wide registry, built once on first use. Types
// returns all object types ordered so that every type comes after the types it
// depends on.
package schema
