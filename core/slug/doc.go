// Package slug derives URL-safe identifiers from human readable names.
//
// A slug only contains lowercase ASCII letters, digits, underscores and dashes
// and is truncated to the maximum length the remote field accepts. Formatting is
// idempotent: formatting an already formatted slug returns it unchanged.
//
// Collisions are not resolved here; uniqueness is enforced by the remote system.
//
// # Usage
//
//	s, err := slug.Format("Data Center 1", 50) // "data-center-1"
package slug
