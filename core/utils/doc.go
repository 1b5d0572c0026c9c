// Package utils provides loose value conversion helpers for the netbox-sync application.
// Raw inventory data arrives from YAML, JSON and database rows with inconsistent Go
// types (int vs float64, []any vs []string); these helpers normalize them.
package utils
