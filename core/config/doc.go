// Package config loads the netbox-sync configuration.
//
// Values come from environment variables, optionally seeded from a .env file,
// and fall back to the `default` struct tags of each section. Nested keys map
// to upper-case variables joined by underscores (sync.source_file is read from
// SYNC_SOURCE_FILE).
//
// # Sections
//
//   - Server: HTTP port, API key and plan cache lifetime
//   - Database: snapshot database driver and connection details
//   - Storage: S3/MinIO bucket for exported plans
//   - Log: logging level and format
//   - Sync: source file, dry run and report settings
//
// # Usage
//
//	cfg, err := config.LoadConfig(".")
//	if err != nil {
//	    return err
//	}
//	fmt.Println(cfg.Sync.SourceFile)
package config
