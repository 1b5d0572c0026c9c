// Package database opens the gorm connection holding the local snapshot of remote state.
//
// # Connect
//
// Connect selects the dialector from Config.Driver: "mysql" builds a DSN with
// connection and I/O timeouts, "sqlite" opens Config.Name as a file path (or
// ":memory:"). The connection is pinged before it is returned.
//
// # Schema inspection
//
// TableColumns and MissingColumns read the live column list (SHOW COLUMNS on
// MySQL, PRAGMA table_info on SQLite). The snapshot store uses them to verify
// its table before loading.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	if err != nil {
//	    return err
//	}
//	missing, err := database.MissingColumns(db, "snapshot_records", []string{"id", "data"})
package database
