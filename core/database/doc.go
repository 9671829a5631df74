// Package database opens connections to the definition snapshot database.
//
// It wraps GORM so the snapshot can live either in a SQLite file (the format
// the upstream provider ships) or in a MySQL database loaded by an external job.
//
// # Connect
//
// Connect selects the dialector from Config.Driver. SQLite files are opened
// read-only by default since the resolver never writes to a snapshot.
//
// # Schema Inspection
//
// GetTableColumns and MissingColumns let callers verify that a snapshot exposes
// the tables and columns the resolver reads before it is swapped in.
//
// # Usage
//
//	db, err := database.Connect(database.Config{Driver: "sqlite", Name: "manifest.sqlite", ReadOnly: true})
//	missing, err := database.MissingColumns(db, "DestinyStatDefinition", "id", "json")
package database
