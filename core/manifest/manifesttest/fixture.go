// Package manifesttest builds SQLite definition snapshots for tests.
package manifesttest

import (
	"fmt"
	"os"
	"testing"

	"manifest-resolver/core/database"
	"manifest-resolver/core/manifest"

	"github.com/goccy/go-json"
	"gorm.io/gorm"
)

// Fixture is a writable snapshot directory.
type Fixture struct {
	t   testing.TB
	cfg manifest.Config
	db  *gorm.DB
}

// New creates an empty snapshot with the resolver's tables in a temp dir.
func New(t testing.TB) *Fixture {
	t.Helper()

	cfg := manifest.Config{
		Dir:          t.TempDir(),
		File:         "destiny_manifest.sqlite",
		VersionFile:  "manifest_version.txt",
		DrainSeconds: 0,
	}

	db, err := database.Connect(database.Config{Driver: database.DriverSQLite, Name: cfg.DatabasePath()})
	if err != nil {
		t.Fatalf("failed to create fixture database: %v", err)
	}
	t.Cleanup(func() { _ = database.Close(db) })

	for _, table := range manifest.Tables {
		if err := db.Exec(fmt.Sprintf("CREATE TABLE %s (id INTEGER PRIMARY KEY, json TEXT)", table)).Error; err != nil {
			t.Fatalf("failed to create table %s: %v", table, err)
		}
	}

	return &Fixture{t: t, cfg: cfg, db: db}
}

// Config returns the manifest configuration pointing at the fixture.
func (f *Fixture) Config() manifest.Config {
	return f.cfg
}

// DatabaseConfig returns the database configuration for the fixture.
func (f *Fixture) DatabaseConfig() database.Config {
	return database.Config{Driver: database.DriverSQLite, TimeoutSeconds: 5}
}

// Put stores doc, JSON encoded, under id.
func (f *Fixture) Put(table manifest.Table, id uint32, doc any) *Fixture {
	f.t.Helper()
	data, err := json.Marshal(doc)
	if err != nil {
		f.t.Fatalf("failed to encode fixture record: %v", err)
	}
	return f.PutRaw(table, id, string(data))
}

// PutRaw stores raw as the document under id.
func (f *Fixture) PutRaw(table manifest.Table, id uint32, raw string) *Fixture {
	f.t.Helper()
	err := f.db.Exec(fmt.Sprintf("INSERT OR REPLACE INTO %s (id, json) VALUES (?, ?)", table), int64(id), raw).Error
	if err != nil {
		f.t.Fatalf("failed to insert fixture record: %v", err)
	}
	return f
}

// SetVersion writes the version file.
func (f *Fixture) SetVersion(version string) *Fixture {
	f.t.Helper()
	if err := os.WriteFile(f.cfg.VersionPath(), []byte(version), 0o644); err != nil {
		f.t.Fatalf("failed to write version file: %v", err)
	}
	return f
}

// Snapshot opens the fixture read-only. It is closed when the test ends.
func (f *Fixture) Snapshot(opts manifest.Options) *manifest.Snapshot {
	f.t.Helper()
	snap, err := manifest.Open(f.cfg, f.DatabaseConfig(), opts)
	if err != nil {
		f.t.Fatalf("failed to open fixture snapshot: %v", err)
	}
	f.t.Cleanup(func() { _ = snap.Close() })
	return snap
}

// Store returns a store serving the fixture.
func (f *Fixture) Store(opts manifest.Options) *manifest.Store {
	f.t.Helper()
	store := manifest.NewStore(nil)
	store.Swap(f.Snapshot(opts))
	return store
}

// Display returns display properties with an icon.
func Display(name string) *manifest.DisplayProperties {
	return &manifest.DisplayProperties{
		Name:        name,
		Icon:        "/common/destiny2_content/icons/" + name + ".png",
		Description: name + " description",
		HasIcon:     true,
	}
}
