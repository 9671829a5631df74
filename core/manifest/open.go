package manifest

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"manifest-resolver/core/database"
)

// DatabasePath returns the local snapshot database path.
func (c Config) DatabasePath() string {
	return filepath.Join(c.Dir, c.File)
}

// VersionPath returns the local version file path.
func (c Config) VersionPath() string {
	return filepath.Join(c.Dir, c.VersionFile)
}

// ReadVersion returns the version recorded next to the snapshot, or "" when
// no version file exists.
func ReadVersion(cfg Config) (string, error) {
	data, err := os.ReadFile(cfg.VersionPath())
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to read version file: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// Open connects to the snapshot described by cfg and dbCfg, verifies its
// schema and returns it. opts.Version is taken from the version file.
func Open(cfg Config, dbCfg database.Config, opts Options) (*Snapshot, error) {
	version, err := ReadVersion(cfg)
	if err != nil {
		return nil, err
	}
	opts.Version = version

	if strings.EqualFold(dbCfg.Driver, database.DriverSQLite) {
		path := cfg.DatabasePath()
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
		}
		dbCfg.Name = path
		dbCfg.ReadOnly = true
	}

	db, err := database.Connect(dbCfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreUnavailable, err)
	}

	problems, err := VerifySchema(db)
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}
	if len(problems) > 0 {
		_ = database.Close(db)
		return nil, fmt.Errorf("%w: snapshot schema mismatch: %s", ErrStoreUnavailable, describeProblems(problems))
	}

	snap, err := NewSnapshot(db, opts)
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}
	return snap, nil
}

func describeProblems(problems map[Table][]string) string {
	parts := make([]string, 0, len(problems))
	for table, missing := range problems {
		parts = append(parts, fmt.Sprintf("%s missing %s", table, strings.Join(missing, ",")))
	}
	sort.Strings(parts)
	return strings.Join(parts, "; ")
}
