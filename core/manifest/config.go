package manifest

// Config holds configuration for locating and loading definition snapshots.
type Config struct {
	// Dir is the local directory holding the snapshot and its version file.
	Dir string `mapstructure:"dir" default:"manifest_data"`
	// File is the snapshot database file name inside Dir (sqlite driver).
	File string `mapstructure:"file" default:"destiny_manifest.sqlite"`
	// VersionFile is the file inside Dir whose content names the snapshot version.
	VersionFile string `mapstructure:"version_file" default:"manifest_version.txt"`
	// Source selects where snapshots come from (file, storage).
	Source string `mapstructure:"source" default:"file"`
	// ObjectPrefix is the object storage prefix snapshots are published under.
	ObjectPrefix string `mapstructure:"object_prefix" default:"manifest/"`
	// CacheSize is the number of decoded records cached per snapshot. Zero disables caching.
	CacheSize int `mapstructure:"cache_size" default:"4096"`
	// Workers bounds concurrent chunk queries within one batch lookup.
	Workers int `mapstructure:"workers" default:"4"`
	// Watch enables swapping in a new snapshot when the version file changes.
	Watch bool `mapstructure:"watch" default:"true"`
	// DrainSeconds is how long a replaced snapshot stays open for in-flight requests.
	// The replaced snapshot is closed when the timer fires, not when its last reader
	// finishes: a hydration still pinned to it afterwards fails with a query error.
	// Zero closes it immediately, so keep it above the longest request timeout.
	DrainSeconds int `mapstructure:"drain_seconds" default:"30"`
	// TaxonomyFile is an optional YAML file with extra category labels.
	TaxonomyFile string `mapstructure:"taxonomy_file" default:""`
}

const (
	SourceFile    = "file"
	SourceStorage = "storage"
)
