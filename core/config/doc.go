// Package config assembles the resolver configuration from struct tag
// defaults, an optional .env file and the process environment.
//
// # Sections
//
//   - Server: listen port, API key and the snapshot locale (en, ja)
//   - Database: sqlite snapshot file or a MySQL copy of the tables
//   - Storage: S3/MinIO bucket published snapshots are pulled from
//   - Log: level and encoding
//   - Manifest: snapshot directory, file names, cache size and reload settings
//   - Hydration: fixed perk categories and lookup concurrency
//   - Search: result limit, capped at 20 by the search index
//
// Environment keys join section and field with an underscore, for example
// MANIFEST_DIR or HYDRATION_PERK_CATEGORIES. Values in .env override the
// environment.
//
// # Validation
//
// LoadConfig rejects unknown locales, sources and drivers, unparseable perk
// categories and negative limits, reporting every problem at once.
package config
