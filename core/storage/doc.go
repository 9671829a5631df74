// Package storage reads published definition snapshots from S3 compatible
// object storage.
//
// The MinIO client sits behind the read-only Client interface so the snapshot
// pull can be exercised against core/storage/mocks in tests.
//
// # Layout
//
// A bucket holds one directory per locale, each with the SQLite snapshot and
// its version file:
//
//	<prefix>/<locale>/destiny_manifest.sqlite
//	<prefix>/<locale>/manifest_version.txt
//
// # Endpoints
//
// Endpoint accepts a bare host or a URL. An https:// scheme turns TLS on.
package storage
