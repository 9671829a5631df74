// Package manifest provides read access to versioned definition snapshots.
//
// A snapshot is a read-only database holding one table per record type
// (inventory items, stats, plug sets). Each table maps an unsigned 32-bit key
// to a JSON document. Documents are decoded once, at this boundary, into the
// typed records in records.go; item category labels are classified into the
// closed Category enumeration at the same time.
//
// # Store and Snapshot
//
// Store holds the snapshot currently being served and swaps it atomically.
// Callers pin a Snapshot for the duration of one request so they never mix
// records from two versions:
//
//	snap, err := store.Snapshot() // ErrStoreUnavailable if nothing is loaded
//	item, err := snap.Item(ctx, key) // ErrNotFound, *CorruptRecordError
//	stats, err := snap.Stats(ctx, keys)
//
// Batch lookups omit absent keys, skip and log corrupt records, and only fail
// when every record found was corrupt. Large batches are split into chunks
// that are queried concurrently.
//
// # Caching
//
// Each snapshot owns an LRU cache of decoded records (golang-lru). Concurrent
// single-record misses for the same key share one query through singleflight.
// The cache is dropped together with its snapshot.
//
// # Search
//
// Snapshot.Search matches item display names by case-sensitive substring
// against an index built on first use, in ascending key order.
//
// # Lifecycle
//
//   - Open: connects to the snapshot on disk and verifies its schema.
//   - Reloader: swaps in a new snapshot when the version file changes (fsnotify)
//     and closes the old one after a drain period.
//   - Pull: copies a snapshot published in object storage into the local dir.
package manifest
