// Package checks holds the snapshot health checks: the schema of the loaded
// snapshot and the artifacts published in object storage.
package checks
