// Package snapshot exposes the state of the definition snapshot and lets
// operators swap in a new one without restarting.
//
// # Checks Provided
//
//   - Schema: every definition table exposes an integer id column and a text
//     json column; row counts are reported per table.
//   - Published: the snapshot database and version file exist in object
//     storage for the configured locale.
//
// # HTTP Endpoints
//
//   - GET /snapshot : Loaded version and schema report.
//   - POST /snapshot/reload : Swap in the snapshot on disk (supports ?pull=true).
//   - GET /snapshot/published : Artifacts published in object storage.
package snapshot
