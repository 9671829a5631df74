// Package middleware groups the Fiber middleware shared by all features.
//
// # Components
//
//   - rayid: assigns every request a RayID (reusing an incoming X-Ray-ID header),
//     stores it in the context locals and echoes it in the response.
//   - auth: checks the X-API-Key header against server.api_key. An empty key
//     disables the check.
//
// rayid is registered first so that every log line, including auth failures,
// carries the RayID.
package middleware
