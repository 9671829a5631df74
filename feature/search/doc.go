// Package search implements lookup of items by display name.
//
// Matching is a case-sensitive, unanchored substring test against the stored
// name. Results come in ascending key order and are capped at 20. A blank or
// all-whitespace term returns an empty list.
//
// # HTTP Endpoints
//
//   - GET /api/search/:term : Search by path term (e.g. 'Ace%20of').
//   - GET /api/search?q= : Search by query parameter.
//
// Both answer {"Response": {"results": {"results": [...], "totalResults": n}}}.
package search
