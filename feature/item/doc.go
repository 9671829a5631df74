// Package item implements item hydration.
//
// Given an item identifier, the Engine fetches the base item from the pinned
// definition snapshot and expands its cross-references into a self-contained
// view.
//
// # Hydration
//
//  1. Stats: every entry of stats.stats gets the display metadata of its stat
//     definition. A missing definition leaves the raw value untouched.
//  2. Fixed perks: a socket's singleInitialItemHash is reported in perks when
//     the plug's category is one of the configured perk categories
//     (hydration.perk_categories, "weapon_perk" by default).
//  3. Random perk columns: a socket's plug set (reusable preferred over
//     randomized) with more than one member forms a column of the members that
//     have display metadata, an icon and are not shaders. Empty columns are
//     dropped.
//
// Stat, fixed plug and plug set lookups run concurrently; results are joined
// and assembled in stored socket order, so concurrency never shows in the output.
//
// # HTTP Endpoints
//
//   - GET /api/item/:hash : Hydrate an item by signed identifier (e.g. '-680797410').
//   - GET /api/item/key/:key : Hydrate an item by unsigned store key (e.g. '3614169886').
package item
