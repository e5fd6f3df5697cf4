// Package resolver provides entity reference resolution for STEP data.
//
// STEP entities refer to one another with #id references (e.g., "#42").
// This package follows those references through a parsed document,
// chases reference chains to numeric values, and resolves the geometric
// placement entities that anchor PMI annotations in model space.
//
// # Basic Usage
//
// Create a resolver over a parsed document and follow references:
//
//	res := resolver.New(doc)
//	entity, err := res.Follow(ref)
//
// # Deep Resolution
//
// To verify that everything reachable from a reference terminates:
//
//	entity, err := res.FollowDeep(ref)
//
// This walks the full reference tree and fails with a [CycleError] when
// a chain loops back on itself or exceeds the depth limit, which is
// configurable:
//
//	res := resolver.New(doc, resolver.WithMaxDepth(50))
//
// # Numeric Values
//
// Measure entities wrap their numbers in varying amounts of structure
// depending on the exporting system. [Resolver.NumericValue] searches
// decoded attributes depth-first, following references, and falls back
// to pattern matching over the raw statement text.
//
// # Geometry
//
// [Resolver.Point], [Resolver.Direction] and [Resolver.AxisPlacement]
// resolve CARTESIAN_POINT, DIRECTION and AXIS2_PLACEMENT_3D entities
// into coordinate structs, tolerating partially specified placements.
package resolver
