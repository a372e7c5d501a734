// Package geo provides the planar geometry operations the overlay
// pipeline needs, built on github.com/paulmach/orb.
//
// Key responsibilities:
//   - Size measures: polygon area in hectares (round-half-to-even at two
//     decimals) and line length in whole meters (truncated)
//   - Representative points: polygon centroid, road midpoint
//   - Intersection predicates between polygon/line features and polygon
//     layers (bounding-box rejection, containment, segment crossing)
//   - Coordinate-system classification from legacy GeoJSON crs names
//
// orb itself carries no polygon×polygon predicate, so the predicates here
// are composed from orb/planar containment plus explicit segment
// orientation tests. All math is planar: layers are expected to be in a
// projected, meter-based coordinate system when measures matter (the
// validator enforces this for blocks).
package geo
