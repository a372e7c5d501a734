package geo

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Intersects reports whether geometry g intersects the polygonal
// geometry area. g may be a (Multi)Polygon or a (Multi)LineString; area
// must be a Polygon or MultiPolygon. Any touch counts: a feature only
// partially overlapping an area still intersects it.
//
// The test is planar and proceeds cheapest-first: bounding-box
// rejection, then point containment, then pairwise segment crossing.
func Intersects(g, area orb.Geometry) bool {
	if g == nil || area == nil {
		return false
	}
	if !g.Bound().Intersects(area.Bound()) {
		return false
	}

	switch geom := g.(type) {
	case orb.Polygon:
		return polygonIntersectsArea(geom, area)
	case orb.MultiPolygon:
		for _, p := range geom {
			if polygonIntersectsArea(p, area) {
				return true
			}
		}
		return false
	case orb.LineString:
		return lineIntersectsArea(geom, area)
	case orb.MultiLineString:
		for _, ls := range geom {
			if lineIntersectsArea(ls, area) {
				return true
			}
		}
		return false
	default:
		return false
	}
}

// ContainsPoint reports whether the polygonal geometry contains the
// point. Used for attribution lookups (field team, operating area).
func ContainsPoint(area orb.Geometry, pt orb.Point) bool {
	switch a := area.(type) {
	case orb.Polygon:
		return planar.PolygonContains(a, pt)
	case orb.MultiPolygon:
		return planar.MultiPolygonContains(a, pt)
	default:
		return false
	}
}

func polygonIntersectsArea(p orb.Polygon, area orb.Geometry) bool {
	switch a := area.(type) {
	case orb.Polygon:
		return polygonsIntersect(p, a)
	case orb.MultiPolygon:
		for _, ap := range a {
			if polygonsIntersect(p, ap) {
				return true
			}
		}
	}
	return false
}

func lineIntersectsArea(ls orb.LineString, area orb.Geometry) bool {
	switch a := area.(type) {
	case orb.Polygon:
		return lineIntersectsPolygon(ls, a)
	case orb.MultiPolygon:
		for _, ap := range a {
			if lineIntersectsPolygon(ls, ap) {
				return true
			}
		}
	}
	return false
}

// polygonsIntersect covers the three ways two polygons can meet:
// a vertex of one inside the other (including full containment of
// either), or a boundary crossing.
func polygonsIntersect(a, b orb.Polygon) bool {
	if anyVertexInside(a, b) || anyVertexInside(b, a) {
		return true
	}
	return ringsCross(a, b)
}

func lineIntersectsPolygon(ls orb.LineString, p orb.Polygon) bool {
	for _, v := range ls {
		if planar.PolygonContains(p, v) {
			return true
		}
	}
	for i := 0; i+1 < len(ls); i++ {
		for _, ring := range p {
			if segmentCrossesRing(ls[i], ls[i+1], ring) {
				return true
			}
		}
	}
	return false
}

func anyVertexInside(of, in orb.Polygon) bool {
	for _, ring := range of {
		for _, v := range ring {
			if planar.PolygonContains(in, v) {
				return true
			}
		}
	}
	return false
}

func ringsCross(a, b orb.Polygon) bool {
	for _, ra := range a {
		for i := 0; i+1 < len(ra); i++ {
			for _, rb := range b {
				if segmentCrossesRing(ra[i], ra[i+1], rb) {
					return true
				}
			}
		}
	}
	return false
}

func segmentCrossesRing(p1, p2 orb.Point, ring orb.Ring) bool {
	for i := 0; i+1 < len(ring); i++ {
		if segmentsIntersect(p1, p2, ring[i], ring[i+1]) {
			return true
		}
	}
	return false
}

// orient returns the signed double area of triangle abc: positive for
// counter-clockwise, negative for clockwise, zero for collinear.
func orient(a, b, c orb.Point) float64 {
	return (b[0]-a[0])*(c[1]-a[1]) - (b[1]-a[1])*(c[0]-a[0])
}

// onSegment assumes a, b, c are collinear and reports whether c lies
// within the closed segment ab.
func onSegment(a, b, c orb.Point) bool {
	return min(a[0], b[0]) <= c[0] && c[0] <= max(a[0], b[0]) &&
		min(a[1], b[1]) <= c[1] && c[1] <= max(a[1], b[1])
}

// segmentsIntersect is the standard orientation-based segment
// intersection test, including the collinear-overlap cases.
func segmentsIntersect(a, b, c, d orb.Point) bool {
	d1 := orient(c, d, a)
	d2 := orient(c, d, b)
	d3 := orient(a, b, c)
	d4 := orient(a, b, d)

	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}

	if d1 == 0 && onSegment(c, d, a) {
		return true
	}
	if d2 == 0 && onSegment(c, d, b) {
		return true
	}
	if d3 == 0 && onSegment(a, b, c) {
		return true
	}
	if d4 == 0 && onSegment(a, b, d) {
		return true
	}
	return false
}
