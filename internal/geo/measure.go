package geo

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Hectares converts a raw planar area in square meters to hectares,
// rounded half-to-even at two decimals. 12345.6 m² → 1.23 ha.
func Hectares(areaM2 float64) float64 {
	ha := math.Abs(areaM2) / 10000
	return math.RoundToEven(ha*100) / 100
}

// AreaHectares returns the feature's planar area in hectares.
func AreaHectares(g orb.Geometry) float64 {
	return Hectares(planar.Area(g))
}

// LengthMeters returns the feature's planar length truncated to whole
// meters. Road lengths are reported as integers; truncation (not
// rounding) matches the reporting convention.
func LengthMeters(g orb.Geometry) float64 {
	return math.Trunc(planar.Length(g))
}

// RepresentativePoint returns the point used for elevation sampling:
// the centroid for polygons, the half-length midpoint for lines.
func RepresentativePoint(g orb.Geometry) (orb.Point, error) {
	switch geom := g.(type) {
	case orb.Polygon, orb.MultiPolygon:
		centroid, _ := planar.CentroidArea(geom)
		return centroid, nil
	case orb.LineString:
		return lineMidpoint([]orb.LineString{geom})
	case orb.MultiLineString:
		return lineMidpoint(geom)
	default:
		return orb.Point{}, fmt.Errorf("no representative point for geometry type %q", g.GeoJSONType())
	}
}

// lineMidpoint walks the line parts in order and returns the point at
// half the total path length.
func lineMidpoint(parts []orb.LineString) (orb.Point, error) {
	total := 0.0
	for _, ls := range parts {
		total += planar.Length(ls)
	}
	if total == 0 {
		// Degenerate line: fall back to the first vertex if one exists.
		for _, ls := range parts {
			if len(ls) > 0 {
				return ls[0], nil
			}
		}
		return orb.Point{}, fmt.Errorf("line has no vertices")
	}

	remaining := total / 2
	for _, ls := range parts {
		for i := 0; i+1 < len(ls); i++ {
			seg := planar.Distance(ls[i], ls[i+1])
			if seg >= remaining {
				t := 0.0
				if seg > 0 {
					t = remaining / seg
				}
				return orb.Point{
					ls[i][0] + t*(ls[i+1][0]-ls[i][0]),
					ls[i][1] + t*(ls[i+1][1]-ls[i][1]),
				}, nil
			}
			remaining -= seg
		}
	}
	// Numeric drift can leave a hair of remaining length; the last
	// vertex is the midpoint then.
	last := parts[len(parts)-1]
	return last[len(last)-1], nil
}

// SquareNeighborhood returns the axis-aligned bound extending radius
// units from the point in every direction. The elevation sampler clips
// the DEM to this bound before indexing, mirroring the
// buffer-then-clip workflow the report documents.
func SquareNeighborhood(pt orb.Point, radius float64) orb.Bound {
	return orb.Bound{
		Min: orb.Point{pt[0] - radius, pt[1] - radius},
		Max: orb.Point{pt[0] + radius, pt[1] + radius},
	}
}
