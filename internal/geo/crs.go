package geo

import (
	"strconv"
	"strings"
)

// metricEPSG lists the EPSG codes (outside the UTM ranges handled below)
// that this tool recognizes as projected, meter-based coordinate systems.
// BC Albers (3005) is the system the provincial layers ship in.
var metricEPSG = map[int]bool{
	3005: true, // NAD83 / BC Albers
	3153: true, // NAD83(CSRS) / BC Albers
	3857: true, // Web Mercator (meters, though distorted)
	3978: true, // NAD83 / Canada Atlas Lambert
	2955: true, // NAD83(CSRS) / UTM zone 11N
}

// ParseEPSG extracts the numeric EPSG code from a legacy GeoJSON crs
// name. Accepted forms: "EPSG:3005", "epsg:3005",
// "urn:ogc:def:crs:EPSG::3005". Returns 0 when the name carries no
// recognizable code.
func ParseEPSG(name string) int {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return 0
	}
	// The code is always the final colon-separated token.
	parts := strings.Split(trimmed, ":")
	last := parts[len(parts)-1]
	code, err := strconv.Atoi(last)
	if err != nil {
		return 0
	}
	// Require an EPSG authority somewhere in the name so arbitrary
	// numeric strings are not misread as codes.
	if !strings.Contains(strings.ToUpper(trimmed), "EPSG") {
		return 0
	}
	return code
}

// IsMetric reports whether the EPSG code names a projected coordinate
// system with meter linear units. Geographic systems (4326, 4269, ...)
// and unrecognized codes return false; the validator turns that into an
// input-contract error for Block layers, where areas must be computed
// in real square meters.
func IsMetric(code int) bool {
	if metricEPSG[code] {
		return true
	}
	// WGS84 UTM zones, north then south.
	if code >= 32601 && code <= 32660 {
		return true
	}
	if code >= 32701 && code <= 32760 {
		return true
	}
	// NAD83 UTM zones.
	if code >= 26901 && code <= 26923 {
		return true
	}
	return false
}
