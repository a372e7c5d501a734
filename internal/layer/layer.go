package layer

import (
	"encoding/json"
	"fmt"
	"math"
	"os"
	"sort"
	"strconv"

	"github.com/paulmach/orb/geojson"
	"github.com/tidwall/jsonc"

	"github.com/forestops/referral/internal/geo"
	"github.com/forestops/referral/internal/model"
)

// Layer is a loaded vector dataset: a feature collection plus the
// coordinate-system declaration from its file.
type Layer struct {
	// Path is the file the layer was loaded from, kept for error
	// messages and the layers listing.
	Path string

	// EPSG is the coordinate system code from the file's legacy "crs"
	// member, or 0 when the file declares none (treated as geographic).
	EPSG int

	fc *geojson.FeatureCollection
}

// crsEnvelope captures only the legacy top-level "crs" member of a
// GeoJSON file. Everything else is decoded by the geojson codec.
type crsEnvelope struct {
	CRS *struct {
		Properties struct {
			Name string `json:"name"`
		} `json:"properties"`
	} `json:"crs"`
}

// Load reads a GeoJSON layer file, strips JSONC comments, and decodes
// the feature collection. Returns a CLIError with ExitLayerNotFound
// when the file does not exist or cannot be decoded.
func Load(path string) (*Layer, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitLayerNotFound,
			fmt.Sprintf("layer file %s not found", path), err)
	}

	// Strip comments and trailing commas so annotated exports decode
	// with the standard JSON machinery.
	clean := jsonc.ToJSON(raw)

	fc, err := geojson.UnmarshalFeatureCollection(clean)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitLayerNotFound,
			fmt.Sprintf("layer file %s is not a GeoJSON feature collection", path), err)
	}

	var envelope crsEnvelope
	if err := json.Unmarshal(clean, &envelope); err != nil {
		return nil, model.WrapCLIError(model.ExitLayerNotFound,
			fmt.Sprintf("layer file %s has a malformed crs member", path), err)
	}

	l := &Layer{Path: path, fc: fc}
	if envelope.CRS != nil {
		l.EPSG = geo.ParseEPSG(envelope.CRS.Properties.Name)
	}
	return l, nil
}

// Count returns the number of features in the layer.
func (l *Layer) Count() int {
	return len(l.fc.Features)
}

// Features returns the layer's features in file order. The slice is
// shared; callers must not mutate it.
func (l *Layer) Features() []*geojson.Feature {
	return l.fc.Features
}

// Fields returns the sorted union of property names across all
// features. This is the layer equivalent of a dataset field listing.
func (l *Layer) Fields() []string {
	seen := map[string]bool{}
	for _, f := range l.fc.Features {
		for name := range f.Properties {
			seen[name] = true
		}
	}
	fields := make([]string, 0, len(seen))
	for name := range seen {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	return fields
}

// HasField reports whether any feature carries the named property.
func (l *Layer) HasField(name string) bool {
	for _, f := range l.fc.Features {
		if _, ok := f.Properties[name]; ok {
			return true
		}
	}
	return false
}

// StringProp returns the feature's property as a display string.
// JSON numbers render without a trailing ".0" when integral, so numeric
// identifiers come out the way they were typed. Missing and null
// properties return "".
func StringProp(f *geojson.Feature, key string) string {
	v, ok := f.Properties[key]
	if !ok || v == nil {
		return ""
	}
	switch val := v.(type) {
	case string:
		return val
	case float64:
		if val == math.Trunc(val) && math.Abs(val) < 1e15 {
			return strconv.FormatInt(int64(val), 10)
		}
		return strconv.FormatFloat(val, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(val)
	default:
		return fmt.Sprint(val)
	}
}
