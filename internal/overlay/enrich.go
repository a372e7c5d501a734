package overlay

import (
	"fmt"

	"github.com/paulmach/orb"

	"github.com/forestops/referral/internal/geo"
	"github.com/forestops/referral/internal/layer"
	"github.com/forestops/referral/internal/model"
	"github.com/forestops/referral/internal/raster"
)

// DefaultBufferRadius is the elevation-sampling neighborhood in layer
// units (meters), matching the provincial DEM procedure.
const DefaultBufferRadius = 100

// EnrichConfig carries the layers and settings the Enricher needs
// beyond the input features themselves.
type EnrichConfig struct {
	// IDField is the feature identifier property.
	IDField string

	// FieldTeams / OperatingAreas are the attribution layers, each with
	// the property holding its attribution value.
	FieldTeams     *layer.Layer
	FieldTeamField string

	OperatingAreas *layer.Layer
	OpAreaField    string

	// DEM is the elevation grid.
	DEM *raster.Grid

	// BufferRadius is the elevation-sampling neighborhood; zero means
	// DefaultBufferRadius.
	BufferRadius float64

	// Progress, when non-nil, receives per-feature progress lines.
	Progress func(format string, args ...any)
}

// Enrich builds one Row per input feature, in input order. Attribution
// is keyed per feature — each feature is tested directly against the
// attribution layers — so result order can never silently diverge from
// feature order. Any failed measurement aborts enrichment; there are no
// partial results.
func Enrich(kind model.FeatureKind, features *layer.Layer, cfg EnrichConfig) ([]model.Row, error) {
	radius := cfg.BufferRadius
	if radius <= 0 {
		radius = DefaultBufferRadius
	}
	progress := cfg.Progress
	if progress == nil {
		progress = func(string, ...any) {}
	}

	total := features.Count()
	rows := make([]model.Row, 0, total)
	for i, f := range features.Features() {
		progress("Processing feature %d of %d", i+1, total)

		name := layer.StringProp(f, cfg.IDField)
		if name == "" {
			name = model.EmptyName
		}

		var measure float64
		if kind == model.KindBlock {
			measure = geo.AreaHectares(f.Geometry)
		} else {
			measure = geo.LengthMeters(f.Geometry)
		}

		pt, err := geo.RepresentativePoint(f.Geometry)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitMeasurement,
				fmt.Sprintf("measuring feature %s", name), err)
		}
		elevation, err := cfg.DEM.Sample(pt, radius)
		if err != nil {
			return nil, model.WrapCLIError(model.ExitMeasurement,
				fmt.Sprintf("sampling elevation for feature %s", name), err)
		}

		rows = append(rows, model.Row{
			Kind:      kind,
			FieldTeam: attribution(f.Geometry, cfg.FieldTeams, cfg.FieldTeamField),
			OpArea:    attribution(f.Geometry, cfg.OperatingAreas, cfg.OpAreaField),
			Name:      name,
			Measure:   measure,
			Elevation: elevation,
		})
	}
	return rows, nil
}

// attribution returns the named field of the first attribution polygon
// the feature intersects, or "" when the feature falls outside the
// whole layer (features outside the operating areas legitimately have
// an empty Op Area).
func attribution(g orb.Geometry, attrib *layer.Layer, field string) string {
	for _, a := range attrib.Features() {
		if a.Geometry == nil {
			continue
		}
		if geo.Intersects(g, a.Geometry) {
			return layer.StringProp(a, field)
		}
	}
	return ""
}
