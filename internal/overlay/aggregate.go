package overlay

import (
	"github.com/paulmach/orb/geojson"

	"github.com/forestops/referral/internal/geo"
	"github.com/forestops/referral/internal/model"
)

// Marking is the aggregated overlay result: one column per distinct
// consultative-area name, in first-discovery order, each cell either
// "required" or "n/r".
type Marking struct {
	// Areas lists the distinct area names in discovery order.
	Areas []string

	// Cells maps each area name to its column, aligned with the input
	// feature order (same indexing as the enriched rows).
	Cells map[string][]string
}

// Aggregate performs the one-to-many join between located consultative
// areas and input features. For each (area, feature) intersection the
// feature's rows are marked "required"; everything else stays "n/r".
//
// Marking is keyed by feature identifier through a name → row-index
// map, so duplicate names (including the "None" placeholder) mark
// jointly, and lookup is constant-time per pair.
func Aggregate(areas []ConsultativeArea, features []*geojson.Feature, names []string) *Marking {
	byName := make(map[string][]int, len(names))
	for i, n := range names {
		byName[n] = append(byName[n], i)
	}

	m := &Marking{Cells: map[string][]string{}}
	for _, area := range areas {
		column, seen := m.Cells[area.Name]
		if !seen {
			column = make([]string, len(names))
			for i := range column {
				column[i] = model.MarkNotRequired
			}
			m.Areas = append(m.Areas, area.Name)
			m.Cells[area.Name] = column
		}

		for i, f := range features {
			if f.Geometry == nil {
				continue
			}
			if geo.Intersects(f.Geometry, area.Geometry) {
				for _, row := range byName[names[i]] {
					column[row] = model.MarkRequired
				}
			}
		}
	}
	return m
}
