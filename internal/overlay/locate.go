package overlay

import (
	"github.com/paulmach/orb"

	"github.com/forestops/referral/internal/geo"
	"github.com/forestops/referral/internal/layer"
	"github.com/forestops/referral/internal/model"
)

// ConsultativeArea is a named polygon region of interest for referral
// purposes. Only its name and its intersection relationship to features
// matter downstream.
type ConsultativeArea struct {
	Name     string
	Geometry orb.Geometry
}

// LocateConsultativeAreas reduces the full territories layer to the
// subset of areas that spatially intersect the working boundary, in
// layer order. Areas with a null/empty name keep the "None" display
// name, like features do.
//
// An empty result is legitimate: a working boundary far from every
// consultative area produces a report with no area columns.
func LocateConsultativeAreas(territories *layer.Layer, nameField string, boundary *layer.Layer) []ConsultativeArea {
	var located []ConsultativeArea
	for _, territory := range territories.Features() {
		if territory.Geometry == nil {
			continue
		}
		for _, b := range boundary.Features() {
			if b.Geometry == nil {
				continue
			}
			if geo.Intersects(territory.Geometry, b.Geometry) {
				name := layer.StringProp(territory, nameField)
				if name == "" {
					name = model.EmptyName
				}
				located = append(located, ConsultativeArea{
					Name:     name,
					Geometry: territory.Geometry,
				})
				break
			}
		}
	}
	return located
}
