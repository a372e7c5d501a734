package overlay

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forestops/referral/internal/model"
)

func polyFeature(x, y, side float64) *geojson.Feature {
	return geojson.NewFeature(orb.Polygon{orb.Ring{
		{x, y}, {x + side, y}, {x + side, y + side}, {x, y + side}, {x, y},
	}})
}

// The canonical scenario: A intersects X only, B intersects X and Y,
// C intersects neither.
func TestAggregate_Scenario(t *testing.T) {
	features := []*geojson.Feature{
		polyFeature(100, 100, 100), // A
		polyFeature(400, 400, 100), // B
		polyFeature(800, 100, 100), // C
	}
	names := []string{"A", "B", "C"}
	areas := []ConsultativeArea{
		{Name: "X", Geometry: orb.Polygon{orb.Ring{{50, 50}, {550, 50}, {550, 550}, {50, 550}, {50, 50}}}},
		{Name: "Y", Geometry: orb.Polygon{orb.Ring{{350, 350}, {600, 350}, {600, 600}, {350, 600}, {350, 350}}}},
	}

	m := Aggregate(areas, features, names)

	require.Equal(t, []string{"X", "Y"}, m.Areas)
	assert.Equal(t, []string{"required", "required", "n/r"}, m.Cells["X"])
	assert.Equal(t, []string{"n/r", "required", "n/r"}, m.Cells["Y"])

	// Exactly one marking per feature per area column, never a blank.
	for _, area := range m.Areas {
		require.Len(t, m.Cells[area], len(features))
		for _, cell := range m.Cells[area] {
			assert.Contains(t, []string{model.MarkRequired, model.MarkNotRequired}, cell)
		}
	}
}

func TestAggregate_NoAreas(t *testing.T) {
	m := Aggregate(nil, []*geojson.Feature{polyFeature(0, 0, 10)}, []string{"A"})
	assert.Empty(t, m.Areas)
	assert.Empty(t, m.Cells)
}

func TestAggregate_DuplicateAreaNamesShareOneColumn(t *testing.T) {
	// Two polygons of the same organization: one column, marked if the
	// feature touches either polygon.
	features := []*geojson.Feature{
		polyFeature(0, 0, 10),    // touches first polygon
		polyFeature(100, 100, 5), // touches second polygon
		polyFeature(500, 500, 5), // touches neither
	}
	names := []string{"A", "B", "C"}
	areas := []ConsultativeArea{
		{Name: "Nation X", Geometry: orb.Polygon{orb.Ring{{0, 0}, {20, 0}, {20, 20}, {0, 20}, {0, 0}}}},
		{Name: "Nation X", Geometry: orb.Polygon{orb.Ring{{90, 90}, {120, 90}, {120, 120}, {90, 120}, {90, 90}}}},
	}

	m := Aggregate(areas, features, names)

	require.Equal(t, []string{"Nation X"}, m.Areas)
	assert.Equal(t, []string{"required", "required", "n/r"}, m.Cells["Nation X"])
}

func TestAggregate_DuplicateFeatureNamesMarkJointly(t *testing.T) {
	// Two unnamed features share the "None" placeholder; a hit on
	// either marks both rows, since the join is keyed by identifier.
	features := []*geojson.Feature{
		polyFeature(0, 0, 10),
		polyFeature(500, 500, 10),
	}
	names := []string{model.EmptyName, model.EmptyName}
	areas := []ConsultativeArea{
		{Name: "X", Geometry: orb.Polygon{orb.Ring{{0, 0}, {20, 0}, {20, 20}, {0, 20}, {0, 0}}}},
	}

	m := Aggregate(areas, features, names)
	assert.Equal(t, []string{"required", "required"}, m.Cells["X"])
}

func TestAggregate_LineFeatures(t *testing.T) {
	road := geojson.NewFeature(orb.LineString{{-50, 5}, {50, 5}})
	areas := []ConsultativeArea{
		{Name: "X", Geometry: orb.Polygon{orb.Ring{{0, 0}, {20, 0}, {20, 20}, {0, 20}, {0, 0}}}},
	}

	m := Aggregate(areas, []*geojson.Feature{road}, []string{"R1"})
	assert.Equal(t, []string{"required"}, m.Cells["X"])
}
