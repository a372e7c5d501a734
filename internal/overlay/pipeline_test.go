package overlay

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forestops/referral/internal/model"
	"github.com/forestops/referral/internal/session"
)

func loadSession(t *testing.T) *session.Session {
	t.Helper()
	sess, err := session.Load(filepath.Join("testdata", "session.yaml"))
	require.NoError(t, err)
	return sess
}

func TestLocateConsultativeAreas_FiltersByBoundary(t *testing.T) {
	territories := loadFixture(t, "consultative_areas.geojson")
	boundary := loadFixture(t, "legal_areas.geojson")

	areas := LocateConsultativeAreas(territories, "CONTACT_ORGANIZATION_NAME", boundary)

	// Nation Z lies far outside the working boundary.
	require.Len(t, areas, 2)
	assert.Equal(t, "Nation X", areas[0].Name)
	assert.Equal(t, "Nation Y", areas[1].Name)
}

func TestRun_Blocks_EndToEnd(t *testing.T) {
	result, err := Run(loadSession(t), RunOptions{
		Kind:         model.KindBlock,
		FeaturesPath: filepath.Join("testdata", "blocks.geojson"),
		IDField:      "BLOCK_ID",
	})
	require.NoError(t, err)

	assert.Equal(t, 3, result.FeatureCount)
	assert.Equal(t, []string{"Nation X", "Nation Y"}, result.AreaColumns)

	table := result.Table
	assert.Equal(t, []string{
		"Type", "Field Team", "Op Area", "Name", "Area (ha)", "Elevation",
		"Nation X", "Nation Y",
	}, table.ColumnNames())

	// Every column covers every feature exactly once.
	for _, name := range table.ColumnNames() {
		assert.Len(t, table.Column(name), result.FeatureCount, "column %s", name)
	}

	// Rows come out sorted by name even though the file order is B, C, A.
	assert.Equal(t, []any{"A", "B", "C"}, table.Column("Name"))
	assert.Equal(t, []any{"Block", "Block", "Block"}, table.Column("Type"))

	// Each block is 100m × 100m: exactly one hectare.
	assert.Equal(t, []any{1.0, 1.0, 1.0}, table.Column("Area (ha)"))

	// Elevations come from the synthetic DEM at each centroid.
	assert.Equal(t, []any{801.0, 504.0, 808.0}, table.Column("Elevation"))

	// Attribution is per feature: C sits in the east team's patch and
	// outside the single operating area.
	assert.Equal(t, []any{"West Team", "West Team", "East Team"}, table.Column("Field Team"))
	assert.Equal(t, []any{"Fir Creek", "Fir Creek", ""}, table.Column("Op Area"))

	// The canonical overlay: A → X only, B → X and Y, C → neither.
	assert.Equal(t, []any{"required", "required", "n/r"}, table.Column("Nation X"))
	assert.Equal(t, []any{"n/r", "required", "n/r"}, table.Column("Nation Y"))
}

func TestRun_Roads_EndToEnd(t *testing.T) {
	result, err := Run(loadSession(t), RunOptions{
		Kind:         model.KindRoad,
		FeaturesPath: filepath.Join("testdata", "roads.geojson"),
		IDField:      "ROAD_ID",
	})
	require.NoError(t, err)

	table := result.Table
	assert.Contains(t, table.ColumnNames(), "Length (m)")

	// Numeric identifiers sort numerically: 7 before 12.
	assert.Equal(t, []any{"7", "12"}, table.Column("Name"))

	// Lengths truncate to whole meters (250.5 → 250).
	assert.Equal(t, []any{250.0, 200.0}, table.Column("Length (m)"))

	// Elevation samples at each road's midpoint.
	assert.Equal(t, []any{107.0, 802.0}, table.Column("Elevation"))

	// Only road 12 crosses Nation X.
	assert.Equal(t, []any{"n/r", "required"}, table.Column("Nation X"))
	assert.Equal(t, []any{"n/r", "n/r"}, table.Column("Nation Y"))
}

func TestRun_EmptyIdentifierRendersNone(t *testing.T) {
	result, err := Run(loadSession(t), RunOptions{
		Kind:         model.KindBlock,
		FeaturesPath: filepath.Join("testdata", "blocks_unnamed.geojson"),
		IDField:      "BLOCK_ID",
	})
	require.NoError(t, err)

	assert.Equal(t, []any{"K9", "None"}, result.Table.Column("Name"))
}

func TestRun_MeasurementFailureAbortsRun(t *testing.T) {
	_, err := Run(loadSession(t), RunOptions{
		Kind:         model.KindBlock,
		FeaturesPath: filepath.Join("testdata", "blocks_outside_dem.geojson"),
		IDField:      "BLOCK_ID",
	})
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitMeasurement, cliErr.Code)
	assert.Contains(t, err.Error(), "elevation")
}

func TestRun_ValidatorRejectsBeforeAnyWork(t *testing.T) {
	_, err := Run(loadSession(t), RunOptions{
		Kind:         model.KindBlock,
		FeaturesPath: filepath.Join("testdata", "roads.geojson"),
		IDField:      "ROAD_ID",
	})
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitBadInput, cliErr.Code)
}

func TestRun_ReportsProgress(t *testing.T) {
	var lines []string
	_, err := Run(loadSession(t), RunOptions{
		Kind:         model.KindBlock,
		FeaturesPath: filepath.Join("testdata", "blocks.geojson"),
		IDField:      "BLOCK_ID",
		Progress: func(format string, args ...any) {
			lines = append(lines, format)
		},
	})
	require.NoError(t, err)

	// One per-feature line per input feature, plus the stage lines.
	perFeature := 0
	for _, l := range lines {
		if l == "Processing feature %d of %d" {
			perFeature++
		}
	}
	assert.Equal(t, 3, perFeature)
	assert.Contains(t, lines, "Getting consultative areas...")
}
