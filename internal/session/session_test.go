package session

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forestops/referral/internal/model"
)

func TestLoad_ResolvesPathsAgainstSessionDir(t *testing.T) {
	s, err := Load(filepath.Join("testdata", "session.yaml"))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join("testdata", "scratch"), s.Scratch)
	assert.Equal(t, filepath.Join("testdata", "dem", "elevation_25m.asc"), s.DEM)
	assert.Equal(t, filepath.Join("testdata", "layers", "legal_areas.geojson"), s.Layers.Boundary.Path)
	assert.Equal(t, "CONTACT_ORGANIZATION_NAME", s.Layers.Territories.NameField)
	assert.Equal(t, "FIELD_TEAM", s.Layers.FieldTeams.NameField)
	assert.Equal(t, "OPAREA_NAM", s.Layers.OperatingAreas.NameField)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join("testdata", "nope.yaml"))
	require.Error(t, err)

	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitLayerNotFound, cliErr.Code)
}

func writeSession(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "session.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_ValidationErrors(t *testing.T) {
	const valid = `
dem: dem.asc
layers:
  boundary: { path: b.geojson }
  territories: { path: t.geojson, nameField: NAME }
  fieldTeams: { path: ft.geojson, nameField: TEAM }
  operatingAreas: { path: oa.geojson, nameField: OA }
`

	tests := []struct {
		name    string
		content string
		want    string
	}{
		{
			name: "no boundary",
			content: `
dem: dem.asc
layers:
  territories: { path: t.geojson, nameField: NAME }
  fieldTeams: { path: ft.geojson, nameField: TEAM }
  operatingAreas: { path: oa.geojson, nameField: OA }
`,
			want: "boundary layer",
		},
		{
			name: "no dem",
			content: `
layers:
  boundary: { path: b.geojson }
  territories: { path: t.geojson, nameField: NAME }
  fieldTeams: { path: ft.geojson, nameField: TEAM }
  operatingAreas: { path: oa.geojson, nameField: OA }
`,
			want: "DEM",
		},
		{
			name: "territories without name field",
			content: `
dem: dem.asc
layers:
  boundary: { path: b.geojson }
  territories: { path: t.geojson }
  fieldTeams: { path: ft.geojson, nameField: TEAM }
  operatingAreas: { path: oa.geojson, nameField: OA }
`,
			want: "nameField",
		},
		{
			name:    "not yaml",
			content: "{{{{",
			want:    "not valid YAML",
		},
	}

	// Sanity: the valid document loads.
	_, err := Load(writeSession(t, valid))
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeSession(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)

			var cliErr *model.CLIError
			require.True(t, errors.As(err, &cliErr))
			assert.Equal(t, model.ExitLayerNotFound, cliErr.Code)
		})
	}
}

func TestLoad_DefaultScratch(t *testing.T) {
	path := writeSession(t, `
dem: dem.asc
layers:
  boundary: { path: b.geojson }
  territories: { path: t.geojson, nameField: NAME }
  fieldTeams: { path: ft.geojson, nameField: TEAM }
  operatingAreas: { path: oa.geojson, nameField: OA }
`)
	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(filepath.Dir(path), DefaultScratch), s.Scratch)
}

func TestScratchLifecycle(t *testing.T) {
	dir := t.TempDir()
	s := &Session{Scratch: filepath.Join(dir, "scratch")}

	// Seed a leftover file from a "previous run".
	require.NoError(t, os.MkdirAll(s.Scratch, 0o755))
	stale := filepath.Join(s.Scratch, "stale.tmp")
	require.NoError(t, os.WriteFile(stale, []byte("old"), 0o644))

	// PrepareScratch clears the leftovers but leaves the directory.
	require.NoError(t, s.PrepareScratch())
	_, err := os.Stat(stale)
	assert.True(t, os.IsNotExist(err), "stale files must be removed")
	info, err := os.Stat(s.Scratch)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	// ClearScratch removes the directory entirely.
	require.NoError(t, s.ClearScratch())
	_, err = os.Stat(s.Scratch)
	assert.True(t, os.IsNotExist(err))
}
