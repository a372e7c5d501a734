package raster

import (
	"strings"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// testGrid is a 4×3 grid spanning x 100..140, y 200..230. The first
// data row is the northernmost, so cell value 9 sits at the lower left.
const testGrid = `ncols 4
nrows 3
xllcorner 100
yllcorner 200
cellsize 10
NODATA_value -9999
1 2 3 4
5 6 7 8
9 10 -9999 12
`

func parseTestGrid(t *testing.T) *Grid {
	t.Helper()
	g, err := Parse(strings.NewReader(testGrid))
	require.NoError(t, err)
	return g
}

func TestParse_HeaderAndShape(t *testing.T) {
	g := parseTestGrid(t)

	assert.Equal(t, 4, g.Cols)
	assert.Equal(t, 3, g.Rows)
	assert.Equal(t, 10.0, g.CellSize)

	b := g.Bound()
	assert.Equal(t, orb.Point{100, 200}, b.Min)
	assert.Equal(t, orb.Point{140, 230}, b.Max)
}

func TestParse_CenterOrigin(t *testing.T) {
	src := `ncols 1
nrows 1
xllcenter 105
yllcenter 205
cellsize 10
42
`
	g, err := Parse(strings.NewReader(src))
	require.NoError(t, err)

	// Center origin shifts by half a cell to the corner.
	assert.Equal(t, orb.Point{100, 200}, g.Bound().Min)

	v, err := g.ValueAt(orb.Point{104, 206})
	require.NoError(t, err)
	assert.Equal(t, 42.0, v)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"truncated body", "ncols 2\nnrows 2\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2 3\n", "ends early"},
		{"trailing data", "ncols 1\nnrows 1\nxllcorner 0\nyllcorner 0\ncellsize 1\n1 2\n", "trailing data"},
		{"unknown keyword", "ncols 1\nnrows 1\nbogus 9\nxllcorner 0\nyllcorner 0\ncellsize 1\n1\n", "unknown header keyword"},
		{"missing cellsize", "ncols 1\nnrows 1\nxllcorner 0\nyllcorner 0\n1\n", "cellsize"},
		{"missing origin", "ncols 1\nnrows 1\ncellsize 1\n1\n", "origin"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(tt.src))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValueAt(t *testing.T) {
	g := parseTestGrid(t)

	// Lower-left cell.
	v, err := g.ValueAt(orb.Point{105, 205})
	require.NoError(t, err)
	assert.Equal(t, 9.0, v)

	// Upper-right cell.
	v, err = g.ValueAt(orb.Point{135, 225})
	require.NoError(t, err)
	assert.Equal(t, 4.0, v)

	// Middle row.
	v, err = g.ValueAt(orb.Point{115, 215})
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)
}

func TestValueAt_NoDataAndOutside(t *testing.T) {
	g := parseTestGrid(t)

	_, err := g.ValueAt(orb.Point{125, 205})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no elevation data")

	_, err = g.ValueAt(orb.Point{95, 205})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside")

	_, err = g.ValueAt(orb.Point{105, 235})
	require.Error(t, err)
}

func TestClip(t *testing.T) {
	g := parseTestGrid(t)

	sub, err := g.Clip(orb.Bound{Min: orb.Point{110, 205}, Max: orb.Point{125, 228}})
	require.NoError(t, err)

	assert.Equal(t, 2, sub.Cols)
	assert.Equal(t, 3, sub.Rows)
	assert.Equal(t, orb.Point{110, 200}, sub.Bound().Min)

	// Values survive the clip with identical spatial addressing.
	v, err := sub.ValueAt(orb.Point{115, 215})
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)

	v, err = sub.ValueAt(orb.Point{115, 205})
	require.NoError(t, err)
	assert.Equal(t, 10.0, v)
}

func TestClip_Outside(t *testing.T) {
	g := parseTestGrid(t)
	_, err := g.Clip(orb.Bound{Min: orb.Point{500, 500}, Max: orb.Point{600, 600}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "outside")
}

func TestSample_MatchesDirectIndexing(t *testing.T) {
	g := parseTestGrid(t)

	v, err := g.Sample(orb.Point{115, 215}, 10)
	require.NoError(t, err)
	assert.Equal(t, 6.0, v)

	// A neighborhood hanging over the grid edge still samples fine as
	// long as the point itself is inside.
	v, err = g.Sample(orb.Point{105, 225}, 100)
	require.NoError(t, err)
	assert.Equal(t, 1.0, v)

	// Point fully outside the grid fails.
	_, err = g.Sample(orb.Point{1000, 1000}, 100)
	require.Error(t, err)
}
