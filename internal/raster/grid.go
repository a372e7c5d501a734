package raster

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/paulmach/orb"
)

// Grid is an in-memory elevation raster with square cells.
type Grid struct {
	// Cols and Rows are the grid dimensions.
	Cols, Rows int

	// CellSize is the edge length of one square cell, in layer units
	// (meters for the provincial DEM).
	CellSize float64

	// xll, yll locate the lower-left corner of the lower-left cell.
	xll, yll float64

	// noData is the sentinel marking missing cells; meaningful only
	// when hasNoData is set.
	noData    float64
	hasNoData bool

	// values is row-major with row 0 the northernmost row, as the
	// cells appear in the file.
	values [][]float64
}

// Load reads an Esri ASCII grid from disk.
func Load(path string) (*Grid, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening DEM: %w", err)
	}
	defer f.Close()

	g, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing DEM %s: %w", path, err)
	}
	return g, nil
}

// Parse reads an Esri ASCII grid from a reader. The header accepts
// either corner (xllcorner/yllcorner) or center (xllcenter/yllcenter)
// origin keywords; center origins are shifted to corners internally.
func Parse(r io.Reader) (*Grid, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 8*1024*1024)
	scanner.Split(bufio.ScanWords)

	next := func() (string, bool) {
		if !scanner.Scan() {
			return "", false
		}
		return scanner.Text(), true
	}

	g := &Grid{Cols: -1, Rows: -1, CellSize: -1}
	xOrigin, yOrigin := math.NaN(), math.NaN()
	xIsCenter, yIsCenter := false, false

	// Header: keyword/value pairs until the first bare number.
	var firstValue string
	for {
		tok, ok := next()
		if !ok {
			return nil, fmt.Errorf("unexpected end of header")
		}
		if _, err := strconv.ParseFloat(tok, 64); err == nil {
			// First cell value; header is complete.
			firstValue = tok
			break
		}

		valTok, ok := next()
		if !ok {
			return nil, fmt.Errorf("header keyword %q has no value", tok)
		}
		val, err := strconv.ParseFloat(valTok, 64)
		if err != nil {
			return nil, fmt.Errorf("header keyword %q: bad value %q", tok, valTok)
		}

		switch strings.ToLower(tok) {
		case "ncols":
			g.Cols = int(val)
		case "nrows":
			g.Rows = int(val)
		case "xllcorner":
			xOrigin = val
		case "yllcorner":
			yOrigin = val
		case "xllcenter":
			xOrigin, xIsCenter = val, true
		case "yllcenter":
			yOrigin, yIsCenter = val, true
		case "cellsize":
			g.CellSize = val
		case "nodata_value":
			g.noData, g.hasNoData = val, true
		default:
			return nil, fmt.Errorf("unknown header keyword %q", tok)
		}
	}

	if g.Cols <= 0 || g.Rows <= 0 {
		return nil, fmt.Errorf("grid dimensions missing or invalid (ncols=%d, nrows=%d)", g.Cols, g.Rows)
	}
	if g.CellSize <= 0 {
		return nil, fmt.Errorf("cellsize missing or invalid")
	}
	if math.IsNaN(xOrigin) || math.IsNaN(yOrigin) {
		return nil, fmt.Errorf("grid origin missing")
	}
	if xIsCenter {
		xOrigin -= g.CellSize / 2
	}
	if yIsCenter {
		yOrigin -= g.CellSize / 2
	}
	g.xll, g.yll = xOrigin, yOrigin

	// Body: exactly Rows × Cols values, row-major from the north.
	g.values = make([][]float64, g.Rows)
	tok := firstValue
	for i := 0; i < g.Rows; i++ {
		row := make([]float64, g.Cols)
		for j := 0; j < g.Cols; j++ {
			if tok == "" {
				t, ok := next()
				if !ok {
					return nil, fmt.Errorf("grid body ends early at row %d col %d (want %d×%d values)", i, j, g.Rows, g.Cols)
				}
				tok = t
			}
			v, err := strconv.ParseFloat(tok, 64)
			if err != nil {
				return nil, fmt.Errorf("bad cell value %q at row %d col %d", tok, i, j)
			}
			row[j] = v
			tok = ""
		}
		g.values[i] = row
	}
	if extra, ok := next(); ok {
		return nil, fmt.Errorf("grid body has trailing data starting at %q", extra)
	}
	return g, nil
}

// Bound returns the grid's spatial extent.
func (g *Grid) Bound() orb.Bound {
	return orb.Bound{
		Min: orb.Point{g.xll, g.yll},
		Max: orb.Point{g.xll + float64(g.Cols)*g.CellSize, g.yll + float64(g.Rows)*g.CellSize},
	}
}

// Clip returns the sub-grid covering the cells that intersect bound.
// The sub-grid shares no storage with the parent. Returns an error when
// the bound lies entirely outside the grid.
func (g *Grid) Clip(bound orb.Bound) (*Grid, error) {
	left := int(math.Floor((bound.Min[0] - g.xll) / g.CellSize))
	right := int(math.Ceil((bound.Max[0]-g.xll)/g.CellSize)) - 1
	bottom := int(math.Floor((bound.Min[1] - g.yll) / g.CellSize))
	top := int(math.Ceil((bound.Max[1]-g.yll)/g.CellSize)) - 1

	left = max(left, 0)
	bottom = max(bottom, 0)
	right = min(right, g.Cols-1)
	top = min(top, g.Rows-1)

	if left > right || bottom > top {
		return nil, fmt.Errorf("clip extent lies outside the grid")
	}

	// Convert bottom-up cell indexes to the stored top-down rows.
	iTop := g.Rows - 1 - top
	iBottom := g.Rows - 1 - bottom

	sub := &Grid{
		Cols:      right - left + 1,
		Rows:      iBottom - iTop + 1,
		CellSize:  g.CellSize,
		xll:       g.xll + float64(left)*g.CellSize,
		yll:       g.yll + float64(bottom)*g.CellSize,
		noData:    g.noData,
		hasNoData: g.hasNoData,
	}
	sub.values = make([][]float64, sub.Rows)
	for i := iTop; i <= iBottom; i++ {
		row := make([]float64, sub.Cols)
		copy(row, g.values[i][left:right+1])
		sub.values[i-iTop] = row
	}
	return sub, nil
}

// ValueAt returns the cell value containing the point. NoData cells and
// points outside the grid are errors: a missing elevation aborts the
// whole run rather than producing a partial report.
func (g *Grid) ValueAt(pt orb.Point) (float64, error) {
	col := int(math.Floor((pt[0] - g.xll) / g.CellSize))
	fromBottom := int(math.Floor((pt[1] - g.yll) / g.CellSize))
	row := g.Rows - 1 - fromBottom

	if col < 0 || col >= g.Cols || row < 0 || row >= g.Rows {
		return 0, fmt.Errorf("point (%.1f, %.1f) is outside the elevation grid", pt[0], pt[1])
	}
	v := g.values[row][col]
	if g.hasNoData && v == g.noData {
		return 0, fmt.Errorf("no elevation data at point (%.1f, %.1f)", pt[0], pt[1])
	}
	return v, nil
}

// Sample clips the grid to a square neighborhood of the given radius
// around the point, then indexes the clipped grid at the point. This is
// the two-step sequence the DEM procedure prescribes; the result is
// identical to indexing the full grid but keeps the working set small.
func (g *Grid) Sample(pt orb.Point, radius float64) (float64, error) {
	neighborhood := orb.Bound{
		Min: orb.Point{pt[0] - radius, pt[1] - radius},
		Max: orb.Point{pt[0] + radius, pt[1] + radius},
	}
	clipped, err := g.Clip(neighborhood)
	if err != nil {
		return 0, err
	}
	return clipped.ValueAt(pt)
}
