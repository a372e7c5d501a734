// Package raster reads elevation models in the Esri ASCII grid (.asc)
// format and samples them at points.
//
// The format is a plain-text header (ncols, nrows, lower-left origin,
// cellsize, optional NODATA_value) followed by whitespace-separated cell
// values, first data row northernmost. Cell indexing follows the
// upper-left-origin convention: row = (topY - y) / cellsize,
// col = (x - leftX) / cellsize.
//
// The elevation workflow clips the grid to a small neighborhood around
// the sample point first, then indexes the clipped grid, matching the
// buffer/clip/index sequence of the provincial DEM procedure this tool
// replaces.
package raster
