// Package layer loads the vector layers the overlay pipeline consumes.
//
// Layers are GeoJSON FeatureCollections on disk. Files exported for
// field use are often hand-annotated, so the loader accepts JSONC
// (JSON with Comments) and strips comments with github.com/tidwall/jsonc
// before decoding with paulmach/orb's geojson codec.
//
// Key responsibilities:
//   - Load and decode a layer file (with JSONC support)
//   - Extract the legacy top-level "crs" member, which RFC 7946 dropped
//     but provincial exports still carry
//   - Generic dataset introspection: feature count and field listing
//   - Normalized string access to feature properties (identifiers may
//     arrive as JSON numbers)
package layer
