package overlay

import (
	"fmt"

	"github.com/forestops/referral/internal/geo"
	"github.com/forestops/referral/internal/layer"
	"github.com/forestops/referral/internal/model"
)

// ValidateInput checks the input contract before any computation is
// spent: geometry type must match the declared feature kind, Block
// layers must be in a projected metric coordinate system (areas of
// degrees are meaningless), the collection must be non-empty, and the
// identifier field must exist. The first violation aborts the run with
// an error naming the broken contract.
func ValidateInput(kind model.FeatureKind, features *layer.Layer, idField string) error {
	if !kind.IsValid() {
		return model.NewCLIError(model.ExitBadInput,
			fmt.Sprintf("input features must be either Blocks or Roads, got %q", kind))
	}

	if features.Count() < 1 {
		return model.NewCLIError(model.ExitBadInput, "your input features layer is empty")
	}

	for _, f := range features.Features() {
		if f.Geometry == nil {
			return model.NewCLIError(model.ExitBadInput,
				fmt.Sprintf("%s features must not have empty geometries", kind))
		}
		if err := checkGeometry(kind, f.Geometry.GeoJSONType()); err != nil {
			return err
		}
	}

	if kind == model.KindBlock && !geo.IsMetric(features.EPSG) {
		return model.NewCLIError(model.ExitBadInput,
			"input layer must be in a projected coordinate system")
	}

	if !features.HasField(idField) {
		return model.NewCLIError(model.ExitBadInput,
			fmt.Sprintf("%s is not a field of %s", idField, features.Path))
	}
	return nil
}

func checkGeometry(kind model.FeatureKind, geomType string) error {
	switch kind {
	case model.KindBlock:
		if geomType != "Polygon" && geomType != "MultiPolygon" {
			return model.NewCLIError(model.ExitBadInput,
				fmt.Sprintf("Block features must be Polygons, found %s", geomType))
		}
	case model.KindRoad:
		if geomType != "LineString" && geomType != "MultiLineString" {
			return model.NewCLIError(model.ExitBadInput,
				fmt.Sprintf("Road features must be Lines, found %s", geomType))
		}
	}
	return nil
}
