package overlay

import (
	"github.com/forestops/referral/internal/layer"
	"github.com/forestops/referral/internal/model"
	"github.com/forestops/referral/internal/raster"
	"github.com/forestops/referral/internal/session"
)

// RunOptions are the per-run parameters: the four positional CLI
// arguments plus tuning flags.
type RunOptions struct {
	// Kind declares what the input features are (Block or Road).
	Kind model.FeatureKind

	// FeaturesPath is the input features layer file.
	FeaturesPath string

	// IDField is the identifier property in the features layer.
	IDField string

	// BufferRadius is the elevation-sampling neighborhood in meters;
	// zero means DefaultBufferRadius.
	BufferRadius float64

	// Progress, when non-nil, receives stage and per-feature progress
	// lines. The pipeline never writes to stdout/stderr itself.
	Progress func(format string, args ...any)
}

// RunResult is everything the report writer needs: the frozen, sorted
// table plus the metadata that shapes the spreadsheet.
type RunResult struct {
	Kind model.FeatureKind

	// Table holds the fixed leading columns followed by one column per
	// discovered consultative-area name, sorted ascending by Name.
	Table *Table

	// AreaColumns lists the consultative-area column names in
	// discovery order.
	AreaColumns []string

	// FeatureCount is the number of input features (= table rows).
	FeatureCount int
}

// Run executes the full pipeline: validate → locate → enrich →
// aggregate → assemble. It loads every layer named by the session,
// fails fast on any contract violation, and returns the frozen result
// table. The caller writes the report and owns the scratch lifecycle.
func Run(sess *session.Session, opts RunOptions) (*RunResult, error) {
	progress := opts.Progress
	if progress == nil {
		progress = func(string, ...any) {}
	}

	progress("Checking user inputs...")
	features, err := layer.Load(opts.FeaturesPath)
	if err != nil {
		return nil, err
	}
	if err := ValidateInput(opts.Kind, features, opts.IDField); err != nil {
		return nil, err
	}

	boundary, err := layer.Load(sess.Layers.Boundary.Path)
	if err != nil {
		return nil, err
	}
	territories, err := layer.Load(sess.Layers.Territories.Path)
	if err != nil {
		return nil, err
	}
	fieldTeams, err := layer.Load(sess.Layers.FieldTeams.Path)
	if err != nil {
		return nil, err
	}
	opAreas, err := layer.Load(sess.Layers.OperatingAreas.Path)
	if err != nil {
		return nil, err
	}
	dem, err := raster.Load(sess.DEM)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitLayerNotFound, "loading DEM", err)
	}

	progress("Getting consultative areas...")
	areas := LocateConsultativeAreas(territories, sess.Layers.Territories.NameField, boundary)

	progress("Performing the analysis...")
	rows, err := Enrich(opts.Kind, features, EnrichConfig{
		IDField:        opts.IDField,
		FieldTeams:     fieldTeams,
		FieldTeamField: sess.Layers.FieldTeams.NameField,
		OperatingAreas: opAreas,
		OpAreaField:    sess.Layers.OperatingAreas.NameField,
		DEM:            dem,
		BufferRadius:   opts.BufferRadius,
		Progress:       progress,
	})
	if err != nil {
		return nil, err
	}

	progress("Populating overlay results...")
	names := make([]string, len(rows))
	for i, r := range rows {
		names[i] = r.Name
	}
	marking := Aggregate(areas, features.Features(), names)

	table, err := assemble(opts.Kind, rows, marking)
	if err != nil {
		return nil, err
	}

	return &RunResult{
		Kind:         opts.Kind,
		Table:        table,
		AreaColumns:  marking.Areas,
		FeatureCount: features.Count(),
	}, nil
}

// assemble builds the frozen table: fixed leading columns, area columns
// in discovery order, rows sorted ascending by Name.
func assemble(kind model.FeatureKind, rows []model.Row, marking *Marking) (*Table, error) {
	n := len(rows)
	types := make([]any, n)
	teams := make([]any, n)
	opAreas := make([]any, n)
	names := make([]any, n)
	measures := make([]any, n)
	elevations := make([]any, n)
	for i, r := range rows {
		types[i] = r.Kind.String()
		teams[i] = r.FieldTeam
		opAreas[i] = r.OpArea
		names[i] = r.Name
		measures[i] = r.Measure
		elevations[i] = r.Elevation
	}

	table := NewTable(n)
	fixed := []struct {
		name   string
		values []any
	}{
		{"Type", types},
		{"Field Team", teams},
		{"Op Area", opAreas},
		{"Name", names},
		{kind.MeasureColumn(), measures},
		{"Elevation", elevations},
	}
	for _, col := range fixed {
		if err := table.AddColumn(col.name, col.values); err != nil {
			return nil, err
		}
	}

	for _, areaName := range marking.Areas {
		cells := marking.Cells[areaName]
		values := make([]any, n)
		for i, c := range cells {
			values[i] = c
		}
		if err := table.AddColumn(areaName, values); err != nil {
			return nil, model.WrapCLIError(model.ExitGeneralError,
				"consultative-area name collides with a report column", err)
		}
	}

	if err := table.SortByName(); err != nil {
		return nil, err
	}
	return table, nil
}
