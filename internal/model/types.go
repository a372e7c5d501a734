// Package model defines the domain types for the referral CLI.
//
// All entities in this package are transient, in-memory representations
// built during a single run. The tool keeps no state between invocations:
// every run reads its layers fresh and produces exactly one report.
package model

import (
	"fmt"
	"strings"
)

// FeatureKind identifies what the input features represent. The kind
// determines the required geometry type and which size measure is
// reported for each feature:
//
//	Block → polygons, measured as "Area (ha)"
//	Road  → lines, measured as "Length (m)"
type FeatureKind string

const (
	// KindBlock is a proposed harvest block. Block layers must contain
	// polygon geometries in a projected (metric) coordinate system so
	// that areas can be computed in hectares.
	KindBlock FeatureKind = "Block"

	// KindRoad is a proposed road. Road layers must contain line
	// geometries; lengths are reported in whole meters.
	KindRoad FeatureKind = "Road"
)

// String returns the string representation of FeatureKind.
// This method satisfies the fmt.Stringer interface, enabling
// human-readable output in CLI commands and report cells.
func (k FeatureKind) String() string {
	return string(k)
}

// IsValid checks whether the FeatureKind value is one of the
// predefined valid kinds.
func (k FeatureKind) IsValid() bool {
	switch k {
	case KindBlock, KindRoad:
		return true
	default:
		return false
	}
}

// MeasureColumn returns the report column header for the kind's size
// measure: "Area (ha)" for blocks, "Length (m)" for roads.
func (k FeatureKind) MeasureColumn() string {
	if k == KindRoad {
		return "Length (m)"
	}
	return "Area (ha)"
}

// ParseFeatureKind converts a string to a FeatureKind. Matching is
// case-insensitive ("block", "Block", "BLOCK" are equivalent).
// Returns an error if the string does not match any valid kind.
func ParseFeatureKind(s string) (FeatureKind, error) {
	switch strings.ToLower(s) {
	case "block":
		return KindBlock, nil
	case "road":
		return KindRoad, nil
	default:
		return "", fmt.Errorf("input features must be either Blocks or Roads, got %q", s)
	}
}

// Referral markings used in area-name columns of the report. Every
// feature carries exactly one of these per discovered consultative area.
const (
	// MarkRequired means the feature intersects the consultative area
	// (anywhere, even partially) and a referral is required.
	MarkRequired = "required"

	// MarkNotRequired ("n/r") means the feature does not touch the
	// consultative area.
	MarkNotRequired = "n/r"
)

// EmptyName is the display value for features whose identifier field is
// null or empty. Uniqueness is not enforced for such features; they sort
// together and match jointly during overlay marking.
const EmptyName = "None"

// Row is one fully enriched feature as it appears in the report, before
// the per-area referral columns are appended.
type Row struct {
	// Kind is the feature kind, rendered in the "Type" column.
	Kind FeatureKind

	// FieldTeam is the administrative team whose boundary contains the
	// feature. Empty when the feature falls outside every team boundary.
	FieldTeam string

	// OpArea is the operating area containing the feature. Empty when
	// the feature falls outside every operating area.
	OpArea string

	// Name is the feature identifier from the declared ID field,
	// or EmptyName when the field value is null/empty.
	Name string

	// Measure is the size measure: hectares rounded half-to-even to two
	// decimals for blocks, whole meters (truncated) for roads.
	Measure float64

	// Elevation is the DEM sample at the feature's representative point.
	Elevation float64
}

// ExitCode defines the CLI exit codes. These codes allow wrapper scripts
// to programmatically distinguish why a run produced no report.
type ExitCode int

const (
	// ExitSuccess indicates the command completed successfully.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitBadInput indicates an input-contract violation: wrong geometry
	// kind, unprojected Block layer, empty collection, or missing
	// identifier field.
	ExitBadInput ExitCode = 2

	// ExitLayerNotFound indicates the session file or one of its named
	// layer roles is missing or unreadable.
	ExitLayerNotFound ExitCode = 3

	// ExitMeasurement indicates a feature measurement failed (for
	// example, a representative point outside the DEM or on a NoData
	// cell). The run aborts; there are no partial reports.
	ExitMeasurement ExitCode = 4

	// ExitReportWrite indicates the final spreadsheet could not be
	// written.
	ExitReportWrite ExitCode = 5
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
