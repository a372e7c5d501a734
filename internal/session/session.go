package session

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/forestops/referral/internal/model"
)

// DefaultScratch is the scratch workspace directory used when the
// session file does not name one, relative to the session file.
const DefaultScratch = ".referral-scratch"

// LayerRef names one layer role's backing file and, where the role
// contributes attribute values, the property field to read them from.
type LayerRef struct {
	// Path is the layer file, absolute or relative to the session file.
	Path string `yaml:"path"`

	// NameField is the property carrying the layer's attribution value
	// (consultative-area name, field-team name, operating-area name).
	// Unused for the boundary role.
	NameField string `yaml:"nameField"`
}

// Layers declares the four layer roles a run requires.
type Layers struct {
	// Boundary is the operator's working boundary; territories are
	// reduced to the subset intersecting it.
	Boundary LayerRef `yaml:"boundary"`

	// Territories is the full consultative-areas layer.
	Territories LayerRef `yaml:"territories"`

	// FieldTeams is the administrative team boundary layer.
	FieldTeams LayerRef `yaml:"fieldTeams"`

	// OperatingAreas is the operating-area boundary layer.
	OperatingAreas LayerRef `yaml:"operatingAreas"`
}

// Session is the parsed session file.
type Session struct {
	// Scratch is the scratch workspace directory.
	Scratch string `yaml:"scratch"`

	// DEM is the elevation model path (Esri ASCII grid).
	DEM string `yaml:"dem"`

	// Layers are the four required layer roles.
	Layers Layers `yaml:"layers"`
}

// Load reads and validates a session file. Relative paths inside the
// file are resolved against the file's own directory, so a session can
// travel with its data.
func Load(path string) (*Session, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, model.WrapCLIError(model.ExitLayerNotFound,
			fmt.Sprintf("session file %s not found", path), err)
	}

	var s Session
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return nil, model.WrapCLIError(model.ExitLayerNotFound,
			fmt.Sprintf("session file %s is not valid YAML", path), err)
	}

	base := filepath.Dir(path)
	if s.Scratch == "" {
		s.Scratch = DefaultScratch
	}
	s.Scratch = resolve(base, s.Scratch)
	s.DEM = resolve(base, s.DEM)
	s.Layers.Boundary.Path = resolve(base, s.Layers.Boundary.Path)
	s.Layers.Territories.Path = resolve(base, s.Layers.Territories.Path)
	s.Layers.FieldTeams.Path = resolve(base, s.Layers.FieldTeams.Path)
	s.Layers.OperatingAreas.Path = resolve(base, s.Layers.OperatingAreas.Path)

	if err := s.validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(base, p)
}

// validate checks that every required role is declared. File existence
// is checked at load time by the layer/raster packages; here we only
// enforce that the session names everything a run needs.
func (s *Session) validate() error {
	missing := func(role string) error {
		return model.NewCLIError(model.ExitLayerNotFound,
			fmt.Sprintf("session does not declare the %s layer", role))
	}

	if s.Layers.Boundary.Path == "" {
		return missing("boundary")
	}
	if s.Layers.Territories.Path == "" {
		return missing("territories")
	}
	if s.Layers.FieldTeams.Path == "" {
		return missing("fieldTeams")
	}
	if s.Layers.OperatingAreas.Path == "" {
		return missing("operatingAreas")
	}
	if s.DEM == "" {
		return model.NewCLIError(model.ExitLayerNotFound, "session does not declare a DEM")
	}

	if s.Layers.Territories.NameField == "" {
		return model.NewCLIError(model.ExitLayerNotFound,
			"session territories layer needs a nameField")
	}
	if s.Layers.FieldTeams.NameField == "" {
		return model.NewCLIError(model.ExitLayerNotFound,
			"session fieldTeams layer needs a nameField")
	}
	if s.Layers.OperatingAreas.NameField == "" {
		return model.NewCLIError(model.ExitLayerNotFound,
			"session operatingAreas layer needs a nameField")
	}
	return nil
}

// PrepareScratch clears and recreates the scratch workspace. Called at
// the start of every run so leftovers from a previous invocation cannot
// contaminate this one.
func (s *Session) PrepareScratch() error {
	if err := os.RemoveAll(s.Scratch); err != nil {
		return fmt.Errorf("clearing scratch workspace: %w", err)
	}
	if err := os.MkdirAll(s.Scratch, 0o755); err != nil {
		return fmt.Errorf("creating scratch workspace: %w", err)
	}
	return nil
}

// ClearScratch removes the scratch workspace entirely. Called at the
// end of a successful run unless the operator asked to keep it.
func (s *Session) ClearScratch() error {
	if err := os.RemoveAll(s.Scratch); err != nil {
		return fmt.Errorf("clearing scratch workspace: %w", err)
	}
	return nil
}
