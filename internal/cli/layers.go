// Package cli — layers.go implements the "referral layers" command.
//
// The layers command inspects a session file without running anything:
// it lists each declared layer role with its path, feature count, and
// property fields, plus the DEM dimensions. Operators use it to confirm
// a session points at the right data before committing to a full run.
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/forestops/referral/internal/layer"
	"github.com/forestops/referral/internal/raster"
	"github.com/forestops/referral/internal/session"
)

// layerInfo describes one layer role for the listing.
type layerInfo struct {
	Role      string   `json:"role"`
	Path      string   `json:"path"`
	NameField string   `json:"nameField,omitempty"`
	EPSG      int      `json:"epsg"`
	Features  int      `json:"features"`
	Fields    []string `json:"fields"`
}

// demInfo describes the session's elevation grid.
type demInfo struct {
	Path     string  `json:"path"`
	Cols     int     `json:"cols"`
	Rows     int     `json:"rows"`
	CellSize float64 `json:"cellSize"`
}

// layersListing is the full --json payload.
type layersListing struct {
	Layers []layerInfo `json:"layers"`
	DEM    demInfo     `json:"dem"`
}

// NewLayersCommand creates the "layers" cobra command.
func NewLayersCommand() *cobra.Command {
	var sessionPath string

	cmd := &cobra.Command{
		Use:   "layers",
		Short: "List the layers a session file declares",
		Long: `List every layer role declared by a session file, with feature counts
and fields, and the DEM dimensions.

Examples:
  referral layers --session plan.yaml
  referral layers --session plan.yaml --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runLayers(sessionPath)
		},
	}

	cmd.Flags().StringVar(&sessionPath, "session", "", "Session file to inspect (required)")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

func runLayers(sessionPath string) error {
	sess, err := session.Load(sessionPath)
	if err != nil {
		return err
	}

	roles := []struct {
		role string
		ref  session.LayerRef
	}{
		{"boundary", sess.Layers.Boundary},
		{"territories", sess.Layers.Territories},
		{"fieldTeams", sess.Layers.FieldTeams},
		{"operatingAreas", sess.Layers.OperatingAreas},
	}

	listing := layersListing{}
	for _, r := range roles {
		l, err := layer.Load(r.ref.Path)
		if err != nil {
			return err
		}
		listing.Layers = append(listing.Layers, layerInfo{
			Role:      r.role,
			Path:      r.ref.Path,
			NameField: r.ref.NameField,
			EPSG:      l.EPSG,
			Features:  l.Count(),
			Fields:    l.Fields(),
		})
	}

	dem, err := raster.Load(sess.DEM)
	if err != nil {
		return err
	}
	listing.DEM = demInfo{
		Path:     sess.DEM,
		Cols:     dem.Cols,
		Rows:     dem.Rows,
		CellSize: dem.CellSize,
	}

	if IsJSONOutput() {
		data, err := json.MarshalIndent(listing, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}

	bold := color.New(color.Bold)
	for _, info := range listing.Layers {
		bold.Printf("%s\n", info.Role)
		fmt.Printf("  path:     %s\n", info.Path)
		if info.NameField != "" {
			fmt.Printf("  field:    %s\n", info.NameField)
		}
		if info.EPSG != 0 {
			fmt.Printf("  crs:      EPSG:%d\n", info.EPSG)
		} else {
			fmt.Printf("  crs:      (none declared)\n")
		}
		fmt.Printf("  features: %d\n", info.Features)
		fmt.Printf("  fields:   %s\n", strings.Join(info.Fields, ", "))
	}
	bold.Printf("dem\n")
	fmt.Printf("  path:     %s\n", listing.DEM.Path)
	fmt.Printf("  grid:     %d × %d @ %gm\n", listing.DEM.Cols, listing.DEM.Rows, listing.DEM.CellSize)
	return nil
}
