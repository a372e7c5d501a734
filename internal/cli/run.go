// Package cli — run.go implements the "referral run" command.
//
// The run command is the tool's single batch operation. It executes the
// whole pipeline in order:
//
//  1. Load and validate the session file
//  2. Clear the scratch workspace from any prior invocation
//  3. Validate the input features against the declared kind
//  4. Locate consultative areas intersecting the working boundary
//  5. Enrich every feature (attribution, measure, elevation)
//  6. Aggregate referral markings per consultative area
//  7. Write the spreadsheet report
//  8. Clear the scratch workspace again
package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/forestops/referral/internal/model"
	"github.com/forestops/referral/internal/overlay"
	"github.com/forestops/referral/internal/report"
	"github.com/forestops/referral/internal/session"
)

// runFlags holds the flag values for the run command.
type runFlags struct {
	session     string  // --session: session file path
	buffer      float64 // --buffer: elevation neighborhood radius in meters
	keepScratch bool    // --keep-scratch: skip end-of-run scratch cleanup
}

// runSummary is the machine-readable result printed with --json.
type runSummary struct {
	Kind         string   `json:"kind"`
	Features     int      `json:"features"`
	AreaColumns  []string `json:"areaColumns"`
	Report       string   `json:"report"`
	GeneratedAt  string   `json:"generatedAt"`
	ScratchKept  bool     `json:"scratchKept"`
	SessionFile  string   `json:"sessionFile"`
	FeaturesFile string   `json:"featuresFile"`
}

// NewRunCommand creates the "run" cobra command.
func NewRunCommand() *cobra.Command {
	flags := &runFlags{}

	cmd := &cobra.Command{
		Use:   "run <Block|Road> <features.geojson> <id-field> <output.xlsx>",
		Short: "Run the overlay analysis and write the spreadsheet report",
		Long: `Run the full overlay analysis for one features layer.

The four positional arguments are, in order: the feature kind (Block or
Road), the input features layer, the identifier field within that layer,
and the output spreadsheet path (overwritten if present).

Examples:
  referral run --session plan.yaml Block blocks.geojson BLOCK_ID report.xlsx
  referral run --session plan.yaml Road roads.geojson ROAD_ID roads.xlsx
  referral run --session plan.yaml --buffer 250 Block blocks.geojson CP_ID out.xlsx`,

		Args: cobra.ExactArgs(4),

		// RunE is used instead of Run so we can return errors. Cobra will
		// pass them to the Execute error handler in root.go.
		RunE: func(cmd *cobra.Command, args []string) error {
			return runOverlay(args, flags)
		},
	}

	cmd.Flags().StringVar(&flags.session, "session", "", "Session file declaring layers, DEM, and scratch (required)")
	cmd.Flags().Float64Var(&flags.buffer, "buffer", overlay.DefaultBufferRadius, "Elevation sampling neighborhood radius in meters")
	cmd.Flags().BoolVar(&flags.keepScratch, "keep-scratch", false, "Keep the scratch workspace after the run")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}

// runOverlay is the main orchestration function for the run command.
func runOverlay(args []string, flags *runFlags) error {
	kindArg, featuresPath, idField, outputPath := args[0], args[1], args[2], args[3]

	kind, err := model.ParseFeatureKind(kindArg)
	if err != nil {
		return model.WrapCLIError(model.ExitBadInput, "checking user inputs", err)
	}

	Status("Initializing the tool...")
	sess, err := session.Load(flags.session)
	if err != nil {
		return err
	}
	VerboseLog("session: %s, scratch: %s", flags.session, sess.Scratch)

	// Clear any temporary files left behind by a previous session.
	if err := sess.PrepareScratch(); err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "preparing scratch workspace", err)
	}

	result, err := overlay.Run(sess, overlay.RunOptions{
		Kind:         kind,
		FeaturesPath: featuresPath,
		IDField:      idField,
		BufferRadius: flags.buffer,
		Progress:     Status,
	})
	if err != nil {
		return err
	}

	Status("Generating the report...")
	generated := time.Now()
	if err := report.Write(outputPath, result, generated); err != nil {
		return err
	}

	if !flags.keepScratch {
		if err := sess.ClearScratch(); err != nil {
			return model.WrapCLIError(model.ExitGeneralError, "clearing scratch workspace", err)
		}
	}

	Status("Processing completed!")

	if IsJSONOutput() {
		summary := runSummary{
			Kind:         kind.String(),
			Features:     result.FeatureCount,
			AreaColumns:  result.AreaColumns,
			Report:       outputPath,
			GeneratedAt:  generated.Format(time.RFC3339),
			ScratchKept:  flags.keepScratch,
			SessionFile:  flags.session,
			FeaturesFile: featuresPath,
		}
		data, err := json.MarshalIndent(summary, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(os.Stdout, string(data))
		return nil
	}

	fmt.Printf("Report saved at: %s\n", outputPath)
	return nil
}
