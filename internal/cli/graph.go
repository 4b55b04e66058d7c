package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mkessler/portplan/pkg/config"
	"github.com/mkessler/portplan/pkg/plan"
	"github.com/mkessler/portplan/pkg/render"
	"github.com/mkessler/portplan/pkg/scan"
)

// newGraphCmd creates the graph command: unit dependency graph export.
func newGraphCmd(configPath *string) *cobra.Command {
	var (
		output   string
		format   string
		detailed bool
	)

	cmd := &cobra.Command{
		Use:   "graph <scan.json>",
		Short: "Export the unit dependency graph as DOT or SVG",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger := loggerFromContext(cmd.Context())

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}

			sc, err := scan.ReadScanFile(args[0])
			if err != nil {
				return err
			}

			planner := plan.NewPlanner(plan.Options{
				MaxUnitSize: cfg.Plan.MaxUnitSize,
				Parallelism: cfg.Plan.Parallelism,
				Logger:      logger,
			})
			result, err := planner.Build(sc)
			if err != nil {
				return err
			}

			dot := render.ToDOT(result.Plan, render.Options{Detailed: detailed})

			var data []byte
			switch strings.ToLower(format) {
			case "dot":
				data = []byte(dot)
			case "svg":
				data, err = render.RenderSVG(dot)
				if err != nil {
					return err
				}
			default:
				return fmt.Errorf("unsupported format %q (want dot or svg)", format)
			}

			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0644); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			logger.Info("graph written", "path", output, "format", format)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write output to file (default: stdout)")
	cmd.Flags().StringVarP(&format, "format", "f", "dot", "output format: dot or svg")
	cmd.Flags().BoolVar(&detailed, "detailed", false, "include metrics in node labels")

	return cmd
}
