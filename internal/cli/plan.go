package cli

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mkessler/portplan/pkg/cache"
	"github.com/mkessler/portplan/pkg/config"
	"github.com/mkessler/portplan/pkg/plan"
	"github.com/mkessler/portplan/pkg/scan"
)

// newPlanCmd creates the plan command: scan JSON in, plan JSON out.
func newPlanCmd(configPath *string) *cobra.Command {
	var (
		output      string
		maxUnitSize int
		parallelism int
		refresh     bool
	)

	cmd := &cobra.Command{
		Use:   "plan <scan.json>",
		Short: "Build a conversion plan from a scan file",
		Long: `Plan reads a scan JSON file (module inventory plus import edges),
discovers cyclic import clusters, forms atomic conversion units, and
writes a wave-ordered, risk-scored conversion plan as JSON.

Identical input always produces byte-identical output, so results are
cached by content hash unless --refresh is given.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			logger := loggerFromContext(ctx)

			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			if maxUnitSize > 0 {
				cfg.Plan.MaxUnitSize = maxUnitSize
			}
			if parallelism > 0 {
				cfg.Plan.Parallelism = parallelism
			}

			raw, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read scan %s: %w", args[0], err)
			}

			store, err := openCache(ctx, cfg.Cache)
			if err != nil {
				logger.Warn("cache unavailable, continuing without", "err", err)
				store = cache.NewNullCache()
			}
			defer store.Close()

			key := cache.PlanKey(raw, cfg.Plan.MaxUnitSize, cfg.Plan.Parallelism)
			if !refresh {
				if data, ok, err := store.Get(ctx, key); err == nil && ok {
					logger.Debug("plan cache hit", "key", key)
					return emitPlanBytes(cmd, data, output)
				}
			}

			sc, err := scan.ReadScan(bytes.NewReader(raw))
			if err != nil {
				return err
			}

			prog := newProgress(logger)
			planner := plan.NewPlanner(plan.Options{
				MaxUnitSize: cfg.Plan.MaxUnitSize,
				Parallelism: cfg.Plan.Parallelism,
				Logger:      logger,
			})
			result, err := planner.Build(sc)
			if err != nil {
				return err
			}
			prog.done(fmt.Sprintf("Planned %d units across %d waves",
				result.Stats.UnitCount, result.Stats.WaveCount))

			data, err := plan.MarshalPlan(result.Plan)
			if err != nil {
				return err
			}
			if err := store.Set(ctx, key, data, cacheTTL(cfg.Cache)); err != nil {
				logger.Debug("cache write failed", "err", err)
			}

			if output != "" {
				fmt.Fprint(cmd.ErrOrStderr(), renderSummary(result))
			}
			return emitPlanBytes(cmd, data, output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write plan JSON to file (default: stdout)")
	cmd.Flags().IntVar(&maxUnitSize, "max-unit-size", 0, "maximum modules per conversion unit (overrides config)")
	cmd.Flags().IntVar(&parallelism, "parallelism", 0, "assumed parallel conversion tracks (overrides config)")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "bypass the plan cache")

	return cmd
}

func emitPlanBytes(cmd *cobra.Command, data []byte, output string) error {
	if output == "" {
		_, err := cmd.OutOrStdout().Write(data)
		return err
	}
	if err := os.WriteFile(output, data, 0644); err != nil {
		return fmt.Errorf("write plan %s: %w", output, err)
	}
	loggerFromContext(cmd.Context()).Info("plan written", "path", output)
	return nil
}
