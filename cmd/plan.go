package cmd

import (
	"fmt"

	"enum-sync/core/config"
	"enum-sync/core/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// planCmd computes pending work without applying anything.
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Show pending enum changes without applying them",
	Long: `Compute the insert/update/delete sets for every configured target and
print them. Nothing is written; not even missing tables are created.`,
	RunE: runPlan,
}

func init() {
	planCmd.Flags().StringVar(&syncMode, "mode", "", "Deletion mode used for planning: ignore, remove or error")
	planCmd.Flags().StringVar(&manifestFile, "manifest", "", "Path to a local manifest file (overrides config)")

	RootCmd.AddCommand(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.LoadConfig(".")
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logg, err := logger.New(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}

	svc, err := buildSyncService(cmd, logg, cfg)
	if err != nil {
		return err
	}

	plans, err := svc.PlanAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to plan synchronization: %w", err)
	}

	pending := printPlans(logg, plans)
	if pending == 0 {
		logg.Info("Every target is already in sync.")
		return nil
	}

	logg.Info("Pending mutations", zap.Int("total", pending))
	return nil
}
