package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"enum-sync/core/config"
	"enum-sync/core/database"
	"enum-sync/core/logger"
	"enum-sync/core/reconcile"
	"enum-sync/core/storage"
	"enum-sync/feature/enums"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Flags for the sync and plan commands
	syncMode     string
	syncParallel bool
	syncWorkers  int
	manifestFile string
	dryRunSync   bool
	yesConfirm   bool
)

// syncCmd synchronizes every configured target against the enum definitions.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronize enum tables across the configured targets",
	Long: `Synchronize every configured database target against the enum definitions.

Each table is read, diffed against its definition and repaired inside a single
transaction: stale rows go first, renames second, missing members last.

Examples:
  # Synchronize with the configured settings
  enum-sync sync

  # Delete rows that are no longer part of the definitions (prompts)
  enum-sync sync --mode remove

  # Remove without prompting, across all targets concurrently
  enum-sync sync --mode remove --parallel --yes

  # Show what would happen without changing anything
  enum-sync sync --dry-run`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().StringVar(&syncMode, "mode", "", "Deletion mode: ignore, remove or error (default from config)")
	syncCmd.Flags().BoolVar(&syncParallel, "parallel", false, "Process targets concurrently")
	syncCmd.Flags().IntVar(&syncWorkers, "workers", 0, "Worker cap for parallel mode (0 = one per CPU)")
	syncCmd.Flags().StringVar(&manifestFile, "manifest", "", "Path to a local manifest file (overrides config)")
	syncCmd.Flags().BoolVar(&dryRunSync, "dry-run", false, "Plan only, apply nothing")
	syncCmd.Flags().BoolVar(&yesConfirm, "yes", false, "Auto-confirm destructive actions (non-interactive)")

	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
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

	logg.Info("Planning enum synchronization",
		zap.Strings("targets", redactTargets(cfg.Database.TargetList())),
		zap.String("mode", cfg.Sync.Mode))

	// Step 1: Plan (always runs)
	plans, err := svc.PlanAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to plan synchronization: %w", err)
	}

	// Step 2: Print report
	pending := printPlans(logg, plans)

	if dryRunSync {
		logg.Info("Dry-run mode: No changes were made.")
		return nil
	}

	if pending == 0 {
		logg.Info("Every target is already in sync.")
		return nil
	}

	// Step 3: Confirm before deleting rows
	if countDeletions(plans) > 0 {
		if !confirmDestructiveAction() {
			logg.Warn("Operation cancelled by user. No changes were made.")
			return nil
		}
	}

	// Step 4: Apply
	logg.Info("Applying plans...")
	status, err := svc.RunSync(ctx)
	if status != nil {
		printRunStatus(logg, status)
	}
	if err != nil {
		return fmt.Errorf("synchronization failed: %w", err)
	}

	return nil
}

// buildSyncService assembles the enums service from config and flags. Flags
// that were set explicitly win over the config file.
func buildSyncService(cmd *cobra.Command, logg *zap.Logger, cfg *config.Config) (*enums.Service, error) {
	if cmd.Flags().Changed("mode") {
		cfg.Sync.Mode = syncMode
	}
	if cmd.Flags().Changed("parallel") {
		cfg.Sync.Parallel = syncParallel
	}
	if cmd.Flags().Changed("workers") {
		cfg.Sync.Workers = syncWorkers
	}
	if manifestFile != "" {
		cfg.Manifest.Path = manifestFile
	}

	// Storage is optional on the CLI; a manifest file or the registered
	// definitions work without it
	var client storage.Client
	if cfg.Manifest.Path == "" {
		if c, err := storage.NewClient(cfg.Storage); err != nil {
			logg.Warn("Storage client unavailable", zap.Error(err))
		} else {
			client = c
		}
	}

	return enums.NewService(client, cfg.Storage.Bucket, logg, cfg.Database.TargetList(), cfg.Manifest, cfg.Sync)
}

// printPlans logs the pending work per target and returns the total number
// of pending mutations.
func printPlans(l *zap.Logger, plans []*reconcile.TablePlans) int {
	total := 0
	for _, target := range plans {
		for _, plan := range target.Plans {
			inserts, updates, deletes := plan.Counts()
			total += inserts + updates + deletes
			if plan.Empty() {
				continue
			}
			l.Info("Pending changes",
				zap.String("target", target.Target),
				zap.String("table", plan.Table),
				zap.Int("inserts", inserts),
				zap.Int("updates", updates),
				zap.Int("deletes", deletes),
			)
		}
	}
	return total
}

// countDeletions sums the rows the plans would delete.
func countDeletions(plans []*reconcile.TablePlans) int {
	n := 0
	for _, target := range plans {
		for _, plan := range target.Plans {
			n += len(plan.Delete)
		}
	}
	return n
}

// printRunStatus logs the outcome of a synchronization run per target.
func printRunStatus(l *zap.Logger, status *enums.RunStatus) {
	for _, target := range status.Report.Targets {
		if target == nil {
			continue
		}
		totals := target.Totals()
		l.Info("Target synchronized",
			zap.String("target", target.Target),
			zap.Int("tables", len(target.Tables)),
			zap.Int("inserted", totals.Inserted),
			zap.Int("updated", totals.Updated),
			zap.Int("deleted", totals.Deleted),
		)
	}
	for _, msg := range status.Errors {
		l.Error("Target failed", zap.String("error", msg))
	}
}

// redactTargets strips credentials from every connection string.
func redactTargets(targets []string) []string {
	out := make([]string, len(targets))
	for i, t := range targets {
		out[i] = database.Redact(t)
	}
	return out
}

// confirmDestructiveAction prompts the user for confirmation or uses --yes flag.
func confirmDestructiveAction() bool {
	if yesConfirm {
		fmt.Println("\n✓ Auto-confirmed via --yes flag")
		return true
	}

	fmt.Print("\n⚠️  Type 'yes' to confirm deleting rows: ")
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}

	response = strings.TrimSpace(response)
	return response == "yes"
}
