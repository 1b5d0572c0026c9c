package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"netbox-sync/core/object"
	"netbox-sync/core/reconcile"
	"netbox-sync/core/storage"
	"netbox-sync/feature/report"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	syncDryRun  bool
	syncYes     bool
	syncSource  string
	syncNoPrune bool
)

// syncCmd runs one sync pass.
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Apply the source file and write the resulting changes",
	Long: `Loads the snapshot of remote state, applies the source file on top of it,
prints the resulting plan and, once confirmed, writes it.

Examples:
  # Report only
  netbox-sync sync --dry-run

  # Apply without prompting
  netbox-sync sync --yes --source hosts.yaml`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().BoolVar(&syncDryRun, "dry-run", false, "Build and report the plan without writing it")
	syncCmd.Flags().BoolVar(&syncYes, "yes", false, "Auto-confirm the plan (non-interactive)")
	syncCmd.Flags().StringVar(&syncSource, "source", "", "Source file (defaults to sync.source_file)")
	syncCmd.Flags().BoolVar(&syncNoPrune, "no-prune-report", false, "Do not list prune candidates")
	RootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	cfg, l, err := setup()
	if err != nil {
		return err
	}
	defer l.Sync()

	sourceFile := syncSource
	if sourceFile == "" {
		sourceFile = cfg.Sync.SourceFile
	}
	dryRun := syncDryRun || cfg.Sync.DryRun

	l.Info("Starting sync", zap.String("source", sourceFile), zap.Bool("dry_run", dryRun))
	inv, store, err := loadInventory(ctx, cfg, l, sourceFile)
	if errors.Is(err, object.ErrInvalidDiscriminator) {
		l.Fatal("Invalid polymorphic relation, aborting", zap.Error(err))
	}
	if err != nil {
		return err
	}

	plan := reconcile.BuildPlan(inv)
	report.Log(l, plan, cfg.Sync.PruneReport && !syncNoPrune)

	if cfg.Storage.Enabled {
		if err := exportPlan(ctx, cfg.Storage, cfg.Sync.ReportPrefix, cfg.Sync.ReportRetain, plan, l); err != nil {
			l.Error("Plan export failed", zap.Error(err))
		}
	}

	if dryRun {
		l.Info("Dry-run mode: No changes were made.")
		return nil
	}
	if len(plan.Actions) == 0 {
		l.Info("Nothing to do.")
		return nil
	}
	if !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), syncYes) {
		l.Warn("Operation cancelled by user. No changes were made.")
		return nil
	}

	executed, err := reconcile.ApplyPlan(ctx, plan, inv, store, reconcile.ReconcileOptions{Confirmed: true})
	if err != nil {
		return fmt.Errorf("failed to apply plan: %w", err)
	}
	l.Info("Successfully executed actions", zap.Int("count", executed))
	return nil
}

func exportPlan(ctx context.Context, cfg storage.Config, prefix string, retain int, plan *reconcile.ReconcilePlan, l *zap.Logger) error {
	client, err := storage.NewClient(cfg)
	if err != nil {
		return err
	}

	exporter := report.NewExporter(client, cfg.Bucket, prefix, l)
	if _, err := exporter.Export(ctx, plan); err != nil {
		return err
	}
	_, err = exporter.Retain(ctx, retain)
	return err
}

// confirm asks for "yes" on in unless auto is set.
func confirm(in io.Reader, out io.Writer, auto bool) bool {
	if auto {
		fmt.Fprintln(out, "Auto-confirmed via --yes flag")
		return true
	}

	fmt.Fprint(out, "Type 'yes' to write the planned changes: ")
	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false
	}
	return strings.TrimSpace(response) == "yes"
}
