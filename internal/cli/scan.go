package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfriedel/flint/internal/metrics"
	"github.com/nfriedel/flint/internal/service"
)

var (
	scanFull   bool
	scanDryRun bool
	scanJobs   int
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Index the vault into the database",
	Long: `Scan walks the vault, parses markdown notes and their [[wiki-links]],
and reconciles the index: new and changed notes are stored, vanished
notes removed, and the link graph rebuilt.

Examples:
  flint scan
  flint scan --full
  flint scan --dry-run`,
	RunE: runScan,
}

func init() {
	scanCmd.Flags().BoolVar(&scanFull, "full", false, "reindex unchanged notes too")
	scanCmd.Flags().BoolVar(&scanDryRun, "dry-run", false, "report changes without writing")
	scanCmd.Flags().IntVar(&scanJobs, "jobs", 0, "parallel writers (default from FLINT_SCAN_WORKERS)")
}

func runScan(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	jobs := scanJobs
	if jobs <= 0 {
		jobs = cfg.ScanWorkers
	}

	scanner := service.NewScanService(dbClient, cfg.VaultDir, metrics.NewCollector())
	stats, err := scanner.Scan(ctx, service.ScanOptions{
		Full:        scanFull,
		DryRun:      scanDryRun,
		Concurrency: jobs,
	})
	if err != nil {
		return fmt.Errorf("scan vault: %w", err)
	}

	if scanDryRun {
		fmt.Println("Dry run - nothing written.")
	}
	fmt.Printf("Scanned %d files in %s\n", stats.Scanned, cfg.VaultDir)
	fmt.Printf("  indexed:    %d\n", stats.Indexed)
	fmt.Printf("  unchanged:  %d\n", stats.Unchanged)
	fmt.Printf("  deleted:    %d\n", stats.Deleted)
	fmt.Printf("  edges:      %d\n", stats.Edges)
	fmt.Printf("  unresolved: %d\n", stats.Unresolved)

	if len(stats.Errors) > 0 {
		fmt.Printf("\nWarnings (%d):\n", len(stats.Errors))
		for _, e := range stats.Errors {
			fmt.Printf("  - %s\n", e)
		}
	}
	return nil
}
