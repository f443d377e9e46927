package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/nfriedel/flint/internal/history"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent pair outcomes",
	Long: `History lists the most recent pair outcomes, newest first. Use
--verbose to include spark note paths.`,
	RunE: runHistory,
}

func init() {
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "max entries")
}

func runHistory(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if historyLimit <= 0 || historyLimit > history.MaxEntries {
		return fmt.Errorf("limit must be 1-%d", history.MaxEntries)
	}

	entries, err := dbClient.QueryRecentHistory(ctx, historyLimit)
	if err != nil {
		return fmt.Errorf("load history: %w", err)
	}

	if len(entries) == 0 {
		fmt.Println("No history yet.")
		return nil
	}

	width := outputWidth()
	fmt.Printf("History (%d, newest first):\n\n", len(entries))
	for _, e := range entries {
		line := fmt.Sprintf("%s  %-7s  %s <-> %s",
			e.CreatedAt.Local().Format("2006-01-02 15:04"), e.Outcome, e.NoteA, e.NoteB)
		fmt.Println(clip(line, width))
		if verbose && e.SparkPath != nil {
			fmt.Printf("    spark: %s\n", *e.SparkPath)
		}
	}
	return nil
}
