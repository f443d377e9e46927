package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var wipeYes bool

var wipeCmd = &cobra.Command{
	Use:   "wipe",
	Short: "Delete the index, history, and settings",
	Long: `Wipe clears everything flint stored in SurrealDB: the note index,
link edges, pair history, and settings. Files in the vault are not
touched. Re-run 'flint scan' to rebuild the index.`,
	RunE: runWipe,
}

func init() {
	wipeCmd.Flags().BoolVar(&wipeYes, "yes", false, "skip the confirmation prompt")
}

func runWipe(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if !wipeYes && !confirm("Delete the flint index and history?") {
		fmt.Println("Aborted.")
		return nil
	}

	if err := dbClient.WipeData(ctx); err != nil {
		return fmt.Errorf("wipe data: %w", err)
	}

	fmt.Println("Wiped. Run 'flint scan' to rebuild the index.")
	return nil
}
