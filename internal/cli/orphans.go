package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var orphansLimit int

var orphansCmd = &cobra.Command{
	Use:   "orphans",
	Short: "List the least connected notes",
	Long: `Orphans lists notes with the fewest links, loneliest first. These are
the notes orphan weighting surfaces during a strike.`,
	RunE: runOrphans,
}

func init() {
	orphansCmd.Flags().IntVarP(&orphansLimit, "limit", "n", 15, "max notes")
}

func runOrphans(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	if orphansLimit <= 0 {
		return fmt.Errorf("limit must be positive")
	}

	notes, err := dbClient.QueryOrphans(ctx, orphansLimit)
	if err != nil {
		return fmt.Errorf("list orphans: %w", err)
	}

	if len(notes) == 0 {
		fmt.Println("No notes indexed. Run 'flint scan' first.")
		return nil
	}

	fmt.Printf("Least connected notes (%d):\n\n", len(notes))
	width := outputWidth()
	for _, n := range notes {
		label := "links"
		if n.Relations == 1 {
			label = "link"
		}
		fmt.Println(clip(fmt.Sprintf("- %s (%d %s)", n.Path, n.Relations, label), width))
	}
	return nil
}
