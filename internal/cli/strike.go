package cli

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"

	"github.com/spf13/cobra"

	"github.com/nfriedel/flint/internal/llm"
	"github.com/nfriedel/flint/internal/metrics"
	"github.com/nfriedel/flint/internal/random"
	"github.com/nfriedel/flint/internal/service"
	"github.com/nfriedel/flint/internal/tui"
)

var strikeSeed int64

var strikeCmd = &cobra.Command{
	Use:   "strike",
	Short: "Draw pairs of notes and record what connects them",
	Long: `Strike opens an interactive session: two notes side by side, a
reflective question, and a place to write the connection down.

Keys:
  n      draw a new pair
  1 / 2  swap the left / right note
  s      write a spark (ctrl+s saves, esc discards)
  k      skip the pair
  w      toggle orphan weighting
  m      toggle the muse
  q      quit`,
	RunE: runStrike,
}

func init() {
	strikeCmd.Flags().Int64Var(&strikeSeed, "seed", 0, "fix the random seed (0 seeds from crypto/rand)")
}

func runStrike(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	var rng *rand.Rand
	if strikeSeed != 0 {
		rng = rand.New(rand.NewSource(strikeSeed))
	} else {
		var err error
		rng, err = random.NewRand()
		if err != nil {
			return fmt.Errorf("seed session: %w", err)
		}
	}

	collector := metrics.NewCollector()

	// The muse is optional, the session falls back to canned questions.
	muse, err := llm.NewMuse(cfg, collector)
	if err != nil {
		slog.Warn("muse unavailable", "error", err)
		muse = nil
	}

	strike := service.NewStrikeService(dbClient, cfg.VaultDir, rng, muse, collector)
	if err := strike.Start(ctx); err != nil {
		return fmt.Errorf("start session: %w", err)
	}

	return tui.RunStrike(strike, cfg.VaultDir)
}
