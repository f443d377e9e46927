// Package cli provides the command-line interface for flint.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nfriedel/flint/internal/config"
	"github.com/nfriedel/flint/internal/db"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	verbose bool

	// Global config and db client
	cfg      config.Config
	dbClient *db.Client

	logCleanup func() error
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "flint",
	Short: "Strike pairs of notes together and keep the sparks",
	Long: `Flint picks two random notes from your markdown vault and puts them
side by side. Write down what connects them (a spark), or skip and draw
again. Sparsely linked notes can be weighted so forgotten ideas
resurface first.

The vault is plain markdown with [[wiki-links]]; the index lives in
SurrealDB. Run 'flint scan' once before the first strike.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Skip DB connection for version and help commands
		if cmd.Name() == "version" || cmd.Name() == "help" {
			return nil
		}

		cfg = config.Load()

		level := cfg.LogLevel
		if verbose {
			level = slog.LevelDebug
		}
		// The strike TUI owns the screen, keep its logs off stderr.
		quiet := cmd.Name() == "strike"
		logger, cleanup := config.SetupLogger(cfg.LogFile, level, quiet)
		slog.SetDefault(logger)
		logCleanup = cleanup

		ctx := context.Background()
		dbCfg := db.Config{
			URL:       cfg.SurrealDBURL,
			Namespace: cfg.SurrealDBNamespace,
			Database:  cfg.SurrealDBDatabase,
			Username:  cfg.SurrealDBUser,
			Password:  cfg.SurrealDBPass,
			AuthLevel: cfg.SurrealDBAuthLevel,
		}

		var err error
		dbClient, err = db.NewClient(ctx, dbCfg, logger)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}

		if err := dbClient.InitSchema(ctx); err != nil {
			return fmt.Errorf("initialize schema: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if dbClient != nil {
			if err := dbClient.Close(context.Background()); err != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close database: %v\n", err)
			}
		}
		if logCleanup != nil {
			_ = logCleanup()
		}
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(strikeCmd)
	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(orphansCmd)
	rootCmd.AddCommand(wipeCmd)
}
