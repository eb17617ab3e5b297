// Package cmd provides the CLI commands for octozek.
package cmd

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Simplici0/octozek/internal/catalog"
	"github.com/Simplici0/octozek/internal/config"
	"github.com/Simplici0/octozek/internal/db"
	"github.com/Simplici0/octozek/internal/logging"
	"github.com/Simplici0/octozek/internal/migrations"
	"github.com/Simplici0/octozek/internal/seed"
)

type rootOptions struct {
	dbPath  string
	verbose bool

	cfg    config.Config
	logger *zap.Logger
}

// NewRootCmd builds the command tree.
func NewRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "octozek",
		Short: "Quote and operate the Octozek Props order service",
		Long: `octozek prices terrarium backgrounds and manages the service catalog.

Examples:
  octozek quote --wft 8 --hft 2 --thickness 8
  octozek quote --preset 36x18
  octozek migrate
  octozek rates set --shipping 70
  octozek test-email`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			opts.cfg = config.Load()
			if opts.dbPath == "" {
				opts.dbPath = opts.cfg.DBPath
			}

			level := opts.cfg.LogLevel
			if opts.verbose {
				level = "debug"
			}
			logger, err := logging.New(logging.Config{Level: level, Format: "console", Output: "stderr"})
			if err != nil {
				return fmt.Errorf("init logging: %w", err)
			}
			opts.logger = logger
			return nil
		},
	}

	root.PersistentFlags().StringVar(&opts.dbPath, "db", "", "catalog database path (default $DB_PATH or ./octozek.db)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "enable debug logging")

	root.AddCommand(
		newQuoteCmd(opts),
		newMigrateCmd(opts),
		newRatesCmd(opts),
		newTestEmailCmd(opts),
	)
	return root
}

// Execute runs the CLI.
func Execute() error {
	return NewRootCmd().Execute()
}

// openCatalog opens the catalog database and brings it up to date.
func (o *rootOptions) openCatalog(ctx context.Context) (*sql.DB, *catalog.Store, seed.Stats, error) {
	database, err := db.Open(ctx, o.dbPath)
	if err != nil {
		return nil, nil, seed.Stats{}, err
	}
	if err := migrations.Up(database, o.logger); err != nil {
		database.Close()
		return nil, nil, seed.Stats{}, err
	}
	stats, err := seed.Run(ctx, database, seed.DefaultConfig())
	if err != nil {
		database.Close()
		return nil, nil, seed.Stats{}, err
	}
	o.logger.Debug("catalog ready",
		zap.String("path", o.dbPath),
		zap.Int("inserts", stats.Inserts),
		zap.Int("updates", stats.Updates),
	)
	return database, catalog.New(database), stats, nil
}
