package main

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/erazemk/assetdesk/internal/config"
	"github.com/erazemk/assetdesk/internal/db"
	"github.com/erazemk/assetdesk/internal/desk"
	"github.com/erazemk/assetdesk/internal/logging"
)

// app holds what every subcommand needs once flags are parsed.
type app struct {
	cfg      *config.Config
	closeLog func()
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "assetdesk",
		Short: "IT asset and license desk",
		Long: "assetdesk tracks hardware, software licenses, the people they are\n" +
			"assigned to and the requests that move them around.",
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			closeLog, err := logging.Setup(logging.Options{
				Level:      cfg.Log.Level,
				File:       cfg.Log.File,
				Production: cfg.Production(),
			})
			if err != nil {
				return err
			}
			a.cfg, a.closeLog = cfg, closeLog
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.closeLog != nil {
				a.closeLog()
			}
		},
	}

	flags := root.PersistentFlags()
	flags.String("config", "", "config file (default: ./assetdesk.yaml or ./config/assetdesk.yaml)")
	flags.StringP("db", "d", db.MemoryPath, "SQLite database path")
	flags.Bool("seed", true, "load the demo data set into an empty database")
	flags.String("log-level", "info", "log level (debug, info, warn, error)")
	flags.StringP("log-file", "l", "", "also write logs to this file")

	root.AddCommand(
		newServeCmd(a),
		newExportCmd(a),
		newImportCmd(a),
		newReportCmd(a),
	)
	return root
}

// openDesk opens and migrates the configured database and seeds it when
// seeding is on. The caller closes the returned database.
func (a *app) openDesk(ctx context.Context) (*desk.Desk, *sql.DB, error) {
	path := a.cfg.Database.Path
	if db.IsMemory(path) {
		path = db.MemoryPath
	}

	database, err := db.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if err := db.EnsureSchema(database); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("ensuring schema: %w", err)
	}

	d := desk.New(database)
	if a.cfg.Seed {
		seeded, err := d.Seed(ctx)
		if err != nil {
			database.Close()
			return nil, nil, err
		}
		if seeded {
			log.Info().Str("path", path).Msg("demo data loaded")
		}
	}

	log.Debug().Str("path", path).Msg("database ready")
	return d, database, nil
}
