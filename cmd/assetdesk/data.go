package main

import (
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/erazemk/assetdesk/internal/desk"
)

func newExportCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write a JSON snapshot of the desk",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			d, database, err := a.openDesk(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()

			e, err := d.Export(cmd.Context())
			if err != nil {
				return err
			}

			var w io.Writer = cmd.OutOrStdout()
			if output != "" && output != "-" {
				f, err := os.Create(output)
				if err != nil {
					return fmt.Errorf("creating %s: %w", output, err)
				}
				defer f.Close()
				w = f
			}
			if err := desk.WriteExport(w, e); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}

			log.Info().Int("users", len(e.Users)).Int("assets", len(e.Assets)).Str("output", output).Msg("data exported")
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write to this file instead of stdout")
	return cmd
}

func newImportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "import users|hardware|licenses <file>",
		Short:     "Import users or assets from a CSV or JSON file",
		Long:      "Import rows from a CSV file with a header row or a JSON array of objects.\nMalformed values are coerced, not rejected.",
		Args:      cobra.ExactArgs(2),
		ValidArgs: []string{desk.ImportUsers, desk.ImportHardware, desk.ImportLicenses},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, path := args[0], args[1]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			rows, err := desk.ParseRows(data)
			if err != nil {
				return err
			}

			d, database, err := a.openDesk(cmd.Context())
			if err != nil {
				return err
			}
			defer database.Close()

			n, err := d.Import(cmd.Context(), kind, rows)
			if err != nil {
				return err
			}

			log.Info().Str("kind", kind).Int("rows", len(rows)).Int("imported", n).Msg("data imported")
			fmt.Fprintf(cmd.OutOrStdout(), "Imported %d of %d %s rows.\n", n, len(rows), kind)
			return nil
		},
	}
}
