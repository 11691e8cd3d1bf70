package main

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/phrazzld/overboard/internal/platform/sqlstore"
	"github.com/spf13/cobra"
)

// errNoDatabase is returned by commands that need a journal database.
var errNoDatabase = errors.New("no database configured: set OVERBOARD_DATABASE_URL")

func newMigrateCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending activity journal migrations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cfg.Database.Enabled() {
				return errNoDatabase
			}

			db, err := sqlstore.Open(cmd.Context(), cfg.Database.Driver, cfg.Database.URL, log)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			if err := sqlstore.Migrate(cmd.Context(), db, cfg.Database.Driver, log); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "migrations applied")
			return err
		},
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "status",
		Short: "Show which journal migrations have been applied",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, log, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}
			if !cfg.Database.Enabled() {
				return errNoDatabase
			}

			db, err := sqlstore.Open(cmd.Context(), cfg.Database.Driver, cfg.Database.URL, log)
			if err != nil {
				return err
			}
			defer func() { _ = db.Close() }()

			statuses, err := sqlstore.Status(cmd.Context(), db, cfg.Database.Driver)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(tw, "VERSION\tSOURCE\tAPPLIED")
			for _, s := range statuses {
				_, _ = fmt.Fprintf(tw, "%05d\t%s\t%t\n", s.Version, s.Source, s.Applied)
			}
			return tw.Flush()
		},
	})
	return cmd
}
