package main

import (
	"encoding/json"
	"fmt"

	"github.com/phrazzld/overboard/internal/seed"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newSeedCmd(opts *rootOptions) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "seed <scenario.yaml>",
		Short: "Replay a seed scenario onto a fresh board and print the resulting reputations",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if format != "yaml" && format != "json" {
				return fmt.Errorf("unsupported output format %q", format)
			}

			sc, err := seed.LoadFile(args[0])
			if err != nil {
				return err
			}

			cfg, log, err := opts.loadConfig(cmd)
			if err != nil {
				return err
			}

			app, err := newApplication(cmd.Context(), cfg, log)
			if err != nil {
				return err
			}
			defer app.cleanup()

			report, err := seed.Run(cmd.Context(), app.board, sc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if format == "json" {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(report)
			}
			enc := yaml.NewEncoder(out)
			defer func() { _ = enc.Close() }()
			return enc.Encode(report)
		},
	}

	cmd.Flags().StringVarP(&format, "output", "o", "yaml", "output format: yaml or json")
	return cmd
}
