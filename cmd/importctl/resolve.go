package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
	"github.com/preston-bernstein/schedule-import-service/internal/wizard"
)

func newResolveCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <file>",
		Short: "Match every team in a schedule without creating games",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			svc := opts.newService()
			defer func() { _ = svc.Shutdown(context.Background()) }()

			sess, err := opts.resolveFile(ctx, svc, args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if opts.output == "json" {
				return writeJSON(out, struct {
					Games  []games.GameRow `json:"games"`
					Counts wizard.Counts   `json:"counts"`
				}{sess.State.Games, sess.State.Counts()})
			}
			return writeRowsTable(out, sess.State.Games, sess.State.Counts())
		},
	}
}
