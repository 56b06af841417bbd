package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/preston-bernstein/schedule-import-service/internal/app/imports"
	"github.com/preston-bernstein/schedule-import-service/internal/domain/games"
	"github.com/preston-bernstein/schedule-import-service/internal/submission"
)

var errSubmissionFailures = errors.New("some games failed to submit")

func newRunCmd(opts *options) *cobra.Command {
	var report string
	cmd := &cobra.Command{
		Use:   "run <file>",
		Short: "Resolve a schedule and create every game whose teams matched",
		Long: "run resolves the schedule, submits the rows whose home and away teams both matched, " +
			"and attaches final scores where the file has them. Ambiguous and unmatched rows are skipped.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := context.WithTimeout(cmd.Context(), opts.timeout)
			defer cancel()

			svc := opts.newService()
			defer func() { _ = svc.Shutdown(context.Background()) }()

			sess, err := opts.resolveFile(ctx, svc, args[0])
			if err != nil {
				return err
			}
			if err := svc.StartSubmit(ctx, sess.ID); err != nil {
				if errors.Is(err, imports.ErrNothingToSubmit) {
					fmt.Fprintln(cmd.ErrOrStderr(), "no rows are ready to submit")
					return writeRowsTable(cmd.OutOrStdout(), sess.State.Games, sess.State.Counts())
				}
				return err
			}
			if err := svc.Wait(ctx, sess.ID); err != nil {
				return err
			}

			rows, results, err := svc.Results(sess.ID)
			if err != nil {
				return err
			}
			if report != "" {
				if err := writeReport(report, rows, results); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			if opts.output == "json" {
				err = writeJSON(out, struct {
					Results []games.SubmissionResult `json:"results"`
					Summary submission.Summary       `json:"summary"`
				}{results, submission.Summarize(results)})
			} else {
				err = writeResultsTable(out, rows, results)
			}
			if err != nil {
				return err
			}
			if n := submission.Summarize(results).Failed; n > 0 {
				return fmt.Errorf("%w: %d of %d", errSubmissionFailures, n, len(results))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&report, "report", "", "write the results to this .csv or .xlsx file")
	return cmd
}

func writeReport(path string, rows []games.GameRow, results []games.SubmissionResult) error {
	write := submission.WriteCSV
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
	case ".xlsx":
		write = submission.WriteXLSX
	default:
		return fmt.Errorf("unsupported report type %q, use .csv or .xlsx", filepath.Ext(path))
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f, rows, results); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}
