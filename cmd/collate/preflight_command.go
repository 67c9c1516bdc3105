package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"collate/internal/preflight"
	"collate/internal/report"
)

func newPreflightCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "preflight",
		Short: "Check directories and static tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			results := preflight.RunAll(cmd.Context(), cfg)
			out := cmd.OutOrStdout()
			fmt.Fprint(out, renderPreflight(out, results))
			if !preflight.Passed(results) {
				return errors.New("preflight checks failed")
			}
			fmt.Fprintln(out, "All checks passed")
			return nil
		},
	}
}

func renderPreflight(out io.Writer, results []preflight.Result) string {
	rows := make([][]string, 0, len(results))
	for _, result := range results {
		status := "ok"
		if !result.Passed {
			status = "FAIL"
		}
		rows = append(rows, []string{result.Name, status, result.Detail})
	}
	return renderTable(out, []string{"Check", "Status", "Detail"}, rows,
		[]report.Alignment{report.AlignLeft, report.AlignLeft, report.AlignLeft}) + "\n"
}
