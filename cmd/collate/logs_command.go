package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"collate/internal/logs"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var (
		lines    int
		follow   bool
		document string
		runID    string
	)

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Show the batch log",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.LogPath()
			filter := logs.Contains(document, runID)
			out := cmd.OutOrStdout()

			chunk, err := logs.Tail(path, lines, filter)
			if err != nil {
				return err
			}
			printLines(out, chunk.Lines)
			if !follow {
				return nil
			}
			return logs.Follow(cmd.Context(), path, chunk.Offset, filter, func(c logs.Chunk) error {
				printLines(out, c.Lines)
				return nil
			})
		},
	}
	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of trailing lines to show")
	cmd.Flags().BoolVarP(&follow, "follow", "f", false, "Keep printing new lines until interrupted")
	cmd.Flags().StringVar(&document, "document", "", "Only show lines mentioning this document")
	cmd.Flags().StringVar(&runID, "run", "", "Only show lines from this run")
	return cmd
}

func printLines(out io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
}
