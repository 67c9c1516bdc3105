package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"collate/internal/report"
	"collate/internal/review"
	"collate/internal/services"
)

func newReviewCommand(ctx *commandContext) *cobra.Command {
	reviewCmd := &cobra.Command{
		Use:   "review",
		Short: "Inspect the manual-review list and recorded diagnostics",
	}

	reviewCmd.AddCommand(newReviewListCommand(ctx))
	reviewCmd.AddCommand(newReviewResolveCommand(ctx))
	reviewCmd.AddCommand(newReviewClearCommand(ctx))
	reviewCmd.AddCommand(newReviewDiagnosticsCommand(ctx))
	reviewCmd.AddCommand(newReviewTallyCommand(ctx))

	return reviewCmd
}

func newReviewListCommand(ctx *commandContext) *cobra.Command {
	var includeResolved bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List documents flagged for manual review",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *review.Store) error {
				items, err := store.ListReview(cmd.Context(), includeResolved)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(items) == 0 {
					fmt.Fprintln(out, "Nothing to review")
					return nil
				}
				rows := make([][]string, 0, len(items))
				for _, item := range items {
					rows = append(rows, []string{
						item.Document,
						item.Stage,
						string(item.Code),
						item.Reason,
						formatTime(item.FlaggedAt),
						yesNo(item.Resolved()),
					})
				}
				fmt.Fprint(out, renderTable(out,
					[]string{"Document", "Stage", "Code", "Reason", "Flagged", "Resolved"},
					rows,
					[]report.Alignment{report.AlignLeft, report.AlignLeft, report.AlignLeft, report.AlignLeft, report.AlignLeft, report.AlignLeft},
				))
				fmt.Fprintln(out)
				return nil
			})
		},
	}
	cmd.Flags().BoolVarP(&includeResolved, "all", "a", false, "Include resolved items")
	return cmd
}

func newReviewResolveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve NAME...",
		Short: "Mark documents as reviewed",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *review.Store) error {
				out := cmd.OutOrStdout()
				for _, name := range args {
					ok, err := store.ResolveReview(cmd.Context(), name)
					if err != nil {
						return err
					}
					if ok {
						fmt.Fprintf(out, "Resolved %s\n", name)
					} else {
						fmt.Fprintf(out, "%s is not awaiting review\n", name)
					}
				}
				return nil
			})
		},
	}
}

func newReviewClearCommand(ctx *commandContext) *cobra.Command {
	var resolvedOnly bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Remove items from the manual-review list",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *review.Store) error {
				removed, err := store.ClearReview(cmd.Context(), resolvedOnly)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Cleared %d review items\n", removed)
				return nil
			})
		},
	}
	cmd.Flags().BoolVar(&resolvedOnly, "resolved-only", false, "Only remove resolved items")
	return cmd
}

func newReviewDiagnosticsCommand(ctx *commandContext) *cobra.Command {
	var filter review.Filter
	var code string

	cmd := &cobra.Command{
		Use:   "diagnostics [NAME]",
		Short: "List recorded diagnostics",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 1 {
				filter.Document = args[0]
			}
			filter.Code = services.Code(strings.TrimSpace(code))
			return ctx.withStore(func(store *review.Store) error {
				entries, err := store.ListDiagnostics(cmd.Context(), filter)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No diagnostics recorded")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					cursor := "-"
					if entry.Cursor > 0 {
						cursor = fmt.Sprintf("%d", entry.Cursor)
					}
					rows = append(rows, []string{
						entry.Document,
						entry.Stage,
						string(entry.Code),
						cursor,
						entry.Reference,
						entry.Candidate,
						entry.Detail,
					})
				}
				fmt.Fprint(out, renderTable(out,
					[]string{"Document", "Stage", "Code", "Line", "Reference", "Candidate", "Detail"},
					rows,
					[]report.Alignment{report.AlignLeft, report.AlignLeft, report.AlignLeft, report.AlignRight, report.AlignLeft, report.AlignLeft, report.AlignLeft},
				))
				fmt.Fprintln(out)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&filter.RunID, "run", "", "Only show diagnostics from this run")
	cmd.Flags().StringVar(&filter.Stage, "stage", "", "Only show diagnostics from this stage")
	cmd.Flags().StringVar(&code, "code", "", "Only show diagnostics with this code")
	cmd.Flags().IntVar(&filter.Limit, "limit", 200, "Maximum number of entries to show (0 for all)")
	return cmd
}

func newReviewTallyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tally",
		Short: "Show accumulated unresolved variant counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withStore(func(store *review.Store) error {
				entries, err := store.Tally(cmd.Context())
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if len(entries) == 0 {
					fmt.Fprintln(out, "No unresolved variants recorded")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, entry := range entries {
					rows = append(rows, []string{entry.Key, fmt.Sprintf("%d", entry.Count)})
				}
				fmt.Fprint(out, renderTable(out, []string{"Unresolved variant", "Occurrences"}, rows,
					[]report.Alignment{report.AlignLeft, report.AlignRight}))
				fmt.Fprintln(out)
				return nil
			})
		},
	}
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Local().Format("2006-01-02 15:04")
}
