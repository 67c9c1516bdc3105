package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"collate/internal/config"
	"collate/internal/preflight"
	"collate/internal/report"
	"collate/internal/review"
	"collate/internal/variant"
	"collate/internal/workflow"
)

type stageFlags struct {
	workers       int
	budget        int
	noDisplay     bool
	ignoreCatalog bool
}

type stageDef struct {
	stage workflow.Stage
	use   string
	short string
	long  string
	// flags registers stage-specific flags.
	flags func(*cobra.Command, *stageFlags)
}

func newStageCommands(ctx *commandContext) []*cobra.Command {
	budgetFlags := func(cmd *cobra.Command, f *stageFlags) {
		cmd.Flags().IntVar(&f.budget, "budget", 0, "Halt after this many unresolved documents (0 disables the limit; default from config)")
		cmd.Flags().BoolVar(&f.noDisplay, "no-display", false, "Do not print side-by-side dumps of unresolved documents")
	}
	verifyFlags := func(cmd *cobra.Command, f *stageFlags) {
		cmd.Flags().BoolVar(&f.ignoreCatalog, "ignore-catalog", false, "Count tolerated catalog-glyph differences without listing them")
	}
	defs := []stageDef{
		{
			stage: workflow.StageIngest,
			short: "Convert raw exports into original-glyph documents",
		},
		{
			stage: workflow.StageStandardize,
			short: "Resolve variant selectors into reference documents",
		},
		{
			stage: workflow.StageReconcile,
			short: "Align candidate documents to their references",
			flags: budgetFlags,
		},
		{
			stage: workflow.StagePatch,
			short: "Restore annotation markers into reconciled documents",
		},
		{
			stage: workflow.StageVerify,
			short: "Cross-check reconciled documents against their references",
			flags: verifyFlags,
		},
		{
			stage: workflow.StageRun,
			short: "Reconcile, patch and verify in one pass",
			long:  "Each document is reconciled, patched and verified in memory and written only when every step succeeds.",
			flags: func(cmd *cobra.Command, f *stageFlags) {
				budgetFlags(cmd, f)
				verifyFlags(cmd, f)
			},
		},
		{
			stage: workflow.StageBackfill,
			short: "Append tolerated first-line catalog glyphs to the raw sources",
		},
	}

	cmds := make([]*cobra.Command, 0, len(defs))
	for _, def := range defs {
		cmds = append(cmds, newStageCommand(ctx, def))
	}
	return cmds
}

func newStageCommand(ctx *commandContext, def stageDef) *cobra.Command {
	flags := &stageFlags{}
	cmd := &cobra.Command{
		Use:   string(def.stage) + " [NAME...]",
		Short: def.short,
		Long:  def.long,
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			cfg := applyStageFlags(cmd, *base, flags)
			logger, err := ctx.ensureLogger()
			if err != nil {
				return err
			}

			results := preflight.RunAll(cmd.Context(), &cfg)
			if !preflight.Passed(results) {
				fmt.Fprint(cmd.ErrOrStderr(), renderPreflight(cmd.ErrOrStderr(), results))
				return errors.New("preflight checks failed")
			}

			assets, err := variant.LoadAssets(&cfg)
			if err != nil {
				return err
			}
			return ctx.withStore(func(store *review.Store) error {
				runner, err := workflow.NewRunner(&cfg, assets,
					workflow.WithStore(store),
					workflow.WithLogger(logger),
					workflow.WithDisplay(cmd.OutOrStdout()),
				)
				if err != nil {
					return err
				}
				summary, runErr := runner.Run(cmd.Context(), def.stage, args...)
				if summary.RunID != "" {
					printSummary(cmd.OutOrStdout(), summary)
				}
				return runErr
			})
		},
	}
	cmd.Flags().IntVarP(&flags.workers, "workers", "w", 0, "Number of documents processed concurrently (default from config)")
	if def.flags != nil {
		def.flags(cmd, flags)
	}
	return cmd
}

// applyStageFlags returns a copy of cfg with explicitly set flags applied.
func applyStageFlags(cmd *cobra.Command, cfg config.Config, flags *stageFlags) config.Config {
	changed := func(name string) bool {
		f := cmd.Flags().Lookup(name)
		return f != nil && f.Changed
	}
	if changed("workers") {
		cfg.Workflow.Workers = flags.workers
	}
	if changed("budget") {
		cfg.Align.ErrorBudget = flags.budget
	}
	if changed("no-display") && flags.noDisplay {
		cfg.Align.Display = false
	}
	if changed("ignore-catalog") {
		cfg.Verify.IgnoreCatalog = flags.ignoreCatalog
	}
	return cfg
}

func printSummary(out io.Writer, s workflow.Summary) {
	rows := [][]string{
		{"Processed", strconv.Itoa(s.Processed)},
		{"Written", strconv.Itoa(s.Written)},
		{"Skipped", strconv.Itoa(s.Skipped)},
		{"Failed", strconv.Itoa(s.Failed)},
		{"Needs review", strconv.Itoa(len(s.NeedsReview))},
		{"Halted", yesNo(s.Halted)},
	}
	fmt.Fprintf(out, "Run %s (%s)\n", s.RunID, s.Stage)
	fmt.Fprint(out, renderTable(out, []string{"Documents", "Count"}, rows, []report.Alignment{report.AlignLeft, report.AlignRight}))
	fmt.Fprintln(out)
	if len(s.Unresolved) > 0 {
		fmt.Fprintf(out, "Unresolved: %s\n", strings.Join(s.Unresolved, ", "))
	}
	if len(s.NeedsReview) > 0 {
		fmt.Fprintf(out, "Needs review: %s\n", strings.Join(s.NeedsReview, ", "))
	}
	if len(s.Tally) > 0 {
		tally := make([][]string, 0, len(s.Tally))
		for _, entry := range s.Tally {
			tally = append(tally, []string{entry.Key, strconv.Itoa(entry.Count)})
		}
		fmt.Fprint(out, renderTable(out, []string{"Unresolved variant", "Occurrences"}, tally, []report.Alignment{report.AlignLeft, report.AlignRight}))
		fmt.Fprintln(out)
	}
}
