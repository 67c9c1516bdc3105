package main

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/spf13/cobra"

	"collate/internal/config"
	"collate/internal/report"
	"collate/internal/services"
)

// folderNamed resolves a stage folder by role. Anything else is taken as a
// folder name under the data directory.
func folderNamed(cfg *config.Config, role string) string {
	switch strings.ToLower(strings.TrimSpace(role)) {
	case "raw":
		return cfg.Folders.Raw
	case "original":
		return cfg.Folders.Original
	case "reference":
		return cfg.Folders.Reference
	case "candidate":
		return cfg.Folders.Candidate
	case "reconciled":
		return cfg.Folders.Reconciled
	case "finished":
		return cfg.Folders.Finished
	default:
		return strings.TrimSpace(role)
	}
}

func newCompareCommand(ctx *commandContext) *cobra.Command {
	var folders []string

	cmd := &cobra.Command{
		Use:   "compare NAME",
		Short: "Show one document side by side across stage folders",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			docs := ctx.documents()
			name := args[0]

			titles := make([]string, 0, len(folders))
			columns := make([][]string, 0, len(folders))
			found := false
			for _, role := range folders {
				folder := folderNamed(cfg, role)
				titles = append(titles, role)
				doc, _, err := docs.Read(folder, name)
				if errors.Is(err, services.ErrMissingCounterpart) {
					columns = append(columns, nil)
					continue
				}
				if err != nil {
					return err
				}
				found = true
				columns = append(columns, doc.Records())
			}
			if !found {
				return fmt.Errorf("%s not found in %s", name, strings.Join(folders, ", "))
			}
			fmt.Fprint(cmd.OutOrStdout(), report.SideBySide(titles, columns...))
			return nil
		},
	}
	cmd.Flags().StringSliceVarP(&folders, "folders", "f", []string{"original", "reference", "reconciled"}, "Folders to compare")
	return cmd
}

func newPrintCommand(ctx *commandContext) *cobra.Command {
	var folder string

	cmd := &cobra.Command{
		Use:   "print NAME...",
		Short: "Print documents with their line numbers",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			docs := ctx.documents()
			out := cmd.OutOrStdout()
			for i, name := range args {
				doc, _, err := docs.Read(folderNamed(cfg, folder), name)
				if err != nil {
					return err
				}
				if len(args) > 1 {
					if i > 0 {
						fmt.Fprintln(out)
					}
					fmt.Fprintf(out, "== %s ==\n", doc.Name)
				}
				fmt.Fprint(out, report.Numbered(doc.Texts()))
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&folder, "folder", "f", "original", "Folder to read from")
	return cmd
}

func newFindCommand(ctx *commandContext) *cobra.Command {
	var (
		folder string
		limit  int
		absent bool
	)

	cmd := &cobra.Command{
		Use:   "find PATTERN",
		Short: "Search a folder for a regular expression",
		Long:  "Documents are searched with line breaks removed, so a pattern may span lines.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			pattern, err := regexp.Compile(args[0])
			if err != nil {
				return fmt.Errorf("invalid pattern: %w", err)
			}
			matches, err := ctx.documents().Search(folderNamed(cfg, folder), pattern, absent, limit)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if len(matches) == 0 {
				fmt.Fprintln(out, "No documents found")
				return nil
			}
			for _, match := range matches {
				if match.Excerpt == "" {
					fmt.Fprintln(out, match.Name)
					continue
				}
				fmt.Fprintf(out, "%s\t%s\n", match.Name, match.Excerpt)
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&folder, "folder", "f", "candidate", "Folder to search")
	cmd.Flags().IntVarP(&limit, "limit", "n", 1, "Maximum number of documents to report (0 for all)")
	cmd.Flags().BoolVar(&absent, "absent", false, "Report documents that do not match")
	return cmd
}
