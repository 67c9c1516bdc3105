package main

import (
	"io"
	"os"

	"github.com/mattn/go-isatty"

	"collate/internal/report"
)

// renderTable draws rounded borders on a terminal and ASCII borders
// everywhere else.
func renderTable(out io.Writer, headers []string, rows [][]string, aligns []report.Alignment) string {
	return report.Table(headers, rows, aligns, tableStyle(out))
}

func tableStyle(out io.Writer) report.Style {
	if f, ok := out.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return report.StyleRounded
	}
	return report.StylePlain
}
