package report

import (
	"fmt"
	"strings"
)

// SideBySide lays out parallel line lists as tab-separated rows, each cell
// tagged with its column number ("[1]text\t[2]text"). Columns shorter than
// the longest are padded with empty cells. Titles, when present, form the
// first row.
func SideBySide(titles []string, columns ...[]string) string {
	if len(columns) == 0 {
		return ""
	}
	rows := 0
	for _, col := range columns {
		rows = max(rows, len(col))
	}

	var b strings.Builder
	if len(titles) > 0 {
		cells := make([]string, len(columns))
		for i := range columns {
			title := ""
			if i < len(titles) {
				title = titles[i]
			}
			cells[i] = fmt.Sprintf("[%d]%s", i+1, title)
		}
		b.WriteString(strings.Join(cells, "\t"))
		b.WriteByte('\n')
	}
	for row := 0; row < rows; row++ {
		cells := make([]string, len(columns))
		for i, col := range columns {
			value := ""
			if row < len(col) {
				value = col[row]
			}
			cells[i] = fmt.Sprintf("[%d]%s", i+1, value)
		}
		b.WriteString(strings.Join(cells, "\t"))
		b.WriteByte('\n')
	}
	return b.String()
}

// Numbered renders a line list as "NN:text" records, one per line.
func Numbered(lines []string) string {
	var b strings.Builder
	for i, line := range lines {
		fmt.Fprintf(&b, "%02d:%s\n", i+1, line)
	}
	return b.String()
}
