package report

import (
	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
)

// Alignment controls the horizontal alignment of a column.
type Alignment int

const (
	AlignLeft Alignment = iota
	AlignRight
)

// Style selects the border set used by Table.
type Style int

const (
	// StyleRounded draws box-drawing borders for interactive terminals.
	StyleRounded Style = iota
	// StylePlain draws ASCII borders for pipes and log files.
	StylePlain
)

// pretty returns the go-pretty style with headers left in the caller's case.
func (s Style) pretty() table.Style {
	style := table.StyleRounded
	if s == StylePlain {
		style = table.StyleDefault
	}
	style.Format.Header = text.FormatDefault
	return style
}

// Table renders rows under headers. Rows shorter than the header are padded
// and longer rows are truncated to the header width.
func Table(headers []string, rows [][]string, aligns []Alignment, style Style) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	tw.SetStyle(style.pretty())

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		tw.AppendRow(padRow(row, columns))
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == AlignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func padRow(row []string, columns int) table.Row {
	r := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		if i < len(row) {
			r[i] = row[i]
		} else {
			r[i] = ""
		}
	}
	return r
}
