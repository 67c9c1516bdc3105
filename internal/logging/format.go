package logging

import (
	"fmt"
	"log/slog"
	"strconv"
	"time"
	"unicode"
	"unicode/utf8"
)

const (
	logTimestampLayout = "2006-01-02 15:04:05"
	// maxConsoleRunes bounds field values on the console. Transcript lines
	// can run to hundreds of glyphs; the log file keeps them whole in JSON.
	maxConsoleRunes = 80
)

func formatTimestamp(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.In(time.Local).Format(logTimestampLayout)
}

// plainValue renders a header value without quoting.
func plainValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindString:
		return v.String()
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return fmt.Sprint(v.Any())
	default:
		return fieldValue(v)
	}
}

// fieldValue renders an indented console field, quoting and truncating text.
func fieldValue(v slog.Value) string {
	v = v.Resolve()
	switch v.Kind() {
	case slog.KindBool:
		return strconv.FormatBool(v.Bool())
	case slog.KindInt64:
		return strconv.FormatInt(v.Int64(), 10)
	case slog.KindUint64:
		return strconv.FormatUint(v.Uint64(), 10)
	case slog.KindFloat64:
		return strconv.FormatFloat(v.Float64(), 'f', -1, 64)
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return formatTimestamp(v.Time())
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return quoteText(err.Error())
		}
		return quoteText(fmt.Sprint(v.Any()))
	default:
		return quoteText(v.String())
	}
}

func quoteText(s string) string {
	if utf8.RuneCountInString(s) > maxConsoleRunes {
		runes := []rune(s)
		s = string(runes[:maxConsoleRunes]) + "…"
	}
	if needsQuotes(s) {
		return strconv.Quote(s)
	}
	return s
}

// needsQuotes reports whether s is empty or holds spaces, control runes,
// '=' or '"'. Ideographs and annotation markers print bare.
func needsQuotes(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if unicode.IsSpace(r) || unicode.IsControl(r) || r == '=' || r == '"' {
			return true
		}
	}
	return false
}
