// Package cli provides formatting and rendering utilities for terminal output.
package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// FormatNumber adds comma separators to an integer.
// e.g., 1234567 -> "1,234,567"
func FormatNumber(n int64) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}

	s := strconv.FormatInt(n, 10)
	if len(s) <= 3 {
		return s
	}

	var result strings.Builder
	remainder := len(s) % 3
	if remainder > 0 {
		result.WriteString(s[:remainder])
	}
	for i := remainder; i < len(s); i += 3 {
		if result.Len() > 0 {
			result.WriteByte(',')
		}
		result.WriteString(s[i : i+3])
	}
	return result.String()
}

// FormatPercent formats a whole-number percentage.
func FormatPercent(pct int) string {
	return strconv.Itoa(pct) + "%"
}

// FormatRatio formats completed/total, e.g. "3/5".
func FormatRatio(completed, total int) string {
	return fmt.Sprintf("%d/%d", completed, total)
}

// FormatCheck renders a completion mark.
func FormatCheck(done bool) string {
	if done {
		return "●"
	}
	return "○"
}

// FormatDayOfWeek returns a 3-letter day abbreviation from a weekday number.
func FormatDayOfWeek(weekday int) string {
	days := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	if weekday >= 0 && weekday < 7 {
		return days[weekday]
	}
	return "???"
}

// FormatDateLong renders a YYYY-MM-DD date as "Wednesday, January 10".
// Unparseable input is returned unchanged.
func FormatDateLong(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return date
	}
	return t.Format("Monday, January 2")
}

// DateWeekday returns the abbreviated weekday of a YYYY-MM-DD date, or "".
func DateWeekday(date string) string {
	t, err := time.Parse("2006-01-02", date)
	if err != nil {
		return ""
	}
	return FormatDayOfWeek(int(t.Weekday()))
}

// Truncate shortens s to limit runes, ending in an ellipsis when cut.
func Truncate(s string, limit int) string {
	if limit <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit-1]) + "…"
}

// ShortID returns the first 8 characters of an identifier.
func ShortID(id string) string {
	if len(id) <= 8 {
		return id
	}
	return id[:8]
}
