package util

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/x/ansi"
)

// FormatRupees formats a price as "₹24/kg".
func FormatRupees(price int, unit string) string {
	if unit == "" {
		return fmt.Sprintf("₹%d", price)
	}
	return fmt.Sprintf("₹%d/%s", price, unit)
}

// FormatChange formats a percentage change with an explicit sign: "+8%", "-12%".
func FormatChange(pct int) string {
	if pct >= 0 {
		return fmt.Sprintf("+%d%%", pct)
	}
	return fmt.Sprintf("%d%%", pct)
}

// FormatTrend returns an arrow for the direction of a price change.
func FormatTrend(pct int) string {
	if pct >= 0 {
		return "▲"
	}
	return "▼"
}

// FormatLongDate formats a date the way the mandi header shows it:
// "Saturday, 17 October 2026".
func FormatLongDate(t time.Time) string {
	return t.Format("Monday, 2 January 2006")
}

// FormatClock formats the time of day for "updated at" lines.
func FormatClock(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("15:04")
}

// FormatConfidence formats a 0-100 confidence score.
func FormatConfidence(c int) string {
	if c < 0 {
		c = 0
	}
	if c > 100 {
		c = 100
	}
	return fmt.Sprintf("%d%%", c)
}

// FormatBytes formats a size for the selected image line.
func FormatBytes(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}

// TruncateString truncates a string to maxLen cells and adds "…" if needed.
// Styled input keeps its escape sequences intact.
func TruncateString(s string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if ansi.StringWidth(s) <= maxLen {
		return s
	}
	return ansi.Truncate(s, maxLen, "…")
}

// PadRight pads s with spaces to width cells.
func PadRight(s string, width int) string {
	w := ansi.StringWidth(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}

// Bullets renders items as a "• " list.
func Bullets(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = "• " + item
	}
	return strings.Join(lines, "\n")
}
