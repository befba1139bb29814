package amf

import (
	"strings"

	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/wordwrap"
)

// wrapToWidth word-wraps styled text to a printable width. The wrapper
// is ANSI-aware, so style prefixes do not count against the width.
// width <= 0 disables wrapping.
func wrapToWidth(s string, width int) string {
	if width <= 0 {
		return s
	}
	return wordwrap.String(s, width)
}

// prefixLines prepends a styled prefix to every line of s.
func prefixLines(s, prefix string) string {
	if s == "" {
		return prefix
	}
	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = prefix + line
	}
	return strings.Join(lines, "\n")
}

// visibleWidth is the printable width of one line, ignoring ANSI
// sequences.
func visibleWidth(s string) int {
	return ansi.PrintableRuneWidth(s)
}

func truncateWithEllipsis(text string, limit int) string {
	if visibleWidth(text) <= limit {
		return text
	}
	if limit <= 0 {
		return ""
	}
	if limit == 1 {
		return "…"
	}
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-1]) + "…"
}

// fitURL shortens a URL for display, dropping the scheme before
// resorting to truncation.
func fitURL(url string, limit int) string {
	if visibleWidth(url) <= limit {
		return url
	}
	if idx := strings.Index(url, "://"); idx != -1 {
		trimmed := url[idx+3:]
		if visibleWidth(trimmed) <= limit {
			return trimmed
		}
	}
	return truncateWithEllipsis(url, limit)
}
