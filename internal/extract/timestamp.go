package extract

import (
	"strconv"
	"strings"
	"time"
)

// Overridable clock for the fallback path.
var now = time.Now

// textualLayouts are tried in order; the first that parses wins. The
// compact layout is kept last for backups produced by tools that strip
// separators from the readable date.
var textualLayouts = []string{
	"2006-01-02 15:04:05",
	"2 Jan 2006 3:04:05 PM",
	"20060102150405",
}

func allDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ResolveTimestamp normalizes the heterogeneous date strings found in SMS
// backups. All-digit strings longer than 10 characters are Unix
// milliseconds; anything else is tried against the known textual layouts.
// Resolution never fails: when nothing matches the current time is
// substituted and the returned flag is false, so callers can tell a parsed
// date from a guess.
func ResolveTimestamp(raw string) (time.Time, bool) {
	raw = strings.TrimSpace(raw)

	if allDigits(raw) && len(raw) > 10 {
		if ms, err := strconv.ParseInt(raw, 10, 64); err == nil {
			return time.UnixMilli(ms), true
		}
	}

	for _, layout := range textualLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			return t, true
		}
	}

	return now(), false
}
