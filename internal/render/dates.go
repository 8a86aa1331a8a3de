package render

import (
	"strings"
	"time"
)

// dateLayouts are tried in order when pretty-printing a stored date.
// Stored dates are free-form; anything unparsable is displayed verbatim.
var dateLayouts = []string{
	"2006-01-02",
	"2006-01",
	"01/2006",
	"Jan 2006",
	"January 2006",
	"2006",
}

// DisplayDate formats a stored date string for display. Parsable values
// are shown as "Jan 2006"; unparsable non-empty values pass through
// untouched, and empty values stay empty. "Invalid Date" style output is
// never produced.
func DisplayDate(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, trimmed); err == nil {
			if layout == "2006" {
				return t.Format("2006")
			}
			return t.Format("Jan 2006")
		}
	}
	return trimmed
}

// DateRange renders a start/end pair. currentlyWorking wins over any
// stale endDate: the range always ends in "Present" in that case.
func DateRange(start, end string, currentlyWorking bool) string {
	from := DisplayDate(start)
	to := DisplayDate(end)
	if currentlyWorking {
		to = "Present"
	}
	switch {
	case from == "" && to == "":
		return ""
	case from == "":
		return to
	case to == "":
		return from
	default:
		return from + " - " + to
	}
}
