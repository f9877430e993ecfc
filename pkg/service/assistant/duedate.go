package assistant

import (
	"regexp"
	"strings"
	"time"
)

// Layouts accepted for an explicit due date. Year-less forms are not listed:
// they are handled by retrying with the current year appended, which keeps
// the result deterministic for a fixed "now".
var dueDateLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2 January 2006",
	"2 Jan 2006",
	"January 2 2006",
	"January 2, 2006",
	"Jan 2 2006",
	"02/01/2006",
}

var ordinalSuffixRe = regexp.MustCompile(`(\d+)(st|nd|rd|th)\b`)

// normalizeDateToken strips ordinal suffixes ("5th" → "5") and title-cases
// month names so that Go's case-sensitive layouts accept spoken forms.
func normalizeDateToken(s string) string {
	s = ordinalSuffixRe.ReplaceAllString(strings.ToLower(strings.TrimSpace(s)), "$1")
	words := strings.Fields(s)
	for i, w := range words {
		if len(w) > 0 && w[0] >= 'a' && w[0] <= 'z' {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func parseWithLayouts(s string, loc *time.Location) (time.Time, bool) {
	candidate := normalizeDateToken(s)
	for _, layout := range dueDateLayouts {
		if t, err := time.ParseInLocation(layout, candidate, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseReminderDueDate normalizes a natural-language due date ("tomorrow",
// "5th", "12 January") into an absolute timestamp. Relative tokens resolve
// to 09:00:00.000 in now's location; an explicit date keeps whatever
// time-of-day it parses to. Returns false when nothing is recognized, which
// callers turn into a clarifying question, never an error.
func ParseReminderDueDate(value string, now time.Time) (time.Time, bool) {
	if strings.TrimSpace(value) == "" {
		return time.Time{}, false
	}

	normalized := strings.ToLower(strings.TrimSpace(value))
	base := time.Date(now.Year(), now.Month(), now.Day(), 9, 0, 0, 0, now.Location())

	switch normalized {
	case "today":
		return base, true
	case "tomorrow":
		return base.AddDate(0, 0, 1), true
	case "day after", "day after tomorrow":
		return base.AddDate(0, 0, 2), true
	}

	if t, ok := parseWithLayouts(value, now.Location()); ok {
		return t, true
	}

	appended := strings.TrimSpace(value) + " " + now.Format("2006")
	if t, ok := parseWithLayouts(appended, now.Location()); ok {
		return t, true
	}

	return time.Time{}, false
}
