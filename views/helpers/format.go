package helpers

import (
	"fmt"
	"time"
	"unicode/utf8"
)

var spanishMonths = [...]string{
	"enero", "febrero", "marzo", "abril", "mayo", "junio",
	"julio", "agosto", "septiembre", "octubre", "noviembre", "diciembre",
}

// dateLayouts are the shapes the backend sends dates in.
var dateLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	time.DateOnly,
}

// FormatDate formats a time.Time as "14 de octubre de 2026"
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%d de %s de %d", t.Day(), spanishMonths[t.Month()-1], t.Year())
}

// FormatDateString parses s with ParseDate and formats it, returning s
// unchanged when it is not a date.
func FormatDateString(s string) string {
	t, err := ParseDate(s)
	if err != nil {
		return s
	}
	return FormatDate(t)
}

// ParseDate accepts RFC3339, backend local date-times and plain dates.
func ParseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date %q", s)
}

// FormatRelativeTime renders how long ago t was, e.g. "hace 2 horas".
// Anything a week or older falls back to FormatDate.
func FormatRelativeTime(t, now time.Time) string {
	diff := now.Sub(t)
	mins := int(diff / time.Minute)
	hours := mins / 60
	days := hours / 24

	switch {
	case mins < 1:
		return "ahora mismo"
	case mins < 60:
		return fmt.Sprintf("hace %d min", mins)
	case hours < 24:
		return fmt.Sprintf("hace %d horas", hours)
	case days < 7:
		return fmt.Sprintf("hace %d días", days)
	}
	return FormatDate(t)
}

// Truncate cuts text to maxLength characters and appends "..." when it was
// longer.
func Truncate(text string, maxLength int) string {
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	if maxLength < 0 {
		maxLength = 0
	}
	runes := []rune(text)
	return string(runes[:maxLength]) + "..."
}
