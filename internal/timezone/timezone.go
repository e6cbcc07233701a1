package timezone

import (
	"strings"
	"time"
)

const DefaultTimezone = "Europe/Stockholm"

// EmailLayout renders times like "Monday, January 2, 03:04 PM".
const EmailLayout = "Monday, January 2, 03:04 PM"

// inputLayouts are tried in order when parsing event times from forms.
var inputLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if IsValid(tz) {
		if loc, err := time.LoadLocation(tz); err == nil {
			return loc
		}
	}

	loc, err := time.LoadLocation(DefaultTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func NowIn(tz string) time.Time {
	return time.Now().In(Location(tz))
}

// Parse reads a form or JSON time value. Values without an offset are read
// in tz.
func Parse(value, tz string) (time.Time, bool) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, false
	}

	loc := Location(tz)
	for _, layout := range inputLayouts {
		if t, err := time.ParseInLocation(layout, value, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatEmail renders t for email templates; nil renders as "".
func FormatEmail(t *time.Time, tz string) string {
	if t == nil || t.IsZero() {
		return ""
	}
	return t.In(Location(tz)).Format(EmailLayout)
}
