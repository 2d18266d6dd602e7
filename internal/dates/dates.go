package dates

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

const (
	DayLayout   = "2006-01-02"
	ClockLayout = "15:04"
)

var ErrInvalidTimestamp = errors.New("invalid timestamp")

// timestamp layouts accepted from forms and the admin panel, all read as UTC
// when they carry no offset
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
}

func Now() time.Time {
	return time.Now().UTC()
}

// ParseDay parses "YYYY-MM-DD" as UTC midnight.
func ParseDay(s string) (time.Time, error) {
	return time.ParseInLocation(DayLayout, strings.TrimSpace(s), time.UTC)
}

func DayKey(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// DayBounds returns [midnight, next midnight) of t's UTC calendar day.
func DayBounds(t time.Time) (time.Time, time.Time) {
	u := t.UTC()
	start := time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
	return start, start.Add(24 * time.Hour)
}

// ParseClock splits "HH:MM" into two integers. Persian and Arabic-Indic
// digits are accepted.
func ParseClock(s string) (hour, minute int, ok bool) {
	parts := strings.Split(validators.ASCIIDigits(strings.TrimSpace(s)), ":")
	if len(parts) != 2 {
		return 0, 0, false
	}

	h, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return 0, 0, false
	}
	m, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return 0, 0, false
	}

	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, 0, false
	}
	return h, m, true
}

// At places hour:minute on day's UTC calendar date.
func At(day time.Time, hour, minute int) time.Time {
	start, _ := DayBounds(day)
	return start.Add(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func ParseTimestamp(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidTimestamp
	}

	for _, layout := range timestampLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, ErrInvalidTimestamp
}
