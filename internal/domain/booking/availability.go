package booking

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dates"
)

const DefaultDurationMinutes = 60

// Interval is the start/end projection of a blocking booking.
type Interval struct {
	Start time.Time
	End   *time.Time
}

type SlotRules struct {
	TimeSlots       []string
	BlackoutDates   []string
	DurationMinutes int
	BufferMinutes   int
}

// ResolveDuration picks the service duration when positive, then the
// configured default, then DefaultDurationMinutes.
func ResolveDuration(serviceMinutes *int, defaultMinutes int) int {
	if serviceMinutes != nil && *serviceMinutes > 0 {
		return *serviceMinutes
	}
	if defaultMinutes > 0 {
		return defaultMinutes
	}
	return DefaultDurationMinutes
}

func IsBlackout(day time.Time, blackoutDates []string) bool {
	key := dates.DayKey(day)
	for _, d := range blackoutDates {
		if d == key {
			return true
		}
	}
	return false
}

// FreeSlots filters the configured slots of day down to the ones that do not
// collide with any busy interval. Configuration order is kept and slots that
// are not "HH:MM" are dropped.
func FreeSlots(day time.Time, rules SlotRules, busy []Interval) []string {
	free := []string{}
	if IsBlackout(day, rules.BlackoutDates) {
		return free
	}

	duration := time.Duration(rules.DurationMinutes) * time.Minute
	buffer := time.Duration(max(rules.BufferMinutes, 0)) * time.Minute

	for _, slot := range rules.TimeSlots {
		h, m, ok := dates.ParseClock(slot)
		if !ok {
			continue
		}

		slotStart := dates.At(day, h, m)
		slotEnd := slotStart.Add(duration + buffer)

		taken := false
		for _, b := range busy {
			end := b.Start.Add(duration)
			if b.End != nil {
				end = *b.End
			}
			if Overlaps(b.Start, end, slotStart, slotEnd) {
				taken = true
				break
			}
		}

		if !taken {
			free = append(free, slot)
		}
	}

	return free
}
