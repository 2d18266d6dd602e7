package booking

import (
	"reflect"
	"testing"
	"time"
)

func ptrTime(t time.Time) *time.Time { return &t }

func ptrInt(v int) *int { return &v }

var june1 = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

func at(h, m int) time.Time {
	return june1.Add(time.Duration(h)*time.Hour + time.Duration(m)*time.Minute)
}

func TestFreeSlots_ConfirmedBookingBlocksItsSlot(t *testing.T) {
	rules := SlotRules{
		TimeSlots:       []string{"09:00", "10:00"},
		DurationMinutes: 60,
	}
	busy := []Interval{{Start: at(9, 0), End: ptrTime(at(10, 0))}}

	got := FreeSlots(june1, rules, busy)
	if !reflect.DeepEqual(got, []string{"10:00"}) {
		t.Fatalf("got %v, want [10:00]", got)
	}
}

func TestFreeSlots_NoBusyIntervalsReturnsAllSlots(t *testing.T) {
	rules := SlotRules{
		TimeSlots:       []string{"09:00", "10:00"},
		DurationMinutes: 60,
	}

	got := FreeSlots(june1, rules, nil)
	if !reflect.DeepEqual(got, []string{"09:00", "10:00"}) {
		t.Fatalf("got %v", got)
	}
}

func TestFreeSlots_BlackoutDateIsAbsolute(t *testing.T) {
	rules := SlotRules{
		TimeSlots:       []string{"09:00", "10:00", "11:00"},
		BlackoutDates:   []string{"2025-05-31", "2025-06-01"},
		DurationMinutes: 30,
	}

	got := FreeSlots(june1, rules, nil)
	if got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
}

func TestFreeSlots_MalformedSlotsAreDropped(t *testing.T) {
	rules := SlotRules{
		TimeSlots:       []string{"09:00", "nine", "10", "25:00", "11:30"},
		DurationMinutes: 60,
	}

	got := FreeSlots(june1, rules, nil)
	if !reflect.DeepEqual(got, []string{"09:00", "11:30"}) {
		t.Fatalf("got %v", got)
	}
}

func TestFreeSlots_KeepsConfigurationOrder(t *testing.T) {
	rules := SlotRules{
		TimeSlots:       []string{"15:00", "09:00", "12:00"},
		DurationMinutes: 60,
	}

	got := FreeSlots(june1, rules, nil)
	if !reflect.DeepEqual(got, []string{"15:00", "09:00", "12:00"}) {
		t.Fatalf("got %v", got)
	}
}

func TestFreeSlots_BufferExtendsSlotIntoNextBooking(t *testing.T) {
	rules := SlotRules{
		TimeSlots:       []string{"09:00", "11:00"},
		DurationMinutes: 60,
	}
	busy := []Interval{{Start: at(10, 0), End: ptrTime(at(11, 0))}}

	if got := FreeSlots(june1, rules, busy); !reflect.DeepEqual(got, []string{"09:00", "11:00"}) {
		t.Fatalf("without buffer got %v", got)
	}

	rules.BufferMinutes = 15
	if got := FreeSlots(june1, rules, busy); !reflect.DeepEqual(got, []string{"11:00"}) {
		t.Fatalf("with buffer got %v", got)
	}
}

func TestFreeSlots_BufferOnlyShrinksAvailability(t *testing.T) {
	rules := SlotRules{
		TimeSlots:       []string{"08:00", "08:30", "09:00", "09:30", "10:00", "10:30", "11:00", "13:00"},
		DurationMinutes: 45,
	}
	busy := []Interval{
		{Start: at(9, 15), End: ptrTime(at(9, 45))},
		{Start: at(11, 50), End: ptrTime(at(12, 30))},
	}

	prev := FreeSlots(june1, rules, busy)
	for buffer := 5; buffer <= 120; buffer += 5 {
		rules.BufferMinutes = buffer
		cur := FreeSlots(june1, rules, busy)

		allowed := map[string]bool{}
		for _, s := range prev {
			allowed[s] = true
		}
		for _, s := range cur {
			if !allowed[s] {
				t.Fatalf("buffer %d made slot %s available again", buffer, s)
			}
		}
		prev = cur
	}
}

func TestFreeSlots_MissingEndFallsBackToDuration(t *testing.T) {
	rules := SlotRules{
		TimeSlots:       []string{"09:00", "10:00", "11:00"},
		DurationMinutes: 90,
	}
	busy := []Interval{{Start: at(9, 0)}}

	got := FreeSlots(june1, rules, busy)
	if !reflect.DeepEqual(got, []string{"11:00"}) {
		t.Fatalf("got %v", got)
	}
}

func TestFreeSlots_TouchingIntervalsDoNotCollide(t *testing.T) {
	rules := SlotRules{
		TimeSlots:       []string{"10:00"},
		DurationMinutes: 60,
	}
	busy := []Interval{
		{Start: at(9, 0), End: ptrTime(at(10, 0))},
		{Start: at(11, 0), End: ptrTime(at(12, 0))},
	}

	if got := FreeSlots(june1, rules, busy); !reflect.DeepEqual(got, []string{"10:00"}) {
		t.Fatalf("got %v", got)
	}
}

func TestResolveDuration(t *testing.T) {
	cases := []struct {
		name     string
		service  *int
		fallback int
		want     int
	}{
		{"service wins", ptrInt(45), 30, 45},
		{"zero service uses default", ptrInt(0), 30, 30},
		{"negative service uses default", ptrInt(-10), 30, 30},
		{"nil service uses default", nil, 20, 20},
		{"nothing configured", nil, 0, 60},
	}

	for _, tc := range cases {
		if got := ResolveDuration(tc.service, tc.fallback); got != tc.want {
			t.Fatalf("%s: got %d, want %d", tc.name, got, tc.want)
		}
	}
}
