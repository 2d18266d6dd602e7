package booking

import (
	"context"
	"errors"
	"strings"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dates"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

type GetAvailability struct {
	repo domain.Repository
}

func NewGetAvailability(repo domain.Repository) *GetAvailability {
	return &GetAvailability{repo: repo}
}

// Execute returns the free "HH:MM" slots of date. An unknown serviceID
// still scopes the busy intervals but uses the default duration.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	date string,
	serviceID *uint,
) ([]string, error) {

	date = strings.TrimSpace(date)
	if date == "" {
		return nil, errMissingDate
	}

	day, err := dates.ParseDay(date)
	if err != nil {
		return nil, errInvalidDate
	}

	settings, err := uc.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}

	rules := domain.SlotRules{}
	defaultDuration := 0
	if settings != nil {
		rules.TimeSlots = settings.TimeSlots
		rules.BlackoutDates = settings.BlackoutDates
		rules.BufferMinutes = settings.BufferMinutes
		defaultDuration = settings.DefaultDurationMinutes
	}

	if domain.IsBlackout(day, rules.BlackoutDates) {
		return []string{}, nil
	}

	var serviceMinutes *int
	if serviceID != nil {
		svc, err := uc.repo.GetService(ctx, *serviceID)
		switch {
		case errors.Is(err, httperr.ErrNotFound):
		case err != nil:
			return nil, err
		default:
			serviceMinutes = svc.DurationMinutes
		}
	}
	rules.DurationMinutes = domain.ResolveDuration(serviceMinutes, defaultDuration)

	start, end := dates.DayBounds(day)
	busy, err := uc.repo.ListBlockingForDay(ctx, start, end, serviceID)
	if err != nil {
		return nil, err
	}

	return domain.FreeSlots(day, rules, busy), nil
}
