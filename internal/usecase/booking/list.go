package booking

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dates"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ListBookings struct {
	repo domain.Repository
}

func NewListBookings(repo domain.Repository) *ListBookings {
	return &ListBookings{repo: repo}
}

// Execute lists bookings, optionally narrowed to a status and to the UTC
// calendar day of date ("YYYY-MM-DD").
func (uc *ListBookings) Execute(
	ctx context.Context,
	status string,
	date string,
) ([]models.Booking, error) {

	var f domain.ListFilter

	if s := strings.TrimSpace(status); s != "" {
		st, err := domain.ParseStatus(s)
		if err != nil {
			return nil, err
		}
		f.Status = &st
	}

	if d := strings.TrimSpace(date); d != "" {
		day, err := dates.ParseDay(d)
		if err != nil {
			return nil, errInvalidDate
		}
		from, to := dates.DayBounds(day)
		f.From = &from
		f.To = &to
	}

	return uc.repo.ListBookings(ctx, f)
}
