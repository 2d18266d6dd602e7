package booking

import (
	"context"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type CreateBooking struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateBooking {
	return &CreateBooking{
		repo:  repo,
		audit: audit,
	}
}

// Execute validates and inserts in one transaction. The overlap pre-check
// locks candidate rows; the exclusion constraints catch what slips past it.
func (uc *CreateBooking) Execute(
	ctx context.Context,
	actorID *uint,
	in Input,
) (*models.Booking, error) {

	b := &models.Booking{}
	var query *domain.OverlapQuery

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		q, err := apply(ctx, tx, b, in)
		if err != nil {
			return err
		}
		query = q

		return tx.CreateBooking(ctx, b)
	})
	if err != nil {
		return nil, resolveConflict(ctx, uc.repo, query, err)
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "booking_created",
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"status": b.Status},
	})

	return uc.repo.GetBookingWithRelations(ctx, b.ID)
}
