package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
)

type DeleteBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier notify.NotificationSender
	log      *zap.Logger
}

func NewDeleteBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier notify.NotificationSender,
	log *zap.Logger,
) *DeleteBooking {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &DeleteBooking{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		log:      log,
	}
}

// Execute removes the booking and lets staff channels know. The row is read
// first so the notification can still name the client and service.
func (uc *DeleteBooking) Execute(
	ctx context.Context,
	actorID *uint,
	id uint,
) error {

	b, err := uc.repo.GetBookingWithRelations(ctx, id)
	if err != nil {
		return err
	}

	if err := uc.repo.DeleteBooking(ctx, id); err != nil {
		return err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   "booking_deleted",
		Entity:   "booking",
		EntityID: &id,
	})

	if err := uc.notifier.NotifyBookingDeleted(ctx, b); err != nil {
		uc.log.Warn("booking deleted notification failed",
			zap.Uint("booking_id", id),
			zap.Error(err),
		)
	}
	return nil
}
