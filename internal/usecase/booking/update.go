package booking

import (
	"context"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
)

type UpdateBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier notify.NotificationSender
	log      *zap.Logger
}

func NewUpdateBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier notify.NotificationSender,
	log *zap.Logger,
) *UpdateBooking {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &UpdateBooking{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		log:      log,
	}
}

// Execute applies a partial update. Moving a booking to COMPLETED stamps
// the client's last visit with the booking start in the same transaction.
func (uc *UpdateBooking) Execute(
	ctx context.Context,
	actorID *uint,
	id uint,
	in Input,
) (*models.Booking, error) {

	var (
		b          *models.Booking
		query      *domain.OverlapQuery
		prevStatus string
	)

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		current, err := tx.GetBooking(ctx, id)
		if err != nil {
			return err
		}
		b = current
		prevStatus = b.Status

		q, err := apply(ctx, tx, b, in)
		if err != nil {
			return err
		}
		query = q

		if err := tx.UpdateBooking(ctx, b); err != nil {
			return err
		}

		if b.Status == string(domain.StatusCompleted) && prevStatus != b.Status {
			return tx.TouchClientVisit(ctx, b.ClientID, b.StartTime)
		}
		return nil
	})
	if err != nil {
		return nil, resolveConflict(ctx, uc.repo, query, err)
	}

	action := "booking_updated"
	if prevStatus != b.Status {
		action = "booking_status_changed"
	}
	uc.audit.Dispatch(audit.Event{
		UserID:   actorID,
		Action:   action,
		Entity:   "booking",
		EntityID: &b.ID,
		Metadata: map[string]any{"from": prevStatus, "to": b.Status},
	})

	out, err := uc.repo.GetBookingWithRelations(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	if prevStatus != out.Status {
		if err := uc.notifier.NotifyBookingStatus(ctx, out); err != nil {
			uc.log.Warn("booking status notification failed",
				zap.Uint("booking_id", out.ID),
				zap.String("status", out.Status),
				zap.Error(err),
			)
		}
	}

	return out, nil
}

// ======================================================
// STATUS PATCH
// ======================================================

type UpdateBookingStatus struct {
	update *UpdateBooking
}

func NewUpdateBookingStatus(update *UpdateBooking) *UpdateBookingStatus {
	return &UpdateBookingStatus{update: update}
}

// Execute runs the full pipeline with only the status changed, so the
// stored times and parties are re-checked against the target status.
func (uc *UpdateBookingStatus) Execute(
	ctx context.Context,
	actorID *uint,
	id uint,
	status string,
) (*models.Booking, error) {

	if status == "" {
		return nil, errMissingFields
	}
	return uc.update.Execute(ctx, actorID, id, Input{Status: Some(status)})
}
