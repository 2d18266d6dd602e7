package booking

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/dates"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
	"github.com/BruksfildServices01/clinic-scheduler/internal/notify"
	"github.com/BruksfildServices01/clinic-scheduler/internal/validators"
)

// ======================================================
// INPUT
// ======================================================

type PublicInput struct {
	Name      string  `json:"name"`
	Phone     string  `json:"phone"`
	Email     string  `json:"email"`
	ServiceID *uint   `json:"serviceId"`
	StartTime string  `json:"startTime"`
	EndTime   *string `json:"endTime"`
	Notes     string  `json:"notes"`
}

// ======================================================
// USE CASE
// ======================================================

// CreatePublicBooking handles the website booking form: the visitor becomes
// (or is matched to) a client and the request lands as PENDING.
type CreatePublicBooking struct {
	repo     domain.Repository
	audit    *audit.Dispatcher
	notifier notify.NotificationSender
	log      *zap.Logger
}

func NewCreatePublicBooking(
	repo domain.Repository,
	audit *audit.Dispatcher,
	notifier notify.NotificationSender,
	log *zap.Logger,
) *CreatePublicBooking {
	if notifier == nil {
		notifier = notify.Noop{}
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &CreatePublicBooking{
		repo:     repo,
		audit:    audit,
		notifier: notifier,
		log:      log,
	}
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *CreatePublicBooking) Execute(
	ctx context.Context,
	in PublicInput,
) (*models.Booking, error) {

	// --------------------------------------------------
	// Contact details
	// --------------------------------------------------
	name := strings.TrimSpace(in.Name)
	phone := validators.NormalizePhone(in.Phone)
	email := strings.ToLower(strings.TrimSpace(in.Email))

	if name == "" || (phone == "" && email == "") || strings.TrimSpace(in.StartTime) == "" {
		return nil, errMissingFields
	}
	if phone != "" && !validators.IsPhone(phone) {
		return nil, httperr.ErrBusiness("invalid_phone")
	}
	if email != "" && !validators.IsEmail(email) {
		return nil, httperr.ErrBusiness("invalid_email")
	}

	// --------------------------------------------------
	// Client + booking in one transaction
	// --------------------------------------------------
	b := &models.Booking{}

	err := uc.repo.Transaction(ctx, func(tx domain.Repository) error {
		client, err := tx.GetOrCreateClient(ctx, name, phone, email)
		if err != nil {
			return err
		}

		input := Input{
			ClientID:  Some(client.ID),
			StartTime: Some(in.StartTime),
			Status:    Some(string(domain.InitialStatus())),
			Notes:     Some(in.Notes),
		}
		if in.ServiceID != nil {
			input.ServiceID = Some(*in.ServiceID)
		}

		if in.EndTime != nil && strings.TrimSpace(*in.EndTime) != "" {
			input.EndTime = Some(*in.EndTime)
		} else if end, ok := uc.defaultEnd(ctx, tx, in); ok {
			input.EndTime = Some(end.Format(time.RFC3339))
		}

		if _, err := apply(ctx, tx, b, input); err != nil {
			return err
		}
		return tx.CreateBooking(ctx, b)
	})
	if err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		Action:   "booking_requested",
		Entity:   "booking",
		EntityID: &b.ID,
	})

	out, err := uc.repo.GetBookingWithRelations(ctx, b.ID)
	if err != nil {
		return nil, err
	}

	if err := uc.notifier.NotifyNewBooking(ctx, out); err != nil {
		uc.log.Warn("new booking notification failed",
			zap.Uint("booking_id", out.ID),
			zap.Error(err),
		)
	}

	return out, nil
}

// defaultEnd derives the end from the service duration so an admin can
// confirm the request without editing it first.
func (uc *CreatePublicBooking) defaultEnd(
	ctx context.Context,
	tx domain.Repository,
	in PublicInput,
) (time.Time, bool) {

	start, err := dates.ParseTimestamp(in.StartTime)
	if err != nil {
		return time.Time{}, false
	}

	defaultMinutes := 0
	if s, err := tx.GetSettings(ctx); err == nil && s != nil {
		defaultMinutes = s.DefaultDurationMinutes
	}

	var serviceMinutes *int
	if in.ServiceID != nil {
		svc, err := tx.GetService(ctx, *in.ServiceID)
		if err != nil && !errors.Is(err, httperr.ErrNotFound) {
			return time.Time{}, false
		}
		if svc != nil {
			serviceMinutes = svc.DurationMinutes
		}
	}

	minutes := domain.ResolveDuration(serviceMinutes, defaultMinutes)
	return start.Add(time.Duration(minutes) * time.Minute), true
}
