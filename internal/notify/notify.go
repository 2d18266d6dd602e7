// Package notify tells clinic staff about new bookings, booking status
// changes, deletions and contact form messages.
package notify

import (
	"context"
	"errors"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// NotificationSender is injected into the booking and message flows.
// Bookings are passed with Client and Service preloaded when available.
type NotificationSender interface {
	NotifyNewBooking(ctx context.Context, b *models.Booking) error
	NotifyBookingStatus(ctx context.Context, b *models.Booking) error
	NotifyBookingDeleted(ctx context.Context, b *models.Booking) error
	NotifyContactMessage(ctx context.Context, m *models.ContactMessage) error
}

type Noop struct{}

func (Noop) NotifyNewBooking(context.Context, *models.Booking) error { return nil }

func (Noop) NotifyBookingStatus(context.Context, *models.Booking) error { return nil }

func (Noop) NotifyBookingDeleted(context.Context, *models.Booking) error { return nil }

func (Noop) NotifyContactMessage(context.Context, *models.ContactMessage) error { return nil }

// Multi fans out to every sender and joins their errors.
type Multi []NotificationSender

func (m Multi) NotifyNewBooking(ctx context.Context, b *models.Booking) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.NotifyNewBooking(ctx, b))
	}
	return errors.Join(errs...)
}

func (m Multi) NotifyBookingStatus(ctx context.Context, b *models.Booking) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.NotifyBookingStatus(ctx, b))
	}
	return errors.Join(errs...)
}

func (m Multi) NotifyBookingDeleted(ctx context.Context, b *models.Booking) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.NotifyBookingDeleted(ctx, b))
	}
	return errors.Join(errs...)
}

func (m Multi) NotifyContactMessage(ctx context.Context, msg *models.ContactMessage) error {
	var errs []error
	for _, s := range m {
		errs = append(errs, s.NotifyContactMessage(ctx, msg))
	}
	return errors.Join(errs...)
}
