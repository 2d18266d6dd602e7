package booking

import (
	"context"
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type ListFilter struct {
	Status *Status
	From   *time.Time
	To     *time.Time
}

type Repository interface {
	// -------- Transaction --------
	Transaction(
		ctx context.Context,
		fn func(tx Repository) error,
	) error

	// -------- Settings --------
	GetSettings(
		ctx context.Context,
	) (*models.BookingSettings, error)

	SaveSettings(
		ctx context.Context,
		s *models.BookingSettings,
	) error

	// -------- Service / Client --------
	GetService(
		ctx context.Context,
		id uint,
	) (*models.Service, error)

	ServiceExists(
		ctx context.Context,
		id uint,
	) (bool, error)

	ClientExists(
		ctx context.Context,
		id uint,
	) (bool, error)

	GetOrCreateClient(
		ctx context.Context,
		name string,
		phone string,
		email string,
	) (*models.Client, error)

	TouchClientVisit(
		ctx context.Context,
		clientID uint,
		at time.Time,
	) error

	// -------- Booking (conflict) --------
	FindOverlap(
		ctx context.Context,
		q OverlapQuery,
	) (*Conflict, error)

	ListBlockingForDay(
		ctx context.Context,
		start time.Time,
		end time.Time,
		serviceID *uint,
	) ([]Interval, error)

	// -------- Booking (CRUD) --------
	CreateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	GetBooking(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	GetBookingWithRelations(
		ctx context.Context,
		id uint,
	) (*models.Booking, error)

	UpdateBooking(
		ctx context.Context,
		b *models.Booking,
	) error

	DeleteBooking(
		ctx context.Context,
		id uint,
	) error

	ListBookings(
		ctx context.Context,
		f ListFilter,
	) ([]models.Booking, error)
}
