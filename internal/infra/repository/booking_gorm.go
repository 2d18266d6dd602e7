package repository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/BruksfildServices01/clinic-scheduler/internal/content"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

type BookingGormRepository struct {
	db *gorm.DB
}

func NewBookingGormRepository(db *gorm.DB) *BookingGormRepository {
	return &BookingGormRepository{db: db}
}

// --------------------------------------------------
// Transaction
// --------------------------------------------------

func (r *BookingGormRepository) Transaction(
	ctx context.Context,
	fn func(tx domain.Repository) error,
) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&BookingGormRepository{db: tx})
	})
}

// --------------------------------------------------
// Settings
// --------------------------------------------------

// GetSettings returns nil, nil while the singleton row does not exist.
func (r *BookingGormRepository) GetSettings(
	ctx context.Context,
) (*models.BookingSettings, error) {

	var s models.BookingSettings
	err := r.db.WithContext(ctx).First(&s, models.BookingSettingsID).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// SaveSettings upserts the singleton and mirrors the disclaimer into the
// translations table in the same transaction.
func (r *BookingGormRepository) SaveSettings(
	ctx context.Context,
	s *models.BookingSettings,
) error {

	s.ID = models.BookingSettingsID
	if s.TimeSlots == nil {
		s.TimeSlots = datatypes.JSONSlice[string]{}
	}
	if s.BlackoutDates == nil {
		s.BlackoutDates = datatypes.JSONSlice[string]{}
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(s).Error; err != nil {
			return err
		}
		return content.SyncTranslations(ctx, tx, []content.Field{
			{Key: "booking.disclaimer", En: s.DisclaimerEn, Fa: s.DisclaimerFa},
		})
	})
}

// --------------------------------------------------
// Service / Client
// --------------------------------------------------

func (r *BookingGormRepository) GetService(
	ctx context.Context,
	id uint,
) (*models.Service, error) {

	var svc models.Service
	err := r.db.WithContext(ctx).First(&svc, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &svc, nil
}

func (r *BookingGormRepository) exists(ctx context.Context, model any, id uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(model).
		Where("id = ?", id).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *BookingGormRepository) ServiceExists(
	ctx context.Context,
	id uint,
) (bool, error) {
	return r.exists(ctx, &models.Service{}, id)
}

func (r *BookingGormRepository) ClientExists(
	ctx context.Context,
	id uint,
) (bool, error) {
	return r.exists(ctx, &models.Client{}, id)
}

// GetOrCreateClient matches by phone first, then by email.
func (r *BookingGormRepository) GetOrCreateClient(
	ctx context.Context,
	name string,
	phone string,
	email string,
) (*models.Client, error) {

	phone = strings.TrimSpace(phone)
	email = strings.ToLower(strings.TrimSpace(email))

	var client models.Client

	if phone != "" {
		err := r.db.WithContext(ctx).
			Where("phone = ?", phone).
			Order("id ASC").
			First(&client).Error
		if err == nil {
			return &client, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	if email != "" {
		err := r.db.WithContext(ctx).
			Where("LOWER(email) = ?", email).
			Order("id ASC").
			First(&client).Error
		if err == nil {
			return &client, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, err
		}
	}

	client = models.Client{
		Name:   strings.TrimSpace(name),
		Phone:  phone,
		Email:  email,
		Status: models.ClientStatusActive,
	}

	if err := r.db.WithContext(ctx).Create(&client).Error; err != nil {
		return nil, err
	}

	return &client, nil
}

func (r *BookingGormRepository) TouchClientVisit(
	ctx context.Context,
	clientID uint,
	at time.Time,
) error {
	return r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", clientID).
		Update("last_visit", at.UTC()).Error
}

// --------------------------------------------------
// Booking (conflict)
// --------------------------------------------------

// FindOverlap locks and returns the earliest blocking booking that shares the
// client or the service and intersects [q.Start, q.End).
func (r *BookingGormRepository) FindOverlap(
	ctx context.Context,
	q domain.OverlapQuery,
) (*domain.Conflict, error) {

	tx := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("status IN ?", domain.BlockingStatuses()).
		Where("start_time < ? AND end_time > ?", q.End.UTC(), q.Start.UTC())

	if q.ServiceID != nil {
		tx = tx.Where("(client_id = ? OR service_id = ?)", q.ClientID, *q.ServiceID)
	} else {
		tx = tx.Where("client_id = ?", q.ClientID)
	}

	if q.ExcludeID != nil {
		tx = tx.Where("id <> ?", *q.ExcludeID)
	}

	var b models.Booking
	err := tx.Order("start_time ASC").Take(&b).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &domain.Conflict{
		ID:        b.ID,
		ClientID:  b.ClientID,
		ServiceID: b.ServiceID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    b.Status,
	}, nil
}

// ListBlockingForDay projects start/end of blocking bookings starting in
// [start, end), optionally narrowed to one service.
func (r *BookingGormRepository) ListBlockingForDay(
	ctx context.Context,
	start time.Time,
	end time.Time,
	serviceID *uint,
) ([]domain.Interval, error) {

	tx := r.db.WithContext(ctx).
		Model(&models.Booking{}).
		Select("start_time", "end_time").
		Where("status IN ?", domain.BlockingStatuses()).
		Where("start_time >= ? AND start_time < ?", start.UTC(), end.UTC())

	if serviceID != nil {
		tx = tx.Where("service_id = ?", *serviceID)
	}

	var rows []models.Booking
	if err := tx.Order("start_time ASC").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Interval, 0, len(rows))
	for _, b := range rows {
		out = append(out, domain.Interval{Start: b.StartTime, End: b.EndTime})
	}
	return out, nil
}

// --------------------------------------------------
// Booking (CRUD)
// --------------------------------------------------

func (r *BookingGormRepository) CreateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Create(b).Error
}

func (r *BookingGormRepository) GetBooking(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	err := r.db.WithContext(ctx).First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) GetBookingWithRelations(
	ctx context.Context,
	id uint,
) (*models.Booking, error) {

	var b models.Booking
	err := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service").
		First(&b, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, httperr.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingGormRepository) UpdateBooking(
	ctx context.Context,
	b *models.Booking,
) error {
	return r.db.WithContext(ctx).Omit(clause.Associations).Save(b).Error
}

func (r *BookingGormRepository) DeleteBooking(
	ctx context.Context,
	id uint,
) error {

	res := r.db.WithContext(ctx).Delete(&models.Booking{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return httperr.ErrNotFound
	}
	return nil
}

func (r *BookingGormRepository) ListBookings(
	ctx context.Context,
	f domain.ListFilter,
) ([]models.Booking, error) {

	tx := r.db.WithContext(ctx).
		Preload("Client").
		Preload("Service")

	if f.Status != nil {
		tx = tx.Where("status = ?", string(*f.Status))
	}
	if f.From != nil {
		tx = tx.Where("start_time >= ?", f.From.UTC())
	}
	if f.To != nil {
		tx = tx.Where("start_time < ?", f.To.UTC())
	}

	bookings := []models.Booking{}
	if err := tx.Order("start_time ASC").Find(&bookings).Error; err != nil {
		return nil, err
	}
	return bookings, nil
}

// Compile-time check
var _ domain.Repository = (*BookingGormRepository)(nil)
