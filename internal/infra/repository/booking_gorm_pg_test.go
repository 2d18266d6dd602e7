package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

func newMockRepo(t *testing.T) (*BookingGormRepository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock init error: %v", err)
	}
	t.Cleanup(func() { _ = sqlDB.Close() })

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("gorm open: %v", err)
	}

	return NewBookingGormRepository(db), mock
}

func TestCreateBooking_ExclusionViolationSurfacesAsPgError(t *testing.T) {
	repo, mock := newMockRepo(t)

	mock.ExpectQuery(`INSERT INTO "bookings"`).
		WillReturnError(&pgconn.PgError{
			Code:           "23P01",
			ConstraintName: "bookings_service_no_overlap",
		})

	b := models.Booking{
		ClientID:  1,
		ServiceID: ptr(uint(2)),
		StartTime: at(10, 0),
		EndTime:   ptr(at(11, 0)),
		Status:    "CONFIRMED",
	}
	err := repo.CreateBooking(context.Background(), &b)

	if !httperr.IsExclusionConflict(err) {
		t.Fatalf("expected exclusion conflict, got %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestFindOverlap_LocksCandidateRowsOnPostgres(t *testing.T) {
	repo, mock := newMockRepo(t)

	rows := sqlmock.NewRows([]string{"id", "client_id", "service_id", "start_time", "end_time", "status"}).
		AddRow(7, 3, 2, at(10, 0), at(11, 0), "CONFIRMED")

	mock.ExpectQuery(`(?s)SELECT \* FROM "bookings" WHERE .*client_id = \$\d+ OR service_id = \$\d+.*id <> \$\d+.*ORDER BY start_time ASC.*FOR UPDATE`).
		WillReturnRows(rows)

	c, err := repo.FindOverlap(context.Background(), domain.OverlapQuery{
		ExcludeID: ptr(uint(9)),
		ClientID:  1,
		ServiceID: ptr(uint(2)),
		Start:     at(10, 30),
		End:       at(11, 30),
	})
	if err != nil {
		t.Fatalf("find overlap: %v", err)
	}
	if c == nil || c.ID != 7 || c.ClientID != 3 {
		t.Fatalf("unexpected conflict %+v", c)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}
