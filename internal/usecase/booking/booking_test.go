package booking

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dbtest"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ======================================================
// FIXTURE
// ======================================================

type fixture struct {
	db      *gorm.DB
	repo    domain.Repository
	alice   models.Client
	bob     models.Client
	facial  models.Service
	peeling models.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := dbtest.Open(t)
	f := &fixture{
		db:      db,
		repo:    repository.NewBookingGormRepository(db),
		alice:   models.Client{Name: "Alice", Phone: "09120000001"},
		bob:     models.Client{Name: "Bob", Phone: "09120000002"},
		facial:  models.Service{Title: "Facial", Slug: "facial", DurationMinutes: ptr(45)},
		peeling: models.Service{Title: "Peeling", Slug: "peeling"},
	}

	for _, v := range []any{&f.alice, &f.bob, &f.facial, &f.peeling} {
		if err := db.Create(v).Error; err != nil {
			t.Fatalf("seed: %v", err)
		}
	}
	return f
}

func ptr[T any](v T) *T { return &v }

func (f *fixture) create(t *testing.T, in Input) *models.Booking {
	t.Helper()

	b, err := NewCreateBooking(f.repo, nil).Execute(context.Background(), nil, in)
	if err != nil {
		t.Fatalf("create booking: %v", err)
	}
	return b
}

func (f *fixture) count(t *testing.T) int64 {
	t.Helper()

	var n int64
	if err := f.db.Model(&models.Booking{}).Count(&n).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	return n
}

func confirmed(clientID uint, serviceID *uint, start, end string) Input {
	in := Input{
		ClientID:  Some(clientID),
		StartTime: Some(start),
		EndTime:   Some(end),
		Status:    Some("confirmed"),
	}
	if serviceID != nil {
		in.ServiceID = Some(*serviceID)
	}
	return in
}

type recordingNotifier struct {
	mu       sync.Mutex
	created  []uint
	statuses []string
	deleted  []uint
	err      error
}

func (r *recordingNotifier) NotifyNewBooking(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.created = append(r.created, b.ID)
	return r.err
}

func (r *recordingNotifier) NotifyBookingStatus(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.statuses = append(r.statuses, b.Status)
	return r.err
}

func (r *recordingNotifier) NotifyBookingDeleted(_ context.Context, b *models.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.deleted = append(r.deleted, b.ID)
	return r.err
}

func (r *recordingNotifier) NotifyContactMessage(context.Context, *models.ContactMessage) error {
	return r.err
}

// ======================================================
// CREATE
// ======================================================

func TestCreateBooking_ValidationOrder(t *testing.T) {
	f := newFixture(t)

	cases := []struct {
		name string
		in   Input
		code string
	}{
		{"no client", Input{StartTime: Some("2025-06-01T09:00")}, "missing_fields"},
		{"no start", Input{ClientID: Some(f.alice.ID)}, "missing_fields"},
		{"unknown client before bad time", Input{ClientID: Some(uint(999)), StartTime: Some("nope")}, "invalid_client"},
		{"unknown service", Input{ClientID: Some(f.alice.ID), ServiceID: Some(uint(999)), StartTime: Some("2025-06-01T09:00")}, "invalid_service"},
		{"bad start", Input{ClientID: Some(f.alice.ID), StartTime: Some("tomorrow")}, "invalid_start_time"},
		{"bad end", Input{ClientID: Some(f.alice.ID), StartTime: Some("2025-06-01T09:00"), EndTime: Some("later")}, "invalid_end_time"},
		{"end before start", Input{ClientID: Some(f.alice.ID), StartTime: Some("2025-06-01T09:00"), EndTime: Some("2025-06-01T09:00")}, "invalid_time_range"},
		{"bad status", Input{ClientID: Some(f.alice.ID), StartTime: Some("2025-06-01T09:00"), Status: Some("DONE")}, "invalid_status"},
		{"negative price", Input{ClientID: Some(f.alice.ID), StartTime: Some("2025-06-01T09:00"), PriceCents: Some(int64(-1))}, "invalid_price"},
		{"confirmed without end", Input{ClientID: Some(f.alice.ID), StartTime: Some("2025-06-01T09:00"), Status: Some("CONFIRMED")}, "end_time_required_for_status"},
	}

	uc := NewCreateBooking(f.repo, nil)
	for _, tc := range cases {
		_, err := uc.Execute(context.Background(), nil, tc.in)
		if !httperr.IsBusiness(err, tc.code) {
			t.Fatalf("%s: expected %s, got %v", tc.name, tc.code, err)
		}
	}

	if n := f.count(t); n != 0 {
		t.Fatalf("rejected bookings must not persist, found %d", n)
	}
}

func TestCreateBooking_DefaultsToPendingAndNormalizesUTC(t *testing.T) {
	f := newFixture(t)

	b := f.create(t, Input{
		ClientID:  Some(f.alice.ID),
		ServiceID: Some(f.facial.ID),
		StartTime: Some("2025-06-01T12:30:00+03:30"),
		Notes:     Some("  first visit "),
	})

	if b.Status != "PENDING" {
		t.Fatalf("expected PENDING, got %s", b.Status)
	}
	if !b.StartTime.Equal(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected start %s", b.StartTime)
	}
	if b.Notes != "first visit" || b.Client == nil || b.Service == nil {
		t.Fatalf("unexpected booking %+v", b)
	}
}

func TestCreateBooking_OverlapReturnsConflict(t *testing.T) {
	f := newFixture(t)
	existing := f.create(t, confirmed(f.alice.ID, &f.facial.ID, "2025-06-01T09:00", "2025-06-01T10:00"))

	// same service, other client
	_, err := NewCreateBooking(f.repo, nil).Execute(context.Background(), nil,
		confirmed(f.bob.ID, &f.facial.ID, "2025-06-01T09:30", "2025-06-01T10:30"))

	var overlap *domain.OverlapError
	if !errors.As(err, &overlap) {
		t.Fatalf("expected overlap error, got %v", err)
	}
	if overlap.Conflict == nil || overlap.Conflict.ID != existing.ID {
		t.Fatalf("unexpected conflict %+v", overlap.Conflict)
	}
	if n := f.count(t); n != 1 {
		t.Fatalf("conflicting booking persisted")
	}
}

func TestCreateBooking_NonBlockingSkipsOverlap(t *testing.T) {
	f := newFixture(t)
	f.create(t, confirmed(f.alice.ID, nil, "2025-06-01T09:00", "2025-06-01T10:00"))

	for _, status := range []string{"PENDING", "cancelled"} {
		in := confirmed(f.alice.ID, nil, "2025-06-01T09:00", "2025-06-01T10:00")
		in.Status = Some(status)
		f.create(t, in)
	}

	if n := f.count(t); n != 3 {
		t.Fatalf("expected 3 bookings, got %d", n)
	}
}

func TestCreateBooking_DifferentClientAndServiceDoNotConflict(t *testing.T) {
	f := newFixture(t)
	f.create(t, confirmed(f.alice.ID, &f.facial.ID, "2025-06-01T09:00", "2025-06-01T10:00"))
	f.create(t, confirmed(f.bob.ID, &f.peeling.ID, "2025-06-01T09:00", "2025-06-01T10:00"))
}

// exclusionRepo hides conflicts from the in-transaction pre-check and fails
// the insert the way the Postgres exclusion constraint does.
type exclusionRepo struct {
	domain.Repository
	inTx bool
}

func (r *exclusionRepo) Transaction(ctx context.Context, fn func(tx domain.Repository) error) error {
	return r.Repository.Transaction(ctx, func(tx domain.Repository) error {
		return fn(&exclusionRepo{Repository: tx, inTx: true})
	})
}

func (r *exclusionRepo) FindOverlap(ctx context.Context, q domain.OverlapQuery) (*domain.Conflict, error) {
	if r.inTx {
		return nil, nil
	}
	return r.Repository.FindOverlap(ctx, q)
}

func (r *exclusionRepo) CreateBooking(ctx context.Context, b *models.Booking) error {
	return &pgconn.PgError{Code: "23P01", ConstraintName: "bookings_client_no_overlap"}
}

func TestCreateBooking_ExclusionViolationBecomesOverlap(t *testing.T) {
	f := newFixture(t)
	existing := f.create(t, confirmed(f.alice.ID, nil, "2025-06-01T09:00", "2025-06-01T10:00"))

	uc := NewCreateBooking(&exclusionRepo{Repository: f.repo}, nil)
	_, err := uc.Execute(context.Background(), nil,
		confirmed(f.alice.ID, nil, "2025-06-01T09:15", "2025-06-01T09:45"))

	var overlap *domain.OverlapError
	if !errors.As(err, &overlap) {
		t.Fatalf("expected overlap error, got %v", err)
	}
	if overlap.Conflict == nil || overlap.Conflict.ID != existing.ID {
		t.Fatalf("conflict not re-read: %+v", overlap.Conflict)
	}
}

// ======================================================
// UPDATE / STATUS
// ======================================================

func TestUpdateBooking_PartialKeepsUntouchedFields(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, Input{
		ClientID:   Some(f.alice.ID),
		ServiceID:  Some(f.facial.ID),
		StartTime:  Some("2025-06-01T09:00"),
		EndTime:    Some("2025-06-01T10:00"),
		PriceCents: Some(int64(150000)),
	})

	out, err := NewUpdateBooking(f.repo, nil, nil, nil).Execute(context.Background(), nil, b.ID, Input{
		Notes:     Some("moved"),
		ServiceID: Null[uint](),
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}

	if out.Notes != "moved" || out.ServiceID != nil {
		t.Fatalf("patch not applied: %+v", out)
	}
	if out.PriceCents == nil || *out.PriceCents != 150000 || out.EndTime == nil {
		t.Fatalf("untouched fields lost: %+v", out)
	}
}

func TestUpdateBooking_NotFound(t *testing.T) {
	f := newFixture(t)

	_, err := NewUpdateBooking(f.repo, nil, nil, nil).Execute(context.Background(), nil, 404, Input{Notes: Some("x")})
	if !errors.Is(err, httperr.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestUpdateBooking_ExcludesItselfFromOverlap(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, confirmed(f.alice.ID, nil, "2025-06-01T09:00", "2025-06-01T10:00"))

	_, err := NewUpdateBooking(f.repo, nil, nil, nil).Execute(context.Background(), nil, b.ID, Input{
		EndTime: Some("2025-06-01T10:30"),
	})
	if err != nil {
		t.Fatalf("extending a booking must not conflict with itself: %v", err)
	}
}

func TestUpdateBooking_MovingIntoAnotherBookingConflicts(t *testing.T) {
	f := newFixture(t)
	f.create(t, confirmed(f.alice.ID, nil, "2025-06-01T09:00", "2025-06-01T10:00"))
	other := f.create(t, confirmed(f.alice.ID, nil, "2025-06-01T11:00", "2025-06-01T12:00"))

	_, err := NewUpdateBooking(f.repo, nil, nil, nil).Execute(context.Background(), nil, other.ID, Input{
		StartTime: Some("2025-06-01T09:30"),
	})
	var overlap *domain.OverlapError
	if !errors.As(err, &overlap) {
		t.Fatalf("expected overlap, got %v", err)
	}
}

func TestUpdateBookingStatus_BlockingWithoutEndIsRejectedAndNotPersisted(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, Input{ClientID: Some(f.alice.ID), StartTime: Some("2025-06-01T09:00")})

	uc := NewUpdateBookingStatus(NewUpdateBooking(f.repo, nil, nil, nil))
	for _, status := range []string{"CONFIRMED", "completed"} {
		_, err := uc.Execute(context.Background(), nil, b.ID, status)
		if !httperr.IsBusiness(err, "end_time_required_for_status") {
			t.Fatalf("%s: expected end_time_required_for_status, got %v", status, err)
		}
	}

	stored, err := f.repo.GetBooking(context.Background(), b.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.Status != "PENDING" {
		t.Fatalf("status changed to %s", stored.Status)
	}
}

func TestUpdateBookingStatus_ConfirmRechecksOverlap(t *testing.T) {
	f := newFixture(t)
	f.create(t, confirmed(f.alice.ID, &f.facial.ID, "2025-06-01T09:00", "2025-06-01T10:00"))

	pending := f.create(t, Input{
		ClientID:  Some(f.bob.ID),
		ServiceID: Some(f.facial.ID),
		StartTime: Some("2025-06-01T09:30"),
		EndTime:   Some("2025-06-01T10:30"),
	})

	uc := NewUpdateBookingStatus(NewUpdateBooking(f.repo, nil, nil, nil))
	_, err := uc.Execute(context.Background(), nil, pending.ID, "CONFIRMED")

	var overlap *domain.OverlapError
	if !errors.As(err, &overlap) {
		t.Fatalf("expected overlap, got %v", err)
	}

	if _, err := uc.Execute(context.Background(), nil, pending.ID, "CANCELLED"); err != nil {
		t.Fatalf("cancel must skip the overlap check: %v", err)
	}
}

func TestUpdateBookingStatus_CompletedStampsLastVisitAndNotifies(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, confirmed(f.alice.ID, nil, "2025-06-01T09:00", "2025-06-01T10:00"))

	rec := &recordingNotifier{err: errors.New("telegram down")}
	uc := NewUpdateBookingStatus(NewUpdateBooking(f.repo, nil, rec, nil))

	out, err := uc.Execute(context.Background(), nil, b.ID, "completed")
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if out.Status != "COMPLETED" {
		t.Fatalf("unexpected status %s", out.Status)
	}

	var client models.Client
	f.db.First(&client, f.alice.ID)
	if client.LastVisit == nil || !client.LastVisit.Equal(b.StartTime) {
		t.Fatalf("last visit not stamped: %+v", client.LastVisit)
	}

	if len(rec.statuses) != 1 || rec.statuses[0] != "COMPLETED" {
		t.Fatalf("expected one status notification, got %v", rec.statuses)
	}

	if _, err := uc.Execute(context.Background(), nil, b.ID, "COMPLETED"); err != nil {
		t.Fatalf("repeat: %v", err)
	}
	if len(rec.statuses) != 1 {
		t.Fatalf("unchanged status must not notify again")
	}
}

func TestUpdateBookingStatus_MissingStatus(t *testing.T) {
	f := newFixture(t)
	uc := NewUpdateBookingStatus(NewUpdateBooking(f.repo, nil, nil, nil))

	if _, err := uc.Execute(context.Background(), nil, 1, ""); !httperr.IsBusiness(err, "missing_fields") {
		t.Fatalf("expected missing_fields, got %v", err)
	}
}

// ======================================================
// DELETE / LIST
// ======================================================

func TestDeleteBooking(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, Input{ClientID: Some(f.alice.ID), StartTime: Some("2025-06-01T09:00")})
	rec := &recordingNotifier{}
	uc := NewDeleteBooking(f.repo, nil, rec, nil)

	if err := uc.Execute(context.Background(), nil, b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := uc.Execute(context.Background(), nil, b.ID); !errors.Is(err, httperr.ErrNotFound) {
		t.Fatalf("expected not found on second delete, got %v", err)
	}
	if len(rec.deleted) != 1 || rec.deleted[0] != b.ID {
		t.Fatalf("expected one delete notification, got %v", rec.deleted)
	}
}

func TestDeleteBooking_NotificationFailureDoesNotFail(t *testing.T) {
	f := newFixture(t)
	b := f.create(t, Input{ClientID: Some(f.alice.ID), StartTime: Some("2025-06-01T09:00")})
	rec := &recordingNotifier{err: errors.New("telegram down")}

	if err := NewDeleteBooking(f.repo, nil, rec, nil).Execute(context.Background(), nil, b.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if f.count(t) != 0 {
		t.Fatalf("booking not deleted")
	}
}

func TestListBookings_ContainsNewBookingExactlyOnce(t *testing.T) {
	f := newFixture(t)
	f.create(t, confirmed(f.alice.ID, nil, "2025-05-31T23:00", "2025-05-31T23:59"))
	b := f.create(t, confirmed(f.alice.ID, nil, "2025-06-01T09:00", "2025-06-01T10:00"))
	f.create(t, Input{ClientID: Some(f.bob.ID), StartTime: Some("2025-06-02T00:00")})

	list, err := NewListBookings(f.repo).Execute(context.Background(), "", "2025-06-01")
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	seen := 0
	for _, item := range list {
		if item.ID == b.ID {
			seen++
		}
	}
	if seen != 1 || len(list) != 1 {
		t.Fatalf("expected the new booking exactly once, got %d of %d", seen, len(list))
	}
}

func TestListBookings_InvalidFilters(t *testing.T) {
	f := newFixture(t)
	uc := NewListBookings(f.repo)

	if _, err := uc.Execute(context.Background(), "soon", ""); !httperr.IsBusiness(err, "invalid_status") {
		t.Fatalf("expected invalid_status, got %v", err)
	}
	if _, err := uc.Execute(context.Background(), "", "01/06/2025"); !httperr.IsBusiness(err, "invalid_date") {
		t.Fatalf("expected invalid_date, got %v", err)
	}
}
