package booking

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/BruksfildServices01/clinic-scheduler/internal/dates"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ======================================================
// OPTIONAL
// ======================================================

// Optional tells an absent JSON field (Set false) apart from an explicit
// null (Set true, Value nil).
type Optional[T any] struct {
	Set   bool
	Value *T
}

func Some[T any](v T) Optional[T] {
	return Optional[T]{Set: true, Value: &v}
}

func Null[T any]() Optional[T] {
	return Optional[T]{Set: true}
}

func (o *Optional[T]) UnmarshalJSON(data []byte) error {
	o.Set = true
	if string(data) == "null" {
		o.Value = nil
		return nil
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	o.Value = &v
	return nil
}

// ======================================================
// INPUT
// ======================================================

// Input is the body of POST /bookings and PUT /bookings/:id. On update,
// absent fields keep their stored value.
type Input struct {
	ClientID   Optional[uint]   `json:"clientId"`
	ServiceID  Optional[uint]   `json:"serviceId"`
	StartTime  Optional[string] `json:"startTime"`
	EndTime    Optional[string] `json:"endTime"`
	Status     Optional[string] `json:"status"`
	Notes      Optional[string] `json:"notes"`
	PriceCents Optional[int64]  `json:"priceCents"`
}

func blank(o Optional[string]) bool {
	return o.Value == nil || strings.TrimSpace(*o.Value) == ""
}

// ======================================================
// VALIDATION PIPELINE
// ======================================================

// apply merges in onto b and validates the result in a fixed order:
// required fields, references, timestamps, range, status, price, then the
// blocking-status rules. It returns the overlap query that was checked, or
// nil when the resulting status does not block. b is only modified when
// every check passes.
func apply(
	ctx context.Context,
	repo domain.Repository,
	b *models.Booking,
	in Input,
) (*domain.OverlapQuery, error) {

	creating := b.ID == 0
	next := *b

	// --------------------------------------------------
	// 1. Required fields and references
	// --------------------------------------------------
	if in.ClientID.Set {
		if in.ClientID.Value == nil || *in.ClientID.Value == 0 {
			return nil, errMissingFields
		}
		next.ClientID = *in.ClientID.Value
	} else if creating {
		return nil, errMissingFields
	}

	if in.StartTime.Set {
		if blank(in.StartTime) {
			return nil, errMissingFields
		}
	} else if creating {
		return nil, errMissingFields
	}

	if in.ServiceID.Set {
		if in.ServiceID.Value == nil || *in.ServiceID.Value == 0 {
			next.ServiceID = nil
		} else {
			id := *in.ServiceID.Value
			next.ServiceID = &id
		}
	}

	ok, err := repo.ClientExists(ctx, next.ClientID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, httperr.ErrBusiness("invalid_client")
	}

	if next.ServiceID != nil {
		ok, err := repo.ServiceExists(ctx, *next.ServiceID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, httperr.ErrBusiness("invalid_service")
		}
	}

	// --------------------------------------------------
	// 2. Timestamps
	// --------------------------------------------------
	if in.StartTime.Set {
		start, err := dates.ParseTimestamp(*in.StartTime.Value)
		if err != nil {
			return nil, httperr.ErrBusiness("invalid_start_time")
		}
		next.StartTime = start
	}

	if in.EndTime.Set {
		if blank(in.EndTime) {
			next.EndTime = nil
		} else {
			end, err := dates.ParseTimestamp(*in.EndTime.Value)
			if err != nil {
				return nil, httperr.ErrBusiness("invalid_end_time")
			}
			next.EndTime = &end
		}
	}

	// --------------------------------------------------
	// 3. Range
	// --------------------------------------------------
	if next.EndTime != nil && !next.EndTime.After(next.StartTime) {
		return nil, httperr.ErrBusiness("invalid_time_range")
	}

	// --------------------------------------------------
	// 4. Status
	// --------------------------------------------------
	if in.Status.Set && in.Status.Value != nil {
		st, err := domain.ParseStatus(*in.Status.Value)
		if err != nil {
			return nil, err
		}
		next.Status = string(st)
	} else if next.Status == "" {
		next.Status = string(domain.InitialStatus())
	}

	// --------------------------------------------------
	// Notes / price
	// --------------------------------------------------
	if in.Notes.Set {
		next.Notes = ""
		if in.Notes.Value != nil {
			next.Notes = strings.TrimSpace(*in.Notes.Value)
		}
	}

	if in.PriceCents.Set {
		if in.PriceCents.Value != nil && *in.PriceCents.Value < 0 {
			return nil, httperr.ErrBusiness("invalid_price")
		}
		next.PriceCents = in.PriceCents.Value
	}

	// --------------------------------------------------
	// 5. Blocking status rules
	// --------------------------------------------------
	var query *domain.OverlapQuery

	if domain.Status(next.Status).IsBlocking() {
		if next.EndTime == nil {
			return nil, httperr.ErrBusiness("end_time_required_for_status")
		}

		query = &domain.OverlapQuery{
			ClientID:  next.ClientID,
			ServiceID: next.ServiceID,
			Start:     next.StartTime,
			End:       *next.EndTime,
		}
		if !creating {
			id := next.ID
			query.ExcludeID = &id
		}

		conflict, err := repo.FindOverlap(ctx, *query)
		if err != nil {
			return nil, err
		}
		if conflict != nil {
			return nil, &domain.OverlapError{Conflict: conflict}
		}
	}

	*b = next
	return query, nil
}

// resolveConflict turns an exclusion violation raised by Postgres into the
// same OverlapError the pre-check produces. The colliding row is re-read
// outside the rolled back transaction.
func resolveConflict(
	ctx context.Context,
	repo domain.Repository,
	query *domain.OverlapQuery,
	err error,
) error {

	if query == nil || !httperr.IsExclusionConflict(err) {
		return err
	}

	conflict, findErr := repo.FindOverlap(ctx, *query)
	if findErr != nil {
		return &domain.OverlapError{}
	}
	return &domain.OverlapError{Conflict: conflict}
}
