package booking

import (
	"strings"

	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
)

// ===============================
// Booking Status
// ===============================

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusConfirmed Status = "CONFIRMED"
	StatusCompleted Status = "COMPLETED"
	StatusCancelled Status = "CANCELLED"
)

// IsBlocking reports whether a booking in this status occupies its interval.
func (s Status) IsBlocking() bool {
	return s == StatusConfirmed || s == StatusCompleted
}

func BlockingStatuses() []string {
	return []string{string(StatusConfirmed), string(StatusCompleted)}
}

func InitialStatus() Status {
	return StatusPending
}

// ParseStatus normalizes a status string case-insensitively.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.ToUpper(strings.TrimSpace(raw))); s {
	case StatusPending, StatusConfirmed, StatusCompleted, StatusCancelled:
		return s, nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}
