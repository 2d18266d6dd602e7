package booking

import (
	"context"
	"strings"

	"gorm.io/datatypes"

	"github.com/BruksfildServices01/clinic-scheduler/internal/audit"
	"github.com/BruksfildServices01/clinic-scheduler/internal/content"
	domain "github.com/BruksfildServices01/clinic-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/clinic-scheduler/internal/httperr"
	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// ======================================================
// GET
// ======================================================

type GetSettings struct {
	repo domain.Repository
}

func NewGetSettings(repo domain.Repository) *GetSettings {
	return &GetSettings{repo: repo}
}

// Execute returns nil when no settings were ever saved.
func (uc *GetSettings) Execute(ctx context.Context) (*models.BookingSettings, error) {
	return uc.repo.GetSettings(ctx)
}

// ======================================================
// SAVE
// ======================================================

// SettingsInput is the body of PUT /booking-config. Absent fields keep the
// stored value.
type SettingsInput struct {
	TimeSlots              *[]string      `json:"timeSlots"`
	BlackoutDates          *[]string      `json:"blackoutDates"`
	BufferMinutes          *int           `json:"bufferMinutes"`
	DefaultDurationMinutes *int           `json:"defaultDurationMinutes"`
	Disclaimer             *string        `json:"disclaimer"`
	DisclaimerEn           *string        `json:"disclaimerEn"`
	DisclaimerFa           *string        `json:"disclaimerFa"`
	BusinessHours          datatypes.JSON `json:"businessHours"`
}

type SaveSettings struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSaveSettings(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SaveSettings {
	return &SaveSettings{
		repo:  repo,
		audit: audit,
	}
}

func cleanList(in []string) datatypes.JSONSlice[string] {
	out := datatypes.JSONSlice[string]{}
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func (uc *SaveSettings) Execute(
	ctx context.Context,
	actorID *uint,
	in SettingsInput,
) (*models.BookingSettings, error) {

	if in.BufferMinutes != nil && *in.BufferMinutes < 0 {
		return nil, httperr.ErrBusiness("invalid_buffer")
	}
	if in.DefaultDurationMinutes != nil && *in.DefaultDurationMinutes <= 0 {
		return nil, httperr.ErrBusiness("invalid_duration")
	}

	s, err := uc.repo.GetSettings(ctx)
	if err != nil {
		return nil, err
	}
	if s == nil {
		s = &models.BookingSettings{
			ID:                     models.BookingSettingsID,
			DefaultDurationMinutes: domain.DefaultDurationMinutes,
		}
	}

	if in.TimeSlots != nil {
		s.TimeSlots = cleanList(*in.TimeSlots)
	}
	if in.BlackoutDates != nil {
		s.BlackoutDates = cleanList(*in.BlackoutDates)
	}
	if in.BufferMinutes != nil {
		s.BufferMinutes = *in.BufferMinutes
	}
	if in.DefaultDurationMinutes != nil {
		s.DefaultDurationMinutes = *in.DefaultDurationMinutes
	}
	if len(in.BusinessHours) > 0 {
		s.BusinessHours = in.BusinessHours
	}

	if in.DisclaimerEn != nil {
		s.DisclaimerEn = strings.TrimSpace(*in.DisclaimerEn)
	}
	if in.DisclaimerFa != nil {
		s.DisclaimerFa = strings.TrimSpace(*in.DisclaimerFa)
	}
	if in.Disclaimer != nil && in.DisclaimerEn == nil && in.DisclaimerFa == nil {
		s.DisclaimerFa = strings.TrimSpace(*in.Disclaimer)
	}
	s.Disclaimer = content.Canonical(s.DisclaimerEn, s.DisclaimerFa)

	if err := uc.repo.SaveSettings(ctx, s); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID: actorID,
		Action: "booking_settings_updated",
		Entity: "booking_settings",
	})

	return uc.repo.GetSettings(ctx)
}
