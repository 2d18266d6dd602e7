package dto

import (
	"time"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

// BookingListDTO is the flattened row used by the day sheet export.
type BookingListDTO struct {
	ID          uint       `json:"id"`
	StartTime   time.Time  `json:"startTime"`
	EndTime     *time.Time `json:"endTime"`
	Status      string     `json:"status"`
	ClientName  string     `json:"clientName"`
	ClientPhone string     `json:"clientPhone"`
	ServiceName string     `json:"serviceName"`
	Notes       string     `json:"notes"`
}

func NewBookingListDTO(b models.Booking) BookingListDTO {
	row := BookingListDTO{
		ID:        b.ID,
		StartTime: b.StartTime,
		EndTime:   b.EndTime,
		Status:    b.Status,
		Notes:     b.Notes,
	}
	if b.Client != nil {
		row.ClientName = b.Client.Name
		row.ClientPhone = b.Client.Phone
	}
	if b.Service != nil {
		row.ServiceName = b.Service.Title
	}
	return row
}

func NewBookingList(bookings []models.Booking) []BookingListDTO {
	out := make([]BookingListDTO, 0, len(bookings))
	for _, b := range bookings {
		out = append(out, NewBookingListDTO(b))
	}
	return out
}
