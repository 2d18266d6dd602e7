package models

import (
	"time"

	"gorm.io/datatypes"
)

// BookingSettingsID is the primary key of the single settings row.
const BookingSettingsID uint = 1

type BookingSettings struct {
	ID uint `gorm:"primaryKey;autoIncrement:false" json:"id"`

	TimeSlots     datatypes.JSONSlice[string] `json:"timeSlots"`
	BlackoutDates datatypes.JSONSlice[string] `json:"blackoutDates"`

	BufferMinutes          int `gorm:"not null" json:"bufferMinutes"`
	DefaultDurationMinutes int `gorm:"not null" json:"defaultDurationMinutes"`

	Disclaimer   string `gorm:"type:text" json:"disclaimer"`
	DisclaimerEn string `gorm:"type:text" json:"disclaimerEn"`
	DisclaimerFa string `gorm:"type:text" json:"disclaimerFa"`

	// informational only, availability does not read it
	BusinessHours datatypes.JSON `json:"businessHours"`

	UpdatedAt time.Time `json:"updatedAt"`
}
