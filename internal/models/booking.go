package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint    `gorm:"not null;index" json:"clientId"`
	Client   *Client `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"client,omitempty"`

	ServiceID *uint    `gorm:"index" json:"serviceId"`
	Service   *Service `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"service,omitempty"`

	StartTime time.Time  `gorm:"not null;index" json:"startTime"`
	EndTime   *time.Time `json:"endTime"`

	Status string `gorm:"size:20;not null;default:'PENDING';index" json:"status"`

	Notes      string `gorm:"type:text" json:"notes"`
	PriceCents *int64 `json:"priceCents"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
