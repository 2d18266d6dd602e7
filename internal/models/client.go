package models

import "time"

const (
	ClientStatusActive   = "active"
	ClientStatusInactive = "inactive"
)

// Client is created ad hoc by the public booking form or by the admin.
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name  string `gorm:"size:120;not null" json:"name"`
	Email string `gorm:"size:120;index" json:"email"`
	Phone string `gorm:"size:32;index" json:"phone"`
	Notes string `gorm:"type:text" json:"notes"`

	Status    string     `gorm:"size:20;not null;default:'active'" json:"status"`
	LastVisit *time.Time `json:"lastVisit"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
