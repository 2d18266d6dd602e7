package models

import "time"

type Translation struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Key    string `gorm:"size:191;not null;uniqueIndex:idx_translation_key_locale" json:"key"`
	Locale string `gorm:"size:8;not null;uniqueIndex:idx_translation_key_locale" json:"locale"`
	Value  string `gorm:"type:text;not null" json:"value"`

	UpdatedAt time.Time `json:"updatedAt"`
}
