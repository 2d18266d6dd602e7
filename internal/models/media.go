package models

import "time"

type Media struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Key          string `gorm:"size:255;uniqueIndex;not null" json:"key"`
	URL          string `gorm:"size:512;not null" json:"url"`
	ContentType  string `gorm:"size:60" json:"contentType"`
	OriginalName string `gorm:"size:255" json:"originalName"`
	Width        int    `json:"width"`
	Height       int    `json:"height"`
	SizeBytes    int64  `json:"sizeBytes"`

	CreatedAt time.Time `json:"createdAt"`
}
