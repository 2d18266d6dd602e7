package models

import "time"

// HomeContentID is the primary key of the single home page row.
const HomeContentID uint = 1

type HomeContent struct {
	ID uint `gorm:"primaryKey;autoIncrement:false" json:"id"`

	HeroTitle      string `gorm:"size:255" json:"heroTitle"`
	HeroTitleEn    string `gorm:"size:255" json:"heroTitleEn"`
	HeroTitleFa    string `gorm:"size:255" json:"heroTitleFa"`
	HeroSubtitle   string `gorm:"type:text" json:"heroSubtitle"`
	HeroSubtitleEn string `gorm:"type:text" json:"heroSubtitleEn"`
	HeroSubtitleFa string `gorm:"type:text" json:"heroSubtitleFa"`
	HeroImageURL   string `gorm:"size:255" json:"heroImageUrl"`

	CtaLabel   string `gorm:"size:120" json:"ctaLabel"`
	CtaLabelEn string `gorm:"size:120" json:"ctaLabelEn"`
	CtaLabelFa string `gorm:"size:120" json:"ctaLabelFa"`
	CtaURL     string `gorm:"size:255" json:"ctaUrl"`

	Stats    []HomeStat    `gorm:"constraint:OnDelete:CASCADE;" json:"stats"`
	Features []HomeFeature `gorm:"constraint:OnDelete:CASCADE;" json:"features"`

	UpdatedAt time.Time `json:"updatedAt"`
}

type HomeStat struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	HomeContentID uint   `gorm:"not null;index" json:"-"`
	Value         string `gorm:"size:40" json:"value"`
	Label         string `gorm:"size:120" json:"label"`
	LabelEn       string `gorm:"size:120" json:"labelEn"`
	LabelFa       string `gorm:"size:120" json:"labelFa"`
	SortOrder     int    `json:"sortOrder"`
}

type HomeFeature struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	HomeContentID uint   `gorm:"not null;index" json:"-"`
	Icon          string `gorm:"size:60" json:"icon"`
	Title         string `gorm:"size:150" json:"title"`
	TitleEn       string `gorm:"size:150" json:"titleEn"`
	TitleFa       string `gorm:"size:150" json:"titleFa"`
	Description   string `gorm:"type:text" json:"description"`
	DescriptionEn string `gorm:"type:text" json:"descriptionEn"`
	DescriptionFa string `gorm:"type:text" json:"descriptionFa"`
	SortOrder     int    `json:"sortOrder"`
}

type AboutSection struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	Slug     string `gorm:"size:80;uniqueIndex;not null" json:"slug"`
	Title    string `gorm:"size:255" json:"title"`
	TitleEn  string `gorm:"size:255" json:"titleEn"`
	TitleFa  string `gorm:"size:255" json:"titleFa"`
	Body     string `gorm:"type:text" json:"body"`
	BodyEn   string `gorm:"type:text" json:"bodyEn"`
	BodyFa   string `gorm:"type:text" json:"bodyFa"`
	ImageURL string `gorm:"size:255" json:"imageUrl"`

	SortOrder int       `json:"sortOrder"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ContactInfoID is the primary key of the single contact row.
const ContactInfoID uint = 1

type ContactInfo struct {
	ID uint `gorm:"primaryKey;autoIncrement:false" json:"id"`

	Phone          string `gorm:"size:40" json:"phone"`
	Email          string `gorm:"size:120" json:"email"`
	Address        string `gorm:"type:text" json:"address"`
	AddressEn      string `gorm:"type:text" json:"addressEn"`
	AddressFa      string `gorm:"type:text" json:"addressFa"`
	OpeningHours   string `gorm:"type:text" json:"openingHours"`
	OpeningHoursEn string `gorm:"type:text" json:"openingHoursEn"`
	OpeningHoursFa string `gorm:"type:text" json:"openingHoursFa"`
	InstagramURL   string `gorm:"size:255" json:"instagramUrl"`
	MapURL         string `gorm:"size:512" json:"mapUrl"`

	UpdatedAt time.Time `json:"updatedAt"`
}

type ContactMessage struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:120;not null" json:"name"`
	Email   string `gorm:"size:120" json:"email"`
	Phone   string `gorm:"size:32" json:"phone"`
	Subject string `gorm:"size:200" json:"subject"`
	Body    string `gorm:"type:text;not null" json:"body"`
	Read    bool   `gorm:"not null;default:false" json:"read"`

	CreatedAt time.Time `json:"createdAt"`
}
