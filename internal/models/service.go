package models

import "time"

type Service struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Title   string `gorm:"size:150;not null" json:"title"`
	TitleEn string `gorm:"size:150" json:"titleEn"`
	TitleFa string `gorm:"size:150" json:"titleFa"`
	Slug    string `gorm:"size:150;uniqueIndex;not null" json:"slug"`

	Summary   string `gorm:"type:text" json:"summary"`
	SummaryEn string `gorm:"type:text" json:"summaryEn"`
	SummaryFa string `gorm:"type:text" json:"summaryFa"`

	// nil means "use BookingSettings.DefaultDurationMinutes"
	DurationMinutes *int   `json:"durationMinutes"`
	PriceNote       string `gorm:"size:120" json:"priceNote"`
	ImageURL        string `gorm:"size:255" json:"imageUrl"`
	Published       bool   `gorm:"not null;default:true" json:"published"`
	SortOrder       int    `gorm:"not null;default:0" json:"sortOrder"`

	Benefits []ServiceBenefit `gorm:"constraint:OnDelete:CASCADE;" json:"benefits"`
	Steps    []ServiceStep    `gorm:"constraint:OnDelete:CASCADE;" json:"steps"`
	FAQs     []ServiceFAQ     `gorm:"foreignKey:ServiceID;constraint:OnDelete:CASCADE;" json:"faqs"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type ServiceBenefit struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ServiceID uint   `gorm:"not null;index" json:"serviceId"`
	Text      string `gorm:"type:text" json:"text"`
	TextEn    string `gorm:"type:text" json:"textEn"`
	TextFa    string `gorm:"type:text" json:"textFa"`
	SortOrder int    `json:"sortOrder"`
}

type ServiceStep struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ServiceID uint   `gorm:"not null;index" json:"serviceId"`
	Title     string `gorm:"size:150" json:"title"`
	TitleEn   string `gorm:"size:150" json:"titleEn"`
	TitleFa   string `gorm:"size:150" json:"titleFa"`
	Body      string `gorm:"type:text" json:"body"`
	BodyEn    string `gorm:"type:text" json:"bodyEn"`
	BodyFa    string `gorm:"type:text" json:"bodyFa"`
	SortOrder int    `json:"sortOrder"`
}

type ServiceFAQ struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	ServiceID  uint   `gorm:"not null;index" json:"serviceId"`
	Question   string `gorm:"type:text" json:"question"`
	QuestionEn string `gorm:"type:text" json:"questionEn"`
	QuestionFa string `gorm:"type:text" json:"questionFa"`
	Answer     string `gorm:"type:text" json:"answer"`
	AnswerEn   string `gorm:"type:text" json:"answerEn"`
	AnswerFa   string `gorm:"type:text" json:"answerFa"`
	SortOrder  int    `json:"sortOrder"`
}
