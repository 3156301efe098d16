package model

import "time"

// Major is a field of study, offered by universities through UniversityMajor rows.
type Major struct {
	ID uint `gorm:"primaryKey" json:"id"`
	LocalizedName
	Slug string `gorm:"type:text;uniqueIndex;not null" json:"slug"`
	LocalizedDescription
	FutureOpportunitiesAr *string `gorm:"type:text" json:"future_opportunities_ar"`
	FutureOpportunitiesEn *string `gorm:"type:text" json:"future_opportunities_en"`
	FutureOpportunitiesTr *string `gorm:"type:text" json:"future_opportunities_tr"`
	FutureOpportunitiesMs *string `gorm:"type:text" json:"future_opportunities_ms"`
	ImageURL              *string `gorm:"type:text" json:"image_url"`
	Status                Status  `gorm:"type:varchar(16);not null;default:'ACTIVE';index" json:"status"`
	SEOMeta
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Major) TableName() string {
	return "majors"
}
