package model

import (
	"time"

	"gorm.io/datatypes"
)

// University belongs to exactly one Country and offers majors through UniversityMajor rows.
type University struct {
	ID uint `gorm:"primaryKey" json:"id"`
	LocalizedName
	Slug               string  `gorm:"type:text;uniqueIndex;not null" json:"slug"`
	CountryID          uint    `gorm:"not null;index" json:"country_id"`
	GlobalRanking      *int    `gorm:"index" json:"global_ranking"`
	LocalRanking       *int    `json:"local_ranking"`
	TeachingLanguageAr *string `gorm:"type:text" json:"teaching_language_ar"`
	TeachingLanguageEn *string `gorm:"type:text" json:"teaching_language_en"`
	TeachingLanguageTr *string `gorm:"type:text" json:"teaching_language_tr"`
	TeachingLanguageMs *string `gorm:"type:text" json:"teaching_language_ms"`
	LocalizedDescription
	ImageURL      *string                     `gorm:"type:text" json:"image_url"`
	GalleryImages datatypes.JSONSlice[string] `json:"gallery_images"`
	Status        Status                      `gorm:"type:varchar(16);not null;default:'ACTIVE';index" json:"status"`
	SEOMeta
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	// Relationships
	Country *Country `gorm:"foreignKey:CountryID;constraint:OnDelete:RESTRICT" json:"country,omitempty"`
}

func (University) TableName() string {
	return "universities"
}
