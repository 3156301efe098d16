package model

import (
	"time"

	"gorm.io/datatypes"
)

// UniversityMajor describes how a University offers a Major: levels, tuition, duration and entry requirements.
// The (university_id, major_id) pair is unique.
type UniversityMajor struct {
	ID             uint                            `gorm:"primaryKey" json:"id"`
	UniversityID   uint                            `gorm:"not null;uniqueIndex:idx_university_major;index" json:"university_id"`
	MajorID        uint                            `gorm:"not null;uniqueIndex:idx_university_major;index" json:"major_id"`
	StudyLevels    datatypes.JSONSlice[StudyLevel] `gorm:"not null" json:"study_levels"`
	TuitionFeeMin  Amount                          `gorm:"type:numeric(10,2)" json:"tuition_fee_min"`
	TuitionFeeMax  Amount                          `gorm:"type:numeric(10,2)" json:"tuition_fee_max"`
	Currency       *string                         `gorm:"type:text" json:"currency"`
	DurationYears  *int                            `json:"duration_years"`
	RequirementsAr *string                         `gorm:"type:text" json:"requirements_ar"`
	RequirementsEn *string                         `gorm:"type:text" json:"requirements_en"`
	RequirementsTr *string                         `gorm:"type:text" json:"requirements_tr"`
	RequirementsMs *string                         `gorm:"type:text" json:"requirements_ms"`
	CreatedAt      time.Time                       `gorm:"not null" json:"created_at"`
	UpdatedAt      time.Time                       `gorm:"not null" json:"updated_at"`

	// Relationships
	University *University `gorm:"foreignKey:UniversityID;constraint:OnDelete:CASCADE" json:"university,omitempty"`
	Major      *Major      `gorm:"foreignKey:MajorID;constraint:OnDelete:RESTRICT" json:"major,omitempty"`
}

func (UniversityMajor) TableName() string {
	return "university_majors"
}
