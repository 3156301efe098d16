package model

import "time"

// StudentInquiry is a lead captured from the public contact forms.
type StudentInquiry struct {
	ID             uint          `gorm:"primaryKey" json:"id"`
	FullName       string        `gorm:"type:text;not null" json:"full_name"`
	Email          string        `gorm:"type:text;not null;index" json:"email"`
	Phone          string        `gorm:"type:text;not null" json:"phone"`
	Whatsapp       *string       `gorm:"type:text" json:"whatsapp"`
	DesiredCountry *string       `gorm:"type:text" json:"desired_country"`
	StudyLevel     *StudyLevel   `gorm:"type:varchar(16)" json:"study_level"`
	DesiredMajor   *string       `gorm:"type:text" json:"desired_major"`
	Message        *string       `gorm:"type:text" json:"message"`
	SourcePage     *string       `gorm:"type:text" json:"source_page"`
	LanguageCode   LanguageCode  `gorm:"type:varchar(2);not null;index" json:"language_code"`
	Status         InquiryStatus `gorm:"type:varchar(16);not null;default:'NEW';index" json:"status"`
	Notes          *string       `gorm:"type:text" json:"notes"`
	CreatedAt      time.Time     `gorm:"not null;index" json:"created_at"`
	UpdatedAt      time.Time     `gorm:"not null" json:"updated_at"`
}

func (StudentInquiry) TableName() string {
	return "student_inquiries"
}
