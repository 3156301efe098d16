package model

import "time"

// Country is a study destination.
type Country struct {
	ID uint `gorm:"primaryKey" json:"id"`
	LocalizedName
	Slug string `gorm:"type:text;uniqueIndex;not null" json:"slug"`
	LocalizedDescription
	ImageURL *string `gorm:"type:text" json:"image_url"`
	Status   Status  `gorm:"type:varchar(16);not null;default:'ACTIVE';index" json:"status"`
	SEOMeta
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`
}

func (Country) TableName() string {
	return "countries"
}
