package model

import (
	"time"
)

// Setting is a site-wide key/value entry. Value is stored as text and may itself hold JSON.
type Setting struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Key         string    `gorm:"type:varchar(191);uniqueIndex;not null" json:"key"`
	Value       string    `gorm:"type:text;not null" json:"value"`
	Description *string   `gorm:"type:text" json:"description"`
	Category    *string   `gorm:"type:varchar(50);index" json:"category"`
	CreatedAt   time.Time `gorm:"not null" json:"created_at"`
	UpdatedAt   time.Time `gorm:"not null" json:"updated_at"`
}

// TableName specifies the table name for Setting
func (Setting) TableName() string {
	return "settings"
}

// Well-known setting keys and categories.
const (
	SettingSupportedLanguages = "supported_languages"
	SettingCategoryEmail      = "email"
	SettingCategorySEO        = "seo"
)
