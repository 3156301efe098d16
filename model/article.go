package model

import "time"

// Article is an editorial post, optionally tied to a Country and/or a Major.
type Article struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	TitleAr          string    `gorm:"type:text;not null" json:"title_ar"`
	TitleEn          string    `gorm:"type:text;not null" json:"title_en"`
	TitleTr          string    `gorm:"type:text;not null" json:"title_tr"`
	TitleMs          string    `gorm:"type:text;not null" json:"title_ms"`
	Slug             string    `gorm:"type:text;uniqueIndex;not null" json:"slug"`
	ContentAr        *string   `gorm:"type:text" json:"content_ar"`
	ContentEn        *string   `gorm:"type:text" json:"content_en"`
	ContentTr        *string   `gorm:"type:text" json:"content_tr"`
	ContentMs        *string   `gorm:"type:text" json:"content_ms"`
	ExcerptAr        *string   `gorm:"type:text" json:"excerpt_ar"`
	ExcerptEn        *string   `gorm:"type:text" json:"excerpt_en"`
	ExcerptTr        *string   `gorm:"type:text" json:"excerpt_tr"`
	ExcerptMs        *string   `gorm:"type:text" json:"excerpt_ms"`
	FeaturedImageURL *string   `gorm:"type:text" json:"featured_image_url"`
	Category         *string   `gorm:"type:text;index" json:"category"`
	CountryID        *uint     `gorm:"index" json:"country_id"`
	MajorID          *uint     `gorm:"index" json:"major_id"`
	Status           Status    `gorm:"type:varchar(16);not null;default:'ACTIVE';index" json:"status"`
	IsFeatured       bool      `gorm:"not null;default:false;index" json:"is_featured"`
	SEOMeta
	CreatedAt time.Time `gorm:"not null;index" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null" json:"updated_at"`

	// Relationships
	Country *Country `gorm:"foreignKey:CountryID;constraint:OnDelete:RESTRICT" json:"country,omitempty"`
	Major   *Major   `gorm:"foreignKey:MajorID;constraint:OnDelete:RESTRICT" json:"major,omitempty"`
}

func (Article) TableName() string {
	return "articles"
}
