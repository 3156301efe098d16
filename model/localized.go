package model

// LocalizedName holds the required display name in every site locale.
type LocalizedName struct {
	NameAr string `gorm:"type:text;not null" json:"name_ar"`
	NameEn string `gorm:"type:text;not null" json:"name_en"`
	NameTr string `gorm:"type:text;not null" json:"name_tr"`
	NameMs string `gorm:"type:text;not null" json:"name_ms"`
}

// LocalizedDescription holds an optional long description per locale.
type LocalizedDescription struct {
	DescriptionAr *string `gorm:"type:text" json:"description_ar"`
	DescriptionEn *string `gorm:"type:text" json:"description_en"`
	DescriptionTr *string `gorm:"type:text" json:"description_tr"`
	DescriptionMs *string `gorm:"type:text" json:"description_ms"`
}

// SEOMeta holds page title and description overrides per locale.
type SEOMeta struct {
	MetaTitleAr       *string `gorm:"type:text" json:"meta_title_ar"`
	MetaTitleEn       *string `gorm:"type:text" json:"meta_title_en"`
	MetaTitleTr       *string `gorm:"type:text" json:"meta_title_tr"`
	MetaTitleMs       *string `gorm:"type:text" json:"meta_title_ms"`
	MetaDescriptionAr *string `gorm:"type:text" json:"meta_description_ar"`
	MetaDescriptionEn *string `gorm:"type:text" json:"meta_description_en"`
	MetaDescriptionTr *string `gorm:"type:text" json:"meta_description_tr"`
	MetaDescriptionMs *string `gorm:"type:text" json:"meta_description_ms"`
}
