package services

import (
	"github.com/studyabroad/cms-api/model"
	"github.com/studyabroad/cms-api/utils/optional"
	"github.com/studyabroad/cms-api/utils/query"
)

// NameFields is the required localized name block of a create input.
type NameFields struct {
	NameAr string `json:"name_ar" validate:"required"`
	NameEn string `json:"name_en" validate:"required"`
	NameTr string `json:"name_tr" validate:"required"`
	NameMs string `json:"name_ms" validate:"required"`
}

func (n NameFields) toModel() model.LocalizedName {
	return model.LocalizedName{NameAr: n.NameAr, NameEn: n.NameEn, NameTr: n.NameTr, NameMs: n.NameMs}
}

// NamePatch updates any subset of the localized names. Names cannot be cleared.
type NamePatch struct {
	NameAr optional.Field[string] `json:"name_ar" validate:"omitempty,min=1"`
	NameEn optional.Field[string] `json:"name_en" validate:"omitempty,min=1"`
	NameTr optional.Field[string] `json:"name_tr" validate:"omitempty,min=1"`
	NameMs optional.Field[string] `json:"name_ms" validate:"omitempty,min=1"`
}

func (p NamePatch) apply(c query.Changes) {
	query.SetField(c, "name_ar", p.NameAr)
	query.SetField(c, "name_en", p.NameEn)
	query.SetField(c, "name_tr", p.NameTr)
	query.SetField(c, "name_ms", p.NameMs)
}

// DescriptionPatch updates or clears the localized descriptions.
type DescriptionPatch struct {
	DescriptionAr optional.Nullable[string] `json:"description_ar"`
	DescriptionEn optional.Nullable[string] `json:"description_en"`
	DescriptionTr optional.Nullable[string] `json:"description_tr"`
	DescriptionMs optional.Nullable[string] `json:"description_ms"`
}

func (p DescriptionPatch) apply(c query.Changes) {
	query.SetNullable(c, "description_ar", p.DescriptionAr)
	query.SetNullable(c, "description_en", p.DescriptionEn)
	query.SetNullable(c, "description_tr", p.DescriptionTr)
	query.SetNullable(c, "description_ms", p.DescriptionMs)
}

// SEOPatch updates or clears the localized meta title and description.
type SEOPatch struct {
	MetaTitleAr       optional.Nullable[string] `json:"meta_title_ar"`
	MetaTitleEn       optional.Nullable[string] `json:"meta_title_en"`
	MetaTitleTr       optional.Nullable[string] `json:"meta_title_tr"`
	MetaTitleMs       optional.Nullable[string] `json:"meta_title_ms"`
	MetaDescriptionAr optional.Nullable[string] `json:"meta_description_ar"`
	MetaDescriptionEn optional.Nullable[string] `json:"meta_description_en"`
	MetaDescriptionTr optional.Nullable[string] `json:"meta_description_tr"`
	MetaDescriptionMs optional.Nullable[string] `json:"meta_description_ms"`
}

func (p SEOPatch) apply(c query.Changes) {
	query.SetNullable(c, "meta_title_ar", p.MetaTitleAr)
	query.SetNullable(c, "meta_title_en", p.MetaTitleEn)
	query.SetNullable(c, "meta_title_tr", p.MetaTitleTr)
	query.SetNullable(c, "meta_title_ms", p.MetaTitleMs)
	query.SetNullable(c, "meta_description_ar", p.MetaDescriptionAr)
	query.SetNullable(c, "meta_description_en", p.MetaDescriptionEn)
	query.SetNullable(c, "meta_description_tr", p.MetaDescriptionTr)
	query.SetNullable(c, "meta_description_ms", p.MetaDescriptionMs)
}

// nameColumns are searched by every entity with a LocalizedName.
var nameColumns = []string{"name_ar", "name_en", "name_tr", "name_ms"}

func searchColumns(extra ...string) []string {
	cols := make([]string, 0, len(nameColumns)+len(extra))
	cols = append(cols, nameColumns...)
	return append(cols, extra...)
}
