package services

import (
	"context"
	"fmt"

	"github.com/studyabroad/cms-api/model"
	"github.com/studyabroad/cms-api/utils/optional"
	"github.com/studyabroad/cms-api/utils/query"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UniversityService manages universities and their country links
type UniversityService struct {
	db *gorm.DB
}

// NewUniversityService creates a new university service
func NewUniversityService(db *gorm.DB) *UniversityService {
	return &UniversityService{db: db}
}

// UniversityFilter narrows ListUniversities
type UniversityFilter struct {
	query.Params
	CountryID *uint         `json:"country_id"`
	Status    *model.Status `json:"status" validate:"omitempty,enum"`
	Search    string        `json:"search"`
}

// CreateUniversityInput is the payload for a new university
type CreateUniversityInput struct {
	NameFields
	Slug               string  `json:"slug" validate:"required,slug"`
	CountryID          uint    `json:"country_id" validate:"required"`
	GlobalRanking      *int    `json:"global_ranking" validate:"omitempty,gte=1"`
	LocalRanking       *int    `json:"local_ranking" validate:"omitempty,gte=1"`
	TeachingLanguageAr *string `json:"teaching_language_ar"`
	TeachingLanguageEn *string `json:"teaching_language_en"`
	TeachingLanguageTr *string `json:"teaching_language_tr"`
	TeachingLanguageMs *string `json:"teaching_language_ms"`
	model.LocalizedDescription
	ImageURL      *string      `json:"image_url"`
	GalleryImages []string     `json:"gallery_images"`
	Status        model.Status `json:"status" validate:"omitempty,enum"`
	model.SEOMeta
}

// UpdateUniversityInput changes only the fields present in the payload
type UpdateUniversityInput struct {
	NamePatch
	Slug               optional.Field[string]    `json:"slug" validate:"omitempty,slug"`
	CountryID          optional.Field[uint]      `json:"country_id" validate:"omitempty,gte=1"`
	GlobalRanking      optional.Nullable[int]    `json:"global_ranking" validate:"omitempty,gte=1"`
	LocalRanking       optional.Nullable[int]    `json:"local_ranking" validate:"omitempty,gte=1"`
	TeachingLanguageAr optional.Nullable[string] `json:"teaching_language_ar"`
	TeachingLanguageEn optional.Nullable[string] `json:"teaching_language_en"`
	TeachingLanguageTr optional.Nullable[string] `json:"teaching_language_tr"`
	TeachingLanguageMs optional.Nullable[string] `json:"teaching_language_ms"`
	DescriptionPatch
	ImageURL      optional.Nullable[string]                      `json:"image_url"`
	GalleryImages optional.Nullable[datatypes.JSONSlice[string]] `json:"gallery_images"`
	Status        optional.Field[model.Status]                   `json:"status" validate:"omitempty,enum"`
	SEOPatch
}

// ListUniversities returns one page of universities matching the filter
func (s *UniversityService) ListUniversities(ctx context.Context, filter UniversityFilter) (query.Page[model.University], error) {
	if err := validateInput(filter); err != nil {
		return query.Page[model.University]{}, err
	}

	q := s.db.WithContext(ctx)
	q = query.Equal(q, "country_id", filter.CountryID)
	q = query.Equal(q, "status", filter.Status)
	q = query.Search(q, filter.Search, searchColumns("slug")...)

	page, err := query.Paginate[model.University](q, filter.Params)
	if err != nil {
		return page, fmt.Errorf("failed to list universities: %w", err)
	}
	return page, nil
}

// GetUniversityByID returns the university or nil when it does not exist
func (s *UniversityService) GetUniversityByID(ctx context.Context, id uint) (*model.University, error) {
	university, err := findByID[model.University](s.db.WithContext(ctx), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get university: %w", err)
	}
	return university, nil
}

// GetUniversityBySlug returns the university with slug regardless of its status
func (s *UniversityService) GetUniversityBySlug(ctx context.Context, slug string) (*model.University, error) {
	university, err := findOne[model.University](s.db.WithContext(ctx), "slug = ?", slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get university by slug: %w", err)
	}
	return university, nil
}

// GetUniversitiesByCountry returns the active universities of a country, newest first
func (s *UniversityService) GetUniversitiesByCountry(ctx context.Context, countryID uint) ([]model.University, error) {
	universities := []model.University{}
	err := s.db.WithContext(ctx).
		Where("country_id = ? AND status = ?", countryID, model.StatusActive).
		Order("created_at DESC").
		Order("id DESC").
		Find(&universities).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get universities by country: %w", err)
	}
	return universities, nil
}

// CreateUniversity inserts a university under an existing country
func (s *UniversityService) CreateUniversity(ctx context.Context, in CreateUniversityInput) (*model.University, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	university := model.University{
		LocalizedName:        in.NameFields.toModel(),
		Slug:                 in.Slug,
		CountryID:            in.CountryID,
		GlobalRanking:        in.GlobalRanking,
		LocalRanking:         in.LocalRanking,
		TeachingLanguageAr:   in.TeachingLanguageAr,
		TeachingLanguageEn:   in.TeachingLanguageEn,
		TeachingLanguageTr:   in.TeachingLanguageTr,
		TeachingLanguageMs:   in.TeachingLanguageMs,
		LocalizedDescription: in.LocalizedDescription,
		ImageURL:             in.ImageURL,
		Status:               statusOrDefault(in.Status),
		SEOMeta:              in.SEOMeta,
	}
	if in.GalleryImages != nil {
		university.GalleryImages = datatypes.JSONSlice[string](in.GalleryImages)
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists[model.Country](tx, "country", in.CountryID); err != nil {
			return err
		}
		if err := ensureUnique[model.University](tx, "slug", in.Slug, 0, universitySlugTaken(in.Slug)); err != nil {
			return err
		}
		return tx.Omit("Country").Create(&university).Error
	})
	if err != nil {
		return nil, wrapWrite(err, "create university", universitySlugTaken(in.Slug))
	}
	return &university, nil
}

// UpdateUniversity applies the present fields of in. It returns nil when id does not exist.
func (s *UniversityService) UpdateUniversity(ctx context.Context, id uint, in UpdateUniversityInput) (*model.University, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var updated *model.University
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findByID[model.University](lockForUpdate(tx), id)
		if err != nil || current == nil {
			return err
		}

		if countryID, ok := in.CountryID.Get(); ok {
			if err := ensureExists[model.Country](tx, "country", countryID); err != nil {
				return err
			}
		}
		if slug, ok := in.Slug.Get(); ok && slug != current.Slug {
			if err := ensureUnique[model.University](tx, "slug", slug, id, universitySlugTaken(slug)); err != nil {
				return err
			}
		}

		changes := query.Changes{}
		in.NamePatch.apply(changes)
		query.SetField(changes, "slug", in.Slug)
		query.SetField(changes, "country_id", in.CountryID)
		query.SetNullable(changes, "global_ranking", in.GlobalRanking)
		query.SetNullable(changes, "local_ranking", in.LocalRanking)
		query.SetNullable(changes, "teaching_language_ar", in.TeachingLanguageAr)
		query.SetNullable(changes, "teaching_language_en", in.TeachingLanguageEn)
		query.SetNullable(changes, "teaching_language_tr", in.TeachingLanguageTr)
		query.SetNullable(changes, "teaching_language_ms", in.TeachingLanguageMs)
		in.DescriptionPatch.apply(changes)
		query.SetNullable(changes, "image_url", in.ImageURL)
		query.SetNullable(changes, "gallery_images", in.GalleryImages)
		query.SetField(changes, "status", in.Status)
		in.SEOPatch.apply(changes)
		changes.Touch(now(tx))

		if err := tx.Model(&model.University{}).Where("id = ?", id).Updates(changes.Map()).Error; err != nil {
			return err
		}

		updated, err = findByID[model.University](tx, id)
		return err
	})
	if err != nil {
		slug, _ := in.Slug.Get()
		return nil, wrapWrite(err, "update university", universitySlugTaken(slug))
	}
	return updated, nil
}

// DeleteUniversity removes a university together with its major offerings.
// It reports false when id does not exist.
func (s *UniversityService) DeleteUniversity(ctx context.Context, id uint) (bool, error) {
	deleted := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findByID[model.University](lockForUpdate(tx), id)
		if err != nil || current == nil {
			return err
		}

		if err := tx.Where("university_id = ?", id).Delete(&model.UniversityMajor{}).Error; err != nil {
			return err
		}

		deleted, err = deleteByID[model.University](tx, id)
		return err
	})
	if err != nil {
		return false, fmt.Errorf("failed to delete university: %w", err)
	}
	return deleted, nil
}

func universitySlugTaken(slug string) string {
	return fmt.Sprintf("university with slug %q already exists", slug)
}
