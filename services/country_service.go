package services

import (
	"context"
	"fmt"

	"github.com/studyabroad/cms-api/model"
	"github.com/studyabroad/cms-api/utils/optional"
	"github.com/studyabroad/cms-api/utils/query"
	"gorm.io/gorm"
)

// CountryService manages study destinations
type CountryService struct {
	db *gorm.DB
}

// NewCountryService creates a new country service
func NewCountryService(db *gorm.DB) *CountryService {
	return &CountryService{db: db}
}

// CountryFilter narrows ListCountries
type CountryFilter struct {
	query.Params
	Status *model.Status `json:"status" validate:"omitempty,enum"`
	Search string        `json:"search"`
}

// CreateCountryInput is the payload for a new country
type CreateCountryInput struct {
	NameFields
	Slug string `json:"slug" validate:"required,slug"`
	model.LocalizedDescription
	ImageURL *string      `json:"image_url"`
	Status   model.Status `json:"status" validate:"omitempty,enum"`
	model.SEOMeta
}

// UpdateCountryInput changes only the fields present in the payload
type UpdateCountryInput struct {
	NamePatch
	Slug optional.Field[string] `json:"slug" validate:"omitempty,slug"`
	DescriptionPatch
	ImageURL optional.Nullable[string]     `json:"image_url"`
	Status   optional.Field[model.Status] `json:"status" validate:"omitempty,enum"`
	SEOPatch
}

// ListCountries returns one page of countries matching the filter
func (s *CountryService) ListCountries(ctx context.Context, filter CountryFilter) (query.Page[model.Country], error) {
	if err := validateInput(filter); err != nil {
		return query.Page[model.Country]{}, err
	}

	q := s.db.WithContext(ctx)
	q = query.Equal(q, "status", filter.Status)
	q = query.Search(q, filter.Search, searchColumns("slug")...)

	page, err := query.Paginate[model.Country](q, filter.Params)
	if err != nil {
		return page, fmt.Errorf("failed to list countries: %w", err)
	}
	return page, nil
}

// GetCountryByID returns the country or nil when it does not exist
func (s *CountryService) GetCountryByID(ctx context.Context, id uint) (*model.Country, error) {
	country, err := findByID[model.Country](s.db.WithContext(ctx), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get country: %w", err)
	}
	return country, nil
}

// GetCountryBySlug returns the country with slug regardless of its status
func (s *CountryService) GetCountryBySlug(ctx context.Context, slug string) (*model.Country, error) {
	country, err := findOne[model.Country](s.db.WithContext(ctx), "slug = ?", slug)
	if err != nil {
		return nil, fmt.Errorf("failed to get country by slug: %w", err)
	}
	return country, nil
}

// CreateCountry inserts a new country. Status defaults to ACTIVE.
func (s *CountryService) CreateCountry(ctx context.Context, in CreateCountryInput) (*model.Country, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	country := model.Country{
		LocalizedName:        in.NameFields.toModel(),
		Slug:                 in.Slug,
		LocalizedDescription: in.LocalizedDescription,
		ImageURL:             in.ImageURL,
		Status:               statusOrDefault(in.Status),
		SEOMeta:              in.SEOMeta,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUnique[model.Country](tx, "slug", in.Slug, 0, countrySlugTaken(in.Slug)); err != nil {
			return err
		}
		return tx.Create(&country).Error
	})
	if err != nil {
		return nil, wrapWrite(err, "create country", countrySlugTaken(in.Slug))
	}
	return &country, nil
}

// UpdateCountry applies the present fields of in. It returns nil when id does not exist.
func (s *CountryService) UpdateCountry(ctx context.Context, id uint, in UpdateCountryInput) (*model.Country, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var updated *model.Country
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findByID[model.Country](lockForUpdate(tx), id)
		if err != nil || current == nil {
			return err
		}

		if slug, ok := in.Slug.Get(); ok && slug != current.Slug {
			if err := ensureUnique[model.Country](tx, "slug", slug, id, countrySlugTaken(slug)); err != nil {
				return err
			}
		}

		changes := query.Changes{}
		in.NamePatch.apply(changes)
		query.SetField(changes, "slug", in.Slug)
		in.DescriptionPatch.apply(changes)
		query.SetNullable(changes, "image_url", in.ImageURL)
		query.SetField(changes, "status", in.Status)
		in.SEOPatch.apply(changes)
		changes.Touch(now(tx))

		if err := tx.Model(&model.Country{}).Where("id = ?", id).Updates(changes.Map()).Error; err != nil {
			return err
		}

		updated, err = findByID[model.Country](tx, id)
		return err
	})
	if err != nil {
		slug, _ := in.Slug.Get()
		return nil, wrapWrite(err, "update country", countrySlugTaken(slug))
	}
	return updated, nil
}

// DeleteCountry removes a country that no university or article references.
// It reports false when id does not exist.
func (s *CountryService) DeleteCountry(ctx context.Context, id uint) (bool, error) {
	deleted := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findByID[model.Country](lockForUpdate(tx), id)
		if err != nil || current == nil {
			return err
		}

		universities, err := countWhere[model.University](tx, "country_id", id)
		if err != nil {
			return err
		}
		articles, err := countWhere[model.Article](tx, "country_id", id)
		if err != nil {
			return err
		}
		if universities > 0 || articles > 0 {
			return dependencyConflict("cannot delete country: %d universities and %d articles reference it", universities, articles)
		}

		deleted, err = deleteByID[model.Country](tx, id)
		return err
	})
	if err != nil {
		return false, wrapWrite(err, "delete country", "")
	}
	return deleted, nil
}

func countrySlugTaken(slug string) string {
	return fmt.Sprintf("country with slug %q already exists", slug)
}
