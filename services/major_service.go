package services

import (
	"context"
	"fmt"

	"github.com/studyabroad/cms-api/model"
	"github.com/studyabroad/cms-api/utils/optional"
	"github.com/studyabroad/cms-api/utils/query"
	"gorm.io/gorm"
)

// MajorService manages fields of study
type MajorService struct {
	db *gorm.DB
}

// NewMajorService creates a new major service
func NewMajorService(db *gorm.DB) *MajorService {
	return &MajorService{db: db}
}

// MajorFilter narrows ListMajors. UniversityID keeps majors offered by that university.
type MajorFilter struct {
	query.Params
	UniversityID *uint         `json:"university_id"`
	Status       *model.Status `json:"status" validate:"omitempty,enum"`
	Search       string        `json:"search"`
}

// CreateMajorInput is the payload for a new major
type CreateMajorInput struct {
	NameFields
	Slug string `json:"slug" validate:"required,slug"`
	model.LocalizedDescription
	FutureOpportunitiesAr *string      `json:"future_opportunities_ar"`
	FutureOpportunitiesEn *string      `json:"future_opportunities_en"`
	FutureOpportunitiesTr *string      `json:"future_opportunities_tr"`
	FutureOpportunitiesMs *string      `json:"future_opportunities_ms"`
	ImageURL              *string      `json:"image_url"`
	Status                model.Status `json:"status" validate:"omitempty,enum"`
	model.SEOMeta
}

// UpdateMajorInput changes only the fields present in the payload
type UpdateMajorInput struct {
	NamePatch
	Slug optional.Field[string] `json:"slug" validate:"omitempty,slug"`
	DescriptionPatch
	FutureOpportunitiesAr optional.Nullable[string]    `json:"future_opportunities_ar"`
	FutureOpportunitiesEn optional.Nullable[string]    `json:"future_opportunities_en"`
	FutureOpportunitiesTr optional.Nullable[string]    `json:"future_opportunities_tr"`
	FutureOpportunitiesMs optional.Nullable[string]    `json:"future_opportunities_ms"`
	ImageURL              optional.Nullable[string]    `json:"image_url"`
	Status                optional.Field[model.Status] `json:"status" validate:"omitempty,enum"`
	SEOPatch
}

// ListMajors returns one page of majors matching the filter
func (s *MajorService) ListMajors(ctx context.Context, filter MajorFilter) (query.Page[model.Major], error) {
	if err := validateInput(filter); err != nil {
		return query.Page[model.Major]{}, err
	}

	q := s.db.WithContext(ctx)
	if filter.UniversityID != nil {
		q = q.Where("id IN (?)", s.db.Model(&model.UniversityMajor{}).
			Select("major_id").
			Where("university_id = ?", *filter.UniversityID))
	}
	q = query.Equal(q, "status", filter.Status)
	q = query.Search(q, filter.Search, searchColumns("slug")...)

	page, err := query.Paginate[model.Major](q, filter.Params)
	if err != nil {
		return page, fmt.Errorf("failed to list majors: %w", err)
	}
	return page, nil
}

// GetMajorByID returns the major or nil when it does not exist
func (s *MajorService) GetMajorByID(ctx context.Context, id uint) (*model.Major, error) {
	major, err := findByID[model.Major](s.db.WithContext(ctx), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get major: %w", err)
	}
	return major, nil
}

// GetMajorBySlug returns the active major with slug. Inactive majors are not found.
func (s *MajorService) GetMajorBySlug(ctx context.Context, slug string) (*model.Major, error) {
	major, err := findOne[model.Major](s.db.WithContext(ctx), "slug = ? AND status = ?", slug, model.StatusActive)
	if err != nil {
		return nil, fmt.Errorf("failed to get major by slug: %w", err)
	}
	return major, nil
}

// GetMajorsByUniversity returns the active majors a university offers, newest first
func (s *MajorService) GetMajorsByUniversity(ctx context.Context, universityID uint) ([]model.Major, error) {
	majors := []model.Major{}
	err := s.db.WithContext(ctx).
		Joins("JOIN university_majors ON university_majors.major_id = majors.id").
		Where("university_majors.university_id = ? AND majors.status = ?", universityID, model.StatusActive).
		Order("majors.created_at DESC").
		Order("majors.id DESC").
		Find(&majors).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get majors by university: %w", err)
	}
	return majors, nil
}

// CreateMajor inserts a new major. Status defaults to ACTIVE.
func (s *MajorService) CreateMajor(ctx context.Context, in CreateMajorInput) (*model.Major, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	major := model.Major{
		LocalizedName:         in.NameFields.toModel(),
		Slug:                  in.Slug,
		LocalizedDescription:  in.LocalizedDescription,
		FutureOpportunitiesAr: in.FutureOpportunitiesAr,
		FutureOpportunitiesEn: in.FutureOpportunitiesEn,
		FutureOpportunitiesTr: in.FutureOpportunitiesTr,
		FutureOpportunitiesMs: in.FutureOpportunitiesMs,
		ImageURL:              in.ImageURL,
		Status:                statusOrDefault(in.Status),
		SEOMeta:               in.SEOMeta,
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureUnique[model.Major](tx, "slug", in.Slug, 0, majorSlugTaken(in.Slug)); err != nil {
			return err
		}
		return tx.Create(&major).Error
	})
	if err != nil {
		return nil, wrapWrite(err, "create major", majorSlugTaken(in.Slug))
	}
	return &major, nil
}

// UpdateMajor applies the present fields of in. It returns nil when id does not exist.
func (s *MajorService) UpdateMajor(ctx context.Context, id uint, in UpdateMajorInput) (*model.Major, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var updated *model.Major
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findByID[model.Major](lockForUpdate(tx), id)
		if err != nil || current == nil {
			return err
		}

		if slug, ok := in.Slug.Get(); ok && slug != current.Slug {
			if err := ensureUnique[model.Major](tx, "slug", slug, id, majorSlugTaken(slug)); err != nil {
				return err
			}
		}

		changes := query.Changes{}
		in.NamePatch.apply(changes)
		query.SetField(changes, "slug", in.Slug)
		in.DescriptionPatch.apply(changes)
		query.SetNullable(changes, "future_opportunities_ar", in.FutureOpportunitiesAr)
		query.SetNullable(changes, "future_opportunities_en", in.FutureOpportunitiesEn)
		query.SetNullable(changes, "future_opportunities_tr", in.FutureOpportunitiesTr)
		query.SetNullable(changes, "future_opportunities_ms", in.FutureOpportunitiesMs)
		query.SetNullable(changes, "image_url", in.ImageURL)
		query.SetField(changes, "status", in.Status)
		in.SEOPatch.apply(changes)
		changes.Touch(now(tx))

		if err := tx.Model(&model.Major{}).Where("id = ?", id).Updates(changes.Map()).Error; err != nil {
			return err
		}

		updated, err = findByID[model.Major](tx, id)
		return err
	})
	if err != nil {
		slug, _ := in.Slug.Get()
		return nil, wrapWrite(err, "update major", majorSlugTaken(slug))
	}
	return updated, nil
}

// DeleteMajor removes a major that no university offering or article references.
// It reports false when id does not exist.
func (s *MajorService) DeleteMajor(ctx context.Context, id uint) (bool, error) {
	deleted := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findByID[model.Major](lockForUpdate(tx), id)
		if err != nil || current == nil {
			return err
		}

		offerings, err := countWhere[model.UniversityMajor](tx, "major_id", id)
		if err != nil {
			return err
		}
		articles, err := countWhere[model.Article](tx, "major_id", id)
		if err != nil {
			return err
		}
		if offerings > 0 || articles > 0 {
			return dependencyConflict("cannot delete major: %d university offerings and %d articles reference it", offerings, articles)
		}

		deleted, err = deleteByID[model.Major](tx, id)
		return err
	})
	if err != nil {
		return false, wrapWrite(err, "delete major", "")
	}
	return deleted, nil
}

func majorSlugTaken(slug string) string {
	return fmt.Sprintf("major with slug %q already exists", slug)
}
