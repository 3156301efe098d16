package services

import (
	"context"
	"fmt"
	"time"

	"github.com/studyabroad/cms-api/model"
	"github.com/studyabroad/cms-api/utils/optional"
	"github.com/studyabroad/cms-api/utils/query"
	"github.com/studyabroad/cms-api/utils/validation"
	"gorm.io/gorm"
)

var inquirySearchColumns = []string{"full_name", "email", "phone"}

// StudentInquiryService manages leads submitted through the public forms
type StudentInquiryService struct {
	db *gorm.DB
}

// NewStudentInquiryService creates a new student inquiry service
func NewStudentInquiryService(db *gorm.DB) *StudentInquiryService {
	return &StudentInquiryService{db: db}
}

// StudentInquiryFilter narrows ListStudentInquiries and ExportStudentInquiries.
// DateFrom and DateTo bound created_at inclusively.
type StudentInquiryFilter struct {
	query.Params
	Status       *model.InquiryStatus `json:"status" validate:"omitempty,enum"`
	LanguageCode *model.LanguageCode  `json:"language_code" validate:"omitempty,enum"`
	DateFrom     *time.Time           `json:"date_from"`
	DateTo       *time.Time           `json:"date_to"`
	Search       string               `json:"search"`
}

// CreateStudentInquiryInput is a lead as submitted by a visitor
type CreateStudentInquiryInput struct {
	FullName       string             `json:"full_name" validate:"required,max=255"`
	Email          string             `json:"email" validate:"required,email"`
	Phone          string             `json:"phone" validate:"required,max=50"`
	Whatsapp       *string            `json:"whatsapp" validate:"omitempty,max=50"`
	DesiredCountry *string            `json:"desired_country"`
	StudyLevel     *model.StudyLevel  `json:"study_level" validate:"omitempty,enum"`
	DesiredMajor   *string            `json:"desired_major"`
	Message        *string            `json:"message"`
	SourcePage     *string            `json:"source_page"`
	LanguageCode   model.LanguageCode `json:"language_code" validate:"required,enum"`
}

// sanitize strips null bytes and surrounding whitespace from the free-text
// fields. Optional fields left blank become nil.
func (in *CreateStudentInquiryInput) sanitize() {
	in.FullName = validation.SanitizeString(in.FullName)
	in.Email = validation.SanitizeString(in.Email)
	in.Phone = validation.SanitizeString(in.Phone)
	for _, field := range []**string{&in.Whatsapp, &in.DesiredCountry, &in.DesiredMajor, &in.Message, &in.SourcePage} {
		if *field == nil {
			continue
		}
		clean := validation.SanitizeString(**field)
		if clean == "" {
			*field = nil
			continue
		}
		*field = &clean
	}
}

// UpdateStudentInquiryInput is the admin follow-up on a lead
type UpdateStudentInquiryInput struct {
	Status optional.Field[model.InquiryStatus] `json:"status" validate:"omitempty,enum"`
	Notes  optional.Nullable[string]            `json:"notes"`
}

// ListStudentInquiries returns one page of inquiries matching the filter
func (s *StudentInquiryService) ListStudentInquiries(ctx context.Context, filter StudentInquiryFilter) (query.Page[model.StudentInquiry], error) {
	if err := validateInput(filter); err != nil {
		return query.Page[model.StudentInquiry]{}, err
	}

	page, err := query.Paginate[model.StudentInquiry](s.filtered(ctx, filter), filter.Params)
	if err != nil {
		return page, fmt.Errorf("failed to list student inquiries: %w", err)
	}
	return page, nil
}

// ExportStudentInquiries returns every inquiry matching the filter, newest first.
// Page and limit are ignored.
func (s *StudentInquiryService) ExportStudentInquiries(ctx context.Context, filter StudentInquiryFilter) ([]model.StudentInquiry, error) {
	if err := validateInput(filter); err != nil {
		return nil, err
	}

	inquiries := []model.StudentInquiry{}
	err := s.filtered(ctx, filter).
		Order("created_at DESC").
		Order("id DESC").
		Find(&inquiries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to export student inquiries: %w", err)
	}
	return inquiries, nil
}

func (s *StudentInquiryService) filtered(ctx context.Context, filter StudentInquiryFilter) *gorm.DB {
	q := s.db.WithContext(ctx)
	q = query.Equal(q, "status", filter.Status)
	q = query.Equal(q, "language_code", filter.LanguageCode)
	q = query.Between(q, "created_at", filter.DateFrom, filter.DateTo)
	return query.Search(q, filter.Search, inquirySearchColumns...)
}

// GetStudentInquiryByID returns the inquiry or nil when it does not exist
func (s *StudentInquiryService) GetStudentInquiryByID(ctx context.Context, id uint) (*model.StudentInquiry, error) {
	inquiry, err := findByID[model.StudentInquiry](s.db.WithContext(ctx), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get student inquiry: %w", err)
	}
	return inquiry, nil
}

// GetNewInquiriesCount counts inquiries still in NEW status
func (s *StudentInquiryService) GetNewInquiriesCount(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.WithContext(ctx).
		Model(&model.StudentInquiry{}).
		Where("status = ?", model.InquiryStatusNew).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count new inquiries: %w", err)
	}
	return count, nil
}

// GetInquiriesByStatus returns every inquiry with status, newest first
func (s *StudentInquiryService) GetInquiriesByStatus(ctx context.Context, status model.InquiryStatus) ([]model.StudentInquiry, error) {
	if !status.IsValid() {
		return nil, invalid("status must be one of NEW, CONTACTED, COMPLETED, ARCHIVED")
	}

	inquiries := []model.StudentInquiry{}
	err := s.db.WithContext(ctx).
		Where("status = ?", status).
		Order("created_at DESC").
		Order("id DESC").
		Find(&inquiries).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get inquiries by status: %w", err)
	}
	return inquiries, nil
}

// CreateStudentInquiry records a new lead in NEW status
func (s *StudentInquiryService) CreateStudentInquiry(ctx context.Context, in CreateStudentInquiryInput) (*model.StudentInquiry, error) {
	in.sanitize()
	if err := validateInput(in); err != nil {
		return nil, err
	}

	inquiry := model.StudentInquiry{
		FullName:       in.FullName,
		Email:          in.Email,
		Phone:          in.Phone,
		Whatsapp:       in.Whatsapp,
		DesiredCountry: in.DesiredCountry,
		StudyLevel:     in.StudyLevel,
		DesiredMajor:   in.DesiredMajor,
		Message:        in.Message,
		SourcePage:     in.SourcePage,
		LanguageCode:   in.LanguageCode,
		Status:         model.InquiryStatusNew,
	}

	if err := s.db.WithContext(ctx).Create(&inquiry).Error; err != nil {
		return nil, fmt.Errorf("failed to create student inquiry: %w", err)
	}
	return &inquiry, nil
}

// UpdateStudentInquiry sets the status and notes of a lead. It returns nil when id does not exist.
func (s *StudentInquiryService) UpdateStudentInquiry(ctx context.Context, id uint, in UpdateStudentInquiryInput) (*model.StudentInquiry, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var updated *model.StudentInquiry
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findByID[model.StudentInquiry](lockForUpdate(tx), id)
		if err != nil || current == nil {
			return err
		}

		changes := query.Changes{}
		query.SetField(changes, "status", in.Status)
		query.SetNullable(changes, "notes", in.Notes)
		changes.Touch(now(tx))

		if err := tx.Model(&model.StudentInquiry{}).Where("id = ?", id).Updates(changes.Map()).Error; err != nil {
			return err
		}

		updated, err = findByID[model.StudentInquiry](tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update student inquiry: %w", err)
	}
	return updated, nil
}

// DeleteStudentInquiry removes the inquiry and reports whether it existed
func (s *StudentInquiryService) DeleteStudentInquiry(ctx context.Context, id uint) (bool, error) {
	deleted, err := deleteByID[model.StudentInquiry](s.db.WithContext(ctx), id)
	if err != nil {
		return false, fmt.Errorf("failed to delete student inquiry: %w", err)
	}
	return deleted, nil
}
