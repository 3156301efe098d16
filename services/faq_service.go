package services

import (
	"context"
	"fmt"

	"github.com/studyabroad/cms-api/model"
	"github.com/studyabroad/cms-api/utils/optional"
	"github.com/studyabroad/cms-api/utils/query"
	"gorm.io/gorm"
)

// FAQService manages the ordered question/answer list
type FAQService struct {
	db *gorm.DB
}

// NewFAQService creates a new FAQ service
func NewFAQService(db *gorm.DB) *FAQService {
	return &FAQService{db: db}
}

// CreateFAQInput is the payload for a new FAQ. OrderIndex defaults to 0.
type CreateFAQInput struct {
	QuestionAr string       `json:"question_ar" validate:"required"`
	QuestionEn string       `json:"question_en" validate:"required"`
	QuestionTr string       `json:"question_tr" validate:"required"`
	QuestionMs string       `json:"question_ms" validate:"required"`
	AnswerAr   string       `json:"answer_ar" validate:"required"`
	AnswerEn   string       `json:"answer_en" validate:"required"`
	AnswerTr   string       `json:"answer_tr" validate:"required"`
	AnswerMs   string       `json:"answer_ms" validate:"required"`
	OrderIndex int          `json:"order_index"`
	Category   *string      `json:"category"`
	Status     model.Status `json:"status" validate:"omitempty,enum"`
}

// UpdateFAQInput changes only the fields present in the payload
type UpdateFAQInput struct {
	QuestionAr optional.Field[string]       `json:"question_ar" validate:"omitempty,min=1"`
	QuestionEn optional.Field[string]       `json:"question_en" validate:"omitempty,min=1"`
	QuestionTr optional.Field[string]       `json:"question_tr" validate:"omitempty,min=1"`
	QuestionMs optional.Field[string]       `json:"question_ms" validate:"omitempty,min=1"`
	AnswerAr   optional.Field[string]       `json:"answer_ar" validate:"omitempty,min=1"`
	AnswerEn   optional.Field[string]       `json:"answer_en" validate:"omitempty,min=1"`
	AnswerTr   optional.Field[string]       `json:"answer_tr" validate:"omitempty,min=1"`
	AnswerMs   optional.Field[string]       `json:"answer_ms" validate:"omitempty,min=1"`
	OrderIndex optional.Field[int]          `json:"order_index"`
	Category   optional.Nullable[string]    `json:"category"`
	Status     optional.Field[model.Status] `json:"status" validate:"omitempty,enum"`
}

// FAQOrder assigns a new position to one FAQ
type FAQOrder struct {
	ID         uint `json:"id" validate:"required"`
	OrderIndex int  `json:"order_index"`
}

// ReorderFAQsInput is a batch of new positions applied all at once
type ReorderFAQsInput struct {
	Items []FAQOrder `json:"items" validate:"required,min=1,dive"`
}

// GetFAQs returns every FAQ, optionally in one category, by ascending order_index
func (s *FAQService) GetFAQs(ctx context.Context, category *string) ([]model.FAQ, error) {
	faqs, err := s.ordered(query.Equal(s.db.WithContext(ctx), "category", category))
	if err != nil {
		return nil, fmt.Errorf("failed to get faqs: %w", err)
	}
	return faqs, nil
}

// GetActiveFAQs is GetFAQs restricted to ACTIVE entries
func (s *FAQService) GetActiveFAQs(ctx context.Context, category *string) ([]model.FAQ, error) {
	q := query.Equal(s.db.WithContext(ctx), "category", category).Where("status = ?", model.StatusActive)
	faqs, err := s.ordered(q)
	if err != nil {
		return nil, fmt.Errorf("failed to get active faqs: %w", err)
	}
	return faqs, nil
}

func (s *FAQService) ordered(q *gorm.DB) ([]model.FAQ, error) {
	faqs := []model.FAQ{}
	if err := q.Order("order_index ASC").Order("id ASC").Find(&faqs).Error; err != nil {
		return nil, err
	}
	return faqs, nil
}

// GetFAQByID returns the FAQ or nil when it does not exist
func (s *FAQService) GetFAQByID(ctx context.Context, id uint) (*model.FAQ, error) {
	faq, err := findByID[model.FAQ](s.db.WithContext(ctx), id)
	if err != nil {
		return nil, fmt.Errorf("failed to get faq: %w", err)
	}
	return faq, nil
}

// CreateFAQ inserts a new FAQ. Status defaults to ACTIVE.
func (s *FAQService) CreateFAQ(ctx context.Context, in CreateFAQInput) (*model.FAQ, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	faq := model.FAQ{
		QuestionAr: in.QuestionAr,
		QuestionEn: in.QuestionEn,
		QuestionTr: in.QuestionTr,
		QuestionMs: in.QuestionMs,
		AnswerAr:   in.AnswerAr,
		AnswerEn:   in.AnswerEn,
		AnswerTr:   in.AnswerTr,
		AnswerMs:   in.AnswerMs,
		OrderIndex: in.OrderIndex,
		Category:   in.Category,
		Status:     statusOrDefault(in.Status),
	}

	if err := s.db.WithContext(ctx).Create(&faq).Error; err != nil {
		return nil, fmt.Errorf("failed to create faq: %w", err)
	}
	return &faq, nil
}

// UpdateFAQ applies the present fields of in. It returns nil when id does not exist.
func (s *FAQService) UpdateFAQ(ctx context.Context, id uint, in UpdateFAQInput) (*model.FAQ, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var updated *model.FAQ
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findByID[model.FAQ](lockForUpdate(tx), id)
		if err != nil || current == nil {
			return err
		}

		changes := query.Changes{}
		query.SetField(changes, "question_ar", in.QuestionAr)
		query.SetField(changes, "question_en", in.QuestionEn)
		query.SetField(changes, "question_tr", in.QuestionTr)
		query.SetField(changes, "question_ms", in.QuestionMs)
		query.SetField(changes, "answer_ar", in.AnswerAr)
		query.SetField(changes, "answer_en", in.AnswerEn)
		query.SetField(changes, "answer_tr", in.AnswerTr)
		query.SetField(changes, "answer_ms", in.AnswerMs)
		query.SetField(changes, "order_index", in.OrderIndex)
		query.SetNullable(changes, "category", in.Category)
		query.SetField(changes, "status", in.Status)
		changes.Touch(now(tx))

		if err := tx.Model(&model.FAQ{}).Where("id = ?", id).Updates(changes.Map()).Error; err != nil {
			return err
		}

		updated, err = findByID[model.FAQ](tx, id)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update faq: %w", err)
	}
	return updated, nil
}

// DeleteFAQ removes the FAQ and reports whether it existed
func (s *FAQService) DeleteFAQ(ctx context.Context, id uint) (bool, error) {
	deleted, err := deleteByID[model.FAQ](s.db.WithContext(ctx), id)
	if err != nil {
		return false, fmt.Errorf("failed to delete faq: %w", err)
	}
	return deleted, nil
}

// ReorderFAQs assigns every new position in one transaction. If any id does
// not exist nothing changes and ErrReferenceNotFound is returned.
func (s *FAQService) ReorderFAQs(ctx context.Context, in ReorderFAQsInput) error {
	if err := validateInput(in); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		stamp := now(tx)
		for _, item := range in.Items {
			result := tx.Model(&model.FAQ{}).
				Where("id = ?", item.ID).
				Updates(map[string]interface{}{"order_index": item.OrderIndex, "updated_at": stamp})
			if result.Error != nil {
				return result.Error
			}
			if result.RowsAffected == 0 {
				return referenceNotFound("faq", item.ID)
			}
		}
		return nil
	})
	if err != nil {
		return wrapWrite(err, "reorder faqs", "")
	}
	return nil
}
