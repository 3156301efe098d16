package services

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/studyabroad/cms-api/model"
	"github.com/studyabroad/cms-api/utils/optional"
	"github.com/studyabroad/cms-api/utils/query"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// UniversityMajorService manages the majors a university offers.
// Rows are addressed by the (university_id, major_id) pair.
type UniversityMajorService struct {
	db *gorm.DB
}

// NewUniversityMajorService creates a new university-major service
func NewUniversityMajorService(db *gorm.DB) *UniversityMajorService {
	return &UniversityMajorService{db: db}
}

// CreateUniversityMajorInput is the payload for a new offering
type CreateUniversityMajorInput struct {
	UniversityID   uint               `json:"university_id" validate:"required"`
	MajorID        uint               `json:"major_id" validate:"required"`
	StudyLevels    []model.StudyLevel `json:"study_levels" validate:"required,min=1,dive,enum"`
	TuitionFeeMin  model.Amount       `json:"tuition_fee_min"`
	TuitionFeeMax  model.Amount       `json:"tuition_fee_max"`
	Currency       *string            `json:"currency" validate:"omitempty,len=3"`
	DurationYears  *int               `json:"duration_years" validate:"omitempty,gte=1"`
	RequirementsAr *string            `json:"requirements_ar"`
	RequirementsEn *string            `json:"requirements_en"`
	RequirementsTr *string            `json:"requirements_tr"`
	RequirementsMs *string            `json:"requirements_ms"`
}

// UpdateUniversityMajorInput changes only the fields present in the payload
type UpdateUniversityMajorInput struct {
	StudyLevels    optional.Field[[]model.StudyLevel] `json:"study_levels"`
	TuitionFeeMin  optional.Nullable[model.Amount]    `json:"tuition_fee_min"`
	TuitionFeeMax  optional.Nullable[model.Amount]    `json:"tuition_fee_max"`
	Currency       optional.Nullable[string]          `json:"currency" validate:"omitempty,len=3"`
	DurationYears  optional.Nullable[int]             `json:"duration_years" validate:"omitempty,gte=1"`
	RequirementsAr optional.Nullable[string]          `json:"requirements_ar"`
	RequirementsEn optional.Nullable[string]          `json:"requirements_en"`
	RequirementsTr optional.Nullable[string]          `json:"requirements_tr"`
	RequirementsMs optional.Nullable[string]          `json:"requirements_ms"`
}

// GetUniversityMajors returns every offering of a university with its major preloaded
func (s *UniversityMajorService) GetUniversityMajors(ctx context.Context, universityID uint) ([]model.UniversityMajor, error) {
	rows := []model.UniversityMajor{}
	err := s.db.WithContext(ctx).
		Preload("Major").
		Where("university_id = ?", universityID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get university majors: %w", err)
	}
	return rows, nil
}

// GetMajorUniversities returns every university offering a major with the university preloaded
func (s *UniversityMajorService) GetMajorUniversities(ctx context.Context, majorID uint) ([]model.UniversityMajor, error) {
	rows := []model.UniversityMajor{}
	err := s.db.WithContext(ctx).
		Preload("University").
		Where("major_id = ?", majorID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get major universities: %w", err)
	}
	return rows, nil
}

// GetUniversityMajorDetails returns one offering with both sides preloaded, or nil
func (s *UniversityMajorService) GetUniversityMajorDetails(ctx context.Context, universityID, majorID uint) (*model.UniversityMajor, error) {
	row, err := findOne[model.UniversityMajor](
		s.db.WithContext(ctx).Preload("University").Preload("Major"),
		"university_id = ? AND major_id = ?", universityID, majorID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get university major: %w", err)
	}
	return row, nil
}

// CreateUniversityMajor links an existing university and major. The pair must be new.
func (s *UniversityMajorService) CreateUniversityMajor(ctx context.Context, in CreateUniversityMajorInput) (*model.UniversityMajor, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if err := checkTuition(in.TuitionFeeMin, in.TuitionFeeMax); err != nil {
		return nil, err
	}

	row := model.UniversityMajor{
		UniversityID:   in.UniversityID,
		MajorID:        in.MajorID,
		StudyLevels:    uniqueLevels(in.StudyLevels),
		TuitionFeeMin:  in.TuitionFeeMin,
		TuitionFeeMax:  in.TuitionFeeMax,
		Currency:       in.Currency,
		DurationYears:  in.DurationYears,
		RequirementsAr: in.RequirementsAr,
		RequirementsEn: in.RequirementsEn,
		RequirementsTr: in.RequirementsTr,
		RequirementsMs: in.RequirementsMs,
	}
	taken := pairTaken(in.UniversityID, in.MajorID)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := ensureExists[model.University](tx, "university", in.UniversityID); err != nil {
			return err
		}
		if err := ensureExists[model.Major](tx, "major", in.MajorID); err != nil {
			return err
		}

		existing, err := findOne[model.UniversityMajor](tx, "university_id = ? AND major_id = ?", in.UniversityID, in.MajorID)
		if err != nil {
			return err
		}
		if existing != nil {
			return duplicate("%s", taken)
		}

		return tx.Omit("University", "Major").Create(&row).Error
	})
	if err != nil {
		return nil, wrapWrite(err, "create university major", taken)
	}
	return &row, nil
}

// UpdateUniversityMajor applies the present fields of in to the offering.
// It returns nil when the pair does not exist.
func (s *UniversityMajorService) UpdateUniversityMajor(ctx context.Context, universityID, majorID uint, in UpdateUniversityMajorInput) (*model.UniversityMajor, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}
	levels, levelsSet := in.StudyLevels.Get()
	if levelsSet {
		if err := checkStudyLevels(levels); err != nil {
			return nil, err
		}
	}

	var updated *model.UniversityMajor
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		current, err := findOne[model.UniversityMajor](lockForUpdate(tx), "university_id = ? AND major_id = ?", universityID, majorID)
		if err != nil || current == nil {
			return err
		}

		minFee, maxFee := current.TuitionFeeMin, current.TuitionFeeMax
		if in.TuitionFeeMin.IsSet() {
			minFee, _ = in.TuitionFeeMin.Get()
		}
		if in.TuitionFeeMax.IsSet() {
			maxFee, _ = in.TuitionFeeMax.Get()
		}
		if err := checkTuition(minFee, maxFee); err != nil {
			return err
		}

		changes := query.Changes{}
		if levelsSet {
			changes["study_levels"] = uniqueLevels(levels)
		}
		query.SetNullable(changes, "tuition_fee_min", in.TuitionFeeMin)
		query.SetNullable(changes, "tuition_fee_max", in.TuitionFeeMax)
		query.SetNullable(changes, "currency", in.Currency)
		query.SetNullable(changes, "duration_years", in.DurationYears)
		query.SetNullable(changes, "requirements_ar", in.RequirementsAr)
		query.SetNullable(changes, "requirements_en", in.RequirementsEn)
		query.SetNullable(changes, "requirements_tr", in.RequirementsTr)
		query.SetNullable(changes, "requirements_ms", in.RequirementsMs)
		changes.Touch(now(tx))

		if err := tx.Model(&model.UniversityMajor{}).Where("id = ?", current.ID).Updates(changes.Map()).Error; err != nil {
			return err
		}

		updated, err = findByID[model.UniversityMajor](tx, current.ID)
		return err
	})
	if err != nil {
		return nil, wrapWrite(err, "update university major", pairTaken(universityID, majorID))
	}
	return updated, nil
}

// DeleteUniversityMajor removes the offering and reports whether it existed
func (s *UniversityMajorService) DeleteUniversityMajor(ctx context.Context, universityID, majorID uint) (bool, error) {
	result := s.db.WithContext(ctx).
		Where("university_id = ? AND major_id = ?", universityID, majorID).
		Delete(&model.UniversityMajor{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete university major: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// checkStudyLevels requires a non-empty set of known levels
func checkStudyLevels(levels []model.StudyLevel) error {
	if len(levels) == 0 {
		return invalid("study_levels must contain at least one study level")
	}
	for _, l := range levels {
		if !l.IsValid() {
			return invalid("study_levels contains unknown study level %q", l)
		}
	}
	return nil
}

// maxTuition is the first value numeric(10,2) cannot hold
var maxTuition = decimal.New(1, 8)

// checkTuition rejects fees the column cannot store exactly and a minimum
// above the maximum
func checkTuition(minFee, maxFee model.Amount) error {
	if err := checkFee("tuition_fee_min", minFee); err != nil {
		return err
	}
	if err := checkFee("tuition_fee_max", maxFee); err != nil {
		return err
	}
	if minFee.Valid && maxFee.Valid && minFee.Decimal.GreaterThan(maxFee.Decimal) {
		return invalid("tuition_fee_min %s is greater than tuition_fee_max %s", minFee, maxFee)
	}
	return nil
}

func checkFee(field string, fee model.Amount) error {
	if !fee.Valid {
		return nil
	}
	switch {
	case fee.Decimal.IsNegative():
		return invalid("%s must not be negative", field)
	case fee.Decimal.GreaterThanOrEqual(maxTuition):
		return invalid("%s must be less than %s", field, maxTuition.String())
	case !fee.Decimal.Equal(fee.Decimal.Round(2)):
		return invalid("%s must have at most two decimal places", field)
	}
	return nil
}

// uniqueLevels drops repeated levels, keeping first-seen order
func uniqueLevels(levels []model.StudyLevel) datatypes.JSONSlice[model.StudyLevel] {
	seen := make(map[model.StudyLevel]bool, len(levels))
	out := make(datatypes.JSONSlice[model.StudyLevel], 0, len(levels))
	for _, l := range levels {
		if seen[l] {
			continue
		}
		seen[l] = true
		out = append(out, l)
	}
	return out
}

func pairTaken(universityID, majorID uint) string {
	return fmt.Sprintf("major %d is already linked to university %d", majorID, universityID)
}
