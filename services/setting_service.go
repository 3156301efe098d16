package services

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/studyabroad/cms-api/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SettingService manages site-wide key/value settings.
// Writes are upserts keyed by the setting key.
type SettingService struct {
	db *gorm.DB
}

// NewSettingService creates a new setting service
func NewSettingService(db *gorm.DB) *SettingService {
	return &SettingService{db: db}
}

// UpdateSettingInput sets a key's value, creating the key when it is new.
// Description and Category are only written when non-nil.
type UpdateSettingInput struct {
	Key         string  `json:"key" validate:"required,max=191"`
	Value       string  `json:"value"`
	Description *string `json:"description"`
	Category    *string `json:"category" validate:"omitempty,max=50"`
}

// UpdateMultipleSettingsInput is a batch of upserts applied all at once
type UpdateMultipleSettingsInput struct {
	Settings []UpdateSettingInput `json:"settings" validate:"required,min=1,dive"`
}

// GetAllSettings returns every setting ordered by key
func (s *SettingService) GetAllSettings(ctx context.Context) ([]model.Setting, error) {
	settings := []model.Setting{}
	if err := s.db.WithContext(ctx).Order("key ASC").Find(&settings).Error; err != nil {
		return nil, fmt.Errorf("failed to get settings: %w", err)
	}
	return settings, nil
}

// GetSettingByKey returns the setting or nil when key is not set
func (s *SettingService) GetSettingByKey(ctx context.Context, key string) (*model.Setting, error) {
	setting, err := findOne[model.Setting](s.db.WithContext(ctx), "key = ?", key)
	if err != nil {
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	return setting, nil
}

// GetSettingsByCategory returns the settings in category ordered by key
func (s *SettingService) GetSettingsByCategory(ctx context.Context, category string) ([]model.Setting, error) {
	settings := []model.Setting{}
	err := s.db.WithContext(ctx).
		Where("category = ?", category).
		Order("key ASC").
		Find(&settings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get settings by category: %w", err)
	}
	return settings, nil
}

// GetEmailSettings returns the settings in the email category
func (s *SettingService) GetEmailSettings(ctx context.Context) ([]model.Setting, error) {
	return s.GetSettingsByCategory(ctx, model.SettingCategoryEmail)
}

// GetSEOSettings returns the settings in the seo category
func (s *SettingService) GetSEOSettings(ctx context.Context) ([]model.Setting, error) {
	return s.GetSettingsByCategory(ctx, model.SettingCategorySEO)
}

// UpdateSetting upserts one setting and returns the stored row
func (s *SettingService) UpdateSetting(ctx context.Context, in UpdateSettingInput) (*model.Setting, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	var setting *model.Setting
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var err error
		setting, err = upsertSetting(tx, in)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update setting %q: %w", in.Key, err)
	}
	return setting, nil
}

// UpdateMultipleSettings upserts every setting in one transaction. A failure
// leaves all of them unchanged.
func (s *SettingService) UpdateMultipleSettings(ctx context.Context, in UpdateMultipleSettingsInput) ([]model.Setting, error) {
	if err := validateInput(in); err != nil {
		return nil, err
	}

	settings := make([]model.Setting, 0, len(in.Settings))
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, item := range in.Settings {
			setting, err := upsertSetting(tx, item)
			if err != nil {
				return fmt.Errorf("setting %q: %w", item.Key, err)
			}
			settings = append(settings, *setting)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to update settings: %w", err)
	}
	return settings, nil
}

// DeleteSetting removes key and reports whether it existed
func (s *SettingService) DeleteSetting(ctx context.Context, key string) (bool, error) {
	result := s.db.WithContext(ctx).Where("key = ?", key).Delete(&model.Setting{})
	if result.Error != nil {
		return false, fmt.Errorf("failed to delete setting: %w", result.Error)
	}
	return result.RowsAffected > 0, nil
}

// GetSupportedLanguages decodes the supported_languages setting. A missing
// key, malformed JSON or a non-array value yields every site locale.
func (s *SettingService) GetSupportedLanguages(ctx context.Context) ([]model.LanguageCode, error) {
	setting, err := s.GetSettingByKey(ctx, model.SettingSupportedLanguages)
	if err != nil {
		return nil, err
	}
	if setting == nil {
		return defaultLanguages(), nil
	}

	var languages []model.LanguageCode
	if err := json.Unmarshal([]byte(setting.Value), &languages); err != nil || languages == nil {
		return defaultLanguages(), nil
	}
	return languages, nil
}

// upsertSetting inserts the key or overwrites its value in place, then reads
// the row back so the caller sees the stored id and timestamps.
func upsertSetting(tx *gorm.DB, in UpdateSettingInput) (*model.Setting, error) {
	stamp := now(tx)
	row := model.Setting{
		Key:         in.Key,
		Value:       in.Value,
		Description: in.Description,
		Category:    in.Category,
		CreatedAt:   stamp,
		UpdatedAt:   stamp,
	}

	assignments := map[string]interface{}{"value": in.Value, "updated_at": stamp}
	if in.Description != nil {
		assignments["description"] = *in.Description
	}
	if in.Category != nil {
		assignments["category"] = *in.Category
	}

	err := tx.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.Assignments(assignments),
	}).Create(&row).Error
	if err != nil {
		return nil, err
	}

	return findOne[model.Setting](tx, "key = ?", in.Key)
}

func defaultLanguages() []model.LanguageCode {
	return append([]model.LanguageCode(nil), model.SupportedLanguages...)
}
