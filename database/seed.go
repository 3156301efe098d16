package database

import (
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/studyabroad/cms-api/model"
	"github.com/studyabroad/cms-api/utils/auth"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// AdminSeed carries the credentials of the first back-office account.
type AdminSeed struct {
	Username string
	Email    string
	Password string
}

// Seeder handles database seeding operations
type Seeder struct {
	db    *gorm.DB
	admin AdminSeed
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB, admin AdminSeed) *Seeder {
	return &Seeder{db: db, admin: admin}
}

// SeedAll runs all seed functions
func (s *Seeder) SeedAll() error {
	log.Info().Msg("🌱 starting database seeding")

	if err := s.SeedAdminUser(); err != nil {
		return fmt.Errorf("failed to seed admin user: %w", err)
	}

	if err := s.SeedSettings(); err != nil {
		return fmt.Errorf("failed to seed settings: %w", err)
	}

	if err := s.SeedCountries(); err != nil {
		return fmt.Errorf("failed to seed countries: %w", err)
	}

	log.Info().Msg("✅ database seeding completed")
	return nil
}

// SeedAdminUser creates the default admin user
func (s *Seeder) SeedAdminUser() error {
	var count int64
	if err := s.db.Model(&model.User{}).Where("role = ?", model.RoleAdmin).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Info().Msg("⏭️  admin user already exists, skipping")
		return nil
	}

	if s.admin.Email == "" || s.admin.Password == "" {
		log.Warn().Msg("⚠️  ADMIN_EMAIL and ADMIN_PASSWORD not set, skipping admin user creation")
		return nil
	}

	passwordHash, err := auth.HashPassword(s.admin.Password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	admin := &model.User{
		Username:     s.admin.Username,
		Email:        s.admin.Email,
		PasswordHash: passwordHash,
		FullName:     "System Administrator",
		Role:         model.RoleAdmin,
		IsActive:     true,
	}

	if err := s.db.Create(admin).Error; err != nil {
		return err
	}

	log.Info().Str("username", admin.Username).Msg("✅ created admin user")
	return nil
}

// SeedSettings inserts the default site settings, leaving existing keys untouched
func (s *Seeder) SeedSettings() error {
	languages, err := json.Marshal(model.SupportedLanguages)
	if err != nil {
		return err
	}

	settings := []model.Setting{
		{Key: model.SettingSupportedLanguages, Value: string(languages), Description: strPtr("Locales offered on the public site"), Category: strPtr("general")},
		{Key: "default_language", Value: string(model.LanguageArabic), Description: strPtr("Locale used when none is requested"), Category: strPtr("general")},
		{Key: "site_name", Value: "Study Abroad", Category: strPtr("general")},
		{Key: "contact_email", Value: "info@example.com", Category: strPtr(model.SettingCategoryEmail)},
		{Key: "inquiry_notification_email", Value: "admissions@example.com", Description: strPtr("Receives new inquiry alerts"), Category: strPtr(model.SettingCategoryEmail)},
		{Key: "seo_default_title", Value: "Study Abroad", Category: strPtr(model.SettingCategorySEO)},
		{Key: "seo_default_description", Value: "Universities, majors and guidance for studying abroad", Category: strPtr(model.SettingCategorySEO)},
	}

	result := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoNothing: true,
	}).Create(&settings)
	if result.Error != nil {
		return result.Error
	}

	log.Info().Int64("inserted", result.RowsAffected).Msg("✅ seeded settings")
	return nil
}

// SeedCountries creates the launch destinations when the table is empty
func (s *Seeder) SeedCountries() error {
	var count int64
	if err := s.db.Model(&model.Country{}).Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		log.Info().Msg("⏭️  countries already exist, skipping")
		return nil
	}

	countries := []model.Country{
		{
			LocalizedName: model.LocalizedName{NameAr: "تركيا", NameEn: "Turkey", NameTr: "Türkiye", NameMs: "Turki"},
			Slug:          "turkey",
			Status:        model.StatusActive,
		},
		{
			LocalizedName: model.LocalizedName{NameAr: "ماليزيا", NameEn: "Malaysia", NameTr: "Malezya", NameMs: "Malaysia"},
			Slug:          "malaysia",
			Status:        model.StatusActive,
		},
	}

	if err := s.db.Create(&countries).Error; err != nil {
		return err
	}

	log.Info().Int("count", len(countries)).Msg("✅ created countries")
	return nil
}

// RunSeeds is a convenience function to run all seeds
func RunSeeds(db *gorm.DB, admin AdminSeed) error {
	return NewSeeder(db, admin).SeedAll()
}

func strPtr(s string) *string {
	return &s
}
