package services

import (
	"context"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"github.com/studyabroad/cms-api/database"
	"github.com/studyabroad/cms-api/model"
	"github.com/studyabroad/cms-api/utils/auth"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func init() {
	auth.Cost = bcrypt.MinCost
}

// newTestDB opens a fresh in-memory database with the full schema.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(
		sqlite.Open("file::memory:?_pragma=foreign_keys(1)"),
		database.Config(logger.Default.LogMode(logger.Silent)),
	)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, database.Migrate(db))
	return db
}

func strPtr(s string) *string {
	return &s
}

func uintPtr(v uint) *uint {
	return &v
}

func intPtr(v int) *int {
	return &v
}

func names(en string) NameFields {
	return NameFields{NameAr: en + " (ar)", NameEn: en, NameTr: en + " (tr)", NameMs: en + " (ms)"}
}

func mustCountry(t *testing.T, db *gorm.DB, slug string, status model.Status) *model.Country {
	t.Helper()
	c, err := NewCountryService(db).CreateCountry(context.Background(), CreateCountryInput{
		NameFields: names(slug),
		Slug:       slug,
		Status:     status,
	})
	require.NoError(t, err)
	return c
}

func mustUniversity(t *testing.T, db *gorm.DB, countryID uint, slug string) *model.University {
	t.Helper()
	u, err := NewUniversityService(db).CreateUniversity(context.Background(), CreateUniversityInput{
		NameFields: names(slug),
		Slug:       slug,
		CountryID:  countryID,
	})
	require.NoError(t, err)
	return u
}

func mustMajor(t *testing.T, db *gorm.DB, slug string, status model.Status) *model.Major {
	t.Helper()
	m, err := NewMajorService(db).CreateMajor(context.Background(), CreateMajorInput{
		NameFields: names(slug),
		Slug:       slug,
		Status:     status,
	})
	require.NoError(t, err)
	return m
}

func mustArticle(t *testing.T, db *gorm.DB, in CreateArticleInput) *model.Article {
	t.Helper()
	if in.TitleAr == "" {
		in.TitleAr, in.TitleEn, in.TitleTr, in.TitleMs = in.Slug+" ar", in.Slug+" en", in.Slug+" tr", in.Slug+" ms"
	}
	a, err := NewArticleService(db).CreateArticle(context.Background(), in)
	require.NoError(t, err)
	return a
}
