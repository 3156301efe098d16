package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyabroad/cms-api/model"
)

func TestDashboardService_Stats(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db)
	ctx := context.Background()

	loc := time.FixedZone("UTC+3", 3*60*60)
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, loc)
	svc.clock = func() time.Time { return now }

	country := mustCountry(t, db, "turkey", model.StatusActive)
	mustUniversity(t, db, country.ID, "ankara")
	mustMajor(t, db, "physics", model.StatusActive)
	mustArticle(t, db, CreateArticleInput{Slug: "news"})

	// Twelve inquiries one hour apart, the last two after local midnight.
	start := time.Date(2025, 6, 14, 14, 0, 0, 0, loc)
	var ids []uint
	for i := 0; i < 12; i++ {
		lang := model.LanguageEnglish
		if i%3 == 0 {
			lang = model.LanguageArabic
		}
		status := model.InquiryStatusNew
		if i < 4 {
			status = model.InquiryStatusCompleted
		}
		inquiry := seedInquiry(t, db, fmt.Sprintf("lead%02d", i), lang, status, start.Add(time.Duration(i)*time.Hour).UTC())
		ids = append(ids, inquiry.ID)
	}

	stats, err := svc.GetDashboardStats(ctx)
	require.NoError(t, err)

	assert.Equal(t, int64(1), stats.TotalCountries)
	assert.Equal(t, int64(1), stats.TotalUniversities)
	assert.Equal(t, int64(1), stats.TotalMajors)
	assert.Equal(t, int64(1), stats.TotalArticles)
	assert.Equal(t, int64(12), stats.TotalInquiries)
	assert.Equal(t, int64(2), stats.NewInquiriesToday)

	assert.Equal(t, map[string]int64{"NEW": 8, "COMPLETED": 4}, stats.InquiriesByStatus)
	assert.Equal(t, map[string]int64{"ar": 4, "en": 8}, stats.InquiriesByLang)

	require.Len(t, stats.RecentInquiries, RecentInquiriesLimit)
	for i, inquiry := range stats.RecentInquiries {
		assert.Equal(t, ids[11-i], inquiry.ID)
	}
}

func TestDashboardService_EmptyGroupsHaveNoKeys(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db)

	stats, err := svc.GetDashboardStats(context.Background())
	require.NoError(t, err)
	assert.Empty(t, stats.InquiriesByStatus)
	assert.Empty(t, stats.InquiriesByLang)
	assert.NotNil(t, stats.RecentInquiries)
	assert.Empty(t, stats.RecentInquiries)
}

func TestDashboardService_ContentStats(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db)

	mustCountry(t, db, "turkey", model.StatusActive)
	mustCountry(t, db, "malaysia", model.StatusInactive)
	mustArticle(t, db, CreateArticleInput{Slug: "a", IsFeatured: true})
	mustArticle(t, db, CreateArticleInput{Slug: "b", Status: model.StatusInactive})

	stats, err := svc.GetContentStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, StatusCount{Total: 2, Active: 1, Inactive: 1}, stats.Countries)
	assert.Equal(t, StatusCount{Total: 2, Active: 1, Inactive: 1}, stats.Articles)
	assert.Equal(t, int64(1), stats.FeaturedArticles)
	assert.Equal(t, StatusCount{}, stats.Universities)
}

func TestDashboardService_InquiryTrends(t *testing.T) {
	db := newTestDB(t)
	svc := NewDashboardService(db)

	now := time.Date(2025, 6, 15, 18, 0, 0, 0, time.UTC)
	svc.clock = func() time.Time { return now }

	seedInquiry(t, db, "today", model.LanguageEnglish, model.InquiryStatusNew, now.Add(-time.Hour))
	seedInquiry(t, db, "today2", model.LanguageEnglish, model.InquiryStatusCompleted, now.Add(-2*time.Hour))
	seedInquiry(t, db, "twodays", model.LanguageEnglish, model.InquiryStatusContacted, now.AddDate(0, 0, -2))
	seedInquiry(t, db, "tooold", model.LanguageEnglish, model.InquiryStatusNew, now.AddDate(0, 0, -10))

	points, err := svc.GetInquiryTrends(context.Background(), 3)
	require.NoError(t, err)
	require.Len(t, points, 3)

	assert.Equal(t, InquiryTrendPoint{Date: "2025-06-13", Total: 1}, points[0])
	assert.Equal(t, InquiryTrendPoint{Date: "2025-06-14"}, points[1])
	assert.Equal(t, InquiryTrendPoint{Date: "2025-06-15", Total: 2, New: 1, Completed: 1}, points[2])

	points, err = svc.GetInquiryTrends(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, points, DefaultTrendDays)
}
