package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyabroad/cms-api/model"
	"github.com/studyabroad/cms-api/utils/optional"
)

func TestArticleService_UpdateStatusOnlyLeavesOtherFields(t *testing.T) {
	db := newTestDB(t)
	svc := NewArticleService(db)
	ctx := context.Background()
	country := mustCountry(t, db, "turkey", model.StatusActive)

	created := mustArticle(t, db, CreateArticleInput{
		TitleAr:    "دليل",
		TitleEn:    "Guide",
		TitleTr:    "Rehber",
		TitleMs:    "Panduan",
		Slug:       "study-guide",
		ContentEn:  strPtr("Long body"),
		ExcerptTr:  strPtr("Özet"),
		Category:   strPtr("guides"),
		CountryID:  &country.ID,
		IsFeatured: true,
	})
	time.Sleep(5 * time.Millisecond)

	updated, err := svc.UpdateArticle(ctx, created.ID, UpdateArticleInput{Status: optional.Of(model.StatusInactive)})
	require.NoError(t, err)
	require.NotNil(t, updated)

	assert.Equal(t, model.StatusInactive, updated.Status)
	assert.Equal(t, created.TitleAr, updated.TitleAr)
	assert.Equal(t, created.TitleEn, updated.TitleEn)
	assert.Equal(t, created.TitleTr, updated.TitleTr)
	assert.Equal(t, created.TitleMs, updated.TitleMs)
	assert.Equal(t, created.Slug, updated.Slug)
	assert.Equal(t, created.ContentEn, updated.ContentEn)
	assert.Equal(t, created.ExcerptTr, updated.ExcerptTr)
	assert.Equal(t, created.Category, updated.Category)
	assert.Equal(t, created.CountryID, updated.CountryID)
	assert.True(t, updated.IsFeatured)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))

	got, err := svc.GetArticleBySlug(ctx, "study-guide")
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = svc.GetArticleByID(ctx, created.ID)
	require.NoError(t, err)
	assert.NotNil(t, got)
}

func TestArticleService_ForeignKeys(t *testing.T) {
	db := newTestDB(t)
	svc := NewArticleService(db)
	ctx := context.Background()

	_, err := svc.CreateArticle(ctx, CreateArticleInput{
		TitleAr: "a", TitleEn: "a", TitleTr: "a", TitleMs: "a",
		Slug:    "orphan",
		MajorID: uintPtr(5),
	})
	require.ErrorIs(t, err, ErrReferenceNotFound)
	assert.Contains(t, err.Error(), "major with id 5 not found")

	article := mustArticle(t, db, CreateArticleInput{Slug: "plain"})
	assert.False(t, article.IsFeatured)
	assert.Equal(t, model.StatusActive, article.Status)

	_, err = svc.UpdateArticle(ctx, article.ID, UpdateArticleInput{CountryID: optional.Value(uint(8))})
	require.ErrorIs(t, err, ErrReferenceNotFound)

	country := mustCountry(t, db, "malaysia", model.StatusActive)
	updated, err := svc.UpdateArticle(ctx, article.ID, UpdateArticleInput{CountryID: optional.Value(country.ID)})
	require.NoError(t, err)
	require.NotNil(t, updated.CountryID)
	assert.Equal(t, country.ID, *updated.CountryID)

	updated, err = svc.UpdateArticle(ctx, article.ID, UpdateArticleInput{CountryID: optional.Null[uint]()})
	require.NoError(t, err)
	assert.Nil(t, updated.CountryID)
}

func TestArticleService_ListFiltersAndSearch(t *testing.T) {
	db := newTestDB(t)
	svc := NewArticleService(db)
	ctx := context.Background()
	country := mustCountry(t, db, "turkey", model.StatusActive)

	mustArticle(t, db, CreateArticleInput{Slug: "scholarships", ContentTr: strPtr("Burs başvurusu"), CountryID: &country.ID, IsFeatured: true})
	mustArticle(t, db, CreateArticleInput{Slug: "housing", Category: strPtr("life")})
	mustArticle(t, db, CreateArticleInput{Slug: "visas", Category: strPtr("life"), Status: model.StatusInactive})

	featured := true
	page, err := svc.ListArticles(ctx, ArticleFilter{IsFeatured: &featured})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "scholarships", page.Data[0].Slug)

	page, err = svc.ListArticles(ctx, ArticleFilter{Category: strPtr("life")})
	require.NoError(t, err)
	assert.Equal(t, int64(2), page.Total)

	page, err = svc.ListArticles(ctx, ArticleFilter{Search: "BURS"})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "scholarships", page.Data[0].Slug)

	page, err = svc.ListArticles(ctx, ArticleFilter{CountryID: &country.ID})
	require.NoError(t, err)
	assert.Equal(t, int64(1), page.Total)

	page, err = svc.ListArticles(ctx, ArticleFilter{Search: "100%"})
	require.NoError(t, err)
	assert.Zero(t, page.Total)
}

func TestArticleService_FeaturedAndRelated(t *testing.T) {
	db := newTestDB(t)
	svc := NewArticleService(db)
	ctx := context.Background()
	turkey := mustCountry(t, db, "turkey", model.StatusActive)
	malaysia := mustCountry(t, db, "malaysia", model.StatusActive)
	law := mustMajor(t, db, "law", model.StatusActive)

	base := mustArticle(t, db, CreateArticleInput{Slug: "base", CountryID: &turkey.ID, MajorID: &law.ID})
	sameCountry := mustArticle(t, db, CreateArticleInput{Slug: "same-country", CountryID: &turkey.ID, IsFeatured: true})
	sameMajor := mustArticle(t, db, CreateArticleInput{Slug: "same-major", CountryID: &malaysia.ID, MajorID: &law.ID})
	mustArticle(t, db, CreateArticleInput{Slug: "inactive", CountryID: &turkey.ID, Status: model.StatusInactive, IsFeatured: true})
	mustArticle(t, db, CreateArticleInput{Slug: "unrelated", CountryID: &malaysia.ID})

	related, err := svc.GetRelatedArticles(ctx, base.ID, 0)
	require.NoError(t, err)
	require.Len(t, related, 2)
	assert.Equal(t, sameMajor.ID, related[0].ID)
	assert.Equal(t, sameCountry.ID, related[1].ID)

	related, err = svc.GetRelatedArticles(ctx, 9999, 5)
	require.NoError(t, err)
	assert.Empty(t, related)

	featured, err := svc.GetFeaturedArticles(ctx, 0)
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, sameCountry.ID, featured[0].ID)

	byCountry, err := svc.GetArticlesByCountry(ctx, turkey.ID, 0)
	require.NoError(t, err)
	assert.Len(t, byCountry, 2)

	byCountry, err = svc.GetArticlesByCountry(ctx, turkey.ID, 1)
	require.NoError(t, err)
	require.Len(t, byCountry, 1)
	assert.Equal(t, sameCountry.ID, byCountry[0].ID)

	byMajor, err := svc.GetArticlesByMajor(ctx, law.ID, 0)
	require.NoError(t, err)
	assert.Len(t, byMajor, 2)
}

func TestArticleService_DuplicateSlugAndDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewArticleService(db)
	ctx := context.Background()

	article := mustArticle(t, db, CreateArticleInput{Slug: "dup"})
	_, err := svc.CreateArticle(ctx, CreateArticleInput{TitleAr: "x", TitleEn: "x", TitleTr: "x", TitleMs: "x", Slug: "dup"})
	require.ErrorIs(t, err, ErrDuplicate)

	for _, want := range []bool{true, false, false} {
		deleted, err := svc.DeleteArticle(ctx, article.ID)
		require.NoError(t, err)
		assert.Equal(t, want, deleted)
	}
}
