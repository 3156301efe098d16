package services

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyabroad/cms-api/model"
	"github.com/studyabroad/cms-api/utils/optional"
)

func TestUniversityService_GalleryRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := NewUniversityService(db)
	ctx := context.Background()
	country := mustCountry(t, db, "turkey", model.StatusActive)

	created, err := svc.CreateUniversity(ctx, CreateUniversityInput{
		NameFields:    names("Istanbul University"),
		Slug:          "istanbul-university",
		CountryID:     country.ID,
		GlobalRanking: intPtr(501),
		GalleryImages: []string{"a", "b"},
	})
	require.NoError(t, err)

	got, err := svc.GetUniversityByID(ctx, created.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"a", "b"}, []string(got.GalleryImages))
	require.NotNil(t, got.GlobalRanking)
	assert.Equal(t, 501, *got.GlobalRanking)
	assert.Nil(t, got.LocalRanking)
}

func TestUniversityService_CountryMustExist(t *testing.T) {
	db := newTestDB(t)
	svc := NewUniversityService(db)
	ctx := context.Background()

	_, err := svc.CreateUniversity(ctx, CreateUniversityInput{
		NameFields: names("Ghost"),
		Slug:       "ghost",
		CountryID:  77,
	})
	require.ErrorIs(t, err, ErrReferenceNotFound)
	assert.Contains(t, err.Error(), "country with id 77 not found")

	got, err := svc.GetUniversityBySlug(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, got)

	country := mustCountry(t, db, "turkey", model.StatusActive)
	u := mustUniversity(t, db, country.ID, "boun")

	_, err = svc.UpdateUniversity(ctx, u.ID, UpdateUniversityInput{CountryID: optional.Of(uint(77))})
	require.ErrorIs(t, err, ErrReferenceNotFound)

	got, err = svc.GetUniversityByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, country.ID, got.CountryID)
}

func TestUniversityService_UpdateNullsAndKeeps(t *testing.T) {
	db := newTestDB(t)
	svc := NewUniversityService(db)
	ctx := context.Background()
	turkey := mustCountry(t, db, "turkey", model.StatusActive)
	malaysia := mustCountry(t, db, "malaysia", model.StatusActive)

	created, err := svc.CreateUniversity(ctx, CreateUniversityInput{
		NameFields:         names("Boğaziçi"),
		Slug:               "bogazici",
		CountryID:          turkey.ID,
		GlobalRanking:      intPtr(700),
		TeachingLanguageEn: strPtr("English"),
		GalleryImages:      []string{"x"},
	})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)

	var in UpdateUniversityInput
	require.NoError(t, json.Unmarshal([]byte(`{
		"country_id": `+jsonUint(malaysia.ID)+`,
		"global_ranking": null,
		"gallery_images": ["y", "z"]
	}`), &in))

	updated, err := svc.UpdateUniversity(ctx, created.ID, in)
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, malaysia.ID, updated.CountryID)
	assert.Nil(t, updated.GlobalRanking)
	assert.Equal(t, []string{"y", "z"}, []string(updated.GalleryImages))
	require.NotNil(t, updated.TeachingLanguageEn)
	assert.Equal(t, "English", *updated.TeachingLanguageEn)
	assert.Equal(t, created.NameTr, updated.NameTr)
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
}

func TestUniversityService_GetByCountryActiveNewestFirst(t *testing.T) {
	db := newTestDB(t)
	svc := NewUniversityService(db)
	ctx := context.Background()
	country := mustCountry(t, db, "turkey", model.StatusActive)

	first := mustUniversity(t, db, country.ID, "first")
	second := mustUniversity(t, db, country.ID, "second")
	hidden := mustUniversity(t, db, country.ID, "hidden")
	_, err := svc.UpdateUniversity(ctx, hidden.ID, UpdateUniversityInput{Status: optional.Of(model.StatusInactive)})
	require.NoError(t, err)

	list, err := svc.GetUniversitiesByCountry(ctx, country.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	inactive := model.StatusInactive
	page, err := svc.ListUniversities(ctx, UniversityFilter{CountryID: &country.ID, Status: &inactive})
	require.NoError(t, err)
	require.Len(t, page.Data, 1)
	assert.Equal(t, "hidden", page.Data[0].Slug)
}

func TestUniversityService_DeleteRemovesOfferings(t *testing.T) {
	db := newTestDB(t)
	svc := NewUniversityService(db)
	ctx := context.Background()
	country := mustCountry(t, db, "turkey", model.StatusActive)
	university := mustUniversity(t, db, country.ID, "metu")
	major := mustMajor(t, db, "computer-engineering", model.StatusActive)

	_, err := NewUniversityMajorService(db).CreateUniversityMajor(ctx, CreateUniversityMajorInput{
		UniversityID: university.ID,
		MajorID:      major.ID,
		StudyLevels:  []model.StudyLevel{model.StudyLevelBachelor},
	})
	require.NoError(t, err)

	deleted, err := svc.DeleteUniversity(ctx, university.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	var remaining int64
	require.NoError(t, db.Model(&model.UniversityMajor{}).Count(&remaining).Error)
	assert.Zero(t, remaining)

	deleted, err = svc.DeleteUniversity(ctx, university.ID)
	require.NoError(t, err)
	assert.False(t, deleted)

	// The major is free to go once nothing offers it.
	deleted, err = NewMajorService(db).DeleteMajor(ctx, major.ID)
	require.NoError(t, err)
	assert.True(t, deleted)
}

func jsonUint(v uint) string {
	b, _ := json.Marshal(v)
	return string(b)
}
