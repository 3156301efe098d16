package services

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyabroad/cms-api/model"
	"github.com/studyabroad/cms-api/utils/optional"
	"gorm.io/gorm"
)

func offeringFixture(t *testing.T, db *gorm.DB) (*model.University, *model.Major) {
	t.Helper()
	country := mustCountry(t, db, "turkey", model.StatusActive)
	return mustUniversity(t, db, country.ID, "itu"), mustMajor(t, db, "architecture", model.StatusActive)
}

func TestUniversityMajorService_TuitionIsExact(t *testing.T) {
	db := newTestDB(t)
	svc := NewUniversityMajorService(db)
	ctx := context.Background()
	university, major := offeringFixture(t, db)

	var in CreateUniversityMajorInput
	require.NoError(t, json.Unmarshal([]byte(`{
		"study_levels": ["BACHELOR", "MASTER"],
		"tuition_fee_min": 5000.50,
		"tuition_fee_max": "12000.10",
		"currency": "USD",
		"duration_years": 4
	}`), &in))
	in.UniversityID, in.MajorID = university.ID, major.ID

	created, err := svc.CreateUniversityMajor(ctx, in)
	require.NoError(t, err)
	assert.Equal(t, "5000.50", created.TuitionFeeMin.String())

	for i := 0; i < 2; i++ {
		got, err := svc.GetUniversityMajorDetails(ctx, university.ID, major.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "5000.50", got.TuitionFeeMin.String())
		assert.Equal(t, "12000.10", got.TuitionFeeMax.String())
		assert.Equal(t, []model.StudyLevel{model.StudyLevelBachelor, model.StudyLevelMaster}, []model.StudyLevel(got.StudyLevels))
		require.NotNil(t, got.University)
		require.NotNil(t, got.Major)
		assert.Equal(t, "itu", got.University.Slug)

		encoded, err := json.Marshal(got)
		require.NoError(t, err)
		assert.Contains(t, string(encoded), `"tuition_fee_min":"5000.50"`)
	}
}

func TestUniversityMajorService_CreateRules(t *testing.T) {
	db := newTestDB(t)
	svc := NewUniversityMajorService(db)
	ctx := context.Background()
	university, major := offeringFixture(t, db)

	valid := CreateUniversityMajorInput{
		UniversityID: university.ID,
		MajorID:      major.ID,
		StudyLevels:  []model.StudyLevel{model.StudyLevelPhD},
	}

	t.Run("empty study levels", func(t *testing.T) {
		in := valid
		in.StudyLevels = nil
		_, err := svc.CreateUniversityMajor(ctx, in)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("unknown study level", func(t *testing.T) {
		in := valid
		in.StudyLevels = []model.StudyLevel{"POSTDOC"}
		_, err := svc.CreateUniversityMajor(ctx, in)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("min above max", func(t *testing.T) {
		in := valid
		in.TuitionFeeMin = model.MustAmount("9000")
		in.TuitionFeeMax = model.MustAmount("100")
		_, err := svc.CreateUniversityMajor(ctx, in)
		require.ErrorIs(t, err, ErrValidation)
	})

	t.Run("fee out of column range", func(t *testing.T) {
		for _, fee := range []string{"-1", "100000000", "12.345"} {
			in := valid
			in.TuitionFeeMax = model.MustAmount(fee)
			_, err := svc.CreateUniversityMajor(ctx, in)
			require.ErrorIs(t, err, ErrValidation, fee)
		}
	})

	t.Run("missing university", func(t *testing.T) {
		in := valid
		in.UniversityID = 999
		_, err := svc.CreateUniversityMajor(ctx, in)
		require.ErrorIs(t, err, ErrReferenceNotFound)
		assert.Contains(t, err.Error(), "university with id 999 not found")
	})

	t.Run("missing major", func(t *testing.T) {
		in := valid
		in.MajorID = 999
		_, err := svc.CreateUniversityMajor(ctx, in)
		require.ErrorIs(t, err, ErrReferenceNotFound)
	})

	t.Run("duplicate pair", func(t *testing.T) {
		_, err := svc.CreateUniversityMajor(ctx, valid)
		require.NoError(t, err)
		_, err = svc.CreateUniversityMajor(ctx, valid)
		require.ErrorIs(t, err, ErrDuplicate)

		rows, err := svc.GetUniversityMajors(ctx, university.ID)
		require.NoError(t, err)
		assert.Len(t, rows, 1)
	})
}

func TestUniversityMajorService_LargestStorableFee(t *testing.T) {
	db := newTestDB(t)
	svc := NewUniversityMajorService(db)
	university, major := offeringFixture(t, db)

	created, err := svc.CreateUniversityMajor(context.Background(), CreateUniversityMajorInput{
		UniversityID:  university.ID,
		MajorID:       major.ID,
		StudyLevels:   []model.StudyLevel{model.StudyLevelMaster},
		TuitionFeeMax: model.MustAmount("99999999.99"),
	})
	require.NoError(t, err)
	assert.Equal(t, "99999999.99", created.TuitionFeeMax.String())
}

func TestUniversityMajorService_UpdateAndDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewUniversityMajorService(db)
	ctx := context.Background()
	university, major := offeringFixture(t, db)

	_, err := svc.CreateUniversityMajor(ctx, CreateUniversityMajorInput{
		UniversityID:  university.ID,
		MajorID:       major.ID,
		StudyLevels:   []model.StudyLevel{model.StudyLevelBachelor},
		TuitionFeeMin: model.MustAmount("3000"),
		TuitionFeeMax: model.MustAmount("4000"),
		Currency:      strPtr("EUR"),
	})
	require.NoError(t, err)

	_, err = svc.UpdateUniversityMajor(ctx, university.ID, major.ID, UpdateUniversityMajorInput{
		TuitionFeeMin: optional.Value(model.MustAmount("4500")),
	})
	require.ErrorIs(t, err, ErrValidation)

	_, err = svc.UpdateUniversityMajor(ctx, university.ID, major.ID, UpdateUniversityMajorInput{
		StudyLevels: optional.Of([]model.StudyLevel{}),
	})
	require.ErrorIs(t, err, ErrValidation)

	updated, err := svc.UpdateUniversityMajor(ctx, university.ID, major.ID, UpdateUniversityMajorInput{
		StudyLevels:   optional.Of([]model.StudyLevel{model.StudyLevelMaster, model.StudyLevelMaster}),
		TuitionFeeMax: optional.Null[model.Amount](),
		Currency:      optional.Null[string](),
	})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, []model.StudyLevel{model.StudyLevelMaster}, []model.StudyLevel(updated.StudyLevels))
	assert.Equal(t, "3000.00", updated.TuitionFeeMin.String())
	assert.False(t, updated.TuitionFeeMax.Valid)
	assert.Nil(t, updated.Currency)

	missing, err := svc.UpdateUniversityMajor(ctx, university.ID, 999, UpdateUniversityMajorInput{})
	require.NoError(t, err)
	assert.Nil(t, missing)

	deleted, err := svc.DeleteUniversityMajor(ctx, university.ID, major.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = svc.DeleteUniversityMajor(ctx, university.ID, major.ID)
	require.NoError(t, err)
	assert.False(t, deleted)
}
