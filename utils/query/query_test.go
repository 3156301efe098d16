package query

import (
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyabroad/cms-api/utils/optional"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type item struct {
	ID        uint `gorm:"primaryKey"`
	Name      string
	Kind      string
	CreatedAt time.Time
}

func openDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(&item{}))
	return db
}

func seed(t *testing.T, db *gorm.DB, n int) {
	t.Helper()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i := 0; i < n; i++ {
		kind := "odd"
		if i%2 == 0 {
			kind = "even"
		}
		require.NoError(t, db.Create(&item{
			Name:      fmt.Sprintf("Item_%02d", i),
			Kind:      kind,
			CreatedAt: base.Add(time.Duration(i) * time.Hour),
		}).Error)
	}
}

func TestNewParams(t *testing.T) {
	tests := []struct {
		name          string
		page, limit   int
		expectedPage  int
		expectedLimit int
	}{
		{"defaults", 0, 0, 1, 20},
		{"negative", -3, -1, 1, 20},
		{"capped", 2, 500, 2, 100},
		{"kept", 4, 15, 4, 15},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := NewParams(tt.page, tt.limit)
			assert.Equal(t, tt.expectedPage, p.Page)
			assert.Equal(t, tt.expectedLimit, p.Limit)
		})
	}

	assert.Equal(t, 30, NewParams(3, 15).Offset())
}

func TestPaginateTotalsIndependentOfPage(t *testing.T) {
	db := openDB(t)
	seed(t, db, 25)

	kind := "even"
	var seen int
	for page := 1; page <= 3; page++ {
		res, err := Paginate[item](Equal(db, "kind", &kind), Params{Page: page, Limit: 5})
		require.NoError(t, err)
		assert.EqualValues(t, 13, res.Total)
		seen += len(res.Data)
	}
	assert.Equal(t, 13, seen)

	res, err := Paginate[item](db, Params{Page: 10, Limit: 5})
	require.NoError(t, err)
	assert.EqualValues(t, 25, res.Total)
	assert.NotNil(t, res.Data)
	assert.Empty(t, res.Data)
	assert.Equal(t, 5, res.TotalPages())
}

func TestPaginateOrdersNewestFirst(t *testing.T) {
	db := openDB(t)
	seed(t, db, 3)

	same := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	require.NoError(t, db.Create(&item{Name: "tie_a", CreatedAt: same}).Error)
	require.NoError(t, db.Create(&item{Name: "tie_b", CreatedAt: same}).Error)

	res, err := Paginate[item](db, Params{})
	require.NoError(t, err)
	require.Len(t, res.Data, 5)
	assert.Equal(t, "Item_02", res.Data[0].Name)
	assert.Equal(t, "tie_b", res.Data[3].Name)
	assert.Equal(t, "tie_a", res.Data[4].Name)
}

func TestSearch(t *testing.T) {
	db := openDB(t)
	seed(t, db, 12)

	res, err := Paginate[item](Search(db, "  ITEM_1 ", "name"), Params{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, res.Total)

	res, err = Paginate[item](Search(db, "", "name"), Params{})
	require.NoError(t, err)
	assert.EqualValues(t, 12, res.Total)

	// wildcards in the term are literal
	res, err = Paginate[item](Search(db, "%", "name"), Params{})
	require.NoError(t, err)
	assert.EqualValues(t, 0, res.Total)
}

func TestBetweenIsInclusive(t *testing.T) {
	db := openDB(t)
	seed(t, db, 5)

	from := time.Date(2024, 1, 1, 1, 0, 0, 0, time.UTC)
	to := time.Date(2024, 1, 1, 3, 0, 0, 0, time.UTC)
	res, err := Paginate[item](Between(db, "created_at", &from, &to), Params{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.Total)
}

func TestChanges(t *testing.T) {
	c := Changes{}
	SetField(c, "name", optional.Of("x"))
	SetField(c, "kind", optional.Field[string]{})
	SetNullable(c, "notes", optional.Null[string]())
	SetNullable(c, "rank", optional.Nullable[int]{})

	now := time.Now()
	c.Touch(now)

	assert.Equal(t, map[string]interface{}{
		"name":       "x",
		"notes":      nil,
		"updated_at": now,
	}, c.Map())
}
