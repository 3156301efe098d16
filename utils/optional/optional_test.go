package optional

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type patch struct {
	Name  Field[string]    `json:"name"`
	Notes Nullable[string] `json:"notes"`
	Rank  Nullable[int]    `json:"rank"`
}

func TestDecodeDistinguishesAbsentNullAndValue(t *testing.T) {
	var p patch
	require.NoError(t, json.Unmarshal([]byte(`{"notes": null, "rank": 7}`), &p))

	assert.False(t, p.Name.IsSet())

	assert.True(t, p.Notes.IsSet())
	assert.True(t, p.Notes.IsNull())
	assert.Nil(t, p.Notes.Ptr())

	rank, ok := p.Rank.Get()
	assert.True(t, ok)
	assert.Equal(t, 7, rank)
}

func TestFieldRejectsNull(t *testing.T) {
	var p patch
	err := json.Unmarshal([]byte(`{"name": null}`), &p)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrNull)
}

func TestValidationValue(t *testing.T) {
	assert.Nil(t, Field[string]{}.ValidationValue())
	assert.Nil(t, Null[string]().ValidationValue())

	v := Of("x").ValidationValue()
	require.NotNil(t, v)
	assert.Equal(t, "x", *v.(*string))
}

func TestFromPtr(t *testing.T) {
	assert.True(t, FromPtr[int](nil).IsNull())

	n := 3
	got, ok := FromPtr(&n).Get()
	assert.True(t, ok)
	assert.Equal(t, 3, got)
}
