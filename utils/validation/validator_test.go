package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyabroad/cms-api/utils/optional"
)

type color string

func (c color) IsValid() bool { return c == "red" || c == "blue" }

type createReq struct {
	Name  string  `json:"name" validate:"required"`
	Email string  `json:"email" validate:"required,email"`
	Color color   `json:"color" validate:"enum"`
	Tags  []color `json:"tags" validate:"required,min=1,dive,enum"`
}

type patchReq struct {
	Name  optional.Field[string]    `json:"name" validate:"omitempty,min=1"`
	Color optional.Field[color]     `json:"color" validate:"omitempty,enum"`
	Note  optional.Nullable[string] `json:"note" validate:"omitempty,max=5"`
}

func newTestValidator() *Validator {
	v := NewValidator()
	v.RegisterOptional(optional.Field[string]{}, optional.Field[color]{}, optional.Nullable[string]{})
	return v
}

func TestValidateStruct(t *testing.T) {
	v := newTestValidator()

	require.NoError(t, v.ValidateStruct(createReq{Name: "a", Email: "a@b.co", Color: "red", Tags: []color{"blue"}}))

	err := v.ValidateStruct(createReq{Email: "nope", Color: "green", Tags: []color{}})
	require.Error(t, err)

	fields := FormatValidationErrors(err)
	assert.Equal(t, "name is required", fields["name"])
	assert.Equal(t, "Invalid email format", fields["email"])
	assert.Contains(t, fields["color"], "unsupported value")
	assert.Contains(t, fields["tags"], "at least 1 item")
}

func TestValidateOptionalFields(t *testing.T) {
	v := newTestValidator()

	// absent and null fields are skipped
	require.NoError(t, v.ValidateStruct(patchReq{Note: optional.Null[string]()}))
	require.NoError(t, v.ValidateStruct(patchReq{Name: optional.Of("x"), Color: optional.Of(color("blue"))}))

	err := v.ValidateStruct(patchReq{Name: optional.Of(""), Color: optional.Of(color("green")), Note: optional.Value("too long")})
	require.Error(t, err)

	fields := FormatValidationErrors(err)
	assert.Len(t, fields, 3)
	assert.Contains(t, fields, "name")
	assert.Contains(t, fields, "color")
	assert.Contains(t, fields, "note")
}

func TestSanitizeString(t *testing.T) {
	assert.Equal(t, "turkey", SanitizeString("  tur\x00key \n"))
}

func TestSlugTag(t *testing.T) {
	v := NewValidator()
	type req struct {
		Slug string `json:"slug" validate:"required,slug"`
	}

	assert.NoError(t, v.ValidateStruct(req{Slug: "study-in-turkey-2025"}))
	for _, bad := range []string{"Turkey", "two words", "trailing-", "-leading", "a--b"} {
		err := v.ValidateStruct(req{Slug: bad})
		require.Error(t, err, bad)
		assert.Contains(t, FormatValidationErrors(err)["slug"], "slug")
	}
}
