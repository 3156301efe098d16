package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/studyabroad/cms-api/services"
)

type rendered struct {
	Success bool              `json:"success"`
	Data    map[string]string `json:"data"`
	Error   struct {
		Code    string `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

func render(t *testing.T, err error) (int, rendered) {
	t.Helper()

	app := fiber.New()
	app.Get("/", func(c *fiber.Ctx) error { return RespondError(c, err) })

	resp, testErr := app.Test(httptest.NewRequest("GET", "/", nil), -1)
	require.NoError(t, testErr)
	body, readErr := io.ReadAll(resp.Body)
	require.NoError(t, readErr)

	var out rendered
	require.NoError(t, json.Unmarshal(body, &out), string(body))
	return resp.StatusCode, out
}

func TestRespondError(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"reference", &services.ServiceError{Kind: services.ErrReferenceNotFound, Message: "country with id 9 not found"}, fiber.StatusBadRequest, "REFERENCE_NOT_FOUND"},
		{"duplicate", &services.ServiceError{Kind: services.ErrDuplicate, Message: "slug taken"}, fiber.StatusConflict, "DUPLICATE"},
		{"dependents", fmt.Errorf("delete: %w", &services.ServiceError{Kind: services.ErrDependency, Message: "has universities"}), fiber.StatusConflict, "HAS_DEPENDENTS"},
		{"internal", errors.New("connection reset"), fiber.StatusInternalServerError, "INTERNAL_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, out := render(t, tt.err)
			assert.Equal(t, tt.status, status)
			assert.False(t, out.Success)
			assert.Equal(t, tt.code, out.Error.Code)
		})
	}
}

func TestRespondError_ValidationCarriesFields(t *testing.T) {
	status, out := render(t, &services.ServiceError{
		Kind:    services.ErrValidation,
		Message: "Invalid email format",
		Fields:  map[string]string{"email": "Invalid email format"},
	})

	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Equal(t, "VALIDATION_ERROR", out.Error.Code)
	assert.Equal(t, "Invalid email format", out.Error.Message)
	assert.Equal(t, map[string]string{"email": "Invalid email format"}, out.Data)

	status, out = render(t, &services.ServiceError{Kind: services.ErrValidation, Message: "min above max"})
	assert.Equal(t, fiber.StatusUnprocessableEntity, status)
	assert.Nil(t, out.Data)
}
