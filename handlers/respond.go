package handlers

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/studyabroad/cms-api/services"
	"github.com/studyabroad/cms-api/utils/query"
	"github.com/studyabroad/cms-api/utils/response"
)

// RespondError renders a service error. Business-rule failures map to 4xx;
// anything else is logged and rendered as a 500.
func RespondError(c *fiber.Ctx, err error) error {
	var svcErr *services.ServiceError
	if errors.As(err, &svcErr) {
		switch {
		case errors.Is(err, services.ErrValidation):
			return response.ValidationError(c, svcErr.Message, svcErr.Fields)
		case errors.Is(err, services.ErrReferenceNotFound):
			return response.Error(c, fiber.StatusBadRequest, svcErr.Message, "REFERENCE_NOT_FOUND")
		case errors.Is(err, services.ErrDuplicate):
			return response.Conflict(c, svcErr.Message, "DUPLICATE")
		case errors.Is(err, services.ErrDependency):
			return response.Conflict(c, svcErr.Message, "HAS_DEPENDENTS")
		}
	}

	log.Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Interface("request_id", c.Locals("requestid")).
		Msg("request failed")
	return response.InternalServerError(c, "")
}

// ParseID reads a positive numeric route parameter.
func ParseID(c *fiber.Ctx, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Params(name), 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid %s", name)
	}
	return uint(id), nil
}

// PageParams reads ?page= and ?limit=. Bad or missing values fall back to the defaults.
func PageParams(c *fiber.Ctx) query.Params {
	return query.NewParams(c.QueryInt("page", query.DefaultPage), c.QueryInt("limit", query.DefaultLimit))
}

// QueryUint returns a pointer to a numeric query value, or nil when absent.
func QueryUint(c *fiber.Ctx, key string) (*uint, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", key)
	}
	u := uint(v)
	return &u, nil
}

// QueryBool returns a pointer to a boolean query value, or nil when absent.
func QueryBool(c *fiber.Ctx, key string) (*bool, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", key)
	}
	return &v, nil
}

// QueryString returns a pointer to a non-blank query value, or nil.
func QueryString(c *fiber.Ctx, key string) *string {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil
	}
	return &raw
}

// QueryEnum converts a non-blank query value into T. Membership is checked by the service.
func QueryEnum[T ~string](c *fiber.Ctx, key string) *T {
	raw := QueryString(c, key)
	if raw == nil {
		return nil
	}
	v := T(*raw)
	return &v
}

// QueryDate accepts either RFC 3339 or a bare YYYY-MM-DD date. With endOfDay a
// bare date covers the whole day.
func QueryDate(c *fiber.Ctx, key string, endOfDay bool) (*time.Time, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return nil, nil
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return &t, nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil, fmt.Errorf("invalid %s", key)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

// Paged renders a query.Page with the standard pagination envelope.
func Paged[T any](c *fiber.Ctx, page query.Page[T]) error {
	return response.Paginated(c, page.Data, response.PaginationMeta{
		CurrentPage: page.Page,
		PerPage:     page.Limit,
		Total:       page.Total,
		TotalPages:  page.TotalPages(),
	})
}
