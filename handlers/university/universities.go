package university

import (
	"github.com/gofiber/fiber/v2"
	"github.com/studyabroad/cms-api/handlers"
	"github.com/studyabroad/cms-api/model"
	"github.com/studyabroad/cms-api/services"
	"github.com/studyabroad/cms-api/utils/response"
)

// UniversityHandler handles university-related requests, including the
// majors each university offers
type UniversityHandler struct {
	universities *services.UniversityService
	majors       *services.MajorService
	offerings    *services.UniversityMajorService
}

// NewUniversityHandler creates a new university handler
func NewUniversityHandler(universities *services.UniversityService, majors *services.MajorService, offerings *services.UniversityMajorService) *UniversityHandler {
	return &UniversityHandler{
		universities: universities,
		majors:       majors,
		offerings:    offerings,
	}
}

func (h *UniversityHandler) filter(c *fiber.Ctx) (services.UniversityFilter, error) {
	countryID, err := handlers.QueryUint(c, "country_id")
	if err != nil {
		return services.UniversityFilter{}, err
	}
	return services.UniversityFilter{
		Params:    handlers.PageParams(c),
		CountryID: countryID,
		Status:    handlers.QueryEnum[model.Status](c, "status"),
		Search:    c.Query("search"),
	}, nil
}

// ListUniversities handles GET /api/v1/admin/universities
func (h *UniversityHandler) ListUniversities(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	page, err := h.universities.ListUniversities(c.UserContext(), filter)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return handlers.Paged(c, page)
}

// ListActiveUniversities handles GET /api/v1/universities
func (h *UniversityHandler) ListActiveUniversities(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	active := model.StatusActive
	filter.Status = &active

	page, err := h.universities.ListUniversities(c.UserContext(), filter)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return handlers.Paged(c, page)
}

// GetUniversity handles GET /api/v1/admin/universities/:id
func (h *UniversityHandler) GetUniversity(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	university, err := h.universities.GetUniversityByID(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if university == nil {
		return response.NotFound(c, "University not found")
	}
	return response.Success(c, university)
}

// GetUniversityBySlug handles GET /api/v1/universities/:slug and embeds the
// active majors it offers.
func (h *UniversityHandler) GetUniversityBySlug(c *fiber.Ctx) error {
	ctx := c.UserContext()

	university, err := h.universities.GetUniversityBySlug(ctx, c.Params("slug"))
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if university == nil || university.Status != model.StatusActive {
		return response.NotFound(c, "University not found")
	}

	majors, err := h.majors.GetMajorsByUniversity(ctx, university.ID)
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.Success(c, fiber.Map{
		"university": university,
		"majors":     majors,
	})
}

// CreateUniversity handles POST /api/v1/admin/universities
func (h *UniversityHandler) CreateUniversity(c *fiber.Ctx) error {
	var req services.CreateUniversityInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	university, err := h.universities.CreateUniversity(c.UserContext(), req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Created(c, university)
}

// UpdateUniversity handles PATCH /api/v1/admin/universities/:id
func (h *UniversityHandler) UpdateUniversity(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var req services.UpdateUniversityInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	university, err := h.universities.UpdateUniversity(c.UserContext(), id, req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if university == nil {
		return response.NotFound(c, "University not found")
	}
	return response.SuccessWithMessage(c, "University updated successfully", university)
}

// DeleteUniversity handles DELETE /api/v1/admin/universities/:id
func (h *UniversityHandler) DeleteUniversity(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	deleted, err := h.universities.DeleteUniversity(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if !deleted {
		return response.NotFound(c, "University not found")
	}
	return response.SuccessWithMessage(c, "University deleted successfully", fiber.Map{"id": id})
}
