package major

import (
	"github.com/gofiber/fiber/v2"
	"github.com/studyabroad/cms-api/handlers"
	"github.com/studyabroad/cms-api/model"
	"github.com/studyabroad/cms-api/services"
	"github.com/studyabroad/cms-api/utils/response"
)

// MajorHandler handles major-related requests
type MajorHandler struct {
	majors    *services.MajorService
	offerings *services.UniversityMajorService
	articles  *services.ArticleService
}

// NewMajorHandler creates a new major handler
func NewMajorHandler(majors *services.MajorService, offerings *services.UniversityMajorService, articles *services.ArticleService) *MajorHandler {
	return &MajorHandler{
		majors:    majors,
		offerings: offerings,
		articles:  articles,
	}
}

func (h *MajorHandler) filter(c *fiber.Ctx) (services.MajorFilter, error) {
	universityID, err := handlers.QueryUint(c, "university_id")
	if err != nil {
		return services.MajorFilter{}, err
	}
	return services.MajorFilter{
		Params:       handlers.PageParams(c),
		UniversityID: universityID,
		Status:       handlers.QueryEnum[model.Status](c, "status"),
		Search:       c.Query("search"),
	}, nil
}

// ListMajors handles GET /api/v1/admin/majors
func (h *MajorHandler) ListMajors(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	page, err := h.majors.ListMajors(c.UserContext(), filter)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return handlers.Paged(c, page)
}

// ListActiveMajors handles GET /api/v1/majors
func (h *MajorHandler) ListActiveMajors(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	active := model.StatusActive
	filter.Status = &active

	page, err := h.majors.ListMajors(c.UserContext(), filter)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return handlers.Paged(c, page)
}

// GetMajor handles GET /api/v1/admin/majors/:id
func (h *MajorHandler) GetMajor(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	major, err := h.majors.GetMajorByID(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if major == nil {
		return response.NotFound(c, "Major not found")
	}
	return response.Success(c, major)
}

// GetMajorBySlug handles GET /api/v1/majors/:slug with the universities offering it
func (h *MajorHandler) GetMajorBySlug(c *fiber.Ctx) error {
	ctx := c.UserContext()

	major, err := h.majors.GetMajorBySlug(ctx, c.Params("slug"))
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if major == nil {
		return response.NotFound(c, "Major not found")
	}

	offerings, err := h.offerings.GetMajorUniversities(ctx, major.ID)
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.Success(c, fiber.Map{
		"major":        major,
		"universities": offerings,
	})
}

// GetMajorArticles handles GET /api/v1/majors/:id/articles
func (h *MajorHandler) GetMajorArticles(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	articles, err := h.articles.GetArticlesByMajor(c.UserContext(), id, c.QueryInt("limit", 0))
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Success(c, articles)
}

// CreateMajor handles POST /api/v1/admin/majors
func (h *MajorHandler) CreateMajor(c *fiber.Ctx) error {
	var req services.CreateMajorInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	major, err := h.majors.CreateMajor(c.UserContext(), req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Created(c, major)
}

// UpdateMajor handles PATCH /api/v1/admin/majors/:id
func (h *MajorHandler) UpdateMajor(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var req services.UpdateMajorInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	major, err := h.majors.UpdateMajor(c.UserContext(), id, req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if major == nil {
		return response.NotFound(c, "Major not found")
	}
	return response.SuccessWithMessage(c, "Major updated successfully", major)
}

// DeleteMajor handles DELETE /api/v1/admin/majors/:id
func (h *MajorHandler) DeleteMajor(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	deleted, err := h.majors.DeleteMajor(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if !deleted {
		return response.NotFound(c, "Major not found")
	}
	return response.SuccessWithMessage(c, "Major deleted successfully", fiber.Map{"id": id})
}
