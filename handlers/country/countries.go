package country

import (
	"github.com/gofiber/fiber/v2"
	"github.com/studyabroad/cms-api/handlers"
	"github.com/studyabroad/cms-api/model"
	"github.com/studyabroad/cms-api/services"
	"github.com/studyabroad/cms-api/utils/response"
)

// CountryHandler handles country-related requests
type CountryHandler struct {
	countries    *services.CountryService
	universities *services.UniversityService
	articles     *services.ArticleService
}

// NewCountryHandler creates a new country handler
func NewCountryHandler(countries *services.CountryService, universities *services.UniversityService, articles *services.ArticleService) *CountryHandler {
	return &CountryHandler{
		countries:    countries,
		universities: universities,
		articles:     articles,
	}
}

func (h *CountryHandler) filter(c *fiber.Ctx) services.CountryFilter {
	return services.CountryFilter{
		Params: handlers.PageParams(c),
		Status: handlers.QueryEnum[model.Status](c, "status"),
		Search: c.Query("search"),
	}
}

// ListCountries handles GET /api/v1/admin/countries
func (h *CountryHandler) ListCountries(c *fiber.Ctx) error {
	page, err := h.countries.ListCountries(c.UserContext(), h.filter(c))
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return handlers.Paged(c, page)
}

// ListActiveCountries handles GET /api/v1/countries
func (h *CountryHandler) ListActiveCountries(c *fiber.Ctx) error {
	filter := h.filter(c)
	active := model.StatusActive
	filter.Status = &active

	page, err := h.countries.ListCountries(c.UserContext(), filter)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return handlers.Paged(c, page)
}

// GetCountry handles GET /api/v1/admin/countries/:id
func (h *CountryHandler) GetCountry(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	country, err := h.countries.GetCountryByID(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if country == nil {
		return response.NotFound(c, "Country not found")
	}
	return response.Success(c, country)
}

// GetCountryBySlug handles GET /api/v1/countries/:slug and embeds the
// country's active universities.
func (h *CountryHandler) GetCountryBySlug(c *fiber.Ctx) error {
	ctx := c.UserContext()

	country, err := h.countries.GetCountryBySlug(ctx, c.Params("slug"))
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if country == nil || country.Status != model.StatusActive {
		return response.NotFound(c, "Country not found")
	}

	universities, err := h.universities.GetUniversitiesByCountry(ctx, country.ID)
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.Success(c, fiber.Map{
		"country":      country,
		"universities": universities,
	})
}

// GetCountryArticles handles GET /api/v1/countries/:id/articles
func (h *CountryHandler) GetCountryArticles(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	articles, err := h.articles.GetArticlesByCountry(c.UserContext(), id, c.QueryInt("limit", 0))
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Success(c, articles)
}

// CreateCountry handles POST /api/v1/admin/countries
func (h *CountryHandler) CreateCountry(c *fiber.Ctx) error {
	var req services.CreateCountryInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	country, err := h.countries.CreateCountry(c.UserContext(), req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Created(c, country)
}

// UpdateCountry handles PATCH /api/v1/admin/countries/:id
func (h *CountryHandler) UpdateCountry(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var req services.UpdateCountryInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	country, err := h.countries.UpdateCountry(c.UserContext(), id, req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if country == nil {
		return response.NotFound(c, "Country not found")
	}
	return response.SuccessWithMessage(c, "Country updated successfully", country)
}

// DeleteCountry handles DELETE /api/v1/admin/countries/:id
func (h *CountryHandler) DeleteCountry(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	deleted, err := h.countries.DeleteCountry(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if !deleted {
		return response.NotFound(c, "Country not found")
	}
	return response.SuccessWithMessage(c, "Country deleted successfully", fiber.Map{"id": id})
}
