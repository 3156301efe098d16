package article

import (
	"github.com/gofiber/fiber/v2"
	"github.com/studyabroad/cms-api/handlers"
	"github.com/studyabroad/cms-api/model"
	"github.com/studyabroad/cms-api/services"
	"github.com/studyabroad/cms-api/utils/response"
)

// ArticleHandler handles article-related requests
type ArticleHandler struct {
	articles *services.ArticleService
}

// NewArticleHandler creates a new article handler
func NewArticleHandler(articles *services.ArticleService) *ArticleHandler {
	return &ArticleHandler{articles: articles}
}

func (h *ArticleHandler) filter(c *fiber.Ctx) (services.ArticleFilter, error) {
	countryID, err := handlers.QueryUint(c, "country_id")
	if err != nil {
		return services.ArticleFilter{}, err
	}
	majorID, err := handlers.QueryUint(c, "major_id")
	if err != nil {
		return services.ArticleFilter{}, err
	}
	featured, err := handlers.QueryBool(c, "is_featured")
	if err != nil {
		return services.ArticleFilter{}, err
	}

	return services.ArticleFilter{
		Params:     handlers.PageParams(c),
		CountryID:  countryID,
		MajorID:    majorID,
		Category:   handlers.QueryString(c, "category"),
		Status:     handlers.QueryEnum[model.Status](c, "status"),
		IsFeatured: featured,
		Search:     c.Query("search"),
	}, nil
}

// ListArticles handles GET /api/v1/admin/articles
func (h *ArticleHandler) ListArticles(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	page, err := h.articles.ListArticles(c.UserContext(), filter)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return handlers.Paged(c, page)
}

// ListPublishedArticles handles GET /api/v1/articles
func (h *ArticleHandler) ListPublishedArticles(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}
	active := model.StatusActive
	filter.Status = &active

	page, err := h.articles.ListArticles(c.UserContext(), filter)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return handlers.Paged(c, page)
}

// GetFeaturedArticles handles GET /api/v1/articles/featured
func (h *ArticleHandler) GetFeaturedArticles(c *fiber.Ctx) error {
	articles, err := h.articles.GetFeaturedArticles(c.UserContext(), c.QueryInt("limit", services.DefaultFeaturedLimit))
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Success(c, articles)
}

// GetArticleBySlug handles GET /api/v1/articles/:slug with up to
// DefaultRelatedLimit related articles.
func (h *ArticleHandler) GetArticleBySlug(c *fiber.Ctx) error {
	ctx := c.UserContext()

	article, err := h.articles.GetArticleBySlug(ctx, c.Params("slug"))
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if article == nil {
		return response.NotFound(c, "Article not found")
	}

	related, err := h.articles.GetRelatedArticles(ctx, article.ID, services.DefaultRelatedLimit)
	if err != nil {
		return handlers.RespondError(c, err)
	}

	return response.Success(c, fiber.Map{
		"article": article,
		"related": related,
	})
}

// GetArticle handles GET /api/v1/admin/articles/:id
func (h *ArticleHandler) GetArticle(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	article, err := h.articles.GetArticleByID(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if article == nil {
		return response.NotFound(c, "Article not found")
	}
	return response.Success(c, article)
}

// CreateArticle handles POST /api/v1/admin/articles
func (h *ArticleHandler) CreateArticle(c *fiber.Ctx) error {
	var req services.CreateArticleInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	article, err := h.articles.CreateArticle(c.UserContext(), req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Created(c, article)
}

// UpdateArticle handles PATCH /api/v1/admin/articles/:id
func (h *ArticleHandler) UpdateArticle(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var req services.UpdateArticleInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	article, err := h.articles.UpdateArticle(c.UserContext(), id, req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if article == nil {
		return response.NotFound(c, "Article not found")
	}
	return response.SuccessWithMessage(c, "Article updated successfully", article)
}

// DeleteArticle handles DELETE /api/v1/admin/articles/:id
func (h *ArticleHandler) DeleteArticle(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	deleted, err := h.articles.DeleteArticle(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if !deleted {
		return response.NotFound(c, "Article not found")
	}
	return response.SuccessWithMessage(c, "Article deleted successfully", fiber.Map{"id": id})
}
