package faq

import (
	"github.com/gofiber/fiber/v2"
	"github.com/studyabroad/cms-api/handlers"
	"github.com/studyabroad/cms-api/services"
	"github.com/studyabroad/cms-api/utils/response"
)

// FAQHandler handles FAQ requests
type FAQHandler struct {
	faqs *services.FAQService
}

// NewFAQHandler creates a new FAQ handler
func NewFAQHandler(faqs *services.FAQService) *FAQHandler {
	return &FAQHandler{faqs: faqs}
}

// ListActiveFAQs handles GET /api/v1/faqs?category=
func (h *FAQHandler) ListActiveFAQs(c *fiber.Ctx) error {
	faqs, err := h.faqs.GetActiveFAQs(c.UserContext(), handlers.QueryString(c, "category"))
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Success(c, faqs)
}

// ListFAQs handles GET /api/v1/admin/faqs?category=
func (h *FAQHandler) ListFAQs(c *fiber.Ctx) error {
	faqs, err := h.faqs.GetFAQs(c.UserContext(), handlers.QueryString(c, "category"))
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Success(c, faqs)
}

// GetFAQ handles GET /api/v1/admin/faqs/:id
func (h *FAQHandler) GetFAQ(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	faq, err := h.faqs.GetFAQByID(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if faq == nil {
		return response.NotFound(c, "FAQ not found")
	}
	return response.Success(c, faq)
}

// CreateFAQ handles POST /api/v1/admin/faqs
func (h *FAQHandler) CreateFAQ(c *fiber.Ctx) error {
	var req services.CreateFAQInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	faq, err := h.faqs.CreateFAQ(c.UserContext(), req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Created(c, faq)
}

// UpdateFAQ handles PATCH /api/v1/admin/faqs/:id
func (h *FAQHandler) UpdateFAQ(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var req services.UpdateFAQInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	faq, err := h.faqs.UpdateFAQ(c.UserContext(), id, req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if faq == nil {
		return response.NotFound(c, "FAQ not found")
	}
	return response.SuccessWithMessage(c, "FAQ updated successfully", faq)
}

// ReorderFAQs handles PUT /api/v1/admin/faqs/reorder
func (h *FAQHandler) ReorderFAQs(c *fiber.Ctx) error {
	var req services.ReorderFAQsInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if err := h.faqs.ReorderFAQs(c.UserContext(), req); err != nil {
		return handlers.RespondError(c, err)
	}
	return response.SuccessWithMessage(c, "FAQs reordered successfully", nil)
}

// DeleteFAQ handles DELETE /api/v1/admin/faqs/:id
func (h *FAQHandler) DeleteFAQ(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	deleted, err := h.faqs.DeleteFAQ(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if !deleted {
		return response.NotFound(c, "FAQ not found")
	}
	return response.SuccessWithMessage(c, "FAQ deleted successfully", fiber.Map{"id": id})
}
