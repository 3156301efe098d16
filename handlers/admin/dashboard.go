package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/studyabroad/cms-api/handlers"
	"github.com/studyabroad/cms-api/services"
	"github.com/studyabroad/cms-api/utils/response"
)

// GetDashboard retrieves the dashboard overview
// GET /admin/dashboard
func (h *AdminHandler) GetDashboard(c *fiber.Ctx) error {
	stats, err := h.dashboard.GetDashboardStats(c.UserContext())
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Success(c, stats)
}

// GetContentStats retrieves active/inactive counts per content type
// GET /admin/dashboard/content
func (h *AdminHandler) GetContentStats(c *fiber.Ctx) error {
	stats, err := h.dashboard.GetContentStats(c.UserContext())
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Success(c, stats)
}

// GetInquiryTrends retrieves daily inquiry counts
// GET /admin/dashboard/trends?days=30
func (h *AdminHandler) GetInquiryTrends(c *fiber.Ctx) error {
	trends, err := h.dashboard.GetInquiryTrends(c.UserContext(), c.QueryInt("days", services.DefaultTrendDays))
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Success(c, trends)
}
