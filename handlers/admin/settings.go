package admin

import (
	"github.com/gofiber/fiber/v2"
	"github.com/studyabroad/cms-api/handlers"
	"github.com/studyabroad/cms-api/services"
	"github.com/studyabroad/cms-api/utils/response"
)

// ListSettings retrieves all settings, or one category with ?category=
// GET /admin/settings
func (h *AdminHandler) ListSettings(c *fiber.Ctx) error {
	ctx := c.UserContext()

	if category := handlers.QueryString(c, "category"); category != nil {
		settings, err := h.settings.GetSettingsByCategory(ctx, *category)
		if err != nil {
			return handlers.RespondError(c, err)
		}
		return response.Success(c, settings)
	}

	settings, err := h.settings.GetAllSettings(ctx)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Success(c, settings)
}

// GetEmailSettings retrieves the email category
// GET /admin/settings/email
func (h *AdminHandler) GetEmailSettings(c *fiber.Ctx) error {
	settings, err := h.settings.GetEmailSettings(c.UserContext())
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Success(c, settings)
}

// GetSEOSettings retrieves the seo category
// GET /admin/settings/seo
func (h *AdminHandler) GetSEOSettings(c *fiber.Ctx) error {
	settings, err := h.settings.GetSEOSettings(c.UserContext())
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Success(c, settings)
}

// GetSetting retrieves a specific setting by key
// GET /admin/settings/:key
func (h *AdminHandler) GetSetting(c *fiber.Ctx) error {
	setting, err := h.settings.GetSettingByKey(c.UserContext(), c.Params("key"))
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if setting == nil {
		return response.NotFound(c, "Setting not found")
	}
	return response.Success(c, setting)
}

// UpdateSetting creates or overwrites one setting
// PUT /admin/settings/:key
func (h *AdminHandler) UpdateSetting(c *fiber.Ctx) error {
	var req services.UpdateSettingInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.Key = c.Params("key")

	setting, err := h.settings.UpdateSetting(c.UserContext(), req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.SuccessWithMessage(c, "Setting updated successfully", setting)
}

// UpdateSettings writes a batch of settings in one transaction
// PUT /admin/settings
func (h *AdminHandler) UpdateSettings(c *fiber.Ctx) error {
	var req services.UpdateMultipleSettingsInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	settings, err := h.settings.UpdateMultipleSettings(c.UserContext(), req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.SuccessWithMessage(c, "Settings updated successfully", settings)
}

// DeleteSetting deletes a setting
// DELETE /admin/settings/:key
func (h *AdminHandler) DeleteSetting(c *fiber.Ctx) error {
	key := c.Params("key")

	deleted, err := h.settings.DeleteSetting(c.UserContext(), key)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if !deleted {
		return response.NotFound(c, "Setting not found")
	}
	return response.SuccessWithMessage(c, "Setting deleted successfully", fiber.Map{"key": key})
}

// GetSupportedLanguages is public: the site reads it to build its locale switcher
// GET /settings/languages
func (h *AdminHandler) GetSupportedLanguages(c *fiber.Ctx) error {
	languages, err := h.settings.GetSupportedLanguages(c.UserContext())
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Success(c, languages)
}
