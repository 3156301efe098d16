package admin

import (
	"errors"
	"io"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/studyabroad/cms-api/handlers"
	"github.com/studyabroad/cms-api/services/storage"
	"github.com/studyabroad/cms-api/utils/response"
)

// UploadMedia stores an image for a country, university, major or article.
// Form fields: file (the image) and folder.
// POST /admin/media
func (h *AdminHandler) UploadMedia(c *fiber.Ctx) error {
	if h.media == nil {
		return response.ServiceUnavailable(c, "Media storage is not configured")
	}

	folder := strings.TrimSpace(c.FormValue("folder"))
	if !storage.Folders[folder] {
		return response.BadRequest(c, "Invalid folder. Must be one of: countries, universities, majors, articles")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "File is required")
	}
	if file.Size > storage.MaxImageSize {
		return response.BadRequest(c, "File size exceeds maximum allowed size of 10MB")
	}

	content, err := file.Open()
	if err != nil {
		return response.InternalServerError(c, "Failed to open file")
	}
	defer content.Close()

	data, err := io.ReadAll(io.LimitReader(content, storage.MaxImageSize+1))
	if err != nil {
		return response.InternalServerError(c, "Failed to read file")
	}

	key, url, err := h.media.UploadImage(c.UserContext(), folder, data)
	switch {
	case errors.Is(err, storage.ErrUnsupportedType):
		return response.BadRequest(c, "Unsupported image type. Allowed: jpeg, png, webp, gif")
	case errors.Is(err, storage.ErrTooLarge):
		return response.BadRequest(c, "File size exceeds maximum allowed size of 10MB")
	case errors.Is(err, storage.ErrInvalidFolder):
		return response.BadRequest(c, err.Error())
	case err != nil:
		return handlers.RespondError(c, err)
	}

	return response.Created(c, fiber.Map{
		"key": key,
		"url": url,
	})
}

// DeleteMedia removes a previously uploaded object
// DELETE /admin/media?key=
func (h *AdminHandler) DeleteMedia(c *fiber.Ctx) error {
	if h.media == nil {
		return response.ServiceUnavailable(c, "Media storage is not configured")
	}

	key := strings.TrimSpace(c.Query("key"))
	folder, _, found := strings.Cut(key, "/")
	if !found || !storage.Folders[folder] {
		return response.BadRequest(c, "Invalid media key")
	}

	if err := h.media.Delete(c.UserContext(), key); err != nil {
		return handlers.RespondError(c, err)
	}
	return response.SuccessWithMessage(c, "Media deleted successfully", fiber.Map{"key": key})
}
