package university

import (
	"github.com/gofiber/fiber/v2"
	"github.com/studyabroad/cms-api/handlers"
	"github.com/studyabroad/cms-api/services"
	"github.com/studyabroad/cms-api/utils/response"
)

// ListOfferings handles GET /api/v1/universities/:id/majors
func (h *UniversityHandler) ListOfferings(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	offerings, err := h.offerings.GetUniversityMajors(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Success(c, offerings)
}

// GetOffering handles GET /api/v1/universities/:id/majors/:major_id
func (h *UniversityHandler) GetOffering(c *fiber.Ctx) error {
	universityID, majorID, err := offeringIDs(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	offering, err := h.offerings.GetUniversityMajorDetails(c.UserContext(), universityID, majorID)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if offering == nil {
		return response.NotFound(c, "Offering not found")
	}
	return response.Success(c, offering)
}

// CreateOffering handles POST /api/v1/admin/universities/:id/majors.
// The university comes from the path; the body names the major.
func (h *UniversityHandler) CreateOffering(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var req services.CreateUniversityMajorInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}
	req.UniversityID = id

	offering, err := h.offerings.CreateUniversityMajor(c.UserContext(), req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Created(c, offering)
}

// UpdateOffering handles PATCH /api/v1/admin/universities/:id/majors/:major_id
func (h *UniversityHandler) UpdateOffering(c *fiber.Ctx) error {
	universityID, majorID, err := offeringIDs(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var req services.UpdateUniversityMajorInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	offering, err := h.offerings.UpdateUniversityMajor(c.UserContext(), universityID, majorID, req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if offering == nil {
		return response.NotFound(c, "Offering not found")
	}
	return response.SuccessWithMessage(c, "Offering updated successfully", offering)
}

// DeleteOffering handles DELETE /api/v1/admin/universities/:id/majors/:major_id
func (h *UniversityHandler) DeleteOffering(c *fiber.Ctx) error {
	universityID, majorID, err := offeringIDs(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	deleted, err := h.offerings.DeleteUniversityMajor(c.UserContext(), universityID, majorID)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if !deleted {
		return response.NotFound(c, "Offering not found")
	}
	return response.SuccessWithMessage(c, "Offering deleted successfully", fiber.Map{
		"university_id": universityID,
		"major_id":      majorID,
	})
}

func offeringIDs(c *fiber.Ctx) (uint, uint, error) {
	universityID, err := handlers.ParseID(c, "id")
	if err != nil {
		return 0, 0, err
	}
	majorID, err := handlers.ParseID(c, "major_id")
	if err != nil {
		return 0, 0, err
	}
	return universityID, majorID, nil
}
