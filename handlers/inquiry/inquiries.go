package inquiry

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/studyabroad/cms-api/handlers"
	"github.com/studyabroad/cms-api/model"
	"github.com/studyabroad/cms-api/services"
	"github.com/studyabroad/cms-api/utils/response"
)

// InquiryHandler handles student inquiry requests
type InquiryHandler struct {
	inquiries *services.StudentInquiryService
}

// NewInquiryHandler creates a new inquiry handler
func NewInquiryHandler(inquiries *services.StudentInquiryService) *InquiryHandler {
	return &InquiryHandler{inquiries: inquiries}
}

func (h *InquiryHandler) filter(c *fiber.Ctx) (services.StudentInquiryFilter, error) {
	from, err := handlers.QueryDate(c, "date_from", false)
	if err != nil {
		return services.StudentInquiryFilter{}, err
	}
	to, err := handlers.QueryDate(c, "date_to", true)
	if err != nil {
		return services.StudentInquiryFilter{}, err
	}

	return services.StudentInquiryFilter{
		Params:       handlers.PageParams(c),
		Status:       handlers.QueryEnum[model.InquiryStatus](c, "status"),
		LanguageCode: handlers.QueryEnum[model.LanguageCode](c, "language_code"),
		DateFrom:     from,
		DateTo:       to,
		Search:       c.Query("search"),
	}, nil
}

// SubmitInquiry handles POST /api/v1/inquiries from the public site
func (h *InquiryHandler) SubmitInquiry(c *fiber.Ctx) error {
	var req services.CreateStudentInquiryInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if req.SourcePage == nil {
		if referer := strings.TrimSpace(c.Get(fiber.HeaderReferer)); referer != "" {
			req.SourcePage = &referer
		}
	}

	inquiry, err := h.inquiries.CreateStudentInquiry(c.UserContext(), req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(response.Response{
		Success: true,
		Message: "Inquiry submitted successfully",
		Data:    fiber.Map{"id": inquiry.ID},
	})
}

// ListInquiries handles GET /api/v1/admin/inquiries
func (h *InquiryHandler) ListInquiries(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	page, err := h.inquiries.ListStudentInquiries(c.UserContext(), filter)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return handlers.Paged(c, page)
}

// GetNewCount handles GET /api/v1/admin/inquiries/new-count
func (h *InquiryHandler) GetNewCount(c *fiber.Ctx) error {
	count, err := h.inquiries.GetNewInquiriesCount(c.UserContext())
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Success(c, fiber.Map{"count": count})
}

// ListByStatus handles GET /api/v1/admin/inquiries/status/:status
func (h *InquiryHandler) ListByStatus(c *fiber.Ctx) error {
	status := model.InquiryStatus(strings.ToUpper(c.Params("status")))

	inquiries, err := h.inquiries.GetInquiriesByStatus(c.UserContext(), status)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	return response.Success(c, inquiries)
}

// GetInquiry handles GET /api/v1/admin/inquiries/:id
func (h *InquiryHandler) GetInquiry(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	inquiry, err := h.inquiries.GetStudentInquiryByID(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if inquiry == nil {
		return response.NotFound(c, "Inquiry not found")
	}
	return response.Success(c, inquiry)
}

// UpdateInquiry handles PATCH /api/v1/admin/inquiries/:id
func (h *InquiryHandler) UpdateInquiry(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	var req services.UpdateStudentInquiryInput
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	inquiry, err := h.inquiries.UpdateStudentInquiry(c.UserContext(), id, req)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if inquiry == nil {
		return response.NotFound(c, "Inquiry not found")
	}
	return response.SuccessWithMessage(c, "Inquiry updated successfully", inquiry)
}

// DeleteInquiry handles DELETE /api/v1/admin/inquiries/:id
func (h *InquiryHandler) DeleteInquiry(c *fiber.Ctx) error {
	id, err := handlers.ParseID(c, "id")
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	deleted, err := h.inquiries.DeleteStudentInquiry(c.UserContext(), id)
	if err != nil {
		return handlers.RespondError(c, err)
	}
	if !deleted {
		return response.NotFound(c, "Inquiry not found")
	}
	return response.SuccessWithMessage(c, "Inquiry deleted successfully", fiber.Map{"id": id})
}
