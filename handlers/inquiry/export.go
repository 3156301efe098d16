package inquiry

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/studyabroad/cms-api/handlers"
	"github.com/studyabroad/cms-api/model"
	"github.com/studyabroad/cms-api/utils/response"
)

var exportHeader = []string{
	"id", "full_name", "email", "phone", "whatsapp", "desired_country", "study_level",
	"desired_major", "message", "source_page", "language_code", "status", "notes", "created_at",
}

// ExportInquiries handles GET /api/v1/admin/inquiries/export. It accepts the
// list filters and streams every match as CSV.
func (h *InquiryHandler) ExportInquiries(c *fiber.Ctx) error {
	filter, err := h.filter(c)
	if err != nil {
		return response.BadRequest(c, err.Error())
	}

	inquiries, err := h.inquiries.ExportStudentInquiries(c.UserContext(), filter)
	if err != nil {
		return handlers.RespondError(c, err)
	}

	body, err := writeCSV(inquiries)
	if err != nil {
		return handlers.RespondError(c, err)
	}

	filename := fmt.Sprintf("inquiries-%s.csv", time.Now().Format("20060102-150405"))
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(body)
}

func writeCSV(inquiries []model.StudentInquiry) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, q := range inquiries {
		level := ""
		if q.StudyLevel != nil {
			level = string(*q.StudyLevel)
		}
		row := []string{
			strconv.FormatUint(uint64(q.ID), 10),
			cell(q.FullName),
			cell(q.Email),
			cell(q.Phone),
			cell(deref(q.Whatsapp)),
			cell(deref(q.DesiredCountry)),
			level,
			cell(deref(q.DesiredMajor)),
			cell(deref(q.Message)),
			cell(deref(q.SourcePage)),
			string(q.LanguageCode),
			string(q.Status),
			cell(deref(q.Notes)),
			q.CreatedAt.UTC().Format(time.RFC3339),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}

// cell keeps spreadsheet applications from evaluating submitted text as a
// formula by prefixing a quote to values that start with a trigger character.
func cell(s string) string {
	if s == "" {
		return s
	}
	switch s[0] {
	case '=', '+', '-', '@', '\t', '\r':
		return "'" + s
	}
	return s
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
