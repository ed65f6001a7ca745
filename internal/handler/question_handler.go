package handler

import (
	"strconv"

	"question-bank/internal/domain"
	"question-bank/internal/dto"
	"question-bank/internal/service"
	"question-bank/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// QuestionHandler handles stored-question endpoints
type QuestionHandler struct {
	imports   service.ImportService
	exports   service.ExportService
	validator *validation.Validator
}

// NewQuestionHandler creates a new QuestionHandler instance
func NewQuestionHandler(imports service.ImportService, exports service.ExportService, validator *validation.Validator) *QuestionHandler {
	return &QuestionHandler{imports: imports, exports: exports, validator: validator}
}

// Register mounts the question routes on router.
func (h *QuestionHandler) Register(router fiber.Router) {
	questions := router.Group("/questions")
	questions.Post("/", h.SaveQuestion)
	questions.Get("/export", h.Export)
	questions.Get("/count", h.Count)
}

// SaveQuestion godoc
// @Summary Save a single question
// @Description Validates and stores one record from the single-record edit form
// @Tags questions
// @Accept json
// @Produce json
// @Param record body domain.QuestionRecord true "Question record"
// @Success 201 {object} dto.SaveQuestionResponse
// @Failure 422 {object} middleware.ValidationErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /questions [post]
func (h *QuestionHandler) SaveQuestion(c *fiber.Ctx) error {
	var rec domain.QuestionRecord
	if err := c.BodyParser(&rec); err != nil {
		return domain.NewInvalidInputError("request body must be a question record")
	}
	resp, err := h.imports.SaveQuestion(c.UserContext(), rec)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Export godoc
// @Summary Export questions as CSV
// @Description Writes stored questions in the import format, so the output can be pasted back in
// @Tags questions
// @Produce plain
// @Param section query string false "Section filter"
// @Success 200 {string} string "CSV, one question per line"
// @Failure 422 {object} middleware.ValidationErrorResponse
// @Router /questions/export [get]
func (h *QuestionHandler) Export(c *fiber.Ctx) error {
	section := c.Query("section")
	if errs := h.validator.ValidateSection(section); len(errs) > 0 {
		return errs
	}
	c.Set(fiber.HeaderContentType, "text/csv; charset=utf-8")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="questions.csv"`)
	n, err := h.exports.Export(c.UserContext(), c, domain.Section(section))
	if err != nil {
		return err
	}
	c.Set("X-Question-Count", strconv.Itoa(n))
	return nil
}

// Count godoc
// @Summary Count stored questions
// @Tags questions
// @Produce json
// @Param section query string false "Section filter"
// @Success 200 {object} dto.QuestionCountResponse
// @Router /questions/count [get]
func (h *QuestionHandler) Count(c *fiber.Ctx) error {
	section := c.Query("section")
	if errs := h.validator.ValidateSection(section); len(errs) > 0 {
		return errs
	}
	n, err := h.exports.Count(c.UserContext(), domain.Section(section))
	if err != nil {
		return err
	}
	return c.JSON(dto.QuestionCountResponse{Section: section, Count: n})
}
