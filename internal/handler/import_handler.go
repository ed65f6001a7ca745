package handler

import (
	"context"

	"question-bank/internal/adapter/terminal"
	"question-bank/internal/domain"
	"question-bank/internal/dto"
	"question-bank/internal/service"
	"question-bank/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// ImportHandler handles the CSV import wizard endpoints
type ImportHandler struct {
	service   service.ImportService
	validator *validation.Validator
}

// NewImportHandler creates a new ImportHandler instance
func NewImportHandler(service service.ImportService, validator *validation.Validator) *ImportHandler {
	return &ImportHandler{
		service:   service,
		validator: validator,
	}
}

// Register mounts the import routes on router.
func (h *ImportHandler) Register(router fiber.Router) {
	imports := router.Group("/imports")
	imports.Post("/preview", h.Preview)
	imports.Post("/", h.StartImport)
	imports.Get("/:id", h.GetSession)
	imports.Put("/:id/current", h.EditCurrent)
	imports.Post("/:id/advance", h.Advance)
	imports.Post("/:id/skip", h.Skip)
	imports.Post("/:id/retreat", h.Retreat)
	imports.Post("/:id/jump", h.JumpTo)
	imports.Post("/:id/bulk-commit", h.BulkCommit)
	imports.Post("/:id/finalize", h.Finalize)
	imports.Delete("/:id", h.Cancel)
}

func (h *ImportHandler) importText(c *fiber.Ctx) (string, error) {
	var req dto.ImportTextRequest
	if err := c.BodyParser(&req); err != nil {
		return "", domain.NewInvalidInputError("request body must be JSON with a text field")
	}
	if errs := h.validator.ValidateImportText(req.Text); len(errs) > 0 {
		return "", errs
	}
	return req.Text, nil
}

func (h *ImportHandler) sessionID(c *fiber.Ctx) (string, error) {
	id := c.Params("id")
	if errs := h.validator.ValidateSessionID(id); len(errs) > 0 {
		return "", errs
	}
	return id, nil
}

// Preview godoc
// @Summary Preview an import
// @Description Parses pasted CSV and reports records, rejected lines and warnings without opening a session
// @Tags imports
// @Accept json
// @Produce json
// @Param request body dto.ImportTextRequest true "Pasted CSV"
// @Success 200 {object} dto.ParseReportResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ValidationErrorResponse
// @Router /imports/preview [post]
func (h *ImportHandler) Preview(c *fiber.Ctx) error {
	text, err := h.importText(c)
	if err != nil {
		return err
	}
	report, err := h.service.Preview(c.UserContext(), text)
	if err != nil {
		return err
	}
	return c.JSON(report)
}

// StartImport godoc
// @Summary Start an import
// @Description One parsed record is returned for direct editing; two or more open a review session
// @Tags imports
// @Accept json
// @Produce json
// @Param request body dto.ImportTextRequest true "Pasted CSV"
// @Success 200 {object} dto.StartImportResponse "single record"
// @Success 201 {object} dto.StartImportResponse "review session"
// @Failure 422 {object} middleware.ErrorResponse
// @Router /imports [post]
func (h *ImportHandler) StartImport(c *fiber.Ctx) error {
	text, err := h.importText(c)
	if err != nil {
		return err
	}
	resp, err := h.service.StartImport(c.UserContext(), text)
	if err != nil {
		return err
	}
	if resp.Mode == dto.ModeSession {
		c.Status(fiber.StatusCreated)
	}
	return c.JSON(resp)
}

// GetSession godoc
// @Summary Get an import session
// @Tags imports
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Router /imports/{id} [get]
func (h *ImportHandler) GetSession(c *fiber.Ctx) error {
	id, err := h.sessionID(c)
	if err != nil {
		return err
	}
	view, err := h.service.GetSession(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// EditCurrent godoc
// @Summary Edit the current record
// @Description Replaces the user's version of the record under the cursor
// @Tags imports
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param record body domain.QuestionRecord true "Edited record"
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} middleware.ErrorResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /imports/{id}/current [put]
func (h *ImportHandler) EditCurrent(c *fiber.Ctx) error {
	id, err := h.sessionID(c)
	if err != nil {
		return err
	}
	var rec domain.QuestionRecord
	if err := c.BodyParser(&rec); err != nil {
		return domain.NewInvalidInputError("request body must be a question record")
	}
	view, err := h.service.EditCurrent(c.UserContext(), id, rec)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// Advance godoc
// @Summary Accept the current record
// @Description Validates the current record with the full rules and moves to the next one
// @Tags imports
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Failure 422 {object} middleware.ValidationErrorResponse
// @Router /imports/{id}/advance [post]
func (h *ImportHandler) Advance(c *fiber.Ctx) error {
	return h.step(c, h.service.Advance)
}

// Skip godoc
// @Summary Skip ahead
// @Description Accepts the current record with only section, domain and question type checked
// @Tags imports
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 422 {object} middleware.ValidationErrorResponse
// @Router /imports/{id}/skip [post]
func (h *ImportHandler) Skip(c *fiber.Ctx) error {
	return h.step(c, h.service.Skip)
}

// Retreat godoc
// @Summary Go back one record
// @Tags imports
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.SessionResponse
// @Failure 409 {object} middleware.ErrorResponse
// @Router /imports/{id}/retreat [post]
func (h *ImportHandler) Retreat(c *fiber.Ctx) error {
	return h.step(c, h.service.Retreat)
}

func (h *ImportHandler) step(c *fiber.Ctx, fn func(ctx context.Context, id string) (*dto.SessionResponse, error)) error {
	id, err := h.sessionID(c)
	if err != nil {
		return err
	}
	view, err := fn(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// JumpTo godoc
// @Summary Jump to an earlier record
// @Tags imports
// @Accept json
// @Produce json
// @Param id path string true "Session ID"
// @Param request body dto.JumpRequest true "Target index"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /imports/{id}/jump [post]
func (h *ImportHandler) JumpTo(c *fiber.Ctx) error {
	id, err := h.sessionID(c)
	if err != nil {
		return err
	}
	var req dto.JumpRequest
	if err := c.BodyParser(&req); err != nil {
		return domain.NewInvalidInputError("request body must be JSON with an index field")
	}
	current, err := h.service.GetSession(c.UserContext(), id)
	if err != nil {
		return err
	}
	if errs := h.validator.ValidateJumpIndex(req.Index, current.Progress.Total); len(errs) > 0 {
		return errs
	}
	view, err := h.service.JumpTo(c.UserContext(), id, req.Index)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// BulkCommit godoc
// @Summary Import all records
// @Description Commits every record at once and persists them in one batch
// @Tags imports
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.CommitResponse
// @Failure 409 {object} middleware.FinalizeErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /imports/{id}/bulk-commit [post]
func (h *ImportHandler) BulkCommit(c *fiber.Ctx) error {
	return h.commit(c, h.service.BulkCommit)
}

// Finalize godoc
// @Summary Finalize a reviewed import
// @Description Persists the committed records once every record has been reviewed
// @Tags imports
// @Produce json
// @Param id path string true "Session ID"
// @Success 200 {object} dto.CommitResponse
// @Failure 409 {object} middleware.FinalizeErrorResponse
// @Failure 503 {object} middleware.ErrorResponse
// @Router /imports/{id}/finalize [post]
func (h *ImportHandler) Finalize(c *fiber.Ctx) error {
	return h.commit(c, h.service.Finalize)
}

func (h *ImportHandler) commit(c *fiber.Ctx, fn func(ctx context.Context, id string) (*dto.CommitResponse, error)) error {
	id, err := h.sessionID(c)
	if err != nil {
		return err
	}
	resp, err := fn(c.UserContext(), id)
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

// Cancel godoc
// @Summary Cancel an import
// @Description Discards every record of the session; requires confirm=true
// @Tags imports
// @Produce json
// @Param id path string true "Session ID"
// @Param confirm query bool true "Confirm discarding the session"
// @Success 200 {object} dto.SessionResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Router /imports/{id} [delete]
func (h *ImportHandler) Cancel(c *fiber.Ctx) error {
	id, err := h.sessionID(c)
	if err != nil {
		return err
	}
	confirmer := terminal.StaticConfirmer{Answer: c.QueryBool("confirm")}
	view, err := h.service.Cancel(c.UserContext(), id, confirmer)
	if err != nil {
		return err
	}
	return c.JSON(view)
}
