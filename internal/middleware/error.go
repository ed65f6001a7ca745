package middleware

import (
	"errors"
	"net/http"

	"question-bank/internal/domain"
	"question-bank/internal/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ErrorResponse represents the standard error response structure
type ErrorResponse struct {
	Code    string                 `json:"code"`
	Message string                 `json:"message"`
	Status  int                    `json:"status"`
	Details map[string]interface{} `json:"details,omitempty"`
}

// ValidationErrorResponse represents validation error response
type ValidationErrorResponse struct {
	Code        string                   `json:"code"`
	Message     string                   `json:"message"`
	Status      int                      `json:"status"`
	Errors      []domain.ValidationError `json:"errors"`
	FieldErrors map[string]bool          `json:"fieldErrors"`
}

// FinalizeErrorResponse points the client at the record blocking a commit
type FinalizeErrorResponse struct {
	ValidationErrorResponse
	Index int `json:"index"`
}

// ErrorHandler is a centralized error handling middleware
func ErrorHandler() fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		logger := logger.Get()

		// Handle validation errors
		var validationErrs domain.ValidationErrors
		if errors.As(err, &validationErrs) {
			logger.Warn("Validation errors occurred",
				zap.String("path", c.Path()),
				zap.Int("error_count", len(validationErrs)),
			)
			return c.Status(http.StatusUnprocessableEntity).JSON(newValidationResponse(validationErrs, "Record validation failed"))
		}

		var finalizeErr *domain.FinalizeError
		if errors.As(err, &finalizeErr) {
			logger.Warn("Commit blocked by an invalid record",
				zap.String("path", c.Path()),
				zap.Int("index", finalizeErr.Index),
			)
			resp := FinalizeErrorResponse{
				ValidationErrorResponse: newValidationResponse(finalizeErr.Errors, finalizeErr.Error()),
				Index:                   finalizeErr.Index,
			}
			resp.Code = string(domain.CodeFinalizeBlocked)
			resp.Status = http.StatusConflict
			return c.Status(http.StatusConflict).JSON(resp)
		}

		var persistErr *domain.PersistError
		if errors.As(err, &persistErr) {
			logger.Error("Persisting questions failed",
				zap.String("path", c.Path()),
				zap.Error(persistErr.Err),
			)
			return c.Status(http.StatusServiceUnavailable).JSON(ErrorResponse{
				Code:    string(domain.CodePersistFailed),
				Message: "Questions could not be saved; the import can be retried",
				Status:  http.StatusServiceUnavailable,
			})
		}

		// Handle domain errors
		var domainErr *domain.DomainError
		if errors.As(err, &domainErr) {
			statusCode := mapDomainErrorToHTTPStatus(domainErr)

			logFn := logger.Warn
			if statusCode >= http.StatusInternalServerError {
				logFn = logger.Error
			}
			logFn("Domain error occurred",
				zap.String("code", string(domainErr.Code)),
				zap.String("message", domainErr.Message),
				zap.Int("status", statusCode),
				zap.Error(domainErr.Cause),
			)

			response := ErrorResponse{
				Code:    string(domainErr.Code),
				Message: domainErr.Message,
				Status:  statusCode,
			}

			if len(domainErr.Context) > 0 {
				response.Details = domainErr.Context
			}

			return c.Status(statusCode).JSON(response)
		}

		// Handle fiber errors
		var fiberErr *fiber.Error
		if errors.As(err, &fiberErr) {
			logger.Warn("Fiber error occurred",
				zap.Int("code", fiberErr.Code),
				zap.String("message", fiberErr.Message),
			)
			return c.Status(fiberErr.Code).JSON(ErrorResponse{
				Code:    "HTTP_ERROR",
				Message: fiberErr.Message,
				Status:  fiberErr.Code,
			})
		}

		// Handle unknown errors
		logger.Error("Unknown error occurred",
			zap.String("path", c.Path()),
			zap.Error(err),
		)

		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Code:    string(domain.CodeInternal),
			Message: "Internal server error",
			Status:  http.StatusInternalServerError,
		})
	}
}

func newValidationResponse(errs domain.ValidationErrors, message string) ValidationErrorResponse {
	return ValidationErrorResponse{
		Code:        string(domain.CodeValidation),
		Message:     message,
		Status:      http.StatusUnprocessableEntity,
		Errors:      errs,
		FieldErrors: errs.Flags(),
	}
}

// mapDomainErrorToHTTPStatus maps domain errors to HTTP status codes
func mapDomainErrorToHTTPStatus(err *domain.DomainError) int {
	switch err.Code {
	case domain.CodeNotFound, domain.CodeSessionNotFound:
		return http.StatusNotFound
	case domain.CodeInvalidInput, domain.CodeValidation, domain.CodeMissingField,
		domain.CodeInvalidFormat, domain.CodeOutOfRange:
		return http.StatusBadRequest
	case domain.CodeInvalidTransition, domain.CodeCommitInFlight, domain.CodeAtFirstRecord,
		domain.CodeFinalizeBlocked:
		return http.StatusConflict
	case domain.CodeNothingToImport:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
