package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jsamuelsen/associate-quotes/internal/adapters/http/dto"
	"github.com/jsamuelsen/associate-quotes/internal/domain"
	"github.com/jsamuelsen/associate-quotes/internal/platform/logging"
	"github.com/jsamuelsen/associate-quotes/internal/platform/telemetry"
)

// MapDomainError maps a domain error to an HTTP status code and error response.
// Unknown errors are mapped to 500 Internal Server Error with a generic message.
func MapDomainError(err error) (int, *dto.ErrorResponse) {
	if err == nil {
		return http.StatusOK, nil
	}

	switch {
	case domain.IsNotFound(err):
		return http.StatusNotFound, dto.NewErrorResponse(dto.ErrorCodeNotFound, err.Error())

	case domain.IsValidation(err):
		resp := dto.NewErrorResponse(dto.ErrorCodeValidation, err.Error())

		var validationErr *domain.ValidationError
		if errors.As(err, &validationErr) && validationErr.Field != "" {
			resp.Error.Details = map[string]string{
				validationErr.Field: validationErr.Message,
			}
		}

		return http.StatusBadRequest, resp

	case domain.IsForbidden(err):
		return http.StatusForbidden, dto.NewErrorResponse(dto.ErrorCodeForbidden, err.Error())

	case domain.IsUnavailable(err):
		return http.StatusServiceUnavailable, dto.NewErrorResponse(dto.ErrorCodeUnavailable, err.Error())

	default:
		return http.StatusInternalServerError, dto.NewErrorResponse(
			dto.ErrorCodeInternal,
			"an internal error occurred",
		)
	}
}

// RespondWithError writes the envelope for err, tagged with the trace ID.
// Internal errors are logged with full details.
func RespondWithError(c *gin.Context, err error) {
	ctx := c.Request.Context()
	status, errResp := MapDomainError(err)
	errResp.TraceID = telemetry.TraceID(ctx)

	if status == http.StatusInternalServerError {
		logging.FromContext(ctx).ErrorContext(ctx, "internal error",
			"error", err.Error(),
			"trace_id", errResp.TraceID,
		)
	}

	c.JSON(status, errResp)
}

// RespondWithErrorCode writes an adapter-level error such as NOT_FOUND for
// an unknown route.
func RespondWithErrorCode(c *gin.Context, code, message string) {
	errResp := dto.NewErrorResponse(code, message).WithTraceID(telemetry.TraceID(c.Request.Context()))
	c.JSON(dto.HTTPStatusFromCode(code), errResp)
}

// respondBadQuery writes a 400 for a query string that failed binding or validation.
func respondBadQuery(c *gin.Context, err error) {
	errResp := dto.ValidationResponse(err).WithTraceID(telemetry.TraceID(c.Request.Context()))
	c.JSON(http.StatusBadRequest, errResp)
}
