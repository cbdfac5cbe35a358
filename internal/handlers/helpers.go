package handlers

import (
	"errors"
	"strings"

	"github.com/gin-gonic/gin"

	apperrors "opportunityrisks/internal/errors"
	"opportunityrisks/internal/logger"
	"opportunityrisks/internal/uuid"
)

// ErrorDetail represents the inner error object in an error response.
type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

// maxOpportunityIDLength matches the opportunity_id column width.
const maxOpportunityIDLength = 100

// parseRiskID reads a risk UUID path parameter in canonical lower-case form.
// Returns ErrInvalidInput if the parameter is not a valid UUID.
func parseRiskID(c *gin.Context) (string, error) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid risk id")
	}
	return id, nil
}

// parseOpportunityID reads an opportunity identifier path parameter. SAP
// identifiers are opaque, so only emptiness and length are checked.
func parseOpportunityID(c *gin.Context) (string, error) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" || len(id) > maxOpportunityIDLength {
		return "", apperrors.WithMessage(apperrors.ErrInvalidInput, "Invalid opportunity id")
	}
	return id, nil
}

// respondWithError writes a consistent JSON error response. If the error is an
// *AppError it uses the error's status code, code, and message. Otherwise it
// logs the unexpected error and returns a generic internal server error.
func respondWithError(c *gin.Context, err error) {
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) {
		if appErr.Internal != nil {
			logger.Get().Errorw("app error",
				"code", appErr.Code,
				"internal", appErr.Internal.Error(),
				"path", c.Request.URL.Path,
			)
		}
		c.JSON(appErr.StatusCode, ErrorResponse{Error: ErrorDetail{Code: appErr.Code, Message: appErr.Message}})
		return
	}

	logger.Get().Errorw("unexpected error",
		"error", err.Error(),
		"path", c.Request.URL.Path,
		"method", c.Request.Method,
	)
	c.JSON(apperrors.ErrInternalServer.StatusCode, ErrorResponse{Error: ErrorDetail{
		Code:    apperrors.ErrInternalServer.Code,
		Message: apperrors.ErrInternalServer.Message,
	}})
}
