package handlers

import (
	"errors"
	"net/http"

	"jenjangkarir/internal/domain"
	"jenjangkarir/internal/http/middleware"
	"jenjangkarir/internal/listing"
	"jenjangkarir/internal/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse standardizes error payloads.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Details any    `json:"details,omitempty"`
}

func respondError(c *gin.Context, status int, code, message string, details any) {
	if code == "" {
		code = http.StatusText(status)
	}
	resp := ErrorResponse{
		Error:   message,
		Code:    code,
		Details: details,
	}
	reqID := middleware.GetRequestID(c)
	if reqID != "" {
		c.JSON(status, gin.H{
			"error":      resp.Error,
			"code":       resp.Code,
			"details":    resp.Details,
			"request_id": reqID,
			"message":    message,
		})
		return
	}
	c.JSON(status, resp)
}

// RespondDomainError maps domain errors to HTTP responses. Anything it does
// not recognise is logged and hidden behind a generic 500.
func RespondDomainError(c *gin.Context, err error) {
	var ve domain.ValidationError
	var ue domain.UnauthorizedError
	switch {
	case errors.As(err, &ve):
		var details any
		if ve.Field != "" {
			details = gin.H{"field": ve.Field}
		}
		respondError(c, http.StatusBadRequest, "validation_error", err.Error(), details)
	case errors.As(err, &ue):
		if ue.Forbidden {
			respondError(c, http.StatusForbidden, "forbidden", err.Error(), nil)
			return
		}
		respondError(c, http.StatusUnauthorized, "unauthorized", err.Error(), nil)
	case domain.IsNotFound(err):
		respondError(c, http.StatusNotFound, "not_found", err.Error(), nil)
	case errors.Is(err, listing.ErrViewNotFound):
		respondError(c, http.StatusNotFound, "view_not_found", "view tidak ditemukan atau sudah kedaluwarsa", nil)
	case domain.IsConflict(err):
		respondError(c, http.StatusConflict, "conflict", err.Error(), nil)
	default:
		_ = c.Error(err)
		utils.L().Error("request failed",
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.FullPath()),
			zap.Error(err),
		)
		respondError(c, http.StatusInternalServerError, "internal_error", "terjadi kesalahan", nil)
	}
}
