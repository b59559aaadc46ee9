package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gdugdh24/mentorlink-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/mentorlink-backend/internal/delivery/http/response"
	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/gdugdh24/mentorlink-backend/internal/usecase/profile"
	"github.com/gin-gonic/gin"
)

// ErrorResponse represents error response
type ErrorResponse = response.ErrorResponse

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, response.UnauthorizedMessage
	case errors.Is(err, domain.ErrProfileAlreadyExists):
		return http.StatusConflict, "profile already exists"
	case errors.Is(err, domain.ErrProfileNotFound):
		return http.StatusNotFound, "profile not found"
	case errors.Is(err, domain.ErrAccountNotFound):
		return http.StatusNotFound, "account not found"
	case profile.IsValidationError(err):
		return http.StatusBadRequest, err.Error()
	}
	return http.StatusInternalServerError, response.InternalErrorMessage
}

// respondError writes the mapped status. Causes of 500s are logged, never
// returned.
func respondError(c *gin.Context, logger *slog.Logger, err error) {
	status, msg := errorStatus(err)
	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			"request_id", middleware.GetRequestID(c),
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err.Error(),
		)
	}
	c.JSON(status, ErrorResponse{Error: msg})
}

func identityOrAbort(c *gin.Context) (domain.Identity, bool) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, response.Unauthorized())
	}
	return identity, ok
}
