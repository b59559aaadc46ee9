package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/gdugdh24/mentorlink-backend/internal/usecase/profile"
	"github.com/gin-gonic/gin"
)

type AuthHandler struct {
	profileUseCase *profile.ProfileUseCase
	logger         *slog.Logger
}

func NewAuthHandler(profileUseCase *profile.ProfileUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		profileUseCase: profileUseCase,
		logger:         logger,
	}
}

// MeResponse describes the verified caller.
type MeResponse struct {
	Success   bool   `json:"success"`
	ID        string `json:"id"`
	Email     string `json:"email"`
	Onboarded bool   `json:"onboarded"`
}

// Me returns current user info
// @Summary Get current user
// @Description Get the verified identity and whether onboarding is complete
// @Tags auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} MeResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	onboarded := true
	if _, err := h.profileUseCase.GetProfile(c.Request.Context(), identity.ID); err != nil {
		if !errors.Is(err, domain.ErrProfileNotFound) {
			respondError(c, h.logger, err)
			return
		}
		onboarded = false
	}

	c.JSON(http.StatusOK, MeResponse{
		Success:   true,
		ID:        identity.ID,
		Email:     identity.Email,
		Onboarded: onboarded,
	})
}
