package handler

import (
	"log/slog"
	"net/http"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/gdugdh24/mentorlink-backend/internal/usecase/profile"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileUseCase *profile.ProfileUseCase
	logger         *slog.Logger
}

func NewProfileHandler(profileUseCase *profile.ProfileUseCase, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{
		profileUseCase: profileUseCase,
		logger:         logger,
	}
}

// ProfileResponse is returned by every profile endpoint. User is omitted
// after an edit.
type ProfileResponse struct {
	Success bool            `json:"success"`
	User    *domain.Account `json:"user,omitempty"`
	Profile *domain.Profile `json:"profile"`
}

// BiosResponse carries bio drafts keyed by tone.
type BiosResponse struct {
	Success bool              `json:"success"`
	Bios    map[string]string `json:"bios"`
}

// CompleteOnboarding handles POST /profile/onboarding
// @Summary Complete onboarding
// @Description Create account, profile and tag links from the mentor or mentee form
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body profile.CreateProfileRequest true "Onboarding submission"
// @Success 201 {object} ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/onboarding [post]
func (h *ProfileHandler) CompleteOnboarding(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	var req profile.CreateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	view, err := h.profileUseCase.CompleteOnboarding(c.Request.Context(), identity, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, ProfileResponse{
		Success: true,
		User:    view.User,
		Profile: view.Profile,
	})
}

// UpdateMyProfile handles PATCH /profile/me
// @Summary Update my profile
// @Description Partial update. Absent keys are kept, null clears, interests and industries replace the linked set.
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body profile.UpdateProfileRequest true "Profile update data"
// @Success 200 {object} ProfileResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/me [patch]
func (h *ProfileHandler) UpdateMyProfile(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}

	var req profile.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	updated, err := h.profileUseCase.UpdateProfile(c.Request.Context(), identity, &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		Success: true,
		Profile: updated,
	})
}

// GetMyProfile handles GET /profile/me
// @Summary Get my profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/me [get]
func (h *ProfileHandler) GetMyProfile(c *gin.Context) {
	identity, ok := identityOrAbort(c)
	if !ok {
		return
	}
	h.writeProfile(c, identity.ID)
}

// GetProfileByAccountID handles GET /profiles/:account_id
// @Summary Get user profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Param account_id path string true "Account ID"
// @Success 200 {object} ProfileResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profiles/{account_id} [get]
func (h *ProfileHandler) GetProfileByAccountID(c *gin.Context) {
	if _, ok := identityOrAbort(c); !ok {
		return
	}
	h.writeProfile(c, c.Param("account_id"))
}

func (h *ProfileHandler) writeProfile(c *gin.Context, accountID string) {
	view, err := h.profileUseCase.GetProfile(c.Request.Context(), accountID)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, ProfileResponse{
		Success: true,
		User:    view.User,
		Profile: view.Profile,
	})
}

// GenerateBio handles POST /profile/generate-bio
// @Summary Generate bio drafts
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body profile.GenerateBioRequest true "Form data"
// @Success 200 {object} BiosResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /profile/generate-bio [post]
func (h *ProfileHandler) GenerateBio(c *gin.Context) {
	if _, ok := identityOrAbort(c); !ok {
		return
	}

	var req profile.GenerateBioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Error: "invalid request body",
		})
		return
	}

	bios, err := h.profileUseCase.GenerateBio(c.Request.Context(), &req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, BiosResponse{
		Success: true,
		Bios:    bios,
	})
}
