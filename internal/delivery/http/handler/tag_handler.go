package handler

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gdugdh24/mentorlink-backend/internal/domain"
	"github.com/gdugdh24/mentorlink-backend/internal/usecase/profile"
	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	profileUseCase *profile.ProfileUseCase
	logger         *slog.Logger
}

func NewTagHandler(profileUseCase *profile.ProfileUseCase, logger *slog.Logger) *TagHandler {
	return &TagHandler{
		profileUseCase: profileUseCase,
		logger:         logger,
	}
}

type TagsResponse struct {
	Success bool         `json:"success"`
	Tags    []domain.Tag `json:"tags"`
}

// ListInterests handles GET /tags/interests
// @Summary List interests
// @Description Page through the shared interest dictionary ordered by name
// @Tags tags
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size (default 50, max 200)"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} TagsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tags/interests [get]
func (h *TagHandler) ListInterests(c *gin.Context) {
	h.list(c, domain.TagInterest)
}

// ListIndustries handles GET /tags/industries
// @Summary List industries
// @Description Page through the shared industry dictionary ordered by name
// @Tags tags
// @Security BearerAuth
// @Produce json
// @Param limit query int false "Page size (default 50, max 200)"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} TagsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /tags/industries [get]
func (h *TagHandler) ListIndustries(c *gin.Context) {
	h.list(c, domain.TagIndustry)
}

func (h *TagHandler) list(c *gin.Context, kind domain.TagKind) {
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		return
	}
	offset, err := strconv.Atoi(c.DefaultQuery("offset", "0"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid offset"})
		return
	}

	list, err := h.profileUseCase.ListTags(c.Request.Context(), kind, limit, offset)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, TagsResponse{
		Success: true,
		Tags:    list,
	})
}
