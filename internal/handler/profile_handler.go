package handler

import (
	"net/http"
	"strconv"

	"anoa.com/signcollect/internal/service"
	"anoa.com/signcollect/pkg/response"
	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profiles service.ProfileService
	scores   service.ScoreService
}

func NewProfileHandler(profiles service.ProfileService, scores service.ScoreService) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, scores: scores}
}

// GetCurrentProfile returns the caller's account plus their score aggregates.
func (h *ProfileHandler) GetCurrentProfile(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	profile, err := h.profiles.GetProfile(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

func (h *ProfileHandler) GetLeaderboard(c *gin.Context) {
	limit := 10
	if raw := c.Query("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 100 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be between 1 and 100"})
			return
		}
		limit = parsed
	}

	entries, err := h.scores.Leaderboard(c.Request.Context(), limit)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": entries})
}
