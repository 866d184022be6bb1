package handler

import (
	"net/http"

	"anoa.com/signcollect/internal/service"
	"anoa.com/signcollect/pkg/response"
	"github.com/gin-gonic/gin"
)

type ReviewHandler struct {
	reviews service.ReviewService
	scores  service.ScoreService
}

func NewReviewHandler(reviews service.ReviewService, scores service.ScoreService) *ReviewHandler {
	return &ReviewHandler{reviews: reviews, scores: scores}
}

// Review handles POST /videos/:uuid/review/:action where action is
// "approve" or "reject".
func (h *ReviewHandler) Review(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	decision, err := service.ParseReviewDecision(c.Param("action"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	result, err := h.reviews.ReviewVideo(c.Request.Context(), userID, c.Param("uuid"), decision)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

func (h *ReviewHandler) ScoreLegend(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"data": h.scores.ScoreLegend()})
}
