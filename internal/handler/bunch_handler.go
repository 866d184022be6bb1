package handler

import (
	"net/http"

	"anoa.com/signcollect/internal/service"
	"anoa.com/signcollect/pkg/response"
	"github.com/gin-gonic/gin"
)

type BunchHandler struct {
	service service.BunchService
}

func NewBunchHandler(service service.BunchService) *BunchHandler {
	return &BunchHandler{service: service}
}

// GetBunch hands the caller their next batch of glosses to record.
func (h *BunchHandler) GetBunch(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	glosses, err := h.service.GetBunch(c.Request.Context(), userID)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": glosses})
}
