package handler

import (
	"net/http"
	"strconv"

	"anoa.com/signcollect/internal/dto"
	"anoa.com/signcollect/internal/service"
	"anoa.com/signcollect/pkg/response"
	"anoa.com/signcollect/pkg/validator"
	"github.com/gin-gonic/gin"
)

type GlossHandler struct {
	service service.GlossService
}

func NewGlossHandler(service service.GlossService) *GlossHandler {
	return &GlossHandler{service: service}
}

// ListGlosses serves the dictionary listing with optional full-text search.
func (h *GlossHandler) ListGlosses(c *gin.Context) {
	var query dto.GlossListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	glosses, err := h.service.ListGlosses(c.Request.Context(), query)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, glosses)
}

func (h *GlossHandler) GetGloss(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid gloss id"})
		return
	}

	gloss, err := h.service.GetGloss(c.Request.Context(), uint(id))
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gloss)
}

func (h *GlossHandler) CreateGloss(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateGlossRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	gloss, err := h.service.CreateGloss(c.Request.Context(), userID, req)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gloss)
}

func (h *GlossHandler) GetCategories(c *gin.Context) {
	categories, err := h.service.Categories(c.Request.Context())
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": categories})
}
