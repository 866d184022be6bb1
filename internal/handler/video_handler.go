package handler

import (
	"fmt"
	"net/http"
	"time"

	"anoa.com/signcollect/internal/dto"
	"anoa.com/signcollect/internal/service"
	"anoa.com/signcollect/pkg/apperror"
	"anoa.com/signcollect/pkg/response"
	"anoa.com/signcollect/pkg/storage"
	"anoa.com/signcollect/pkg/validator"
	"github.com/gin-gonic/gin"
)

type VideoHandler struct {
	service service.VideoService
	storage storage.MediaStorage
}

func NewVideoHandler(service service.VideoService, mediaStorage storage.MediaStorage) *VideoHandler {
	return &VideoHandler{service: service, storage: mediaStorage}
}

// CreateVideos registers upload slots. The request carries one gloss id or a
// list; the response upload_key matches the input arity.
func (h *VideoHandler) CreateVideos(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var req dto.CreateVideosRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	uuids, err := h.service.CreateVideos(c.Request.Context(), userID, req.GlossID.IDs)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	resp := dto.UploadKey{UploadKey: uuids}
	if req.GlossID.Single {
		resp.UploadKey = uuids[0]
	}
	c.JSON(http.StatusCreated, resp)
}

// Upload receives the recording (and optional thumbnail) for a previously
// created video, stores the media, and moves the video into review.
func (h *VideoHandler) Upload(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	videoUUID := c.Param("uuid")

	videoFile, videoHeader, err := c.Request.FormFile("video")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "video file is required"})
		return
	}
	defer videoFile.Close()

	folder := "recordings/" + time.Now().Format("2006-01")
	videoURL, err := h.storage.UploadVideo(c.Request.Context(), videoFile, folder, videoHeader.Filename)
	if err != nil {
		response.ResponseError(c, fmt.Errorf("%v: %w", err, apperror.ErrInternal))
		return
	}

	thumbnailURL := ""
	if thumbFile, thumbHeader, err := c.Request.FormFile("thumbnail"); err == nil {
		defer thumbFile.Close()
		thumbnailURL, err = h.storage.UploadThumbnail(c.Request.Context(), thumbFile, folder, thumbHeader.Filename)
		if err != nil {
			response.ResponseError(c, fmt.Errorf("%v: %w", err, apperror.ErrInternal))
			return
		}
	}

	video, err := h.service.AttachUpload(c.Request.Context(), userID, videoUUID, videoURL, thumbnailURL)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, video)
}

func (h *VideoHandler) GetVideo(c *gin.Context) {
	video, err := h.service.GetVideo(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, video)
}

func (h *VideoHandler) GetVideoScore(c *gin.Context) {
	score, err := h.service.GetVideoScore(c.Request.Context(), c.Param("uuid"))
	if err != nil {
		response.ResponseError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"video_score": score})
}

func (h *VideoHandler) ListVideos(c *gin.Context) {
	h.list(c, false)
}

// ListUnreviewed is the review queue: pending videos by other contributors
// the caller has not reviewed yet.
func (h *VideoHandler) ListUnreviewed(c *gin.Context) {
	h.list(c, true)
}

func (h *VideoHandler) list(c *gin.Context, unreviewed bool) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	var query dto.VideoListQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": validator.FormatValidationError(err)})
		return
	}

	videos, err := h.service.ListVideos(c.Request.Context(), userID, query, unreviewed)
	if err != nil {
		response.ResponseError(c, err)
		return
	}

	c.JSON(http.StatusOK, videos)
}
