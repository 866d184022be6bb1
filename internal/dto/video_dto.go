package dto

import (
	"encoding/json"
	"fmt"
	"io"

	"anoa.com/signcollect/internal/model"
)

// GlossIDs accepts either a single gloss id or a list, remembering the input
// arity so the response can match it.
type GlossIDs struct {
	IDs    []uint
	Single bool
}

func (g *GlossIDs) UnmarshalJSON(data []byte) error {
	var single uint
	if err := json.Unmarshal(data, &single); err == nil {
		g.IDs = []uint{single}
		g.Single = true
		return nil
	}

	var list []uint
	if err := json.Unmarshal(data, &list); err != nil {
		return fmt.Errorf("gloss_id must be a number or a list of numbers")
	}
	g.IDs = list
	g.Single = false
	return nil
}

type CreateVideosRequest struct {
	GlossID GlossIDs `json:"gloss_id" binding:"required"`
}

// UploadKey carries one uuid or a list, matching the request arity.
type UploadKey struct {
	UploadKey any `json:"upload_key"`
}

type UploadFiles struct {
	Video         io.Reader
	VideoName     string
	Thumbnail     io.Reader
	ThumbnailName string
}

type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type VideoResponse struct {
	UUID          string              `json:"uuid"`
	Creator       UserResponse        `json:"creator"`
	GlossID       uint                `json:"gloss_id"`
	GlossText     string              `json:"gloss_text,omitempty"`
	VideoPath     string              `json:"video_path"`
	Thumbnail     string              `json:"thumbnail"`
	Status        string              `json:"status"`
	ReviewSummary model.ReviewSummary `json:"review_summary"`
	CreatedAt     int64               `json:"created_time"`
}

func NewVideoResponse(v *model.Video) VideoResponse {
	resp := VideoResponse{
		UUID: v.UUID,
		Creator: UserResponse{
			ID:       v.UserID.String(),
			Username: v.User.Username,
		},
		GlossID:       v.GlossID,
		VideoPath:     v.VideoPath,
		Thumbnail:     v.Thumbnail,
		Status:        v.Status.String(),
		ReviewSummary: v.ReviewSummary,
		CreatedAt:     v.CreatedAt.Unix(),
	}
	if v.Gloss != nil {
		resp.GlossText = v.Gloss.Text
	}
	return resp
}

type PaginatedVideoResponse struct {
	PageMeta
	Data []VideoResponse `json:"data"`
}

// VideoListQuery are the listing filters shared by the review UI and the
// task selector. Author is a user id or the literal "self".
type VideoListQuery struct {
	PageQuery
	Author     string `form:"author"`
	Query      string `form:"q"`
	CategoryID string `form:"cid"`
	Status     string `form:"status"`
}
