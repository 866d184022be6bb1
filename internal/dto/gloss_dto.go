package dto

import "anoa.com/signcollect/internal/model"

type CategoryResponse struct {
	ID    uint   `json:"id"`
	Title string `json:"title"`
}

type GlossResponse struct {
	ID                        uint               `json:"id"`
	Text                      string             `json:"text"`
	GlossType                 int                `json:"gloss_type"`
	PendingApprovalVideoCount int                `json:"pending_approval_video_count"`
	RejectedVideoCount        int                `json:"rejected_video_count"`
	ApprovedVideoCount        int                `json:"approved_video_count"`
	SampleVideo               *VideoResponse     `json:"sample_video,omitempty"`
	Categories                []CategoryResponse `json:"categories"`
	Duration                  int                `json:"duration"`
	CreatedAt                 int64              `json:"created_time"`
}

func NewGlossResponse(g *model.Gloss) GlossResponse {
	resp := GlossResponse{
		ID:                        g.ID,
		Text:                      g.Text,
		GlossType:                 int(g.GlossType),
		PendingApprovalVideoCount: g.PendingApprovalVideoCount,
		RejectedVideoCount:        g.RejectedVideoCount,
		ApprovedVideoCount:        g.ApprovedVideoCount,
		Categories:                []CategoryResponse{},
		Duration:                  g.Duration,
		CreatedAt:                 g.CreatedAt.Unix(),
	}
	if g.SampleVideo != nil {
		sample := NewVideoResponse(g.SampleVideo)
		resp.SampleVideo = &sample
	}
	for _, c := range g.Categories {
		resp.Categories = append(resp.Categories, CategoryResponse{ID: c.ID, Title: c.Title})
	}
	return resp
}

type PaginatedGlossResponse struct {
	PageMeta
	Data []GlossResponse `json:"data"`
}

type GlossListQuery struct {
	PageQuery
	Query string `form:"q"`
	Order string `form:"order" binding:"omitempty,oneof=latest text"`
}

type CreateGlossRequest struct {
	Text        string `json:"text" binding:"required,max=45"`
	GlossType   int    `json:"gloss_type" binding:"required,oneof=1 2"`
	Duration    int    `json:"duration" binding:"omitempty,min=0"`
	CategoryIDs []uint `json:"category_ids"`
}
