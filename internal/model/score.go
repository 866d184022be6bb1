package model

import (
	"time"

	"github.com/google/uuid"
)

type ScoreType int

const (
	ScoreReviewVideo ScoreType = iota + 1
	ScoreCreateVideo
	ScoreCreateGloss
	ScoreVideoQuality
	ScoreUploadSample
)

var scoreTypeNames = map[ScoreType]string{
	ScoreReviewVideo:  "review_video",
	ScoreCreateVideo:  "create_video",
	ScoreCreateGloss:  "create_gloss",
	ScoreVideoQuality: "video_quality",
	ScoreUploadSample: "upload_sample",
}

func (t ScoreType) String() string {
	return scoreTypeNames[t]
}

// ScoreTypes lists every known score type, used to zero-fill aggregates.
func ScoreTypes() []ScoreType {
	return []ScoreType{
		ScoreReviewVideo,
		ScoreCreateVideo,
		ScoreCreateGloss,
		ScoreVideoQuality,
		ScoreUploadSample,
	}
}

// Point values awarded per action.
const (
	ValueReviewVideo  = 1
	ValueCreateVideo  = 3
	ValueCreateGloss  = 1
	ValueApproveVideo = 2
	ValueRejectVideo  = 0
)

// Score is an append-only scoring event. The (user, video, score_type)
// triple is unique: review and quality scores are upserted per reviewer so
// repeated review calls never produce duplicate rows.
type Score struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	UserID       uuid.UUID `gorm:"type:uuid;index;not null;uniqueIndex:uniq_user_video_type,priority:1" json:"user_id"`
	VideoID      *uint     `gorm:"uniqueIndex:uniq_user_video_type,priority:2" json:"video_id,omitempty"`
	Video        *Video    `gorm:"foreignKey:VideoID;constraint:OnDelete:CASCADE" json:"-"`
	VideoOwnerID uuid.UUID `gorm:"type:uuid;index" json:"video_owner_id"`
	ScoreType    ScoreType `gorm:"not null;uniqueIndex:uniq_user_video_type,priority:3" json:"score_type"`
	Value        int       `gorm:"not null" json:"value"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
}
