package repository

import (
	"context"
	"fmt"

	"anoa.com/signcollect/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ScoreTypeAggregate is one row of the grouped user-score query.
type ScoreTypeAggregate struct {
	ScoreType model.ScoreType
	Total     int
	Count     int
}

type UserTotal struct {
	UserID uuid.UUID
	Total  int
}

type ScoreRepository interface {
	// Upsert writes a score event; an existing (user, video, score_type) row
	// is updated in place instead of duplicated.
	Upsert(ctx context.Context, score *model.Score) error
	Create(ctx context.Context, score *model.Score) error
	// HasReviewed reports whether the user already holds a review score for
	// the video.
	HasReviewed(ctx context.Context, userID uuid.UUID, videoID uint) (bool, error)
	// VideoQualityScore sums the quality values a video has earned.
	VideoQualityScore(ctx context.Context, videoID uint) (int, error)
	// UserScores aggregates per score type: quality events count for the
	// video owner, everything else for the acting user. Events on
	// reference-only glosses are excluded.
	UserScores(ctx context.Context, userID uuid.UUID) ([]ScoreTypeAggregate, error)
	TopUsers(ctx context.Context, limit int) ([]UserTotal, error)
}

type scoreRepository struct {
	db *gorm.DB
}

func NewScoreRepository(db *gorm.DB) ScoreRepository {
	return &scoreRepository{db: db}
}

func (r *scoreRepository) Upsert(ctx context.Context, score *model.Score) error {
	// Using GORM OnConflict for Upsert; the uniqueness constraint on
	// (user_id, video_id, score_type) keeps concurrent retries single-row.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "video_id"}, {Name: "score_type"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"value": score.Value,
		}),
	}).Create(score).Error
}

func (r *scoreRepository) Create(ctx context.Context, score *model.Score) error {
	return r.db.WithContext(ctx).Create(score).Error
}

func (r *scoreRepository) HasReviewed(ctx context.Context, userID uuid.UUID, videoID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Score{}).
		Where("user_id = ? AND video_id = ? AND score_type = ?", userID, videoID, model.ScoreReviewVideo).
		Count(&count).Error
	return count > 0, err
}

func (r *scoreRepository) VideoQualityScore(ctx context.Context, videoID uint) (int, error) {
	var total int
	err := r.db.WithContext(ctx).Model(&model.Score{}).
		Select("COALESCE(SUM(value), 0)").
		Where("video_id = ? AND score_type = ?", videoID, model.ScoreVideoQuality).
		Scan(&total).Error
	return total, err
}

func (r *scoreRepository) UserScores(ctx context.Context, userID uuid.UUID) ([]ScoreTypeAggregate, error) {
	var aggs []ScoreTypeAggregate
	// LEFT JOINs keep video-less events (gloss creation) in the aggregate.
	err := r.db.WithContext(ctx).Model(&model.Score{}).
		Select("scores.score_type, COALESCE(SUM(scores.value), 0) AS total, COUNT(scores.value) AS count").
		Joins("LEFT JOIN videos ON videos.id = scores.video_id").
		Joins("LEFT JOIN glosses ON glosses.id = videos.gloss_id").
		Where("glosses.id IS NULL OR glosses.gloss_type <> ?", model.GlossReferenceOnly).
		Where(
			"(scores.user_id = ? AND scores.score_type <> ?) OR (scores.video_owner_id = ? AND scores.score_type = ?)",
			userID, model.ScoreVideoQuality, userID, model.ScoreVideoQuality).
		Group("scores.score_type").
		Scan(&aggs).Error
	return aggs, err
}

func (r *scoreRepository) TopUsers(ctx context.Context, limit int) ([]UserTotal, error) {
	// Quality events credit the video owner, everything else the actor.
	beneficiary := fmt.Sprintf(
		"CASE WHEN scores.score_type = %d THEN scores.video_owner_id ELSE scores.user_id END",
		model.ScoreVideoQuality)

	var totals []UserTotal
	err := r.db.WithContext(ctx).Model(&model.Score{}).
		Select(beneficiary+" AS user_id, COALESCE(SUM(scores.value), 0) AS total").
		Joins("LEFT JOIN videos ON videos.id = scores.video_id").
		Joins("LEFT JOIN glosses ON glosses.id = videos.gloss_id").
		Where("glosses.id IS NULL OR glosses.gloss_type <> ?", model.GlossReferenceOnly).
		Group(beneficiary).
		Order("total DESC").
		Limit(limit).
		Scan(&totals).Error
	return totals, err
}
