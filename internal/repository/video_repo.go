package repository

import (
	"context"
	"encoding/json"
	"errors"

	"anoa.com/signcollect/internal/model"
	"anoa.com/signcollect/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// VideoFilter carries the listing predicates shared by the review UI and the
// task selector. Zero values mean "not filtered".
type VideoFilter struct {
	Statuses     []model.VideoStatus
	Author       uuid.UUID // only this user's videos
	ExcludeUser  uuid.UUID // drop this user's videos (default listing hides the caller's own)
	UnreviewedBy uuid.UUID // only videos without a review score by this user
	Query        string    // substring of the gloss text
	CategoryIDs  []uint
	Newest       bool // order by created_at desc (the caller's own listing)
	Offset       int
	Limit        int
}

// GlossCounterDelta describes how the owning gloss moves together with a
// video status transition. Counter updates are expressed as SQL increments
// so concurrent transitions never lose updates.
type GlossCounterDelta struct {
	Pending        int
	Rejected       int
	Approved       int
	SetSampleVideo bool
}

func (d GlossCounterDelta) empty() bool {
	return d.Pending == 0 && d.Rejected == 0 && d.Approved == 0 && !d.SetSampleVideo
}

type VideoRepository interface {
	Create(ctx context.Context, video *model.Video) error
	FindByUUID(ctx context.Context, uuid string) (*model.Video, error)
	FindAll(ctx context.Context, filter VideoFilter) ([]*model.Video, int64, error)
	CountByUserAndStatus(ctx context.Context, userID uuid.UUID, status model.VideoStatus) (int64, error)
	CountPerGloss(ctx context.Context, userID uuid.UUID, glossIDs []uint) (map[uint]int64, error)
	// SaveTransition persists a status transition. The video row is written
	// only while its stored status and review tally still equal prev and
	// prevSummary; otherwise apperror.ErrReviewConflict is returned and
	// nothing changes. The tally guard closes the read-modify-write window
	// between two reviewers whose votes both leave the status unchanged.
	// The gloss counter delta is applied in the same transaction.
	SaveTransition(ctx context.Context, video *model.Video, prev model.VideoStatus, prevSummary model.ReviewSummary, delta GlossCounterDelta) error
}

type videoRepository struct {
	db *gorm.DB
}

func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *model.Video) error {
	return r.db.WithContext(ctx).Create(video).Error
}

func (r *videoRepository) FindByUUID(ctx context.Context, id string) (*model.Video, error) {
	var video model.Video
	if err := r.db.WithContext(ctx).
		Preload("User").
		Preload("Gloss").
		Where("uuid = ?", id).
		First(&video).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &video, nil
}

func (r *videoRepository) FindAll(ctx context.Context, filter VideoFilter) ([]*model.Video, int64, error) {
	var videos []*model.Video
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Video{}).
		Joins("JOIN glosses ON glosses.id = videos.gloss_id").
		Where("glosses.gloss_type <> ?", model.GlossReferenceOnly)

	if len(filter.Statuses) > 0 {
		query = query.Where("videos.status IN ?", filter.Statuses)
	}

	if filter.Author != uuid.Nil {
		query = query.Where("videos.user_id = ?", filter.Author)
	} else if filter.ExcludeUser != uuid.Nil {
		query = query.Where("videos.user_id <> ?", filter.ExcludeUser)
	}

	if filter.UnreviewedBy != uuid.Nil {
		query = query.Where(
			"NOT EXISTS (SELECT 1 FROM scores WHERE scores.video_id = videos.id AND scores.user_id = ? AND scores.score_type = ?)",
			filter.UnreviewedBy, model.ScoreReviewVideo)
	}

	if filter.Query != "" {
		query = query.Where("glosses.text LIKE ?", "%"+filter.Query+"%")
	}

	if len(filter.CategoryIDs) > 0 {
		query = query.Where(
			"videos.gloss_id IN (SELECT gloss_id FROM category_glosses WHERE category_id IN ?)",
			filter.CategoryIDs)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Newest {
		query = query.Order("videos.created_at DESC")
	} else {
		query = query.Order("videos.id")
	}

	if err := query.
		Preload("User").
		Preload("Gloss").
		Offset(filter.Offset).Limit(filter.Limit).
		Find(&videos).Error; err != nil {
		return nil, 0, err
	}

	return videos, total, nil
}

func (r *videoRepository) CountByUserAndStatus(ctx context.Context, userID uuid.UUID, status model.VideoStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Video{}).
		Where("user_id = ? AND status = ?", userID, status).
		Count(&count).Error
	return count, err
}

func (r *videoRepository) CountPerGloss(ctx context.Context, userID uuid.UUID, glossIDs []uint) (map[uint]int64, error) {
	counts := make(map[uint]int64, len(glossIDs))
	if len(glossIDs) == 0 {
		return counts, nil
	}

	type row struct {
		GlossID uint
		Count   int64
	}
	var rows []row
	err := r.db.WithContext(ctx).Model(&model.Video{}).
		Select("gloss_id, COUNT(*) AS count").
		Where("user_id = ? AND gloss_id IN ?", userID, glossIDs).
		Group("gloss_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, r := range rows {
		counts[r.GlossID] = r.Count
	}
	return counts, nil
}

func (r *videoRepository) SaveTransition(ctx context.Context, video *model.Video, prev model.VideoStatus, prevSummary model.ReviewSummary, delta GlossCounterDelta) error {
	// Updates with a column map bypasses the model's json serializer, so the
	// summaries are marshalled by hand for both the guard and the write.
	prevTally, err := json.Marshal(prevSummary)
	if err != nil {
		return err
	}
	nextTally, err := json.Marshal(video.ReviewSummary)
	if err != nil {
		return err
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&model.Video{}).
			Where("id = ? AND status = ? AND review_summary = ?", video.ID, prev, string(prevTally)).
			Updates(map[string]any{
				"status":         video.Status,
				"review_summary": string(nextTally),
				"video_path":     video.VideoPath,
				"thumbnail":      video.Thumbnail,
			})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return apperror.ErrReviewConflict
		}

		if delta.empty() {
			return nil
		}

		updates := map[string]any{}
		if delta.Pending != 0 {
			updates["pending_approval_video_count"] = gorm.Expr("COALESCE(pending_approval_video_count, 0) + ?", delta.Pending)
		}
		if delta.Rejected != 0 {
			updates["rejected_video_count"] = gorm.Expr("COALESCE(rejected_video_count, 0) + ?", delta.Rejected)
		}
		if delta.Approved != 0 {
			updates["approved_video_count"] = gorm.Expr("COALESCE(approved_video_count, 0) + ?", delta.Approved)
		}
		if delta.SetSampleVideo {
			updates["sample_video_id"] = video.ID
		}

		return tx.Model(&model.Gloss{}).
			Where("id = ?", video.GlossID).
			Updates(updates).Error
	})
}
