package repository

import (
	"context"
	"errors"

	"anoa.com/signcollect/internal/model"
	"anoa.com/signcollect/pkg/apperror"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GlossFilter struct {
	Query          string
	Order          string // "latest" or "" (text order)
	SingleWordOnly bool   // dictionary listing
	Offset         int
	Limit          int
}

type GlossRepository interface {
	Create(ctx context.Context, gloss *model.Gloss) error
	FindByID(ctx context.Context, id uint) (*model.Gloss, error)
	FindByIDs(ctx context.Context, ids []uint) ([]*model.Gloss, error)
	FindAll(ctx context.Context, filter GlossFilter) ([]*model.Gloss, int64, error)
	// ReferenceCandidates returns every recordable gloss the given account has
	// not yet recorded any video for, ordered by id. Unbounded.
	ReferenceCandidates(ctx context.Context, userID uuid.UUID) ([]*model.Gloss, error)
	// TrainingCandidates returns recordable glosses still short of the target
	// approved count, ordered by id, at most limit rows.
	TrainingCandidates(ctx context.Context, targetCount, limit int) ([]*model.Gloss, error)
	// IsSampleVideo reports whether the video is some gloss's reference video.
	IsSampleVideo(ctx context.Context, videoID uint) (bool, error)
}

type glossRepository struct {
	db *gorm.DB
}

func NewGlossRepository(db *gorm.DB) GlossRepository {
	return &glossRepository{db: db}
}

func (r *glossRepository) Create(ctx context.Context, gloss *model.Gloss) error {
	return r.db.WithContext(ctx).Create(gloss).Error
}

func (r *glossRepository) FindByID(ctx context.Context, id uint) (*model.Gloss, error) {
	var gloss model.Gloss
	if err := r.db.WithContext(ctx).
		Preload("SampleVideo").
		Preload("SampleVideo.User").
		Preload("Categories").
		First(&gloss, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.ErrNotFound
		}
		return nil, err
	}
	return &gloss, nil
}

func (r *glossRepository) FindByIDs(ctx context.Context, ids []uint) ([]*model.Gloss, error) {
	var glosses []*model.Gloss
	if len(ids) == 0 {
		return glosses, nil
	}
	err := r.db.WithContext(ctx).
		Preload("SampleVideo").
		Preload("SampleVideo.User").
		Preload("Categories").
		Where("id IN ?", ids).
		Find(&glosses).Error
	return glosses, err
}

func (r *glossRepository) FindAll(ctx context.Context, filter GlossFilter) ([]*model.Gloss, int64, error) {
	var glosses []*model.Gloss
	var total int64

	query := r.db.WithContext(ctx).Model(&model.Gloss{})

	if filter.SingleWordOnly {
		query = query.Where("gloss_type = ?", model.GlossSingleWord)
	}
	if filter.Query != "" {
		query = query.Where("text LIKE ?", "%"+filter.Query+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Order == "latest" {
		query = query.Order("created_at DESC")
	} else {
		query = query.Order("text")
	}

	if err := query.
		Preload("SampleVideo").
		Preload("SampleVideo.User").
		Preload("Categories").
		Offset(filter.Offset).Limit(filter.Limit).
		Find(&glosses).Error; err != nil {
		return nil, 0, err
	}

	return glosses, total, nil
}

func (r *glossRepository) ReferenceCandidates(ctx context.Context, userID uuid.UUID) ([]*model.Gloss, error) {
	var glosses []*model.Gloss
	err := r.db.WithContext(ctx).
		Where("gloss_type <> ?", model.GlossReferenceOnly).
		Where("id NOT IN (SELECT gloss_id FROM videos WHERE user_id = ?)", userID).
		Order("id").
		Find(&glosses).Error
	return glosses, err
}

func (r *glossRepository) TrainingCandidates(ctx context.Context, targetCount, limit int) ([]*model.Gloss, error) {
	var glosses []*model.Gloss
	err := r.db.WithContext(ctx).
		Where("gloss_type > ?", model.GlossReferenceOnly).
		Where("approved_video_count IS NULL OR approved_video_count < ?", targetCount).
		Order("id").
		Limit(limit).
		Preload("SampleVideo").
		Preload("SampleVideo.User").
		Find(&glosses).Error
	return glosses, err
}

func (r *glossRepository) IsSampleVideo(ctx context.Context, videoID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Gloss{}).
		Where("sample_video_id = ?", videoID).
		Count(&count).Error
	return count > 0, err
}
