package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"anoa.com/signcollect/internal/config"
	"anoa.com/signcollect/internal/dto"
	"anoa.com/signcollect/internal/model"
	"anoa.com/signcollect/internal/repository"
	"anoa.com/signcollect/pkg/apperror"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type VideoService interface {
	// CreateVideos registers one waiting-upload video per gloss id and
	// returns their external uuids in input order.
	CreateVideos(ctx context.Context, ownerID uuid.UUID, glossIDs []uint) ([]string, error)
	// AttachUpload records the stored media paths and moves the video into
	// the review pipeline (or straight to sample/approved, see config rules).
	AttachUpload(ctx context.Context, callerID uuid.UUID, videoUUID, videoPath, thumbnailPath string) (*dto.VideoResponse, error)
	GetVideo(ctx context.Context, videoUUID string) (*dto.VideoResponse, error)
	// GetVideoScore sums the quality points reviewers have awarded the video.
	GetVideoScore(ctx context.Context, videoUUID string) (int, error)
	ListVideos(ctx context.Context, callerID uuid.UUID, query dto.VideoListQuery, unreviewed bool) (*dto.PaginatedVideoResponse, error)
}

type videoService struct {
	videoRepo  repository.VideoRepository
	glossRepo  repository.GlossRepository
	scoreRepo  repository.ScoreRepository
	cfg        *config.Config
	redis      *redis.Client
	createWait time.Duration
}

func NewVideoService(videoRepo repository.VideoRepository, glossRepo repository.GlossRepository, scoreRepo repository.ScoreRepository, cfg *config.Config, rdb *redis.Client) VideoService {
	return &videoService{
		videoRepo:  videoRepo,
		glossRepo:  glossRepo,
		scoreRepo:  scoreRepo,
		cfg:        cfg,
		redis:      rdb,
		createWait: time.Second,
	}
}

func (s *videoService) CreateVideos(ctx context.Context, ownerID uuid.UUID, glossIDs []uint) ([]string, error) {
	if len(glossIDs) == 0 {
		return nil, fmt.Errorf("empty gloss id list: %w", apperror.ErrInvalidInput)
	}

	allowed, err := CheckAndSetRateLimit(ctx, s.redis, ownerID, "create_video", s.createWait)
	if err != nil {
		return nil, err
	}
	if !allowed {
		return nil, apperror.ErrRateLimited
	}

	uuids := make([]string, 0, len(glossIDs))
	for _, glossID := range glossIDs {
		if _, err := s.glossRepo.FindByID(ctx, glossID); err != nil {
			return nil, fmt.Errorf("gloss %d: %w", glossID, err)
		}

		video := &model.Video{
			UUID:          uuid.New().String(),
			UserID:        ownerID,
			GlossID:       glossID,
			Status:        model.StatusWaitingUpload,
			ReviewSummary: model.ReviewSummary{},
		}
		if err := s.videoRepo.Create(ctx, video); err != nil {
			return nil, err
		}
		uuids = append(uuids, video.UUID)
	}

	return uuids, nil
}

// counterShare is a gloss counter's view of one video status.
func counterShare(status model.VideoStatus) repository.GlossCounterDelta {
	switch status {
	case model.StatusPendingApproval:
		return repository.GlossCounterDelta{Pending: 1}
	case model.StatusRejected:
		return repository.GlossCounterDelta{Rejected: 1}
	case model.StatusApproved:
		return repository.GlossCounterDelta{Approved: 1}
	}
	return repository.GlossCounterDelta{}
}

// transitionDelta reconciles the counters for a status move so that their
// sum always tracks the submitted videos, re-uploads included.
func transitionDelta(prev, next model.VideoStatus) repository.GlossCounterDelta {
	from := counterShare(prev)
	to := counterShare(next)
	return repository.GlossCounterDelta{
		Pending:  to.Pending - from.Pending,
		Rejected: to.Rejected - from.Rejected,
		Approved: to.Approved - from.Approved,
	}
}

func (s *videoService) AttachUpload(ctx context.Context, callerID uuid.UUID, videoUUID, videoPath, thumbnailPath string) (*dto.VideoResponse, error) {
	video, err := s.videoRepo.FindByUUID(ctx, videoUUID)
	if err != nil {
		return nil, err
	}

	if video.UserID != callerID {
		return nil, apperror.ErrNotOwner
	}
	if video.Status.UploadForbidden() {
		return nil, apperror.ErrUploadClosed
	}

	prev := video.Status
	prevSummary := video.ReviewSummary
	video.VideoPath = videoPath
	video.Thumbnail = thumbnailPath

	var delta repository.GlossCounterDelta
	switch {
	case callerID == s.cfg.SampleCreatorID:
		// Reference recordings replace the gloss sample and stay out of the
		// training counters.
		video.Status = model.StatusSample
		delta = transitionDelta(prev, video.Status)
		delta.SetSampleVideo = true
	case s.cfg.AutoApproveUploaderIDs[callerID]:
		video.ReviewSummary = model.ReviewSummary{}
		video.Status = model.StatusApproved
		delta = transitionDelta(prev, video.Status)
	default:
		video.ReviewSummary = model.ReviewSummary{}
		video.Status = model.StatusPendingApproval
		delta = transitionDelta(prev, video.Status)
	}

	if err := s.videoRepo.SaveTransition(ctx, video, prev, prevSummary, delta); err != nil {
		return nil, err
	}

	score := &model.Score{
		UserID:       callerID,
		VideoID:      &video.ID,
		VideoOwnerID: callerID,
		ScoreType:    model.ScoreCreateVideo,
		Value:        model.ValueCreateVideo,
	}
	if err := s.scoreRepo.Upsert(ctx, score); err != nil {
		return nil, err
	}

	resp := dto.NewVideoResponse(video)
	return &resp, nil
}

func (s *videoService) GetVideo(ctx context.Context, videoUUID string) (*dto.VideoResponse, error) {
	video, err := s.videoRepo.FindByUUID(ctx, videoUUID)
	if err != nil {
		return nil, err
	}
	resp := dto.NewVideoResponse(video)
	return &resp, nil
}

func (s *videoService) GetVideoScore(ctx context.Context, videoUUID string) (int, error) {
	video, err := s.videoRepo.FindByUUID(ctx, videoUUID)
	if err != nil {
		return 0, err
	}
	return s.scoreRepo.VideoQualityScore(ctx, video.ID)
}

func (s *videoService) ListVideos(ctx context.Context, callerID uuid.UUID, query dto.VideoListQuery, unreviewed bool) (*dto.PaginatedVideoResponse, error) {
	filter := repository.VideoFilter{
		Statuses: []model.VideoStatus{
			model.StatusPendingApproval,
			model.StatusApproved,
			model.StatusRejected,
		},
		Query:  query.Query,
		Offset: query.Offset,
		Limit:  query.Limit,
	}
	if filter.Limit == 0 {
		filter.Limit = s.cfg.PageSize
	}

	if query.Status != "" {
		status, err := model.ParseVideoStatus(query.Status)
		if err != nil {
			return nil, fmt.Errorf("%v: %w", err, apperror.ErrInvalidInput)
		}
		filter.Statuses = []model.VideoStatus{status}
	}

	switch query.Author {
	case "":
		filter.ExcludeUser = callerID
	case "self":
		filter.Author = callerID
		filter.Newest = true
	default:
		author, err := uuid.Parse(query.Author)
		if err != nil {
			return nil, fmt.Errorf("invalid author id: %w", apperror.ErrInvalidInput)
		}
		filter.Author = author
		filter.Newest = author == callerID
	}

	if unreviewed {
		filter.Statuses = []model.VideoStatus{model.StatusPendingApproval}
		filter.UnreviewedBy = callerID
	}

	if query.CategoryID != "" {
		for _, raw := range strings.Split(query.CategoryID, ",") {
			id, err := strconv.ParseUint(strings.TrimSpace(raw), 10, 32)
			if err != nil {
				return nil, fmt.Errorf("invalid category id %q: %w", raw, apperror.ErrInvalidInput)
			}
			filter.CategoryIDs = append(filter.CategoryIDs, uint(id))
		}
	}

	videos, total, err := s.videoRepo.FindAll(ctx, filter)
	if err != nil {
		return nil, err
	}

	data := make([]dto.VideoResponse, 0, len(videos))
	for _, v := range videos {
		data = append(data, dto.NewVideoResponse(v))
	}

	return &dto.PaginatedVideoResponse{
		PageMeta: dto.PageMeta{
			Total: total,
			Next:  dto.NextOffset(filter.Offset, filter.Limit, total),
		},
		Data: data,
	}, nil
}
