package service

import (
	"context"
	"errors"

	"anoa.com/signcollect/internal/config"
	"anoa.com/signcollect/internal/dto"
	"anoa.com/signcollect/internal/model"
	"anoa.com/signcollect/internal/repository"
	"anoa.com/signcollect/pkg/apperror"
	"github.com/google/uuid"
)

// Concurrent reviews on the same video serialize through the conditional
// status update; losers reload and retry a bounded number of times.
const maxReviewRetries = 3

type ReviewService interface {
	ReviewVideo(ctx context.Context, reviewerID uuid.UUID, videoUUID string, decision ReviewDecision) (*dto.ReviewResult, error)
}

type reviewService struct {
	videoRepo     repository.VideoRepository
	glossRepo     repository.GlossRepository
	scoreRepo     repository.ScoreRepository
	scoreService  ScoreService
	notifications NotificationService
	thresholds    ConsensusThresholds
}

func NewReviewService(videoRepo repository.VideoRepository, glossRepo repository.GlossRepository, scoreRepo repository.ScoreRepository, scoreService ScoreService, notifications NotificationService, cfg *config.Config) ReviewService {
	return &reviewService{
		videoRepo:     videoRepo,
		glossRepo:     glossRepo,
		scoreRepo:     scoreRepo,
		scoreService:  scoreService,
		notifications: notifications,
		thresholds: ConsensusThresholds{
			MinApprovals:  cfg.MinApprovalCount,
			MinRejections: cfg.MinRejectionCount,
		},
	}
}

func (s *reviewService) ReviewVideo(ctx context.Context, reviewerID uuid.UUID, videoUUID string, decision ReviewDecision) (*dto.ReviewResult, error) {
	video, err := s.videoRepo.FindByUUID(ctx, videoUUID)
	if err != nil {
		return nil, err
	}

	if video.UserID == reviewerID {
		return nil, apperror.ErrSelfReview
	}

	isSample, err := s.glossRepo.IsSampleVideo(ctx, video.ID)
	if err != nil {
		return nil, err
	}
	if isSample {
		return nil, apperror.ErrSampleVideo
	}

	reviewed, err := s.scoreRepo.HasReviewed(ctx, reviewerID, video.ID)
	if err != nil {
		return nil, err
	}
	if reviewed {
		return nil, apperror.ErrAlreadyReviewed
	}

	var outcome ReviewOutcome
	for attempt := 0; ; attempt++ {
		outcome, err = ApplyReview(video.ReviewSummary, video.Status, decision, s.thresholds)
		if err != nil {
			return nil, err
		}

		prev := video.Status
		prevSummary := video.ReviewSummary
		video.ReviewSummary = outcome.Summary
		video.Status = outcome.Status

		var delta repository.GlossCounterDelta
		if outcome.Transitioned {
			delta = transitionDelta(prev, outcome.Status)
		}

		err = s.videoRepo.SaveTransition(ctx, video, prev, prevSummary, delta)
		if err == nil {
			break
		}
		if !errors.Is(err, apperror.ErrReviewConflict) || attempt+1 >= maxReviewRetries {
			return nil, err
		}

		// Lost the race; re-read the tally and try again.
		video, err = s.videoRepo.FindByUUID(ctx, videoUUID)
		if err != nil {
			return nil, err
		}
	}

	// One review score per (reviewer, video), repeated calls stay single-row.
	reviewScore := &model.Score{
		UserID:       reviewerID,
		VideoID:      &video.ID,
		VideoOwnerID: video.UserID,
		ScoreType:    model.ScoreReviewVideo,
		Value:        model.ValueReviewVideo,
	}
	if err := s.scoreRepo.Upsert(ctx, reviewScore); err != nil {
		return nil, err
	}

	qualityValue := model.ValueRejectVideo
	if decision == DecisionApprove {
		qualityValue = model.ValueApproveVideo
	}
	qualityScore := &model.Score{
		UserID:       reviewerID,
		VideoID:      &video.ID,
		VideoOwnerID: video.UserID,
		ScoreType:    model.ScoreVideoQuality,
		Value:        qualityValue,
	}
	if err := s.scoreRepo.Upsert(ctx, qualityScore); err != nil {
		return nil, err
	}

	if outcome.Transitioned && s.notifications != nil {
		s.notifications.NotifyReviewOutcome(ctx, video)
	}

	videoScore, err := s.scoreRepo.VideoQualityScore(ctx, video.ID)
	if err != nil {
		return nil, err
	}

	userScores, err := s.scoreService.UserScores(ctx, reviewerID)
	if err != nil {
		return nil, err
	}

	return &dto.ReviewResult{
		UUID:       video.UUID,
		Value:      model.ValueReviewVideo,
		VideoScore: videoScore,
		UserScores: userScores,
	}, nil
}
