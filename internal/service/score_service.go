package service

import (
	"context"

	"anoa.com/signcollect/internal/dto"
	"anoa.com/signcollect/internal/model"
	"anoa.com/signcollect/internal/repository"
	"github.com/google/uuid"
)

type ScoreService interface {
	// UserScores returns the per-type aggregate for one user, zero-filled so
	// every known score type is present.
	UserScores(ctx context.Context, userID uuid.UUID) (dto.UserScores, error)
	VideoScore(ctx context.Context, videoID uint) (int, error)
	Leaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error)
	ScoreLegend() []dto.ScoreLegendEntry
}

type scoreService struct {
	scoreRepo repository.ScoreRepository
	userRepo  repository.UserRepository
}

func NewScoreService(scoreRepo repository.ScoreRepository, userRepo repository.UserRepository) ScoreService {
	return &scoreService{scoreRepo: scoreRepo, userRepo: userRepo}
}

func (s *scoreService) UserScores(ctx context.Context, userID uuid.UUID) (dto.UserScores, error) {
	aggs, err := s.scoreRepo.UserScores(ctx, userID)
	if err != nil {
		return nil, err
	}

	scores := make(dto.UserScores, len(model.ScoreTypes()))
	for _, t := range model.ScoreTypes() {
		scores[t.String()] = dto.ScoreAggregate{}
	}
	for _, agg := range aggs {
		scores[agg.ScoreType.String()] = dto.ScoreAggregate{
			Score: agg.Total,
			Count: agg.Count,
		}
	}
	return scores, nil
}

func (s *scoreService) VideoScore(ctx context.Context, videoID uint) (int, error) {
	return s.scoreRepo.VideoQualityScore(ctx, videoID)
}

func (s *scoreService) Leaderboard(ctx context.Context, limit int) ([]dto.LeaderboardEntry, error) {
	totals, err := s.scoreRepo.TopUsers(ctx, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(totals))
	for _, t := range totals {
		ids = append(ids, t.UserID)
	}
	users, err := s.userRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	names := make(map[uuid.UUID]string, len(users))
	for _, u := range users {
		names[u.ID] = u.Username
	}

	entries := make([]dto.LeaderboardEntry, 0, len(totals))
	for i, t := range totals {
		entries = append(entries, dto.LeaderboardEntry{
			UserID:   t.UserID.String(),
			Username: names[t.UserID],
			Total:    t.Total,
			Position: i + 1,
		})
	}
	return entries, nil
}

// ScoreLegend documents the point values the platform awards, for display
// next to the review screen.
func (s *scoreService) ScoreLegend() []dto.ScoreLegendEntry {
	return []dto.ScoreLegendEntry{
		{Label: "review a video", Value: model.ValueReviewVideo},
		{Label: "record a video", Value: model.ValueCreateVideo},
		{Label: "add a gloss", Value: model.ValueCreateGloss},
		{Label: "video approved", Value: model.ValueApproveVideo},
		{Label: "video rejected", Value: model.ValueRejectVideo},
	}
}
