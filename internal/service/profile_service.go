package service

import (
	"context"

	"anoa.com/signcollect/internal/dto"
	"anoa.com/signcollect/internal/repository"
	"github.com/google/uuid"
)

type ProfileService interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error)
}

type profileService struct {
	userRepo     repository.UserRepository
	scoreService ScoreService
}

func NewProfileService(userRepo repository.UserRepository, scoreService ScoreService) ProfileService {
	return &profileService{userRepo: userRepo, scoreService: scoreService}
}

func (s *profileService) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.ProfileResponse, error) {
	user, err := s.userRepo.FindByID(ctx, userID.String())
	if err != nil {
		return nil, err
	}

	scores, err := s.scoreService.UserScores(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &dto.ProfileResponse{
		ID:       user.ID.String(),
		Username: user.Username,
		Scores:   scores,
	}, nil
}
