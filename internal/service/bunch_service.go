package service

import (
	"context"

	"anoa.com/signcollect/internal/config"
	"anoa.com/signcollect/internal/dto"
	"anoa.com/signcollect/internal/model"
	"anoa.com/signcollect/internal/repository"
	"anoa.com/signcollect/pkg/apperror"
	"github.com/google/uuid"
)

// BunchService hands each contributor the next batch of glosses to record.
type BunchService interface {
	GetBunch(ctx context.Context, callerID uuid.UUID) ([]dto.GlossResponse, error)
}

type bunchService struct {
	glossRepo repository.GlossRepository
	videoRepo repository.VideoRepository
	cfg       *config.Config
}

func NewBunchService(glossRepo repository.GlossRepository, videoRepo repository.VideoRepository, cfg *config.Config) BunchService {
	return &bunchService{glossRepo: glossRepo, videoRepo: videoRepo, cfg: cfg}
}

func (s *bunchService) GetBunch(ctx context.Context, callerID uuid.UUID) ([]dto.GlossResponse, error) {
	if callerID == s.cfg.SampleCreatorID {
		return s.referenceBunch(ctx, callerID)
	}
	return s.trainingBunch(ctx, callerID)
}

// referenceBunch is the work queue of the reference-recording account: every
// recordable gloss it has not recorded yet, in one go.
func (s *bunchService) referenceBunch(ctx context.Context, callerID uuid.UUID) ([]dto.GlossResponse, error) {
	glosses, err := s.glossRepo.ReferenceCandidates(ctx, callerID)
	if err != nil {
		return nil, err
	}
	return s.toResponses(glosses), nil
}

// trainingBunch sizes the batch by how much pending-review headroom the
// caller has left, then drops glosses the caller has already recorded often
// enough. The batch can come back smaller than the headroom, or empty.
func (s *bunchService) trainingBunch(ctx context.Context, callerID uuid.UUID) ([]dto.GlossResponse, error) {
	pending, err := s.videoRepo.CountByUserAndStatus(ctx, callerID, model.StatusPendingApproval)
	if err != nil {
		return nil, err
	}

	limit := s.cfg.PendingApprovalLimitPerUser - int(pending)
	if limit < 1 {
		return nil, apperror.ErrTooManyPending
	}

	candidates, err := s.glossRepo.TrainingCandidates(ctx, s.cfg.TargetTrainingCountPerGloss, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(candidates))
	for _, g := range candidates {
		ids = append(ids, g.ID)
	}
	recorded, err := s.videoRepo.CountPerGloss(ctx, callerID, ids)
	if err != nil {
		return nil, err
	}

	glosses := make([]*model.Gloss, 0, len(candidates))
	for _, g := range candidates {
		if recorded[g.ID] > int64(s.cfg.OneGlossRecordingLimit) {
			continue
		}
		glosses = append(glosses, g)
	}

	return s.toResponses(glosses), nil
}

func (s *bunchService) toResponses(glosses []*model.Gloss) []dto.GlossResponse {
	responses := make([]dto.GlossResponse, 0, len(glosses))
	for _, g := range glosses {
		resp := dto.NewGlossResponse(g)
		if resp.SampleVideo != nil && resp.SampleVideo.Thumbnail == "" {
			resp.SampleVideo.Thumbnail = s.cfg.NoThumbnailURL
		}
		responses = append(responses, resp)
	}
	return responses
}
