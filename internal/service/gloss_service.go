package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"anoa.com/signcollect/internal/config"
	"anoa.com/signcollect/internal/dto"
	"anoa.com/signcollect/internal/model"
	"anoa.com/signcollect/internal/repository"
	"anoa.com/signcollect/pkg/apperror"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
)

type GlossService interface {
	GetGloss(ctx context.Context, id uint) (*dto.GlossResponse, error)
	// ListGlosses serves the dictionary: single-word glosses only, searched
	// through the full-text index when one is configured.
	ListGlosses(ctx context.Context, query dto.GlossListQuery) (*dto.PaginatedGlossResponse, error)
	CreateGloss(ctx context.Context, creatorID uuid.UUID, req dto.CreateGlossRequest) (*dto.GlossResponse, error)
	Categories(ctx context.Context) ([]model.Category, error)
}

type glossService struct {
	glossRepo    repository.GlossRepository
	categoryRepo repository.CategoryRepository
	scoreRepo    repository.ScoreRepository
	search       MeiliSearchService
	sanitizer    *bluemonday.Policy
	cfg          *config.Config
}

func NewGlossService(glossRepo repository.GlossRepository, categoryRepo repository.CategoryRepository, scoreRepo repository.ScoreRepository, search MeiliSearchService, cfg *config.Config) GlossService {
	return &glossService{
		glossRepo:    glossRepo,
		categoryRepo: categoryRepo,
		scoreRepo:    scoreRepo,
		search:       search,
		sanitizer:    bluemonday.StrictPolicy(),
		cfg:          cfg,
	}
}

func (s *glossService) GetGloss(ctx context.Context, id uint) (*dto.GlossResponse, error) {
	gloss, err := s.glossRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := dto.NewGlossResponse(gloss)
	return &resp, nil
}

func (s *glossService) ListGlosses(ctx context.Context, query dto.GlossListQuery) (*dto.PaginatedGlossResponse, error) {
	limit := query.Limit
	if limit == 0 {
		limit = s.cfg.PageSize
	}

	if query.Query != "" && s.search != nil {
		resp, err := s.searchGlosses(ctx, query.Query, limit, query.Offset)
		if err == nil {
			return resp, nil
		}
		log.Printf("Dictionary search backend failed, falling back to SQL: %v", err)
	}

	glosses, total, err := s.glossRepo.FindAll(ctx, repository.GlossFilter{
		Query:          query.Query,
		Order:          query.Order,
		SingleWordOnly: true,
		Offset:         query.Offset,
		Limit:          limit,
	})
	if err != nil {
		return nil, err
	}
	return s.paginate(glosses, total, query.Offset, limit), nil
}

func (s *glossService) searchGlosses(ctx context.Context, q string, limit, offset int) (*dto.PaginatedGlossResponse, error) {
	ids, total, err := s.search.SearchGlossIDs(q, limit, offset)
	if err != nil {
		return nil, err
	}

	glosses, err := s.glossRepo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	// Restore the relevance order the index returned.
	byID := make(map[uint]*model.Gloss, len(glosses))
	for _, g := range glosses {
		byID[g.ID] = g
	}
	ordered := make([]*model.Gloss, 0, len(ids))
	for _, id := range ids {
		if g, ok := byID[id]; ok {
			ordered = append(ordered, g)
		}
	}

	return s.paginate(ordered, total, offset, limit), nil
}

func (s *glossService) paginate(glosses []*model.Gloss, total int64, offset, limit int) *dto.PaginatedGlossResponse {
	data := make([]dto.GlossResponse, 0, len(glosses))
	for _, g := range glosses {
		data = append(data, dto.NewGlossResponse(g))
	}
	return &dto.PaginatedGlossResponse{
		PageMeta: dto.PageMeta{
			Total: total,
			Next:  dto.NextOffset(offset, limit, total),
		},
		Data: data,
	}
}

func (s *glossService) CreateGloss(ctx context.Context, creatorID uuid.UUID, req dto.CreateGlossRequest) (*dto.GlossResponse, error) {
	text := strings.TrimSpace(s.sanitizer.Sanitize(req.Text))
	if text == "" {
		return nil, fmt.Errorf("gloss text is empty after sanitizing: %w", apperror.ErrInvalidInput)
	}

	categories, err := s.categoryRepo.FindByIDs(ctx, req.CategoryIDs)
	if err != nil {
		return nil, err
	}
	if len(categories) != len(req.CategoryIDs) {
		return nil, fmt.Errorf("unknown category id: %w", apperror.ErrInvalidInput)
	}

	gloss := &model.Gloss{
		Text:       text,
		GlossType:  model.GlossType(req.GlossType),
		Duration:   req.Duration,
		Categories: categories,
	}
	if err := s.glossRepo.Create(ctx, gloss); err != nil {
		return nil, err
	}

	score := &model.Score{
		UserID:       creatorID,
		VideoOwnerID: creatorID,
		ScoreType:    model.ScoreCreateGloss,
		Value:        model.ValueCreateGloss,
	}
	if err := s.scoreRepo.Create(ctx, score); err != nil {
		return nil, err
	}

	if s.search != nil {
		if err := s.search.IndexGloss(gloss); err != nil {
			log.Printf("Failed to index gloss %d: %v", gloss.ID, err)
		}
	}

	resp := dto.NewGlossResponse(gloss)
	return &resp, nil
}

func (s *glossService) Categories(ctx context.Context) ([]model.Category, error) {
	return s.categoryRepo.FindRoot(ctx)
}
