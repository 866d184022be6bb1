package service

import (
	"context"
	"testing"

	"anoa.com/signcollect/internal/dto"
	"anoa.com/signcollect/internal/model"
	"anoa.com/signcollect/internal/repository"
	"anoa.com/signcollect/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupGlossService(t *testing.T) (GlossService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewGlossService(
		repository.NewGlossRepository(db),
		repository.NewCategoryRepository(db),
		repository.NewScoreRepository(db),
		nil,
		newTestConfig())
	return svc, db
}

func TestCreateGlossStripsMarkup(t *testing.T) {
	svc, db := setupGlossService(t)
	user := seedUser(t, db, "alice")

	resp, err := svc.CreateGloss(context.Background(), user.ID, dto.CreateGlossRequest{
		Text:      "<b>hello</b> <script>alert(1)</script>",
		GlossType: int(model.GlossSingleWord),
	})
	require.NoError(t, err)
	assert.Equal(t, "hello", resp.Text)

	var scores []model.Score
	require.NoError(t, db.Find(&scores).Error)
	require.Len(t, scores, 1)
	assert.Equal(t, model.ScoreCreateGloss, scores[0].ScoreType)
	assert.Equal(t, model.ValueCreateGloss, scores[0].Value)
	assert.Nil(t, scores[0].VideoID)
}

func TestCreateGlossRejectsEmptyText(t *testing.T) {
	svc, db := setupGlossService(t)
	user := seedUser(t, db, "alice")

	_, err := svc.CreateGloss(context.Background(), user.ID, dto.CreateGlossRequest{
		Text:      "<script>alert(1)</script>",
		GlossType: int(model.GlossSingleWord),
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestCreateGlossUnknownCategory(t *testing.T) {
	svc, db := setupGlossService(t)
	user := seedUser(t, db, "alice")

	_, err := svc.CreateGloss(context.Background(), user.ID, dto.CreateGlossRequest{
		Text:        "hello",
		GlossType:   int(model.GlossSingleWord),
		CategoryIDs: []uint{42},
	})
	assert.ErrorIs(t, err, apperror.ErrInvalidInput)
}

func TestCreateGlossAttachesCategories(t *testing.T) {
	svc, db := setupGlossService(t)
	user := seedUser(t, db, "alice")
	category := model.Category{Title: "greetings"}
	require.NoError(t, db.Create(&category).Error)

	resp, err := svc.CreateGloss(context.Background(), user.ID, dto.CreateGlossRequest{
		Text:        "hello",
		GlossType:   int(model.GlossSingleWord),
		CategoryIDs: []uint{category.ID},
	})
	require.NoError(t, err)
	require.Len(t, resp.Categories, 1)
	assert.Equal(t, "greetings", resp.Categories[0].Title)
}

func TestListGlossesDictionaryIsSingleWordOnly(t *testing.T) {
	svc, db := setupGlossService(t)
	seedGloss(t, db, "hello", model.GlossSingleWord)
	seedGloss(t, db, "good morning", model.GlossCompositeWord)
	seedGloss(t, db, "alphabet", model.GlossReferenceOnly)

	resp, err := svc.ListGlosses(context.Background(), dto.GlossListQuery{})
	require.NoError(t, err)
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "hello", resp.Data[0].Text)
	assert.Equal(t, int64(1), resp.Total)
}

func TestListGlossesSubstringSearch(t *testing.T) {
	svc, db := setupGlossService(t)
	seedGloss(t, db, "hello", model.GlossSingleWord)
	seedGloss(t, db, "help", model.GlossSingleWord)
	seedGloss(t, db, "bye", model.GlossSingleWord)

	resp, err := svc.ListGlosses(context.Background(), dto.GlossListQuery{Query: "hel"})
	require.NoError(t, err)
	assert.Len(t, resp.Data, 2)
}
