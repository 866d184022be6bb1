package service

import (
	"context"
	"testing"

	"anoa.com/signcollect/internal/model"
	"anoa.com/signcollect/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupScoreService(t *testing.T) (ScoreService, *gorm.DB) {
	t.Helper()
	db := newTestDB(t)
	svc := NewScoreService(
		repository.NewScoreRepository(db),
		repository.NewUserRepository(db))
	return svc, db
}

func TestUserScoresZeroFilled(t *testing.T) {
	svc, db := setupScoreService(t)
	user := seedUser(t, db, "alice")

	scores, err := svc.UserScores(context.Background(), user.ID)
	require.NoError(t, err)

	require.Len(t, scores, len(model.ScoreTypes()))
	for _, scoreType := range model.ScoreTypes() {
		agg, ok := scores[scoreType.String()]
		require.True(t, ok, "missing %s", scoreType)
		assert.Zero(t, agg.Score)
		assert.Zero(t, agg.Count)
	}
}

func TestUserScoresQualityCreditsVideoOwner(t *testing.T) {
	svc, db := setupScoreService(t)
	owner := seedUser(t, db, "owner")
	reviewer := seedUser(t, db, "reviewer")
	gloss := seedGloss(t, db, "hello", model.GlossSingleWord)
	video := seedVideo(t, db, owner, gloss, model.StatusApproved)

	require.NoError(t, db.Create(&model.Score{
		UserID: reviewer.ID, VideoID: &video.ID, VideoOwnerID: owner.ID,
		ScoreType: model.ScoreReviewVideo, Value: model.ValueReviewVideo,
	}).Error)
	require.NoError(t, db.Create(&model.Score{
		UserID: reviewer.ID, VideoID: &video.ID, VideoOwnerID: owner.ID,
		ScoreType: model.ScoreVideoQuality, Value: model.ValueApproveVideo,
	}).Error)

	ownerScores, err := svc.UserScores(context.Background(), owner.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ValueApproveVideo, ownerScores[model.ScoreVideoQuality.String()].Score)
	assert.Zero(t, ownerScores[model.ScoreReviewVideo.String()].Score)

	reviewerScores, err := svc.UserScores(context.Background(), reviewer.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ValueReviewVideo, reviewerScores[model.ScoreReviewVideo.String()].Score)
	assert.Zero(t, reviewerScores[model.ScoreVideoQuality.String()].Score)
}

func TestUserScoresIncludeGlossCreation(t *testing.T) {
	svc, db := setupScoreService(t)
	user := seedUser(t, db, "alice")

	require.NoError(t, db.Create(&model.Score{
		UserID: user.ID, VideoOwnerID: user.ID,
		ScoreType: model.ScoreCreateGloss, Value: model.ValueCreateGloss,
	}).Error)

	scores, err := svc.UserScores(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, model.ValueCreateGloss, scores[model.ScoreCreateGloss.String()].Score)
	assert.Equal(t, 1, scores[model.ScoreCreateGloss.String()].Count)
}

func TestUserScoresExcludeReferenceOnlyGlosses(t *testing.T) {
	svc, db := setupScoreService(t)
	user := seedUser(t, db, "alice")
	refGloss := seedGloss(t, db, "alphabet", model.GlossReferenceOnly)
	video := seedVideo(t, db, user, refGloss, model.StatusApproved)

	require.NoError(t, db.Create(&model.Score{
		UserID: user.ID, VideoID: &video.ID, VideoOwnerID: user.ID,
		ScoreType: model.ScoreCreateVideo, Value: model.ValueCreateVideo,
	}).Error)

	scores, err := svc.UserScores(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Zero(t, scores[model.ScoreCreateVideo.String()].Score)
}

func TestLeaderboardRanksByTotal(t *testing.T) {
	svc, db := setupScoreService(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	gloss := seedGloss(t, db, "hello", model.GlossSingleWord)
	aliceVideo := seedVideo(t, db, alice, gloss, model.StatusApproved)

	// Alice: 3 (create) + 2 (her video approved by bob) = 5.
	require.NoError(t, db.Create(&model.Score{
		UserID: alice.ID, VideoID: &aliceVideo.ID, VideoOwnerID: alice.ID,
		ScoreType: model.ScoreCreateVideo, Value: model.ValueCreateVideo,
	}).Error)
	require.NoError(t, db.Create(&model.Score{
		UserID: bob.ID, VideoID: &aliceVideo.ID, VideoOwnerID: alice.ID,
		ScoreType: model.ScoreVideoQuality, Value: model.ValueApproveVideo,
	}).Error)
	// Bob: 1 (reviewed alice's video).
	require.NoError(t, db.Create(&model.Score{
		UserID: bob.ID, VideoID: &aliceVideo.ID, VideoOwnerID: alice.ID,
		ScoreType: model.ScoreReviewVideo, Value: model.ValueReviewVideo,
	}).Error)

	entries, err := svc.Leaderboard(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	assert.Equal(t, "alice", entries[0].Username)
	assert.Equal(t, 5, entries[0].Total)
	assert.Equal(t, 1, entries[0].Position)
	assert.Equal(t, "bob", entries[1].Username)
	assert.Equal(t, 1, entries[1].Total)
	assert.Equal(t, 2, entries[1].Position)
}
