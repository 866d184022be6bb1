package service

import (
	"context"
	"testing"

	"anoa.com/signcollect/internal/config"
	"anoa.com/signcollect/internal/model"
	"anoa.com/signcollect/internal/repository"
	"anoa.com/signcollect/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupReviewService(t *testing.T) (ReviewService, *gorm.DB, *config.Config) {
	t.Helper()
	db := newTestDB(t)
	cfg := newTestConfig()

	videoRepo := repository.NewVideoRepository(db)
	glossRepo := repository.NewGlossRepository(db)
	scoreRepo := repository.NewScoreRepository(db)
	userRepo := repository.NewUserRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	scoreSvc := NewScoreService(scoreRepo, userRepo)
	notificationSvc := NewNotificationService(notificationRepo, nil)

	svc := NewReviewService(videoRepo, glossRepo, scoreRepo, scoreSvc, notificationSvc, cfg)
	return svc, db, cfg
}

func TestReviewVideoSelfReviewRejected(t *testing.T) {
	svc, db, _ := setupReviewService(t)
	alice := seedUser(t, db, "alice")
	gloss := seedGloss(t, db, "hello", model.GlossSingleWord)
	video := seedVideo(t, db, alice, gloss, model.StatusPendingApproval)

	_, err := svc.ReviewVideo(context.Background(), alice.ID, video.UUID, DecisionApprove)
	assert.ErrorIs(t, err, apperror.ErrSelfReview)

	stored := reloadVideo(t, db, video.ID)
	assert.Equal(t, model.ReviewSummary{}, stored.ReviewSummary)

	var scoreCount int64
	require.NoError(t, db.Model(&model.Score{}).Count(&scoreCount).Error)
	assert.Zero(t, scoreCount)
}

func TestReviewVideoSampleGuard(t *testing.T) {
	svc, db, _ := setupReviewService(t)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	gloss := seedGloss(t, db, "hello", model.GlossSingleWord)
	video := seedVideo(t, db, alice, gloss, model.StatusPendingApproval)
	require.NoError(t, db.Model(gloss).Update("sample_video_id", video.ID).Error)

	_, err := svc.ReviewVideo(context.Background(), bob.ID, video.UUID, DecisionApprove)
	assert.ErrorIs(t, err, apperror.ErrSampleVideo)
}

func TestReviewVideoAccumulatesUntilThreshold(t *testing.T) {
	svc, db, _ := setupReviewService(t)
	owner := seedUser(t, db, "owner")
	gloss := seedGloss(t, db, "hello", model.GlossSingleWord)
	video := seedVideo(t, db, owner, gloss, model.StatusPendingApproval)

	reviewers := []*model.User{
		seedUser(t, db, "r1"),
		seedUser(t, db, "r2"),
	}
	for _, reviewer := range reviewers {
		result, err := svc.ReviewVideo(context.Background(), reviewer.ID, video.UUID, DecisionApprove)
		require.NoError(t, err)
		assert.Equal(t, model.ValueReviewVideo, result.Value)
	}

	stored := reloadVideo(t, db, video.ID)
	assert.Equal(t, model.StatusPendingApproval, stored.Status)
	assert.Equal(t, model.ReviewSummary{Approved: 2}, stored.ReviewSummary)
	assert.Equal(t, 1, reloadGloss(t, db, gloss.ID).PendingApprovalVideoCount)
}

func TestReviewVideoApprovalConsensus(t *testing.T) {
	svc, db, _ := setupReviewService(t)
	owner := seedUser(t, db, "owner")
	gloss := seedGloss(t, db, "hello", model.GlossSingleWord)
	video := seedVideo(t, db, owner, gloss, model.StatusPendingApproval)

	for _, name := range []string{"r1", "r2", "r3"} {
		reviewer := seedUser(t, db, name)
		_, err := svc.ReviewVideo(context.Background(), reviewer.ID, video.UUID, DecisionApprove)
		require.NoError(t, err)
	}

	stored := reloadVideo(t, db, video.ID)
	assert.Equal(t, model.StatusApproved, stored.Status)
	assert.Equal(t, model.ReviewSummary{Approved: 3}, stored.ReviewSummary)

	gloss = reloadGloss(t, db, gloss.ID)
	assert.Equal(t, 0, gloss.PendingApprovalVideoCount)
	assert.Equal(t, 1, gloss.ApprovedVideoCount)

	// The owner was told about the outcome.
	var notifications []model.Notification
	require.NoError(t, db.Find(&notifications).Error)
	require.Len(t, notifications, 1)
	assert.Equal(t, owner.ID, notifications[0].UserID)
	assert.Equal(t, "video_approved", notifications[0].Type)
}

func TestReviewVideoRejectionConsensus(t *testing.T) {
	svc, db, cfg := setupReviewService(t)
	cfg.MinRejectionCount = 2
	owner := seedUser(t, db, "owner")
	gloss := seedGloss(t, db, "hello", model.GlossSingleWord)
	video := seedVideo(t, db, owner, gloss, model.StatusPendingApproval)

	svc = NewReviewService(
		repository.NewVideoRepository(db),
		repository.NewGlossRepository(db),
		repository.NewScoreRepository(db),
		NewScoreService(repository.NewScoreRepository(db), repository.NewUserRepository(db)),
		NewNotificationService(repository.NewNotificationRepository(db), nil),
		cfg)

	for _, name := range []string{"r1", "r2"} {
		reviewer := seedUser(t, db, name)
		_, err := svc.ReviewVideo(context.Background(), reviewer.ID, video.UUID, DecisionReject)
		require.NoError(t, err)
	}

	stored := reloadVideo(t, db, video.ID)
	assert.Equal(t, model.StatusRejected, stored.Status)

	gloss = reloadGloss(t, db, gloss.ID)
	assert.Equal(t, 0, gloss.PendingApprovalVideoCount)
	assert.Equal(t, 1, gloss.RejectedVideoCount)
}

// A second vote by the same reviewer on a still-pending video must not move
// the tally again.
func TestReviewVideoSameReviewerCountsOnce(t *testing.T) {
	svc, db, _ := setupReviewService(t)
	owner := seedUser(t, db, "owner")
	reviewer := seedUser(t, db, "reviewer")
	gloss := seedGloss(t, db, "hello", model.GlossSingleWord)
	video := seedVideo(t, db, owner, gloss, model.StatusPendingApproval)

	_, err := svc.ReviewVideo(context.Background(), reviewer.ID, video.UUID, DecisionApprove)
	require.NoError(t, err)

	_, err = svc.ReviewVideo(context.Background(), reviewer.ID, video.UUID, DecisionApprove)
	assert.ErrorIs(t, err, apperror.ErrAlreadyReviewed)

	stored := reloadVideo(t, db, video.ID)
	assert.Equal(t, model.ReviewSummary{Approved: 1}, stored.ReviewSummary)

	var scoreCount int64
	require.NoError(t, db.Model(&model.Score{}).Count(&scoreCount).Error)
	assert.Equal(t, int64(2), scoreCount)
}

func TestReviewVideoClosedAfterConsensus(t *testing.T) {
	svc, db, _ := setupReviewService(t)
	owner := seedUser(t, db, "owner")
	gloss := seedGloss(t, db, "hello", model.GlossSingleWord)
	video := seedVideo(t, db, owner, gloss, model.StatusApproved)

	reviewer := seedUser(t, db, "late")
	_, err := svc.ReviewVideo(context.Background(), reviewer.ID, video.UUID, DecisionReject)
	assert.ErrorIs(t, err, apperror.ErrReviewClosed)

	// Counters and scores untouched.
	assert.Equal(t, 1, reloadGloss(t, db, gloss.ID).ApprovedVideoCount)
	var scoreCount int64
	require.NoError(t, db.Model(&model.Score{}).Count(&scoreCount).Error)
	assert.Zero(t, scoreCount)
}

func TestReviewVideoWritesScores(t *testing.T) {
	svc, db, _ := setupReviewService(t)
	owner := seedUser(t, db, "owner")
	reviewer := seedUser(t, db, "reviewer")
	gloss := seedGloss(t, db, "hello", model.GlossSingleWord)
	video := seedVideo(t, db, owner, gloss, model.StatusPendingApproval)

	result, err := svc.ReviewVideo(context.Background(), reviewer.ID, video.UUID, DecisionApprove)
	require.NoError(t, err)

	var scores []model.Score
	require.NoError(t, db.Order("score_type").Find(&scores).Error)
	require.Len(t, scores, 2)

	assert.Equal(t, model.ScoreReviewVideo, scores[0].ScoreType)
	assert.Equal(t, reviewer.ID, scores[0].UserID)
	assert.Equal(t, model.ValueReviewVideo, scores[0].Value)

	assert.Equal(t, model.ScoreVideoQuality, scores[1].ScoreType)
	assert.Equal(t, reviewer.ID, scores[1].UserID)
	assert.Equal(t, owner.ID, scores[1].VideoOwnerID)
	assert.Equal(t, model.ValueApproveVideo, scores[1].Value)

	assert.Equal(t, model.ValueApproveVideo, result.VideoScore)
	assert.Equal(t, model.ValueReviewVideo, result.UserScores[model.ScoreReviewVideo.String()].Score)
}

func TestReviewVideoQualityScoreSumsAcrossReviewers(t *testing.T) {
	svc, db, _ := setupReviewService(t)
	owner := seedUser(t, db, "owner")
	gloss := seedGloss(t, db, "hello", model.GlossSingleWord)
	video := seedVideo(t, db, owner, gloss, model.StatusPendingApproval)

	r1 := seedUser(t, db, "r1")
	r2 := seedUser(t, db, "r2")

	_, err := svc.ReviewVideo(context.Background(), r1.ID, video.UUID, DecisionApprove)
	require.NoError(t, err)

	result, err := svc.ReviewVideo(context.Background(), r2.ID, video.UUID, DecisionReject)
	require.NoError(t, err)

	// approve contributes 2, reject contributes 0
	assert.Equal(t, model.ValueApproveVideo, result.VideoScore)
}
