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

func setupBunchService(t *testing.T) (BunchService, *gorm.DB, *config.Config) {
	t.Helper()
	db := newTestDB(t)
	cfg := newTestConfig()

	svc := NewBunchService(
		repository.NewGlossRepository(db),
		repository.NewVideoRepository(db),
		cfg)
	return svc, db, cfg
}

func TestBunchTooManyPending(t *testing.T) {
	svc, db, cfg := setupBunchService(t)
	cfg.PendingApprovalLimitPerUser = 2
	user := seedUser(t, db, "alice")
	gloss := seedGloss(t, db, "hello", model.GlossSingleWord)

	seedVideo(t, db, user, gloss, model.StatusPendingApproval)
	seedVideo(t, db, user, gloss, model.StatusPendingApproval)

	_, err := svc.GetBunch(context.Background(), user.ID)
	assert.ErrorIs(t, err, apperror.ErrTooManyPending)
}

func TestBunchSizedByPendingHeadroom(t *testing.T) {
	svc, db, cfg := setupBunchService(t)
	cfg.PendingApprovalLimitPerUser = 2
	user := seedUser(t, db, "alice")
	for _, text := range []string{"one", "two", "three"} {
		seedGloss(t, db, text, model.GlossSingleWord)
	}
	busyGloss := seedGloss(t, db, "busy", model.GlossSingleWord)
	seedVideo(t, db, user, busyGloss, model.StatusPendingApproval)

	glosses, err := svc.GetBunch(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Len(t, glosses, 1)
}

func TestBunchSkipsGlossesAtTarget(t *testing.T) {
	svc, db, cfg := setupBunchService(t)
	cfg.TargetTrainingCountPerGloss = 1
	user := seedUser(t, db, "alice")
	other := seedUser(t, db, "bob")

	done := seedGloss(t, db, "done", model.GlossSingleWord)
	seedVideo(t, db, other, done, model.StatusApproved)
	open := seedGloss(t, db, "open", model.GlossSingleWord)

	glosses, err := svc.GetBunch(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, glosses, 1)
	assert.Equal(t, open.ID, glosses[0].ID)
}

// A contributor who already recorded a gloss more than the per-gloss limit
// does not get it again, even while it is still short of the target.
func TestBunchSkipsOverRecordedGlosses(t *testing.T) {
	svc, db, cfg := setupBunchService(t)
	cfg.OneGlossRecordingLimit = 2
	user := seedUser(t, db, "alice")

	tired := seedGloss(t, db, "tired", model.GlossSingleWord)
	for range 3 {
		seedVideo(t, db, user, tired, model.StatusRejected)
	}
	fresh := seedGloss(t, db, "fresh", model.GlossSingleWord)

	glosses, err := svc.GetBunch(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, glosses, 1)
	assert.Equal(t, fresh.ID, glosses[0].ID)
}

func TestBunchExcludesReferenceOnlyGlosses(t *testing.T) {
	svc, db, _ := setupBunchService(t)
	user := seedUser(t, db, "alice")
	seedGloss(t, db, "alphabet", model.GlossReferenceOnly)
	recordable := seedGloss(t, db, "hello", model.GlossSingleWord)

	glosses, err := svc.GetBunch(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, glosses, 1)
	assert.Equal(t, recordable.ID, glosses[0].ID)
}

func TestBunchForSampleCreatorListsUnrecordedGlosses(t *testing.T) {
	svc, db, cfg := setupBunchService(t)
	creator := seedUser(t, db, "sample-creator")
	cfg.SampleCreatorID = creator.ID

	recorded := seedGloss(t, db, "recorded", model.GlossSingleWord)
	seedVideo(t, db, creator, recorded, model.StatusSample)
	for _, text := range []string{"g1", "g2", "g3", "g4", "g5", "g6"} {
		seedGloss(t, db, text, model.GlossCompositeWord)
	}

	glosses, err := svc.GetBunch(context.Background(), creator.ID)
	require.NoError(t, err)
	// Unbounded by the pending limit, minus the one already recorded.
	assert.Len(t, glosses, 6)
}

func TestBunchSubstitutesMissingThumbnail(t *testing.T) {
	svc, db, cfg := setupBunchService(t)
	user := seedUser(t, db, "alice")
	creator := seedUser(t, db, "sample-creator")

	gloss := seedGloss(t, db, "hello", model.GlossSingleWord)
	sample := seedVideo(t, db, creator, gloss, model.StatusSample)
	require.NoError(t, db.Model(gloss).Update("sample_video_id", sample.ID).Error)

	glosses, err := svc.GetBunch(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, glosses, 1)
	require.NotNil(t, glosses[0].SampleVideo)
	assert.Equal(t, cfg.NoThumbnailURL, glosses[0].SampleVideo.Thumbnail)
}
