package service

import (
	"testing"

	"anoa.com/signcollect/internal/bootstrap"
	"anoa.com/signcollect/internal/config"
	"anoa.com/signcollect/internal/model"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, bootstrap.Migrate(db))
	return db
}

func newTestConfig() *config.Config {
	return &config.Config{
		MinApprovalCount:            3,
		MinRejectionCount:           3,
		PendingApprovalLimitPerUser: 5,
		TargetTrainingCountPerGloss: 50,
		OneGlossRecordingLimit:      2,
		AutoApproveUploaderIDs:      map[uuid.UUID]bool{},
		NoThumbnailURL:              "/static/no-pic.png",
		PageSize:                    20,
	}
}

func seedUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()
	user := &model.User{Username: username, PasswordHash: "x"}
	require.NoError(t, db.Create(user).Error)
	return user
}

func seedGloss(t *testing.T, db *gorm.DB, text string, glossType model.GlossType) *model.Gloss {
	t.Helper()
	gloss := &model.Gloss{Text: text, GlossType: glossType}
	require.NoError(t, db.Create(gloss).Error)
	return gloss
}

func seedVideo(t *testing.T, db *gorm.DB, owner *model.User, gloss *model.Gloss, status model.VideoStatus) *model.Video {
	t.Helper()
	video := &model.Video{
		UUID:    uuid.New().String(),
		UserID:  owner.ID,
		GlossID: gloss.ID,
		Status:  status,
	}
	require.NoError(t, db.Create(video).Error)

	// Keep the gloss counters consistent with the seeded status.
	switch status {
	case model.StatusPendingApproval:
		require.NoError(t, db.Model(gloss).Update(
			"pending_approval_video_count", gorm.Expr("pending_approval_video_count + 1")).Error)
	case model.StatusApproved:
		require.NoError(t, db.Model(gloss).Update(
			"approved_video_count", gorm.Expr("approved_video_count + 1")).Error)
	case model.StatusRejected:
		require.NoError(t, db.Model(gloss).Update(
			"rejected_video_count", gorm.Expr("rejected_video_count + 1")).Error)
	}
	return video
}

func reloadGloss(t *testing.T, db *gorm.DB, id uint) *model.Gloss {
	t.Helper()
	var gloss model.Gloss
	require.NoError(t, db.First(&gloss, id).Error)
	return &gloss
}

func reloadVideo(t *testing.T, db *gorm.DB, id uint) *model.Video {
	t.Helper()
	var video model.Video
	require.NoError(t, db.First(&video, id).Error)
	return &video
}
