package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"anoa.com/signcollect/internal/model"
	"anoa.com/signcollect/internal/repository"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

type NotificationService interface {
	// NotifyReviewOutcome records a notification for the video owner and
	// publishes it for connected websocket clients. Failures are logged, not
	// returned; a lost notification must not fail the review.
	NotifyReviewOutcome(ctx context.Context, video *model.Video)
	GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, error)
	CountUnread(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkAsRead(ctx context.Context, id uuid.UUID) error
	MarkAllAsRead(ctx context.Context, userID uuid.UUID) error
}

type notificationService struct {
	repo  repository.NotificationRepository
	redis *redis.Client
}

func NewNotificationService(repo repository.NotificationRepository, rdb *redis.Client) NotificationService {
	return &notificationService{repo: repo, redis: rdb}
}

// NotificationChannel is the redis pub/sub channel carrying one user's
// notifications.
func NotificationChannel(userID uuid.UUID) string {
	return "user_notifications:" + userID.String()
}

func (s *notificationService) NotifyReviewOutcome(ctx context.Context, video *model.Video) {
	glossText := ""
	if video.Gloss != nil {
		glossText = video.Gloss.Text
	}

	notification := &model.Notification{
		UserID:    video.UserID,
		VideoUUID: video.UUID,
		GlossText: glossText,
	}
	switch video.Status {
	case model.StatusApproved:
		notification.Type = "video_approved"
		notification.Message = fmt.Sprintf("Your video for %q was approved.", glossText)
	case model.StatusRejected:
		notification.Type = "video_rejected"
		notification.Message = fmt.Sprintf("Your video for %q was rejected.", glossText)
	default:
		return
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		log.Printf("Failed to store notification for user %s: %v", video.UserID, err)
		return
	}

	if s.redis == nil {
		return
	}
	payload, err := json.Marshal(notification)
	if err != nil {
		log.Printf("Failed to marshal notification %s: %v", notification.ID, err)
		return
	}
	if err := s.redis.Publish(ctx, NotificationChannel(video.UserID), payload).Err(); err != nil {
		log.Printf("Failed to publish notification for user %s: %v", video.UserID, err)
	}
}

func (s *notificationService) GetNotifications(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Notification, error) {
	return s.repo.GetByUserID(ctx, userID, limit, offset)
}

func (s *notificationService) CountUnread(ctx context.Context, userID uuid.UUID) (int64, error) {
	return s.repo.CountUnread(ctx, userID)
}

func (s *notificationService) MarkAsRead(ctx context.Context, id uuid.UUID) error {
	return s.repo.MarkAsRead(ctx, id)
}

func (s *notificationService) MarkAllAsRead(ctx context.Context, userID uuid.UUID) error {
	return s.repo.MarkAllAsRead(ctx, userID)
}
