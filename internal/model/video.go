package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// VideoStatus follows the numeric ordering used across the listing filters:
// statuses >= StatusRejected have been submitted for (or passed) review,
// statuses > StatusSample have entered the review pipeline.
type VideoStatus int

const (
	StatusWaitingUpload VideoStatus = iota
	StatusAdminChecking
	StatusForbidden
	StatusDeleted
	StatusSample
	StatusRejected
	StatusPendingApproval
	StatusApproved
)

var statusNames = map[VideoStatus]string{
	StatusWaitingUpload:   "waiting_upload",
	StatusAdminChecking:   "admin_checking",
	StatusForbidden:       "forbidden",
	StatusDeleted:         "deleted",
	StatusSample:          "sample",
	StatusRejected:        "rejected",
	StatusPendingApproval: "pending_approval",
	StatusApproved:        "approved",
}

func (s VideoStatus) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("unknown(%d)", int(s))
}

// ParseVideoStatus resolves a status name from a query parameter.
func ParseVideoStatus(name string) (VideoStatus, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for status, n := range statusNames {
		if n == name {
			return status, nil
		}
	}
	return 0, fmt.Errorf("unknown video status %q", name)
}

// UploadForbidden reports whether a new upload may no longer be attached.
func (s VideoStatus) UploadForbidden() bool {
	switch s {
	case StatusSample, StatusApproved, StatusDeleted, StatusForbidden:
		return true
	}
	return false
}

// Terminal reports whether the review consensus has been finalized.
func (s VideoStatus) Terminal() bool {
	return s == StatusApproved || s == StatusRejected
}

// ReviewSummary tallies the votes a video has accumulated so far.
type ReviewSummary struct {
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

type Video struct {
	ID            uint          `gorm:"primaryKey" json:"-"`
	UUID          string        `gorm:"size:36;uniqueIndex;not null" json:"uuid"`
	UserID        uuid.UUID     `gorm:"type:uuid;index;not null" json:"user_id"`
	User          User          `gorm:"foreignKey:UserID" json:"creator"`
	GlossID       uint          `gorm:"index;not null" json:"gloss_id"`
	Gloss         *Gloss        `gorm:"foreignKey:GlossID" json:"-"`
	VideoPath     string        `gorm:"size:255" json:"video_path"`
	Thumbnail     string        `gorm:"size:255" json:"thumbnail"`
	Status        VideoStatus   `gorm:"index;not null" json:"status"`
	ReviewSummary ReviewSummary `gorm:"serializer:json" json:"review_summary"`
	CreatedAt     time.Time     `gorm:"autoCreateTime" json:"created_at"`
}
