package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Notification tells a video owner about a review outcome.
type Notification struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    uuid.UUID `gorm:"type:uuid;not null" json:"user_id"`
	VideoUUID string    `gorm:"size:36;not null" json:"video_uuid"`
	GlossText string    `gorm:"size:45" json:"gloss_text"`
	Type      string    `gorm:"size:50;not null" json:"type"` // 'video_approved', 'video_rejected'
	Message   string    `gorm:"type:text" json:"message"`
	IsRead    bool      `gorm:"default:false" json:"is_read"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`

	User *User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return nil
}
