package model

import "time"

// GlossType 0 marks reference-only entries that never receive training
// recordings; anything greater is recordable.
type GlossType int

const (
	GlossReferenceOnly GlossType = iota
	GlossSingleWord
	GlossCompositeWord
)

func (t GlossType) Recordable() bool {
	return t > GlossReferenceOnly
}

type Category struct {
	ID       uint       `gorm:"primaryKey" json:"id"`
	Title    string     `gorm:"size:45" json:"title"`
	Seq      int        `json:"seq"`
	ParentID *uint      `json:"parent_id,omitempty"`
	Children []Category `gorm:"foreignKey:ParentID" json:"children,omitempty"`
	Glosses  []Gloss    `gorm:"many2many:category_glosses" json:"glosses,omitempty"`
}

// Gloss is a vocabulary item videos are recorded for. The three counters plus
// any waiting-upload/admin-checking videos always add up to the total number
// of submitted videos for the gloss; they are only mutated in the same
// transaction as the owning video's status.
type Gloss struct {
	ID                        uint       `gorm:"primaryKey" json:"id"`
	Text                      string     `gorm:"size:45;index;not null" json:"text"`
	GlossType                 GlossType  `gorm:"not null" json:"gloss_type"`
	PendingApprovalVideoCount int        `gorm:"default:0" json:"pending_approval_video_count"`
	RejectedVideoCount        int        `gorm:"default:0" json:"rejected_video_count"`
	ApprovedVideoCount        int        `gorm:"default:0" json:"approved_video_count"`
	SampleVideoID             *uint      `json:"-"`
	SampleVideo               *Video     `gorm:"foreignKey:SampleVideoID" json:"sample_video,omitempty"`
	Categories                []Category `gorm:"many2many:category_glosses" json:"categories,omitempty"`
	Duration                  int        `gorm:"default:0" json:"duration"`
	CreatedAt                 time.Time  `gorm:"autoCreateTime" json:"created_at"`
}
