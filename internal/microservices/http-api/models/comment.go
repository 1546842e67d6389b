package models

import "time"

// Comment is a chapter comment. ParentID nil means top-level; replies
// reference a top-level comment, never another reply (one nesting level).
// Deletion is always a tombstone: is_deleted flips, the row stays so
// reaction and report history remains attributable.
type Comment struct {
	ID        int64  `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID    string `json:"user_id" gorm:"type:uuid;not null;index"`
	MangaID   int64  `json:"manga_id" gorm:"not null;index"`
	ChapterID int64  `json:"chapter_id" gorm:"not null;index"`
	ParentID  *int64 `json:"parent_id,omitempty" gorm:"index"`
	Content   string `json:"content" gorm:"not null;type:text"`
	IsSpoiler bool   `json:"is_spoiler" gorm:"default:false"`

	// Moderation flags
	IsDeleted   bool `json:"is_deleted" gorm:"default:false;index"`
	IsHidden    bool `json:"is_hidden" gorm:"default:false"`
	IsPinned    bool `json:"is_pinned" gorm:"default:false"`
	IsReported  bool `json:"is_reported" gorm:"default:false"`
	ReportCount int  `json:"report_count" gorm:"default:0"`

	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time `json:"updated_at" gorm:"autoUpdateTime"`

	// Associations
	User    *User     `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Chapter *Chapter  `json:"chapter,omitempty" gorm:"foreignKey:ChapterID;constraint:OnDelete:CASCADE;"`
	Parent  *Comment  `json:"parent,omitempty" gorm:"foreignKey:ParentID"`
	Replies []Comment `json:"replies,omitempty" gorm:"foreignKey:ParentID"`
}

func (Comment) TableName() string {
	return "comments"
}

// Edited reports whether the comment was changed after creation.
func (c *Comment) Edited() bool {
	return c.UpdatedAt.Sub(c.CreatedAt) > time.Second
}
