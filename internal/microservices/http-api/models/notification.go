package models

import "time"

// Notification types
const (
	NotificationCommentReply   = "COMMENT_REPLY"
	NotificationReportResolved = "REPORT_RESOLVED"
	NotificationModeration     = "MODERATION"
)

type Notification struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	Type      string    `gorm:"not null" json:"type"` // COMMENT_REPLY, REPORT_RESOLVED, MODERATION
	CommentID *int64    `json:"comment_id,omitempty"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Read      bool      `gorm:"default:false" json:"read"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`

	// Associations
	User    *User    `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Comment *Comment `gorm:"foreignKey:CommentID" json:"comment,omitempty"`
}

func (Notification) TableName() string {
	return "notifications"
}
