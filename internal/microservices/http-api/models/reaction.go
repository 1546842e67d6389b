package models

import "time"

// Reaction types. The composite unique index enforces at most one active
// reaction per (comment, user); switching types replaces the row.
const (
	ReactionLike    = "like"
	ReactionDislike = "dislike"
	ReactionLove    = "love"
	ReactionLaugh   = "laugh"
	ReactionAngry   = "angry"
	ReactionSad     = "sad"
)

// ReactionTypes lists every known type in display order. Aggregated counts
// report a zero for each of these even when no rows exist.
var ReactionTypes = []string{
	ReactionLike,
	ReactionDislike,
	ReactionLove,
	ReactionLaugh,
	ReactionAngry,
	ReactionSad,
}

// ValidReactionType reports whether t is one of the known reaction types.
func ValidReactionType(t string) bool {
	for _, known := range ReactionTypes {
		if t == known {
			return true
		}
	}
	return false
}

type Reaction struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	CommentID int64     `json:"comment_id" gorm:"not null;uniqueIndex:idx_reaction_comment_user"`
	UserID    string    `json:"user_id" gorm:"type:uuid;not null;uniqueIndex:idx_reaction_comment_user"`
	Type      string    `json:"type" gorm:"size:20;not null"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User    *User    `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Comment *Comment `json:"comment,omitempty" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE;"`
}

func (Reaction) TableName() string {
	return "reactions"
}
