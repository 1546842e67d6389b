package models

import "time"

// Ban is an audit-preserving record: unbanning flips is_active instead of
// deleting the row. Exactly one of is_permanent / expires_at decides when
// the ban lifts.
type Ban struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	UserID      string     `json:"user_id" gorm:"type:uuid;not null;index"`
	Reason      string     `json:"reason" gorm:"size:500;not null"`
	BannedBy    string     `json:"banned_by" gorm:"type:uuid;not null"`
	IsPermanent bool       `json:"is_permanent" gorm:"default:false"`
	ExpiresAt   *time.Time `json:"expires_at,omitempty"`
	IsActive    bool       `json:"is_active" gorm:"default:true;index"`
	CreatedAt   time.Time  `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	User      *User `json:"user,omitempty" gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE;"`
	Moderator *User `json:"moderator,omitempty" gorm:"foreignKey:BannedBy"`
}

func (Ban) TableName() string {
	return "bans"
}

// InEffect reports whether the ban currently blocks the user. An expired
// temporary ban no longer applies even while is_active is still set.
func (b *Ban) InEffect(now time.Time) bool {
	if !b.IsActive {
		return false
	}
	if b.IsPermanent {
		return true
	}
	return b.ExpiresAt != nil && now.Before(*b.ExpiresAt)
}
