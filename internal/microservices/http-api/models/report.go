package models

import "time"

// Report statuses. Resolved and dismissed are terminal: once a report
// leaves pending it never transitions again.
const (
	ReportStatusPending   = "pending"
	ReportStatusReviewed  = "reviewed"
	ReportStatusResolved  = "resolved"
	ReportStatusDismissed = "dismissed"
)

// Resolution actions applied to the reported comment (or its author)
// together with the resolved transition.
const (
	ReportActionHide   = "hide"
	ReportActionDelete = "delete"
	ReportActionBan    = "ban"
)

type Report struct {
	ID             int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	CommentID      int64      `json:"comment_id" gorm:"not null;index"`
	ReporterID     string     `json:"reporter_id" gorm:"type:uuid;not null;index"`
	Reason         string     `json:"reason" gorm:"size:500;not null"`
	Status         string     `json:"status" gorm:"size:20;default:'pending';not null;index"`
	ResolutionNote *string    `json:"resolution_note,omitempty" gorm:"size:500"`
	ReviewedBy     *string    `json:"reviewed_by,omitempty" gorm:"type:uuid"`
	ReviewedAt     *time.Time `json:"reviewed_at,omitempty"`
	CreatedAt      time.Time  `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Reporter *User    `json:"reporter,omitempty" gorm:"foreignKey:ReporterID"`
	Comment  *Comment `json:"comment,omitempty" gorm:"foreignKey:CommentID;constraint:OnDelete:CASCADE;"`
}

func (Report) TableName() string {
	return "reports"
}

// Terminal reports whether the report can no longer transition.
func (r *Report) Terminal() bool {
	return r.Status == ReportStatusResolved || r.Status == ReportStatusDismissed
}
