package dto

// CreateReportDTO for reporting a comment
type CreateReportDTO struct {
	Reason string `json:"reason" binding:"required,min=1,max=500"`
}

// ResolveReportDTO resolves a pending report, optionally applying a
// moderation action in the same step. BanReason/BanDays only apply to the
// ban action; nil BanDays means permanent.
type ResolveReportDTO struct {
	Action    string  `json:"action,omitempty" binding:"omitempty,oneof=hide delete ban"`
	Note      *string `json:"note,omitempty" binding:"omitempty,max=500"`
	BanReason string  `json:"ban_reason,omitempty" binding:"omitempty,max=500"`
	BanDays   *int    `json:"ban_days,omitempty" binding:"omitempty,min=1"`
}

// DismissReportDTO dismisses a pending report
type DismissReportDTO struct {
	Note *string `json:"note,omitempty" binding:"omitempty,max=500"`
}
