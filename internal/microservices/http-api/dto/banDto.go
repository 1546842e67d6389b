package dto

// CreateBanDTO bans a user directly (outside of a report resolution).
// Days nil means a permanent ban; Days set means a temporary ban lifting
// after that many days.
type CreateBanDTO struct {
	UserID string `json:"user_id" binding:"required"`
	Reason string `json:"reason" binding:"required,min=1,max=500"`
	Days   *int   `json:"days,omitempty" binding:"omitempty,min=1"`
}
