package dto

import (
	"time"

	"manganest/internal/microservices/http-api/models"
)

// CreateCommentDTO for posting a comment or a reply
type CreateCommentDTO struct {
	Content   string `json:"content" binding:"required,min=1,max=2000"`
	ParentID  *int64 `json:"parent_id,omitempty"`
	IsSpoiler bool   `json:"is_spoiler"`
}

// UpdateCommentDTO for editing a comment
type UpdateCommentDTO struct {
	Content   string `json:"content" binding:"required,min=1,max=2000"`
	IsSpoiler *bool  `json:"is_spoiler,omitempty"`
}

// CommentResponse is a comment enriched with author info, reaction
// aggregates and (for top-level comments) its nested replies.
type CommentResponse struct {
	ID        int64   `json:"id"`
	ChapterID int64   `json:"chapter_id"`
	MangaID   int64   `json:"manga_id"`
	ParentID  *int64  `json:"parent_id,omitempty"`
	UserID    string  `json:"user_id"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Role      string  `json:"role,omitempty"`

	Content   string `json:"content"`
	IsSpoiler bool   `json:"is_spoiler"`
	IsPinned  bool   `json:"is_pinned"`
	Edited    bool   `json:"edited"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	ReplyCount     int64             `json:"reply_count"`
	Reactions      map[string]int64  `json:"reactions"`
	ViewerReaction string            `json:"viewer_reaction,omitempty"`
	Replies        []CommentResponse `json:"replies"`
}

// FromModelToCommentResponse maps a comment row. Reactions, reply counts
// and replies are filled in by the service.
func FromModelToCommentResponse(c *models.Comment) *CommentResponse {
	resp := &CommentResponse{
		ID:        c.ID,
		ChapterID: c.ChapterID,
		MangaID:   c.MangaID,
		ParentID:  c.ParentID,
		UserID:    c.UserID,
		Content:   c.Content,
		IsSpoiler: c.IsSpoiler,
		IsPinned:  c.IsPinned,
		Edited:    c.Edited(),
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
		Replies:   []CommentResponse{},
	}
	if c.User != nil {
		resp.Username = c.User.Username
		resp.AvatarURL = c.User.AvatarURL
		resp.Role = c.User.Role
	}
	return resp
}

// CreateCommentResponse carries the stored comment plus the non-blocking
// moderation output (warnings, quality score) for the submitting client.
type CreateCommentResponse struct {
	Comment      CommentResponse `json:"comment"`
	Warnings     []string        `json:"warnings"`
	QualityScore int             `json:"quality_score"`
}

// PaginatedCommentResponse for paginated comment listings
type PaginatedCommentResponse struct {
	Comments   []CommentResponse `json:"comments"`
	Pagination Pagination        `json:"pagination"`
}

func NewPaginatedCommentResponse(comments []CommentResponse, total int64, page, pageSize int) *PaginatedCommentResponse {
	return &PaginatedCommentResponse{
		Comments:   comments,
		Pagination: NewPagination(total, page, pageSize),
	}
}
