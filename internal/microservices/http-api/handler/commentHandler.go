package handler

import (
	"net/http"

	"manganest/internal/authz"
	"manganest/internal/microservices/http-api/dto"
	"manganest/internal/microservices/http-api/middleware"
	"manganest/internal/microservices/http-api/repository"
	"manganest/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type CommentHandler struct {
	commentService service.CommentService
	pageSize       int
	replyPageSize  int
}

func NewCommentHandler(commentService service.CommentService, pageSize, replyPageSize int) *CommentHandler {
	return &CommentHandler{
		commentService: commentService,
		pageSize:       pageSize,
		replyPageSize:  replyPageSize,
	}
}

// RegisterRoutes registers comment-related routes. Read routes take
// optionalAuth so the viewer's own reaction shows up when logged in;
// write routes take requireAuth, and submissions also pass the per-user
// rate limiter.
func (h *CommentHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth, optionalAuth, submitLimit gin.HandlerFunc) {
	chapterComments := router.Group("/chapters/:chapter_id/comments")
	{
		chapterComments.GET("", optionalAuth, h.ListByChapter)
		chapterComments.POST("", requireAuth, submitLimit, h.Create)
	}

	comments := router.Group("/comments")
	{
		comments.GET("/me", requireAuth, h.ListByCurrentUser)
		comments.GET("/:id", optionalAuth, h.GetByID)
		comments.PUT("/:id", requireAuth, h.Update)
		comments.DELETE("/:id", requireAuth, h.Delete)
		comments.GET("/:id/replies", optionalAuth, h.ListReplies)
		comments.PUT("/:id/pin", requireAuth, middleware.RequireCapability(authz.CapPinComments), h.Pin)
		comments.DELETE("/:id/pin", requireAuth, middleware.RequireCapability(authz.CapPinComments), h.Unpin)
	}
}

// ListByChapter returns one page of a chapter's comment thread.
// GET /api/chapters/:chapter_id/comments?sort=pinned&page=1&include_replies=false
func (h *CommentHandler) ListByChapter(c *gin.Context) {
	chapterID, ok := pathID(c, "chapter_id")
	if !ok {
		return
	}

	sort := repository.CommentSort(c.DefaultQuery("sort", string(repository.SortPinnedFirst)))
	page, pageSize := pageParams(c, h.pageSize)
	includeReplies := queryBool(c, "include_replies", false)

	resp, err := h.commentService.ListByChapter(c.Request.Context(), chapterID, sort, page, pageSize, includeReplies, c.GetString("userID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Create posts a comment (or a reply, when parent_id is set) to a chapter.
// POST /api/chapters/:chapter_id/comments
func (h *CommentHandler) Create(c *gin.Context) {
	chapterID, ok := pathID(c, "chapter_id")
	if !ok {
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.commentService.Create(c.Request.Context(), userID.(string), chapterID, req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// GetByID returns a single comment with its reaction summary.
// GET /api/comments/:id
func (h *CommentHandler) GetByID(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	resp, err := h.commentService.GetByID(c.Request.Context(), commentID, c.GetString("userID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Update edits a comment's content. Authors edit their own; moderators
// can edit anything.
// PUT /api/comments/:id
func (h *CommentHandler) Update(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.UpdateCommentDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	resp, err := h.commentService.Update(c.Request.Context(), commentID, c.GetString("userID"), c.GetString("role"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Delete soft-deletes a comment, keeping its replies readable.
// DELETE /api/comments/:id
func (h *CommentHandler) Delete(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.commentService.Delete(c.Request.Context(), commentID, c.GetString("userID"), c.GetString("role")); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "comment deleted"})
}

// ListReplies pages through the replies of one top-level comment.
// GET /api/comments/:id/replies
func (h *CommentHandler) ListReplies(c *gin.Context) {
	parentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	page, pageSize := pageParams(c, h.replyPageSize)

	resp, err := h.commentService.ListReplies(c.Request.Context(), parentID, page, pageSize, c.GetString("userID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// ListByCurrentUser returns the authenticated user's own comments.
// GET /api/comments/me
func (h *CommentHandler) ListByCurrentUser(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	page, pageSize := pageParams(c, h.pageSize)

	resp, err := h.commentService.ListByUser(c.Request.Context(), userID.(string), page, pageSize)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// Pin pins a top-level comment to the head of its chapter thread.
// PUT /api/comments/:id/pin
func (h *CommentHandler) Pin(c *gin.Context) {
	h.setPinned(c, true)
}

// Unpin removes the pin.
// DELETE /api/comments/:id/pin
func (h *CommentHandler) Unpin(c *gin.Context) {
	h.setPinned(c, false)
}

func (h *CommentHandler) setPinned(c *gin.Context, pinned bool) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.commentService.SetPinned(c.Request.Context(), commentID, c.GetString("role"), pinned); err != nil {
		writeServiceError(c, err)
		return
	}

	if pinned {
		c.JSON(http.StatusOK, gin.H{"message": "comment pinned"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "comment unpinned"})
}
