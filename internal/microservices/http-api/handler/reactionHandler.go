package handler

import (
	"net/http"

	"manganest/internal/microservices/http-api/dto"
	"manganest/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReactionHandler struct {
	reactionService service.ReactionService
}

func NewReactionHandler(reactionService service.ReactionService) *ReactionHandler {
	return &ReactionHandler{reactionService: reactionService}
}

// RegisterRoutes registers reaction routes under /comments/:id.
func (h *ReactionHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth, optionalAuth gin.HandlerFunc) {
	reactions := router.Group("/comments/:id/reactions")
	{
		reactions.GET("", optionalAuth, h.Summary)
		reactions.POST("", requireAuth, h.Toggle)
	}
}

// Toggle applies the viewer's reaction: first press sets it, pressing the
// same type again clears it, a different type replaces it.
// POST /api/comments/:id/reactions
func (h *ReactionHandler) Toggle(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.SetReactionDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	summary, err := h.reactionService.Toggle(c.Request.Context(), commentID, userID.(string), req.Type)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}

// Summary returns the per-type reaction counts for one comment.
// GET /api/comments/:id/reactions
func (h *ReactionHandler) Summary(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	summary, err := h.reactionService.Summary(c.Request.Context(), commentID, c.GetString("userID"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, summary)
}
