package handler

import (
	"net/http"

	"manganest/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type FavoriteHandler struct {
	favoriteService service.FavoriteService
}

func NewFavoriteHandler(favoriteService service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{favoriteService: favoriteService}
}

// RegisterRoutes registers favorite (reading list) routes.
func (h *FavoriteHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	favorites := router.Group("/favorites", requireAuth)
	{
		favorites.GET("", h.List)
		favorites.POST("/:manga_id", h.Add)
		favorites.DELETE("/:manga_id", h.Remove)
	}
}

// Add puts a manga on the user's favorites list.
// POST /api/favorites/:manga_id
func (h *FavoriteHandler) Add(c *gin.Context) {
	mangaID, ok := pathID(c, "manga_id")
	if !ok {
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.favoriteService.Add(c.Request.Context(), userID.(string), mangaID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "added to favorites"})
}

// Remove takes a manga off the user's favorites list.
// DELETE /api/favorites/:manga_id
func (h *FavoriteHandler) Remove(c *gin.Context) {
	mangaID, ok := pathID(c, "manga_id")
	if !ok {
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	if err := h.favoriteService.Remove(c.Request.Context(), userID.(string), mangaID); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "removed from favorites"})
}

// List returns the user's favorites with manga preloaded.
// GET /api/favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	favorites, err := h.favoriteService.List(c.Request.Context(), userID.(string))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"favorites": favorites})
}
