package handler

import (
	"net/http"

	"manganest/internal/authz"
	"manganest/internal/microservices/http-api/dto"
	"manganest/internal/microservices/http-api/middleware"
	"manganest/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type BanHandler struct {
	banService service.BanService
	pageSize   int
}

func NewBanHandler(banService service.BanService, pageSize int) *BanHandler {
	return &BanHandler{banService: banService, pageSize: pageSize}
}

// RegisterRoutes registers ban management routes, admin only.
func (h *BanHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	bans := router.Group("/bans", requireAuth, middleware.RequireCapability(authz.CapBanUsers))
	{
		bans.GET("", h.ListActive)
		bans.POST("", h.Create)
		bans.DELETE("/:id", h.Unban)
	}
}

// Create bans a user directly, outside of a report resolution.
// POST /api/bans
func (h *BanHandler) Create(c *gin.Context) {
	var req dto.CreateBanDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ban, err := h.banService.BanUser(c.Request.Context(), req.UserID, req.Reason, c.GetString("userID"), c.GetString("role"), req.Days)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, ban)
}

// Unban lifts a ban early.
// DELETE /api/bans/:id
func (h *BanHandler) Unban(c *gin.Context) {
	banID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.banService.Unban(c.Request.Context(), banID, c.GetString("role")); err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "ban lifted"})
}

// ListActive returns bans currently in effect.
// GET /api/bans
func (h *BanHandler) ListActive(c *gin.Context) {
	page, pageSize := pageParams(c, h.pageSize)

	bans, total, err := h.banService.ListActive(c.Request.Context(), c.GetString("role"), page, pageSize)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"bans":       bans,
		"pagination": dto.NewPagination(total, page, pageSize),
	})
}
