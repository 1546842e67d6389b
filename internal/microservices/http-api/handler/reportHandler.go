package handler

import (
	"net/http"

	"manganest/internal/authz"
	"manganest/internal/microservices/http-api/dto"
	"manganest/internal/microservices/http-api/middleware"
	"manganest/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	reportService service.ReportService
	pageSize      int
}

func NewReportHandler(reportService service.ReportService, pageSize int) *ReportHandler {
	return &ReportHandler{reportService: reportService, pageSize: pageSize}
}

// RegisterRoutes registers report routes. Filing a report only needs a
// login; the review queue and its transitions need moderation rights.
func (h *ReportHandler) RegisterRoutes(router *gin.RouterGroup, requireAuth gin.HandlerFunc) {
	router.POST("/comments/:id/reports", requireAuth, h.Create)

	reports := router.Group("/reports", requireAuth, middleware.RequireCapability(authz.CapModerateComments))
	{
		reports.GET("", h.ListPending)
		reports.POST("/:id/resolve", h.Resolve)
		reports.POST("/:id/dismiss", h.Dismiss)
	}
}

// Create files a report against a comment.
// POST /api/comments/:id/reports
func (h *ReportHandler) Create(c *gin.Context) {
	commentID, ok := pathID(c, "id")
	if !ok {
		return
	}

	userID, exists := c.Get("userID")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "user not authenticated"})
		return
	}

	var req dto.CreateReportDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportService.Create(c.Request.Context(), commentID, userID.(string), req.Reason)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

// ListPending returns the moderation queue, oldest first.
// GET /api/reports
func (h *ReportHandler) ListPending(c *gin.Context) {
	page, pageSize := pageParams(c, h.pageSize)

	reports, total, err := h.reportService.ListPending(c.Request.Context(), c.GetString("role"), page, pageSize)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"reports":    reports,
		"pagination": dto.NewPagination(total, page, pageSize),
	})
}

// Resolve closes a pending report, optionally hiding or deleting the
// comment or banning its author in the same step.
// POST /api/reports/:id/resolve
func (h *ReportHandler) Resolve(c *gin.Context) {
	reportID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.ResolveReportDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportService.Resolve(c.Request.Context(), reportID, c.GetString("userID"), c.GetString("role"), req)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

// Dismiss closes a pending report without touching the comment.
// POST /api/reports/:id/dismiss
func (h *ReportHandler) Dismiss(c *gin.Context) {
	reportID, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req dto.DismissReportDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	report, err := h.reportService.Dismiss(c.Request.Context(), reportID, c.GetString("userID"), c.GetString("role"), req.Note)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}
