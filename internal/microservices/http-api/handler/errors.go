package handler

import (
	"errors"
	"net/http"

	"manganest/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
)

// writeServiceError maps service-layer errors onto HTTP status codes so
// every handler reports failures the same way.
func writeServiceError(c *gin.Context, err error) {
	var modErr *service.ModerationError
	if errors.As(err, &modErr) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": modErr.Reason})
		return
	}

	switch {
	case errors.Is(err, service.ErrChapterNotFound),
		errors.Is(err, service.ErrCommentNotFound),
		errors.Is(err, service.ErrMangaNotFound),
		errors.Is(err, service.ErrUserNotFound),
		errors.Is(err, service.ErrBanNotFound),
		errors.Is(err, service.ErrReportNotFound),
		errors.Is(err, service.ErrNotificationNotFound),
		errors.Is(err, service.ErrFavoriteNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrNotCommentAuthor),
		errors.Is(err, service.ErrNotAllowed),
		errors.Is(err, service.ErrUserBanned),
		errors.Is(err, service.ErrNotNotificationOwner):
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrReplyToReply),
		errors.Is(err, service.ErrParentChapterMismatch),
		errors.Is(err, service.ErrPinReply),
		errors.Is(err, service.ErrInvalidSort),
		errors.Is(err, service.ErrInvalidReactionType),
		errors.Is(err, service.ErrBanReasonRequired):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})

	case errors.Is(err, service.ErrAlreadyReported),
		errors.Is(err, service.ErrReportOwnComment),
		errors.Is(err, service.ErrReportClosed),
		errors.Is(err, service.ErrAlreadyFavorite):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})

	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}

// pathID parses a positive int64 path parameter, writing a 400 on failure.
func pathID(c *gin.Context, name string) (int64, bool) {
	id, err := parseID(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid " + name})
		return 0, false
	}
	return id, true
}

// pageParams reads ?page= and ?page_size= with sane bounds.
func pageParams(c *gin.Context, defaultSize int) (page, pageSize int) {
	page = queryInt(c, "page", 1)
	if page < 1 {
		page = 1
	}
	pageSize = queryInt(c, "page_size", defaultSize)
	if pageSize < 1 || pageSize > 100 {
		pageSize = defaultSize
	}
	return page, pageSize
}
