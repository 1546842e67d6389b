package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"manganest/internal/microservices/http-api/dto"
	"manganest/internal/microservices/http-api/handler"
	"manganest/internal/microservices/http-api/models"
	"manganest/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockReactionService struct {
	mock.Mock
}

func (m *MockReactionService) Toggle(ctx context.Context, commentID int64, userID, reactionType string) (*dto.ReactionSummary, error) {
	args := m.Called(ctx, commentID, userID, reactionType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReactionSummary), args.Error(1)
}

func (m *MockReactionService) Summary(ctx context.Context, commentID int64, viewerID string) (*dto.ReactionSummary, error) {
	args := m.Called(ctx, commentID, viewerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ReactionSummary), args.Error(1)
}

func setupReactionRouter(mockService *MockReactionService, userID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewReactionHandler(mockService)

	api := r.Group("/api")
	h.RegisterRoutes(api, fakeAuth(userID, role), fakeAuth(userID, role))
	return r
}

func TestReactionHandler_Toggle(t *testing.T) {
	t.Run("TogglesAndReturnsSummary", func(t *testing.T) {
		mockService := new(MockReactionService)
		router := setupReactionRouter(mockService, "u1", "user")

		mockService.On("Toggle", mock.Anything, int64(7), "u1", models.ReactionLike).
			Return(&dto.ReactionSummary{
				Counts:         map[string]int64{models.ReactionLike: 1},
				Total:          1,
				ViewerReaction: models.ReactionLike,
			}, nil)

		body, _ := json.Marshal(gin.H{"type": "like"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/comments/7/reactions", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var summary dto.ReactionSummary
		assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &summary))
		assert.Equal(t, models.ReactionLike, summary.ViewerReaction)
	})

	t.Run("UnknownTypeRejectedByBinding", func(t *testing.T) {
		mockService := new(MockReactionService)
		router := setupReactionRouter(mockService, "u1", "user")

		body, _ := json.Marshal(gin.H{"type": "sparkle"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/comments/7/reactions", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Toggle")
	})

	t.Run("DeletedCommentNotFound", func(t *testing.T) {
		mockService := new(MockReactionService)
		router := setupReactionRouter(mockService, "u1", "user")

		mockService.On("Toggle", mock.Anything, int64(9), "u1", models.ReactionSad).
			Return(nil, service.ErrCommentNotFound)

		body, _ := json.Marshal(gin.H{"type": "sad"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/comments/9/reactions", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestReactionHandler_Summary(t *testing.T) {
	mockService := new(MockReactionService)
	router := setupReactionRouter(mockService, "", "")

	mockService.On("Summary", mock.Anything, int64(7), "").
		Return(&dto.ReactionSummary{Counts: map[string]int64{models.ReactionLike: 3}, Total: 3}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/comments/7/reactions", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
