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

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) Create(ctx context.Context, commentID int64, reporterID, reason string) (*models.Report, error) {
	args := m.Called(ctx, commentID, reporterID, reason)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockReportService) ListPending(ctx context.Context, role string, page, pageSize int) ([]models.Report, int64, error) {
	args := m.Called(ctx, role, page, pageSize)
	return args.Get(0).([]models.Report), args.Get(1).(int64), args.Error(2)
}

func (m *MockReportService) Resolve(ctx context.Context, reportID int64, reviewerID, role string, req dto.ResolveReportDTO) (*models.Report, error) {
	args := m.Called(ctx, reportID, reviewerID, role, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockReportService) Dismiss(ctx context.Context, reportID int64, reviewerID, role string, note *string) (*models.Report, error) {
	args := m.Called(ctx, reportID, reviewerID, role, note)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func setupReportRouter(mockService *MockReportService, userID, role string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := handler.NewReportHandler(mockService, 10)

	api := r.Group("/api")
	h.RegisterRoutes(api, fakeAuth(userID, role))
	return r
}

func TestReportHandler_Create(t *testing.T) {
	t.Run("Created", func(t *testing.T) {
		mockService := new(MockReportService)
		router := setupReportRouter(mockService, "u1", "user")

		mockService.On("Create", mock.Anything, int64(7), "u1", "offensive language").
			Return(&models.Report{ID: 1, CommentID: 7, Status: models.ReportStatusPending}, nil)

		body, _ := json.Marshal(gin.H{"reason": "offensive language"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/comments/7/reports", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusCreated, w.Code)
	})

	t.Run("DuplicateConflict", func(t *testing.T) {
		mockService := new(MockReportService)
		router := setupReportRouter(mockService, "u1", "user")

		mockService.On("Create", mock.Anything, int64(7), "u1", "spam").
			Return(nil, service.ErrAlreadyReported)

		body, _ := json.Marshal(gin.H{"reason": "spam"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/comments/7/reports", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestReportHandler_Queue(t *testing.T) {
	t.Run("RegularUserForbidden", func(t *testing.T) {
		mockService := new(MockReportService)
		router := setupReportRouter(mockService, "u1", "user")

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/reports", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
		mockService.AssertNotCalled(t, "ListPending")
	})

	t.Run("ModeratorListsPending", func(t *testing.T) {
		mockService := new(MockReportService)
		router := setupReportRouter(mockService, "mod-1", "moderator")

		mockService.On("ListPending", mock.Anything, "moderator", 1, 10).
			Return([]models.Report{{ID: 1, Status: models.ReportStatusPending}}, int64(1), nil)

		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, "/api/reports", nil)
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		mockService.AssertExpectations(t)
	})
}

func TestReportHandler_Resolve(t *testing.T) {
	t.Run("ResolveWithAction", func(t *testing.T) {
		mockService := new(MockReportService)
		router := setupReportRouter(mockService, "mod-1", "moderator")

		mockService.On("Resolve", mock.Anything, int64(5), "mod-1", "moderator",
			dto.ResolveReportDTO{Action: models.ReportActionHide}).
			Return(&models.Report{ID: 5, Status: models.ReportStatusResolved}, nil)

		body, _ := json.Marshal(gin.H{"action": "hide"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/reports/5/resolve", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("UnknownActionRejected", func(t *testing.T) {
		mockService := new(MockReportService)
		router := setupReportRouter(mockService, "mod-1", "moderator")

		body, _ := json.Marshal(gin.H{"action": "shadowban"})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/reports/5/resolve", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		mockService.AssertNotCalled(t, "Resolve")
	})

	t.Run("ClosedReportConflict", func(t *testing.T) {
		mockService := new(MockReportService)
		router := setupReportRouter(mockService, "mod-1", "moderator")

		mockService.On("Resolve", mock.Anything, int64(5), "mod-1", "moderator", dto.ResolveReportDTO{}).
			Return(nil, service.ErrReportClosed)

		body, _ := json.Marshal(gin.H{})
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/reports/5/resolve", bytes.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		router.ServeHTTP(w, req)

		assert.Equal(t, http.StatusConflict, w.Code)
	})
}

func TestReportHandler_Dismiss(t *testing.T) {
	mockService := new(MockReportService)
	router := setupReportRouter(mockService, "mod-1", "moderator")

	mockService.On("Dismiss", mock.Anything, int64(5), "mod-1", "moderator", (*string)(nil)).
		Return(&models.Report{ID: 5, Status: models.ReportStatusDismissed}, nil)

	body, _ := json.Marshal(gin.H{})
	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodPost, "/api/reports/5/dismiss", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertExpectations(t)
}
