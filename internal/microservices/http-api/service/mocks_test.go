package service

import (
	"context"
	"time"

	"manganest/internal/microservices/http-api/models"
	"manganest/internal/microservices/http-api/repository"

	"github.com/stretchr/testify/mock"
)

// --- MOCK REPOSITORIES ---

type MockCommentRepository struct {
	mock.Mock
}

func (m *MockCommentRepository) Create(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) Update(ctx context.Context, comment *models.Comment) error {
	args := m.Called(ctx, comment)
	return args.Error(0)
}

func (m *MockCommentRepository) GetByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	args := m.Called(ctx, commentID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ListTopLevel(ctx context.Context, chapterID int64, sort repository.CommentSort, page, pageSize int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, chapterID, sort, page, pageSize)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) ListReplies(ctx context.Context, parentID int64, page, pageSize int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, parentID, page, pageSize)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) ListRepliesForParents(ctx context.Context, parentIDs []int64) ([]models.Comment, error) {
	args := m.Called(ctx, parentIDs)
	return args.Get(0).([]models.Comment), args.Error(1)
}

func (m *MockCommentRepository) ReplyCounts(ctx context.Context, parentIDs []int64) (map[int64]int64, error) {
	args := m.Called(ctx, parentIDs)
	return args.Get(0).(map[int64]int64), args.Error(1)
}

func (m *MockCommentRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]models.Comment, int64, error) {
	args := m.Called(ctx, userID, page, pageSize)
	return args.Get(0).([]models.Comment), args.Get(1).(int64), args.Error(2)
}

func (m *MockCommentRepository) SoftDelete(ctx context.Context, commentID int64) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}

func (m *MockCommentRepository) SetHidden(ctx context.Context, commentID int64, hidden bool) error {
	args := m.Called(ctx, commentID, hidden)
	return args.Error(0)
}

func (m *MockCommentRepository) SetPinned(ctx context.Context, commentID int64, pinned bool) error {
	args := m.Called(ctx, commentID, pinned)
	return args.Error(0)
}

func (m *MockCommentRepository) MarkReported(ctx context.Context, commentID int64) error {
	args := m.Called(ctx, commentID)
	return args.Error(0)
}

type MockChapterRepository struct {
	mock.Mock
}

func (m *MockChapterRepository) GetByID(ctx context.Context, chapterID int64) (*models.Chapter, error) {
	args := m.Called(ctx, chapterID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Chapter), args.Error(1)
}

func (m *MockChapterRepository) ListByManga(ctx context.Context, mangaID int64) ([]models.Chapter, error) {
	args := m.Called(ctx, mangaID)
	return args.Get(0).([]models.Chapter), args.Error(1)
}

type MockBanRepository struct {
	mock.Mock
}

func (m *MockBanRepository) Create(ctx context.Context, ban *models.Ban) error {
	args := m.Called(ctx, ban)
	return args.Error(0)
}

func (m *MockBanRepository) GetByID(ctx context.Context, banID int64) (*models.Ban, error) {
	args := m.Called(ctx, banID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ban), args.Error(1)
}

func (m *MockBanRepository) FindActive(ctx context.Context, userID string, now time.Time) (*models.Ban, error) {
	args := m.Called(ctx, userID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Ban), args.Error(1)
}

func (m *MockBanRepository) Deactivate(ctx context.Context, banID int64) error {
	args := m.Called(ctx, banID)
	return args.Error(0)
}

func (m *MockBanRepository) ListActive(ctx context.Context, page, pageSize int) ([]models.Ban, int64, error) {
	args := m.Called(ctx, page, pageSize)
	return args.Get(0).([]models.Ban), args.Get(1).(int64), args.Error(2)
}

type MockReactionRepository struct {
	mock.Mock
}

func (m *MockReactionRepository) Get(ctx context.Context, commentID int64, userID string) (*models.Reaction, error) {
	args := m.Called(ctx, commentID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Reaction), args.Error(1)
}

func (m *MockReactionRepository) Set(ctx context.Context, commentID int64, userID, reactionType string) error {
	args := m.Called(ctx, commentID, userID, reactionType)
	return args.Error(0)
}

func (m *MockReactionRepository) Remove(ctx context.Context, commentID int64, userID string) error {
	args := m.Called(ctx, commentID, userID)
	return args.Error(0)
}

func (m *MockReactionRepository) ListByComment(ctx context.Context, commentID int64) ([]models.Reaction, error) {
	args := m.Called(ctx, commentID)
	return args.Get(0).([]models.Reaction), args.Error(1)
}

func (m *MockReactionRepository) ListByComments(ctx context.Context, commentIDs []int64) ([]models.Reaction, error) {
	args := m.Called(ctx, commentIDs)
	return args.Get(0).([]models.Reaction), args.Error(1)
}

type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) Create(ctx context.Context, notification *models.Notification) error {
	args := m.Called(ctx, notification)
	return args.Error(0)
}

func (m *MockNotificationRepository) GetUnreadByUser(ctx context.Context, userID string) ([]models.Notification, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Notification), args.Error(1)
}

func (m *MockNotificationRepository) MarkAsRead(ctx context.Context, notificationID int64) error {
	args := m.Called(ctx, notificationID)
	return args.Error(0)
}

func (m *MockNotificationRepository) MarkAllAsRead(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockReportRepository struct {
	mock.Mock
}

func (m *MockReportRepository) Create(ctx context.Context, report *models.Report) error {
	args := m.Called(ctx, report)
	return args.Error(0)
}

func (m *MockReportRepository) GetByID(ctx context.Context, reportID int64) (*models.Report, error) {
	args := m.Called(ctx, reportID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Report), args.Error(1)
}

func (m *MockReportRepository) ListByStatus(ctx context.Context, status string, page, pageSize int) ([]models.Report, int64, error) {
	args := m.Called(ctx, status, page, pageSize)
	return args.Get(0).([]models.Report), args.Get(1).(int64), args.Error(2)
}

func (m *MockReportRepository) HasUserReported(ctx context.Context, commentID int64, userID string) (bool, error) {
	args := m.Called(ctx, commentID, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockReportRepository) Resolve(ctx context.Context, report *models.Report, action string, ban *models.Ban) error {
	args := m.Called(ctx, report, action, ban)
	return args.Error(0)
}

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(user *models.User) error {
	args := m.Called(user)
	return args.Error(0)
}

func (m *MockUserRepository) FindByUsername(username string) (*models.User, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByID(id string) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) FindByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}
