package service

import (
	"context"
	"errors"
	"time"

	"manganest/internal/authz"
	"manganest/internal/cache"
	"manganest/internal/microservices/http-api/dto"
	"manganest/internal/microservices/http-api/models"
	"manganest/internal/microservices/http-api/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrReportNotFound   = errors.New("report not found")
	ErrReportOwnComment = errors.New("you cannot report your own comment")
	ErrAlreadyReported  = errors.New("you already reported this comment")
	ErrReportClosed     = errors.New("report has already been reviewed")
)

type ReportService interface {
	Create(ctx context.Context, commentID int64, reporterID, reason string) (*models.Report, error)
	ListPending(ctx context.Context, role string, page, pageSize int) ([]models.Report, int64, error)
	// Resolve transitions pending -> resolved, recording the reviewer and
	// applying the optional action (hide/delete the comment, ban its
	// author) atomically with the status write. Resolved is terminal.
	Resolve(ctx context.Context, reportID int64, reviewerID, role string, req dto.ResolveReportDTO) (*models.Report, error)
	// Dismiss transitions pending -> dismissed. Terminal, no side effect.
	Dismiss(ctx context.Context, reportID int64, reviewerID, role string, note *string) (*models.Report, error)
}

type reportService struct {
	reportRepo       repository.ReportRepository
	commentRepo      repository.CommentRepository
	notificationRepo repository.NotificationRepository
	pageCache        *cache.CommentCache
	logger           *logrus.Logger
}

func NewReportService(
	reportRepo repository.ReportRepository,
	commentRepo repository.CommentRepository,
	notificationRepo repository.NotificationRepository,
	pageCache *cache.CommentCache,
	logger *logrus.Logger,
) ReportService {
	return &reportService{
		reportRepo:       reportRepo,
		commentRepo:      commentRepo,
		notificationRepo: notificationRepo,
		pageCache:        pageCache,
		logger:           logger,
	}
}

func (s *reportService) Create(ctx context.Context, commentID int64, reporterID, reason string) (*models.Report, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil || comment.IsDeleted {
		return nil, ErrCommentNotFound
	}
	if comment.UserID == reporterID {
		return nil, ErrReportOwnComment
	}

	already, err := s.reportRepo.HasUserReported(ctx, commentID, reporterID)
	if err != nil {
		return nil, err
	}
	if already {
		return nil, ErrAlreadyReported
	}

	report := &models.Report{
		CommentID:  commentID,
		ReporterID: reporterID,
		Reason:     reason,
		Status:     models.ReportStatusPending,
	}
	if err := s.reportRepo.Create(ctx, report); err != nil {
		return nil, err
	}

	if err := s.commentRepo.MarkReported(ctx, commentID); err != nil {
		s.logger.WithError(err).Warn("failed to bump comment report count")
	}
	return report, nil
}

func (s *reportService) ListPending(ctx context.Context, role string, page, pageSize int) ([]models.Report, int64, error) {
	if !authz.HasCapability(role, authz.CapModerateComments) {
		return nil, 0, ErrNotAllowed
	}
	return s.reportRepo.ListByStatus(ctx, models.ReportStatusPending, page, pageSize)
}

func (s *reportService) Resolve(ctx context.Context, reportID int64, reviewerID, role string, req dto.ResolveReportDTO) (*models.Report, error) {
	if !authz.HasCapability(role, authz.CapModerateComments) {
		return nil, ErrNotAllowed
	}
	if req.Action == models.ReportActionBan && !authz.HasCapability(role, authz.CapBanUsers) {
		return nil, ErrNotAllowed
	}

	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	if report.Terminal() {
		return nil, ErrReportClosed
	}

	var ban *models.Ban
	if req.Action == models.ReportActionBan {
		comment, err := s.commentRepo.GetByID(ctx, report.CommentID)
		if err != nil {
			return nil, ErrCommentNotFound
		}
		banReason := req.BanReason
		if banReason == "" {
			banReason = report.Reason
		}
		ban, err = NewBan(comment.UserID, banReason, reviewerID, req.BanDays, time.Now())
		if err != nil {
			return nil, err
		}
	}

	now := time.Now()
	report.Status = models.ReportStatusResolved
	report.ResolutionNote = req.Note
	report.ReviewedBy = &reviewerID
	report.ReviewedAt = &now

	if err := s.reportRepo.Resolve(ctx, report, req.Action, ban); err != nil {
		return nil, err
	}

	if req.Action == models.ReportActionHide || req.Action == models.ReportActionDelete {
		if comment, err := s.commentRepo.GetByID(ctx, report.CommentID); err == nil {
			if cacheErr := s.pageCache.InvalidateChapter(ctx, comment.ChapterID); cacheErr != nil {
				s.logger.WithError(cacheErr).Debug("comment page cache invalidation failed")
			}
		}
	}

	s.notifyReporter(ctx, report, "Your report was resolved")
	return report, nil
}

func (s *reportService) Dismiss(ctx context.Context, reportID int64, reviewerID, role string, note *string) (*models.Report, error) {
	if !authz.HasCapability(role, authz.CapModerateComments) {
		return nil, ErrNotAllowed
	}

	report, err := s.reportRepo.GetByID(ctx, reportID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReportNotFound
		}
		return nil, err
	}
	if report.Terminal() {
		return nil, ErrReportClosed
	}

	now := time.Now()
	report.Status = models.ReportStatusDismissed
	report.ResolutionNote = note
	report.ReviewedBy = &reviewerID
	report.ReviewedAt = &now

	if err := s.reportRepo.Resolve(ctx, report, "", nil); err != nil {
		return nil, err
	}

	s.notifyReporter(ctx, report, "Your report was reviewed")
	return report, nil
}

func (s *reportService) notifyReporter(ctx context.Context, report *models.Report, message string) {
	notification := &models.Notification{
		UserID:    report.ReporterID,
		Type:      models.NotificationReportResolved,
		CommentID: &report.CommentID,
		Title:     "Report update",
		Message:   message,
	}
	if err := s.notificationRepo.Create(ctx, notification); err != nil {
		s.logger.WithError(err).Warn("failed to create report notification")
	}
}
