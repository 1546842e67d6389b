package repository

import (
	"context"
	"fmt"

	"manganest/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ReportRepository interface {
	Create(ctx context.Context, report *models.Report) error
	GetByID(ctx context.Context, reportID int64) (*models.Report, error)
	ListByStatus(ctx context.Context, status string, page, pageSize int) ([]models.Report, int64, error)
	// HasUserReported reports whether the user already filed a pending
	// report against the comment.
	HasUserReported(ctx context.Context, commentID int64, userID string) (bool, error)
	// Resolve writes the terminal status and the optional side effect in a
	// single transaction: if the side effect fails, the status write rolls
	// back and the report stays pending. The report must carry its final
	// status, reviewer and review timestamp; ban is non-nil only for the
	// ban action.
	Resolve(ctx context.Context, report *models.Report, action string, ban *models.Ban) error
}

type reportRepository struct {
	db *gorm.DB
}

func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

func (r *reportRepository) Create(ctx context.Context, report *models.Report) error {
	return r.db.WithContext(ctx).Create(report).Error
}

func (r *reportRepository) GetByID(ctx context.Context, reportID int64) (*models.Report, error) {
	var report models.Report
	err := r.db.WithContext(ctx).
		Where("id = ?", reportID).
		Preload("Reporter").
		Preload("Comment").
		First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

func (r *reportRepository) ListByStatus(ctx context.Context, status string, page, pageSize int) ([]models.Report, int64, error) {
	var reports []models.Report
	var total int64

	base := r.db.WithContext(ctx).Model(&models.Report{}).Where("status = ?", status)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Preload("Reporter").
		Preload("Comment").
		Preload("Comment.User").
		Order("created_at ASC").
		Limit(pageSize).
		Offset(offset).
		Find(&reports).Error
	if err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

func (r *reportRepository) HasUserReported(ctx context.Context, commentID int64, userID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Report{}).
		Where("comment_id = ? AND reporter_id = ? AND status = ?", commentID, userID, models.ReportStatusPending).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *reportRepository) Resolve(ctx context.Context, report *models.Report, action string, ban *models.Ban) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// Side effect first; a failed side effect must not resolve the report.
		switch action {
		case "":
			// status-only transition (dismiss, or resolve without action)
		case models.ReportActionHide:
			if err := tx.Model(&models.Comment{}).
				Where("id = ?", report.CommentID).
				Update("is_hidden", true).Error; err != nil {
				return err
			}
		case models.ReportActionDelete:
			if err := tx.Model(&models.Comment{}).
				Where("id = ?", report.CommentID).
				Update("is_deleted", true).Error; err != nil {
				return err
			}
		case models.ReportActionBan:
			if ban == nil {
				return fmt.Errorf("ban action requires a ban record")
			}
			if err := tx.Create(ban).Error; err != nil {
				return err
			}
		default:
			return fmt.Errorf("unknown report action %q", action)
		}

		return tx.Model(&models.Report{}).
			Where("id = ?", report.ID).
			Updates(map[string]interface{}{
				"status":          report.Status,
				"resolution_note": report.ResolutionNote,
				"reviewed_by":     report.ReviewedBy,
				"reviewed_at":     report.ReviewedAt,
			}).Error
	})
}
