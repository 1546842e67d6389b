package repository

import (
	"context"
	"time"

	"manganest/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type BanRepository interface {
	Create(ctx context.Context, ban *models.Ban) error
	GetByID(ctx context.Context, banID int64) (*models.Ban, error)
	// FindActive returns the user's ban currently in effect, if any. An
	// expired temporary ban does not count even while is_active is set.
	FindActive(ctx context.Context, userID string, now time.Time) (*models.Ban, error)
	// Deactivate lifts a ban. The row is kept for the audit trail.
	Deactivate(ctx context.Context, banID int64) error
	ListActive(ctx context.Context, page, pageSize int) ([]models.Ban, int64, error)
}

type banRepository struct {
	db *gorm.DB
}

func NewBanRepository(db *gorm.DB) BanRepository {
	return &banRepository{db: db}
}

func (r *banRepository) Create(ctx context.Context, ban *models.Ban) error {
	return r.db.WithContext(ctx).Create(ban).Error
}

func (r *banRepository) GetByID(ctx context.Context, banID int64) (*models.Ban, error) {
	var ban models.Ban
	if err := r.db.WithContext(ctx).First(&ban, "id = ?", banID).Error; err != nil {
		return nil, err
	}
	return &ban, nil
}

func (r *banRepository) FindActive(ctx context.Context, userID string, now time.Time) (*models.Ban, error) {
	var ban models.Ban
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND is_active = ?", userID, true).
		Where("is_permanent = ? OR expires_at > ?", true, now).
		Order("created_at DESC").
		First(&ban).Error
	if err != nil {
		return nil, err
	}
	return &ban, nil
}

func (r *banRepository) Deactivate(ctx context.Context, banID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Ban{}).
		Where("id = ?", banID).
		Update("is_active", false).Error
}

func (r *banRepository) ListActive(ctx context.Context, page, pageSize int) ([]models.Ban, int64, error) {
	var bans []models.Ban
	var total int64

	base := r.db.WithContext(ctx).Model(&models.Ban{}).Where("is_active = ?", true)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Preload("User").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&bans).Error
	if err != nil {
		return nil, 0, err
	}
	return bans, total, nil
}
