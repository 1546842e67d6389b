package repository

import (
	"context"

	"manganest/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ChapterRepository interface {
	GetByID(ctx context.Context, chapterID int64) (*models.Chapter, error)
	ListByManga(ctx context.Context, mangaID int64) ([]models.Chapter, error)
}

type chapterRepository struct {
	db *gorm.DB
}

func NewChapterRepository(db *gorm.DB) ChapterRepository {
	return &chapterRepository{db: db}
}

func (r *chapterRepository) GetByID(ctx context.Context, chapterID int64) (*models.Chapter, error) {
	var chapter models.Chapter
	if err := r.db.WithContext(ctx).First(&chapter, "id = ?", chapterID).Error; err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (r *chapterRepository) ListByManga(ctx context.Context, mangaID int64) ([]models.Chapter, error) {
	var chapters []models.Chapter
	err := r.db.WithContext(ctx).
		Where("manga_id = ?", mangaID).
		Order("number ASC").
		Find(&chapters).Error
	return chapters, err
}
