package repository

import (
	"context"

	"manganest/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// MangaRepository covers the catalog lookups the comment and favorite
// subsystems need. Full catalog management lives with the ingestion side
// and is out of scope here.
type MangaRepository interface {
	GetByID(ctx context.Context, mangaID int64) (*models.Manga, error)
	GetBySlug(ctx context.Context, slug string) (*models.Manga, error)
}

type mangaRepository struct {
	db *gorm.DB
}

func NewMangaRepository(db *gorm.DB) MangaRepository {
	return &mangaRepository{db: db}
}

func (r *mangaRepository) GetByID(ctx context.Context, mangaID int64) (*models.Manga, error) {
	var manga models.Manga
	if err := r.db.WithContext(ctx).First(&manga, "id = ?", mangaID).Error; err != nil {
		return nil, err
	}
	return &manga, nil
}

func (r *mangaRepository) GetBySlug(ctx context.Context, slug string) (*models.Manga, error) {
	var manga models.Manga
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&manga).Error; err != nil {
		return nil, err
	}
	return &manga, nil
}
