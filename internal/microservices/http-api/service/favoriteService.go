package service

import (
	"context"
	"errors"

	"manganest/internal/microservices/http-api/models"
	"manganest/internal/microservices/http-api/repository"

	"gorm.io/gorm"
)

var (
	ErrMangaNotFound    = errors.New("manga not found")
	ErrAlreadyFavorite  = errors.New("manga already in favorites")
	ErrFavoriteNotFound = errors.New("manga not in favorites")
)

type FavoriteService interface {
	Add(ctx context.Context, userID string, mangaID int64) error
	Remove(ctx context.Context, userID string, mangaID int64) error
	List(ctx context.Context, userID string) ([]models.Favorite, error)
}

type favoriteService struct {
	favoriteRepo repository.FavoriteRepository
	mangaRepo    repository.MangaRepository
}

func NewFavoriteService(favoriteRepo repository.FavoriteRepository, mangaRepo repository.MangaRepository) FavoriteService {
	return &favoriteService{
		favoriteRepo: favoriteRepo,
		mangaRepo:    mangaRepo,
	}
}

func (s *favoriteService) Add(ctx context.Context, userID string, mangaID int64) error {
	if _, err := s.mangaRepo.GetByID(ctx, mangaID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrMangaNotFound
		}
		return err
	}

	exists, err := s.favoriteRepo.Exists(ctx, userID, mangaID)
	if err != nil {
		return err
	}
	if exists {
		return ErrAlreadyFavorite
	}

	return s.favoriteRepo.Add(ctx, userID, mangaID)
}

func (s *favoriteService) Remove(ctx context.Context, userID string, mangaID int64) error {
	exists, err := s.favoriteRepo.Exists(ctx, userID, mangaID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrFavoriteNotFound
	}
	return s.favoriteRepo.Remove(ctx, userID, mangaID)
}

func (s *favoriteService) List(ctx context.Context, userID string) ([]models.Favorite, error) {
	favorites, err := s.favoriteRepo.List(ctx, userID)
	if err != nil {
		return nil, err
	}
	if favorites == nil {
		favorites = []models.Favorite{}
	}
	return favorites, nil
}
