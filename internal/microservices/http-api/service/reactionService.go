package service

import (
	"context"
	"errors"

	"manganest/internal/cache"
	"manganest/internal/microservices/http-api/dto"
	"manganest/internal/microservices/http-api/models"
	"manganest/internal/microservices/http-api/repository"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrInvalidReactionType = errors.New("invalid reaction type")

type ReactionService interface {
	// Toggle applies the one-active-reaction-per-user rule: no existing
	// reaction inserts, the same type clears (toggle off), a different
	// type replaces. Returns the fresh aggregate after the change.
	Toggle(ctx context.Context, commentID int64, userID, reactionType string) (*dto.ReactionSummary, error)
	Summary(ctx context.Context, commentID int64, viewerID string) (*dto.ReactionSummary, error)
}

type reactionService struct {
	reactionRepo repository.ReactionRepository
	commentRepo  repository.CommentRepository
	pageCache    *cache.CommentCache
	logger       *logrus.Logger
}

func NewReactionService(
	reactionRepo repository.ReactionRepository,
	commentRepo repository.CommentRepository,
	pageCache *cache.CommentCache,
	logger *logrus.Logger,
) ReactionService {
	return &reactionService{
		reactionRepo: reactionRepo,
		commentRepo:  commentRepo,
		pageCache:    pageCache,
		logger:       logger,
	}
}

func (s *reactionService) Toggle(ctx context.Context, commentID int64, userID, reactionType string) (*dto.ReactionSummary, error) {
	if !models.ValidReactionType(reactionType) {
		return nil, ErrInvalidReactionType
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil || comment.IsDeleted {
		return nil, ErrCommentNotFound
	}

	existing, err := s.reactionRepo.Get(ctx, commentID, userID)
	switch {
	case err != nil && errors.Is(err, gorm.ErrRecordNotFound):
		err = s.reactionRepo.Set(ctx, commentID, userID, reactionType)
	case err != nil:
		return nil, err
	case existing.Type == reactionType:
		err = s.reactionRepo.Remove(ctx, commentID, userID)
	default:
		err = s.reactionRepo.Set(ctx, commentID, userID, reactionType)
	}
	if err != nil {
		return nil, err
	}

	if cacheErr := s.pageCache.InvalidateChapter(ctx, comment.ChapterID); cacheErr != nil {
		s.logger.WithError(cacheErr).Debug("comment page cache invalidation failed")
	}

	return s.Summary(ctx, commentID, userID)
}

func (s *reactionService) Summary(ctx context.Context, commentID int64, viewerID string) (*dto.ReactionSummary, error) {
	rows, err := s.reactionRepo.ListByComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	summary := AggregateReactions(rows, viewerID)
	return &summary, nil
}
