package repository

import (
	"context"

	"manganest/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

type ReactionRepository interface {
	// Get returns the user's active reaction on a comment, if any.
	Get(ctx context.Context, commentID int64, userID string) (*models.Reaction, error)
	// Set replaces whatever reaction the user had on the comment with the
	// given type. Delete-then-insert inside one transaction, so a
	// concurrent reader never sees two rows for the same (comment, user).
	Set(ctx context.Context, commentID int64, userID, reactionType string) error
	// Remove clears the user's reaction (toggle off). Removing a reaction
	// that does not exist is not an error.
	Remove(ctx context.Context, commentID int64, userID string) error
	ListByComment(ctx context.Context, commentID int64) ([]models.Reaction, error)
	// ListByComments fetches reaction rows for many comments in one query.
	ListByComments(ctx context.Context, commentIDs []int64) ([]models.Reaction, error)
}

type reactionRepository struct {
	db *gorm.DB
}

func NewReactionRepository(db *gorm.DB) ReactionRepository {
	return &reactionRepository{db: db}
}

func (r *reactionRepository) Get(ctx context.Context, commentID int64, userID string) (*models.Reaction, error) {
	var reaction models.Reaction
	err := r.db.WithContext(ctx).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		First(&reaction).Error
	if err != nil {
		return nil, err
	}
	return &reaction, nil
}

func (r *reactionRepository) Set(ctx context.Context, commentID int64, userID, reactionType string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("comment_id = ? AND user_id = ?", commentID, userID).
			Delete(&models.Reaction{}).Error; err != nil {
			return err
		}
		return tx.Create(&models.Reaction{
			CommentID: commentID,
			UserID:    userID,
			Type:      reactionType,
		}).Error
	})
}

func (r *reactionRepository) Remove(ctx context.Context, commentID int64, userID string) error {
	return r.db.WithContext(ctx).
		Where("comment_id = ? AND user_id = ?", commentID, userID).
		Delete(&models.Reaction{}).Error
}

func (r *reactionRepository) ListByComment(ctx context.Context, commentID int64) ([]models.Reaction, error) {
	var reactions []models.Reaction
	err := r.db.WithContext(ctx).
		Where("comment_id = ?", commentID).
		Find(&reactions).Error
	return reactions, err
}

func (r *reactionRepository) ListByComments(ctx context.Context, commentIDs []int64) ([]models.Reaction, error) {
	if len(commentIDs) == 0 {
		return []models.Reaction{}, nil
	}
	var reactions []models.Reaction
	err := r.db.WithContext(ctx).
		Where("comment_id IN ?", commentIDs).
		Find(&reactions).Error
	return reactions, err
}
