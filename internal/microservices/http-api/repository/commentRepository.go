package repository

import (
	"context"
	"errors"

	"manganest/internal/microservices/http-api/models"

	"gorm.io/gorm"
)

// Sort modes for top-level comment listings. Replies always come back
// oldest-first regardless of the top-level mode.
type CommentSort string

const (
	SortPinnedFirst CommentSort = "pinned"  // pinned first, then newest
	SortNewest      CommentSort = "newest"
	SortOldest      CommentSort = "oldest"
	SortPopular     CommentSort = "popular" // by like count, recency on ties
)

// ValidCommentSort reports whether s is a known sort mode.
func ValidCommentSort(s CommentSort) bool {
	switch s {
	case SortPinnedFirst, SortNewest, SortOldest, SortPopular:
		return true
	}
	return false
}

type CommentRepository interface {
	Create(ctx context.Context, comment *models.Comment) error
	Update(ctx context.Context, comment *models.Comment) error
	// GetByID resolves a comment by id, tombstoned rows included.
	GetByID(ctx context.Context, commentID int64) (*models.Comment, error)
	// ListTopLevel returns one page of visible top-level comments for a
	// chapter plus the total visible top-level count.
	ListTopLevel(ctx context.Context, chapterID int64, sort CommentSort, page, pageSize int) ([]models.Comment, int64, error)
	// ListReplies returns one page of a comment's visible replies, oldest first.
	ListReplies(ctx context.Context, parentID int64, page, pageSize int) ([]models.Comment, int64, error)
	// ListRepliesForParents fetches all visible replies of the given parents
	// in one query, oldest first. Used by the thread builder.
	ListRepliesForParents(ctx context.Context, parentIDs []int64) ([]models.Comment, error)
	// ReplyCounts returns the visible reply count per parent id.
	ReplyCounts(ctx context.Context, parentIDs []int64) (map[int64]int64, error)
	ListByUser(ctx context.Context, userID string, page, pageSize int) ([]models.Comment, int64, error)
	SoftDelete(ctx context.Context, commentID int64) error
	SetHidden(ctx context.Context, commentID int64, hidden bool) error
	SetPinned(ctx context.Context, commentID int64, pinned bool) error
	// MarkReported bumps report_count and sets the reported flag.
	MarkReported(ctx context.Context, commentID int64) error
}

type commentRepository struct {
	db *gorm.DB
}

func NewCommentRepository(db *gorm.DB) CommentRepository {
	return &commentRepository{db: db}
}

func (r *commentRepository) Create(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Create(comment).Error
}

func (r *commentRepository) Update(ctx context.Context, comment *models.Comment) error {
	return r.db.WithContext(ctx).Save(comment).Error
}

func (r *commentRepository) GetByID(ctx context.Context, commentID int64) (*models.Comment, error) {
	var comment models.Comment
	err := r.db.WithContext(ctx).
		Where("id = ?", commentID).
		Preload("User").
		First(&comment).Error
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

// visible scopes a query to rows shown in default list views.
func visible(db *gorm.DB) *gorm.DB {
	return db.Where("is_deleted = ? AND is_hidden = ?", false, false)
}

func (r *commentRepository) ListTopLevel(ctx context.Context, chapterID int64, sort CommentSort, page, pageSize int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	base := visible(r.db.WithContext(ctx).Model(&models.Comment{})).
		Where("chapter_id = ? AND parent_id IS NULL", chapterID)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q := visible(r.db.WithContext(ctx)).
		Where("chapter_id = ? AND parent_id IS NULL", chapterID).
		Preload("User")

	switch sort {
	case SortOldest:
		q = q.Order("created_at ASC")
	case SortPopular:
		q = q.Order("(SELECT COUNT(*) FROM reactions WHERE reactions.comment_id = comments.id AND reactions.type = 'like') DESC").
			Order("created_at DESC")
	case SortPinnedFirst:
		q = q.Order("is_pinned DESC").Order("created_at DESC")
	default: // SortNewest
		q = q.Order("created_at DESC")
	}

	offset := (page - 1) * pageSize
	if err := q.Limit(pageSize).Offset(offset).Find(&comments).Error; err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

func (r *commentRepository) ListReplies(ctx context.Context, parentID int64, page, pageSize int) ([]models.Comment, int64, error) {
	var replies []models.Comment
	var total int64

	base := visible(r.db.WithContext(ctx).Model(&models.Comment{})).
		Where("parent_id = ?", parentID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := visible(r.db.WithContext(ctx)).
		Where("parent_id = ?", parentID).
		Preload("User").
		Order("created_at ASC").
		Limit(pageSize).
		Offset(offset).
		Find(&replies).Error
	if err != nil {
		return nil, 0, err
	}
	return replies, total, nil
}

func (r *commentRepository) ListRepliesForParents(ctx context.Context, parentIDs []int64) ([]models.Comment, error) {
	if len(parentIDs) == 0 {
		return []models.Comment{}, nil
	}
	var replies []models.Comment
	err := visible(r.db.WithContext(ctx)).
		Where("parent_id IN ?", parentIDs).
		Preload("User").
		Order("created_at ASC").
		Find(&replies).Error
	if err != nil {
		return nil, err
	}
	return replies, nil
}

func (r *commentRepository) ReplyCounts(ctx context.Context, parentIDs []int64) (map[int64]int64, error) {
	counts := make(map[int64]int64, len(parentIDs))
	if len(parentIDs) == 0 {
		return counts, nil
	}

	type row struct {
		ParentID int64
		Total    int64
	}
	var rows []row
	err := visible(r.db.WithContext(ctx).Model(&models.Comment{})).
		Select("parent_id, COUNT(*) as total").
		Where("parent_id IN ?", parentIDs).
		Group("parent_id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, rw := range rows {
		counts[rw.ParentID] = rw.Total
	}
	return counts, nil
}

func (r *commentRepository) ListByUser(ctx context.Context, userID string, page, pageSize int) ([]models.Comment, int64, error) {
	var comments []models.Comment
	var total int64

	base := visible(r.db.WithContext(ctx).Model(&models.Comment{})).
		Where("user_id = ?", userID)
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	err := visible(r.db.WithContext(ctx)).
		Where("user_id = ?", userID).
		Preload("User").
		Order("created_at DESC").
		Limit(pageSize).
		Offset(offset).
		Find(&comments).Error
	if err != nil {
		return nil, 0, err
	}
	return comments, total, nil
}

// SoftDelete tombstones the row. Reactions and reports stay attached.
func (r *commentRepository) SoftDelete(ctx context.Context, commentID int64) error {
	result := r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", commentID).
		Update("is_deleted", true)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errors.New("comment not found")
	}
	return nil
}

func (r *commentRepository) SetHidden(ctx context.Context, commentID int64, hidden bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", commentID).
		Update("is_hidden", hidden).Error
}

func (r *commentRepository) SetPinned(ctx context.Context, commentID int64, pinned bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", commentID).
		Update("is_pinned", pinned).Error
}

func (r *commentRepository) MarkReported(ctx context.Context, commentID int64) error {
	return r.db.WithContext(ctx).
		Model(&models.Comment{}).
		Where("id = ?", commentID).
		Updates(map[string]interface{}{
			"is_reported":  true,
			"report_count": gorm.Expr("report_count + 1"),
		}).Error
}
