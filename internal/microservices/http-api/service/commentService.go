package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"manganest/internal/authz"
	"manganest/internal/cache"
	"manganest/internal/microservices/http-api/dto"
	"manganest/internal/microservices/http-api/models"
	"manganest/internal/microservices/http-api/repository"
	"manganest/internal/moderation"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrChapterNotFound       = errors.New("chapter not found")
	ErrCommentNotFound       = errors.New("comment not found")
	ErrNotCommentAuthor      = errors.New("you don't have permission to modify this comment")
	ErrReplyToReply          = errors.New("replies can only target top-level comments")
	ErrParentChapterMismatch = errors.New("parent comment belongs to a different chapter")
	ErrUserBanned            = errors.New("you are banned from commenting")
	ErrPinReply              = errors.New("only top-level comments can be pinned")
	ErrInvalidSort           = errors.New("invalid sort mode")
)

// ModerationError is a blocked submission. The reason is user-facing and
// no store call was made.
type ModerationError struct {
	Reason string
}

func (e *ModerationError) Error() string {
	return e.Reason
}

type CommentService interface {
	Create(ctx context.Context, userID string, chapterID int64, req dto.CreateCommentDTO) (*dto.CreateCommentResponse, error)
	Update(ctx context.Context, commentID int64, userID, role string, req dto.UpdateCommentDTO) (*dto.CommentResponse, error)
	Delete(ctx context.Context, commentID int64, userID, role string) error
	SetPinned(ctx context.Context, commentID int64, role string, pinned bool) error
	GetByID(ctx context.Context, commentID int64, viewerID string) (*dto.CommentResponse, error)
	// ListByChapter returns one page of the chapter's comment thread.
	// includeReplies nests each top-level comment's replies eagerly;
	// otherwise only reply counts come back and clients fetch replies on
	// demand via ListReplies.
	ListByChapter(ctx context.Context, chapterID int64, sort repository.CommentSort, page, pageSize int, includeReplies bool, viewerID string) (*dto.PaginatedCommentResponse, error)
	ListReplies(ctx context.Context, parentID int64, page, pageSize int, viewerID string) (*dto.PaginatedCommentResponse, error)
	ListByUser(ctx context.Context, userID string, page, pageSize int) (*dto.PaginatedCommentResponse, error)
}

type commentService struct {
	commentRepo      repository.CommentRepository
	chapterRepo      repository.ChapterRepository
	banRepo          repository.BanRepository
	reactionRepo     repository.ReactionRepository
	notificationRepo repository.NotificationRepository
	history          *moderation.History
	pageCache        *cache.CommentCache
	logger           *logrus.Logger
}

func NewCommentService(
	commentRepo repository.CommentRepository,
	chapterRepo repository.ChapterRepository,
	banRepo repository.BanRepository,
	reactionRepo repository.ReactionRepository,
	notificationRepo repository.NotificationRepository,
	history *moderation.History,
	pageCache *cache.CommentCache,
	logger *logrus.Logger,
) CommentService {
	return &commentService{
		commentRepo:      commentRepo,
		chapterRepo:      chapterRepo,
		banRepo:          banRepo,
		reactionRepo:     reactionRepo,
		notificationRepo: notificationRepo,
		history:          history,
		pageCache:        pageCache,
		logger:           logger,
	}
}

// Create posts a comment or reply. The moderation filter runs first: a
// blocked submission never reaches the repository.
func (s *commentService) Create(ctx context.Context, userID string, chapterID int64, req dto.CreateCommentDTO) (*dto.CreateCommentResponse, error) {
	chapter, err := s.chapterRepo.GetByID(ctx, chapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChapterNotFound
		}
		return nil, err
	}

	if banned, err := s.activeBan(ctx, userID); err != nil {
		return nil, err
	} else if banned {
		return nil, ErrUserBanned
	}

	result := moderation.Evaluate(req.Content, s.history.Recent(userID))
	if !result.Allowed {
		return nil, &ModerationError{Reason: result.BlockingReason}
	}

	var parent *models.Comment
	if req.ParentID != nil {
		parent, err = s.commentRepo.GetByID(ctx, *req.ParentID)
		if err != nil || parent.IsDeleted {
			return nil, ErrCommentNotFound
		}
		if parent.ParentID != nil {
			return nil, ErrReplyToReply
		}
		if parent.ChapterID != chapterID {
			return nil, ErrParentChapterMismatch
		}
	}

	comment := &models.Comment{
		UserID:    userID,
		MangaID:   chapter.MangaID,
		ChapterID: chapterID,
		ParentID:  req.ParentID,
		Content:   req.Content,
		IsSpoiler: req.IsSpoiler,
	}
	if err := s.commentRepo.Create(ctx, comment); err != nil {
		return nil, err
	}

	s.history.Record(userID, req.Content)
	s.invalidate(ctx, chapterID)

	if parent != nil && parent.UserID != userID {
		notification := &models.Notification{
			UserID:    parent.UserID,
			Type:      models.NotificationCommentReply,
			CommentID: &comment.ID,
			Title:     "New reply",
			Message:   "Someone replied to your comment",
		}
		if err := s.notificationRepo.Create(ctx, notification); err != nil {
			s.logger.WithError(err).Warn("failed to create reply notification")
		}
	}

	// Reload with author data
	comment, err = s.commentRepo.GetByID(ctx, comment.ID)
	if err != nil {
		return nil, err
	}

	resp := dto.FromModelToCommentResponse(comment)
	resp.Reactions = AggregateReactions(nil, "").Counts

	return &dto.CreateCommentResponse{
		Comment:      *resp,
		Warnings:     result.Warnings,
		QualityScore: result.QualityScore,
	}, nil
}

// Update edits content and spoiler flag. Only structural validation
// re-runs: edits correct the author's own prior content.
func (s *commentService) Update(ctx context.Context, commentID int64, userID, role string, req dto.UpdateCommentDTO) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil || comment.IsDeleted {
		return nil, ErrCommentNotFound
	}

	if comment.UserID != userID && !authz.HasCapability(role, authz.CapModerateComments) {
		return nil, ErrNotCommentAuthor
	}

	result := moderation.ValidateEdit(req.Content)
	if !result.Allowed {
		return nil, &ModerationError{Reason: result.BlockingReason}
	}

	comment.Content = req.Content
	if req.IsSpoiler != nil {
		comment.IsSpoiler = *req.IsSpoiler
	}
	if err := s.commentRepo.Update(ctx, comment); err != nil {
		return nil, err
	}

	s.invalidate(ctx, comment.ChapterID)

	comment, err = s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return nil, err
	}
	resp := dto.FromModelToCommentResponse(comment)
	rows, err := s.reactionRepo.ListByComment(ctx, commentID)
	if err == nil {
		applyReactions(resp, rows, userID)
	}
	return resp, nil
}

// Delete is always a soft delete so reaction and report history stays.
func (s *commentService) Delete(ctx context.Context, commentID int64, userID, role string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil || comment.IsDeleted {
		return ErrCommentNotFound
	}

	allowed := comment.UserID == userID ||
		authz.HasCapability(role, authz.CapModerateComments) ||
		authz.HasCapability(role, authz.CapDeleteComments)
	if !allowed {
		return ErrNotCommentAuthor
	}

	if err := s.commentRepo.SoftDelete(ctx, commentID); err != nil {
		return err
	}
	s.invalidate(ctx, comment.ChapterID)
	return nil
}

func (s *commentService) SetPinned(ctx context.Context, commentID int64, role string, pinned bool) error {
	if !authz.HasCapability(role, authz.CapPinComments) {
		return ErrNotCommentAuthor
	}

	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil || comment.IsDeleted {
		return ErrCommentNotFound
	}
	if comment.ParentID != nil {
		return ErrPinReply
	}

	if err := s.commentRepo.SetPinned(ctx, commentID, pinned); err != nil {
		return err
	}
	s.invalidate(ctx, comment.ChapterID)
	return nil
}

func (s *commentService) GetByID(ctx context.Context, commentID int64, viewerID string) (*dto.CommentResponse, error) {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}

	resp := dto.FromModelToCommentResponse(comment)
	rows, err := s.reactionRepo.ListByComment(ctx, commentID)
	if err != nil {
		return nil, err
	}
	applyReactions(resp, rows, viewerID)

	counts, err := s.commentRepo.ReplyCounts(ctx, []int64{commentID})
	if err != nil {
		return nil, err
	}
	resp.ReplyCount = counts[commentID]
	return resp, nil
}

func (s *commentService) ListByChapter(ctx context.Context, chapterID int64, sort repository.CommentSort, page, pageSize int, includeReplies bool, viewerID string) (*dto.PaginatedCommentResponse, error) {
	if !repository.ValidCommentSort(sort) {
		return nil, ErrInvalidSort
	}
	if _, err := s.chapterRepo.GetByID(ctx, chapterID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrChapterNotFound
		}
		return nil, err
	}

	// Anonymous pages carry no viewer-specific state and are cacheable.
	cacheable := viewerID == "" && includeReplies
	cacheSort := fmt.Sprintf("%s:replies=%t", sort, includeReplies)
	if cacheable {
		if payload, found, err := s.pageCache.GetPage(ctx, chapterID, cacheSort, page); err == nil && found {
			var cached dto.PaginatedCommentResponse
			if err := json.Unmarshal(payload, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	topLevel, total, err := s.commentRepo.ListTopLevel(ctx, chapterID, sort, page, pageSize)
	if err != nil {
		return nil, err
	}

	parentIDs := make([]int64, 0, len(topLevel))
	for i := range topLevel {
		parentIDs = append(parentIDs, topLevel[i].ID)
	}

	var replies []models.Comment
	if includeReplies {
		replies, err = s.commentRepo.ListRepliesForParents(ctx, parentIDs)
		if err != nil {
			return nil, err
		}
	}

	replyCounts, err := s.commentRepo.ReplyCounts(ctx, parentIDs)
	if err != nil {
		return nil, err
	}

	allIDs := parentIDs
	for i := range replies {
		allIDs = append(allIDs, replies[i].ID)
	}
	reactions, err := s.reactionRepo.ListByComments(ctx, allIDs)
	if err != nil {
		return nil, err
	}

	thread := BuildThread(topLevel, replies, replyCounts, reactions, viewerID)
	resp := dto.NewPaginatedCommentResponse(thread, total, page, pageSize)

	if cacheable {
		if payload, err := json.Marshal(resp); err == nil {
			if err := s.pageCache.SetPage(ctx, chapterID, cacheSort, page, payload); err != nil {
				s.logger.WithError(err).Debug("comment page cache write failed")
			}
		}
	}
	return resp, nil
}

func (s *commentService) ListReplies(ctx context.Context, parentID int64, page, pageSize int, viewerID string) (*dto.PaginatedCommentResponse, error) {
	parent, err := s.commentRepo.GetByID(ctx, parentID)
	if err != nil || parent.IsDeleted {
		return nil, ErrCommentNotFound
	}
	if parent.ParentID != nil {
		return nil, ErrReplyToReply
	}

	replies, total, err := s.commentRepo.ListReplies(ctx, parentID, page, pageSize)
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(replies))
	for i := range replies {
		ids = append(ids, replies[i].ID)
	}
	reactions, err := s.reactionRepo.ListByComments(ctx, ids)
	if err != nil {
		return nil, err
	}
	reactionsByComment := make(map[int64][]models.Reaction)
	for _, r := range reactions {
		reactionsByComment[r.CommentID] = append(reactionsByComment[r.CommentID], r)
	}

	out := make([]dto.CommentResponse, 0, len(replies))
	for i := range replies {
		node := *dto.FromModelToCommentResponse(&replies[i])
		applyReactions(&node, reactionsByComment[replies[i].ID], viewerID)
		out = append(out, node)
	}
	return dto.NewPaginatedCommentResponse(out, total, page, pageSize), nil
}

func (s *commentService) ListByUser(ctx context.Context, userID string, page, pageSize int) (*dto.PaginatedCommentResponse, error) {
	comments, total, err := s.commentRepo.ListByUser(ctx, userID, page, pageSize)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CommentResponse, 0, len(comments))
	for i := range comments {
		out = append(out, *dto.FromModelToCommentResponse(&comments[i]))
	}
	return dto.NewPaginatedCommentResponse(out, total, page, pageSize), nil
}

func (s *commentService) activeBan(ctx context.Context, userID string) (bool, error) {
	_, err := s.banRepo.FindActive(ctx, userID, time.Now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	return true, nil
}

// invalidate drops the chapter's cached pages. Best effort: a stale cache
// entry expires on its own TTL.
func (s *commentService) invalidate(ctx context.Context, chapterID int64) {
	if err := s.pageCache.InvalidateChapter(ctx, chapterID); err != nil {
		s.logger.WithError(err).Debug("comment page cache invalidation failed")
	}
}
