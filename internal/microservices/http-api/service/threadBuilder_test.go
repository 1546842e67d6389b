package service

import (
	"testing"

	"manganest/internal/microservices/http-api/models"

	"github.com/stretchr/testify/assert"
)

func int64Ptr(i int64) *int64 { return &i }

func TestBuildThread(t *testing.T) {
	topLevel := []models.Comment{
		{ID: 1, ChapterID: 10, UserID: "u1", Content: "first"},
		{ID: 2, ChapterID: 10, UserID: "u2", Content: "second"},
	}
	replies := []models.Comment{
		{ID: 3, ChapterID: 10, UserID: "u3", ParentID: int64Ptr(1), Content: "reply a"},
		{ID: 4, ChapterID: 10, UserID: "u1", ParentID: int64Ptr(1), Content: "reply b"},
		// parent 99 is not on this page: must be dropped, not shown as orphan
		{ID: 5, ChapterID: 10, UserID: "u2", ParentID: int64Ptr(99), Content: "orphan"},
	}

	t.Run("NestsRepliesUnderParents", func(t *testing.T) {
		thread := BuildThread(topLevel, replies, nil, nil, "")

		assert.Len(t, thread, 2)
		assert.Len(t, thread[0].Replies, 2)
		assert.Equal(t, "reply a", thread[0].Replies[0].Content)
		assert.Equal(t, "reply b", thread[0].Replies[1].Content)
		assert.Empty(t, thread[1].Replies)
	})

	t.Run("DropsOrphanReplies", func(t *testing.T) {
		thread := BuildThread(topLevel, replies, nil, nil, "")

		for _, node := range thread {
			for _, reply := range node.Replies {
				assert.NotEqual(t, int64(5), reply.ID)
			}
		}
	})

	t.Run("RepliesNeverNil", func(t *testing.T) {
		thread := BuildThread(topLevel, nil, nil, nil, "")

		for _, node := range thread {
			assert.NotNil(t, node.Replies)
		}
	})

	t.Run("ReplyCountOverridesFetchedLength", func(t *testing.T) {
		// Only 2 replies were fetched but the full count is 7
		counts := map[int64]int64{1: 7}
		thread := BuildThread(topLevel, replies, counts, nil, "")

		assert.Equal(t, int64(7), thread[0].ReplyCount)
		assert.Equal(t, int64(0), thread[1].ReplyCount)
	})

	t.Run("AttachesReactionsToEachNode", func(t *testing.T) {
		reactions := []models.Reaction{
			{CommentID: 1, UserID: "u2", Type: models.ReactionLike},
			{CommentID: 1, UserID: "u3", Type: models.ReactionLike},
			{CommentID: 3, UserID: "u1", Type: models.ReactionLove},
		}
		thread := BuildThread(topLevel, replies, nil, reactions, "u2")

		assert.Equal(t, int64(2), thread[0].Reactions[models.ReactionLike])
		assert.Equal(t, models.ReactionLike, thread[0].ViewerReaction)
		assert.Equal(t, int64(1), thread[0].Replies[0].Reactions[models.ReactionLove])
		assert.Empty(t, thread[1].ViewerReaction)
	})
}

func TestAggregateReactions(t *testing.T) {
	t.Run("ZeroCountsForAllKnownTypes", func(t *testing.T) {
		summary := AggregateReactions(nil, "")

		assert.Equal(t, int64(0), summary.Total)
		for _, reactionType := range models.ReactionTypes {
			count, ok := summary.Counts[reactionType]
			assert.True(t, ok)
			assert.Equal(t, int64(0), count)
		}
	})

	t.Run("CountsAndViewerReaction", func(t *testing.T) {
		rows := []models.Reaction{
			{CommentID: 1, UserID: "a", Type: models.ReactionLike},
			{CommentID: 1, UserID: "b", Type: models.ReactionLike},
			{CommentID: 1, UserID: "c", Type: models.ReactionSad},
		}
		summary := AggregateReactions(rows, "c")

		assert.Equal(t, int64(3), summary.Total)
		assert.Equal(t, int64(2), summary.Counts[models.ReactionLike])
		assert.Equal(t, int64(1), summary.Counts[models.ReactionSad])
		assert.Equal(t, models.ReactionSad, summary.ViewerReaction)
	})

	t.Run("SkipsUnknownTypes", func(t *testing.T) {
		rows := []models.Reaction{
			{CommentID: 1, UserID: "a", Type: "sparkle"},
			{CommentID: 1, UserID: "b", Type: models.ReactionLaugh},
		}
		summary := AggregateReactions(rows, "")

		assert.Equal(t, int64(1), summary.Total)
		_, ok := summary.Counts["sparkle"]
		assert.False(t, ok)
	})
}
