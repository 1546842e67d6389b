package service

import (
	"manganest/internal/microservices/http-api/dto"
	"manganest/internal/microservices/http-api/models"
)

// BuildThread nests reply rows under their top-level parents and enriches
// every node with reaction aggregates. Replies whose parent is not in the
// page are dropped, never shown as orphans. Every top-level node gets a
// non-nil Replies slice. Reply ordering is whatever order the rows arrive
// in (the repository returns them oldest first).
//
// replyCounts carries the full per-parent reply count, which can exceed
// len(replies group) when replies were fetched lazily or capped.
func BuildThread(
	topLevel []models.Comment,
	replies []models.Comment,
	replyCounts map[int64]int64,
	reactions []models.Reaction,
	viewerID string,
) []dto.CommentResponse {
	reactionsByComment := make(map[int64][]models.Reaction)
	for _, r := range reactions {
		reactionsByComment[r.CommentID] = append(reactionsByComment[r.CommentID], r)
	}

	repliesByParent := make(map[int64][]models.Comment)
	for i := range replies {
		r := replies[i]
		if r.ParentID == nil {
			continue
		}
		repliesByParent[*r.ParentID] = append(repliesByParent[*r.ParentID], r)
	}

	out := make([]dto.CommentResponse, 0, len(topLevel))
	for i := range topLevel {
		c := &topLevel[i]
		node := *dto.FromModelToCommentResponse(c)
		applyReactions(&node, reactionsByComment[c.ID], viewerID)

		group := repliesByParent[c.ID]
		node.Replies = make([]dto.CommentResponse, 0, len(group))
		for j := range group {
			reply := *dto.FromModelToCommentResponse(&group[j])
			applyReactions(&reply, reactionsByComment[group[j].ID], viewerID)
			node.Replies = append(node.Replies, reply)
		}

		if count, ok := replyCounts[c.ID]; ok {
			node.ReplyCount = count
		} else {
			node.ReplyCount = int64(len(group))
		}

		out = append(out, node)
	}
	return out
}

// AggregateReactions computes per-type counts over raw reaction rows,
// defaulting every known type to zero, plus the viewer's active type.
func AggregateReactions(rows []models.Reaction, viewerID string) dto.ReactionSummary {
	summary := dto.ReactionSummary{Counts: make(map[string]int64, len(models.ReactionTypes))}
	for _, t := range models.ReactionTypes {
		summary.Counts[t] = 0
	}
	for _, r := range rows {
		if _, known := summary.Counts[r.Type]; !known {
			continue
		}
		summary.Counts[r.Type]++
		summary.Total++
		if viewerID != "" && r.UserID == viewerID {
			summary.ViewerReaction = r.Type
		}
	}
	return summary
}

func applyReactions(node *dto.CommentResponse, rows []models.Reaction, viewerID string) {
	summary := AggregateReactions(rows, viewerID)
	node.Reactions = summary.Counts
	node.ViewerReaction = summary.ViewerReaction
}
