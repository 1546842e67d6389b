package dto

// SetReactionDTO for toggling a reaction on a comment
type SetReactionDTO struct {
	Type string `json:"type" binding:"required,oneof=like dislike love laugh angry sad"`
}

// ReactionSummary is the aggregated view of one comment's reactions:
// a count for every known type (zero included) plus the viewer's own.
type ReactionSummary struct {
	Counts         map[string]int64 `json:"counts"`
	Total          int64            `json:"total"`
	ViewerReaction string           `json:"viewer_reaction,omitempty"`
}
