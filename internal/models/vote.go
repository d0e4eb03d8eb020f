package models

import (
	"time"
)

// Vote kinds. Stored as text to match the wire value.
const (
	VoteUp   = "upvote"
	VoteDown = "downvote"
)

// Vote is one user's current choice on one alternative. The composite
// unique index is the enforcement boundary for "at most one vote per
// (user, alternative)": a create-vs-create race by the same user loses
// on the constraint instead of producing a duplicate row.
type Vote struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	UserID        string    `gorm:"size:36;not null;uniqueIndex:idx_user_alternative" json:"userId"`
	AlternativeID string    `gorm:"size:36;not null;uniqueIndex:idx_user_alternative;index" json:"alternativeId"`
	Type          string    `gorm:"size:10;not null" json:"type"` // upvote or downvote
	CreatedAt     time.Time `json:"createdAt"`
}
