package models

import (
	"time"
)

const (
	VoteYes     = "YES"
	VoteNo      = "NO"
	VoteAbstain = "ABSTAIN"
)

// Vote is the scored judgment of one post against one market. At most one row
// exists per (market_id, post_id). Votes are regenerated destructively by the
// scoring pipeline; they are never updated in place.
type Vote struct {
	ID       uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	MarketID uint64 `gorm:"not null;uniqueIndex:ux_votes_market_post,priority:1;index" json:"market_id"`
	PostID   string `gorm:"type:text;not null;uniqueIndex:ux_votes_market_post,priority:2" json:"post_id"`

	AuthorName  string  `gorm:"type:text" json:"author_name"`
	AuthorKarma int     `gorm:"not null;default:0" json:"author_karma"`
	Vote        string  `gorm:"type:varchar(10);not null;index" json:"vote"`
	Confidence  float64 `gorm:"not null;default:0" json:"confidence"`
	Reasoning   string  `gorm:"type:text" json:"reasoning"`
	PostTitle   string  `gorm:"type:text" json:"post_title"`
	PostExcerpt string  `gorm:"type:text" json:"post_excerpt"`
	Upvotes     int     `gorm:"not null;default:0" json:"upvotes"`

	// CreatedAt is copied from the source post and may be null; the history
	// builder synthesizes timestamps for null rows.
	CreatedAt *time.Time `gorm:"type:timestamptz;index" json:"created_at"`
	ScoredAt  time.Time  `gorm:"type:timestamptz;not null" json:"scored_at"`
}

func (Vote) TableName() string {
	return "votes"
}

// Valid reports whether the vote counts toward probabilities.
func (v Vote) Valid() bool {
	return v.Vote == VoteYes || v.Vote == VoteNo
}
