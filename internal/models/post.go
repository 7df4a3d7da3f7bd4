package models

import (
	"time"

	"gorm.io/datatypes"
)

// Post is an ingested social post. Rows are immutable after insert;
// re-ingesting the same external id is a no-op.
type Post struct {
	ID           string     `gorm:"primaryKey;type:text" json:"id"`
	Title        string     `gorm:"type:text;not null" json:"title"`
	Content      string     `gorm:"type:text" json:"content"`
	AuthorName   string     `gorm:"type:text;index" json:"author_name"`
	AuthorKarma  int        `gorm:"not null;default:0" json:"author_karma"`
	Upvotes      int        `gorm:"not null;default:0" json:"upvotes"`
	Downvotes    int        `gorm:"not null;default:0" json:"downvotes"`
	CommentCount int        `gorm:"not null;default:0" json:"comment_count"`
	CreatedAt    *time.Time `gorm:"type:timestamptz;index" json:"created_at"`

	FetchedAt time.Time      `gorm:"type:timestamptz;not null" json:"fetched_at"`
	RawJSON   datatypes.JSON `gorm:"type:jsonb" json:"-"`
}

func (Post) TableName() string {
	return "posts"
}
