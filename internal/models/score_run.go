package models

import (
	"time"
)

const (
	ScoreRunRunning   = "running"
	ScoreRunCompleted = "completed"
	ScoreRunFailed    = "failed"
)

// ScoreRun records one batch scoring pass over all posts and markets.
type ScoreRun struct {
	ID            string     `gorm:"primaryKey;type:varchar(36)" json:"id"`
	Status        string     `gorm:"type:varchar(20);not null;index" json:"status"`
	StartedAt     time.Time  `gorm:"type:timestamptz;not null;index" json:"started_at"`
	CompletedAt   *time.Time `gorm:"type:timestamptz" json:"completed_at"`
	MarketsScored int        `gorm:"not null;default:0" json:"markets_scored"`
	PostsScanned  int        `gorm:"not null;default:0" json:"posts_scanned"`
	VotesCreated  int        `gorm:"not null;default:0" json:"votes_created"`
	ErrorMessage  *string    `gorm:"type:text" json:"error_message"`
}

func (ScoreRun) TableName() string {
	return "score_runs"
}
