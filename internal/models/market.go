package models

import (
	"time"
)

const (
	MarketStatusActive   = "active"
	MarketStatusResolved = "resolved"
)

// Market is one binary prediction market. Probabilities are stored as 0-1
// fractions and recomputed wholesale by the scoring pipeline; API surfaces
// convert them to percentages.
type Market struct {
	ID             uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
	Question       string `gorm:"type:text;not null;uniqueIndex" json:"question"`
	Description    string `gorm:"type:text" json:"description"`
	Category       string `gorm:"type:varchar(64);index" json:"category"`
	ResolutionDate string `gorm:"type:varchar(32)" json:"resolution_date"`
	Status         string `gorm:"type:varchar(16);not null;default:active;index" json:"status"`

	YesProbability float64 `gorm:"not null;default:0.5" json:"yes_probability"`
	NoProbability  float64 `gorm:"not null;default:0.5" json:"no_probability"`
	// TotalOpinions counts every vote row for the market, ABSTAIN included.
	TotalOpinions int `gorm:"not null;default:0" json:"total_opinions"`

	CreatedAt time.Time `gorm:"type:timestamptz;not null" json:"created_at"`
	UpdatedAt time.Time `gorm:"type:timestamptz;not null" json:"updated_at"`
}

func (Market) TableName() string {
	return "markets"
}
