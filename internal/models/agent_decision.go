package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	AgentActionBuyYes = "buy_yes"
	AgentActionBuyNo  = "buy_no"
	AgentActionHold   = "hold"
)

// AgentDecision is one position decision taken by an orchestrator agent
// during a polling cycle.
type AgentDecision struct {
	ID        uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	AgentName string         `gorm:"type:varchar(50);not null;index" json:"agent_name"`
	Strategy  string         `gorm:"type:varchar(50);not null" json:"strategy"`
	MarketID  uint64         `gorm:"not null;index" json:"market_id"`
	Action    string         `gorm:"type:varchar(20);not null" json:"action"`
	Signal    string         `gorm:"type:varchar(20)" json:"signal"`
	Trend     string         `gorm:"type:varchar(20)" json:"trend"`
	Reasoning string         `gorm:"type:text" json:"reasoning"`
	Research  datatypes.JSON `gorm:"type:jsonb" json:"research,omitempty"`
	CreatedAt time.Time      `gorm:"type:timestamptz;autoCreateTime;index" json:"created_at"`
}

func (AgentDecision) TableName() string {
	return "agent_decisions"
}
