package db

import (
	"postmarket/internal/models"
)

func AutoMigrate(db *DB) error {
	if db == nil || db.Gorm == nil || db.SQL == nil {
		return nil
	}

	return db.Gorm.AutoMigrate(
		&models.Post{},
		&models.Market{},
		&models.Vote{},
		&models.ScoreRun{},
		&models.AgentDecision{},
		&models.SystemSetting{},
	)
}
