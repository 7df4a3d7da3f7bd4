package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"gorm.io/datatypes"

	"postmarket/internal/models"
	"postmarket/internal/repository"
)

const (
	FeaturePostIngest = "feature.post_ingest"
	FeatureScoreCron  = "feature.score_cron"
	FeatureRunPrune   = "feature.run_prune"
	FeatureAgents     = "feature.agents"
)

func DefaultFeatureSwitches() map[string]bool {
	return map[string]bool{
		FeaturePostIngest: true,
		FeatureScoreCron:  true,
		FeatureRunPrune:   true,
		FeatureAgents:     false,
	}
}

// SystemSettingsService reads and writes DB-backed feature switches so the
// ingest loop, score cron, and agents can be toggled without a restart.
type SystemSettingsService struct {
	Repo repository.Repository
}

func (s *SystemSettingsService) EnsureDefaultSwitches(ctx context.Context) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	now := time.Now().UTC()
	for key, enabled := range DefaultFeatureSwitches() {
		existing, err := s.Repo.GetSystemSettingByKey(ctx, key)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		raw, _ := json.Marshal(enabled)
		item := &models.SystemSetting{
			Key:         key,
			Value:       datatypes.JSON(raw),
			Description: "feature switch",
			CreatedAt:   now,
			UpdatedAt:   now,
		}
		if err := s.Repo.UpsertSystemSetting(ctx, item); err != nil {
			return err
		}
	}
	return nil
}

func (s *SystemSettingsService) IsEnabled(ctx context.Context, key string, fallback bool) bool {
	if s == nil || s.Repo == nil {
		return fallback
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return fallback
	}
	item, err := s.Repo.GetSystemSettingByKey(ctx, key)
	if err != nil || item == nil || len(item.Value) == 0 {
		return fallback
	}
	var enabled bool
	if err := json.Unmarshal(item.Value, &enabled); err != nil {
		return fallback
	}
	return enabled
}

func (s *SystemSettingsService) SetEnabled(ctx context.Context, key string, enabled bool) error {
	if s == nil || s.Repo == nil {
		return nil
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return nil
	}
	raw, _ := json.Marshal(enabled)
	item := &models.SystemSetting{
		Key:         key,
		Value:       datatypes.JSON(raw),
		Description: "feature switch",
		UpdatedAt:   time.Now().UTC(),
	}
	return s.Repo.UpsertSystemSetting(ctx, item)
}
