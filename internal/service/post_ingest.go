package service

import (
	"context"
	"encoding/json"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"postmarket/internal/client/feed"
	"postmarket/internal/config"
	"postmarket/internal/models"
	"postmarket/internal/repository"
)

// PostIngestService polls the external platform for posts and inserts them
// idempotently: a post id seen before is a no-op. Posts are immutable once
// stored.
type PostIngestService struct {
	Repo   repository.Repository
	Feed   *feed.Client
	Config config.IngestConfig
	Logger *zap.Logger
	Flags  *SystemSettingsService
}

func (s *PostIngestService) Run(ctx context.Context) error {
	if s == nil || s.Repo == nil || s.Feed == nil {
		return nil
	}
	interval := s.Config.PollInterval
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		if s.Flags == nil || s.Flags.IsEnabled(ctx, FeaturePostIngest, true) {
			if _, err := s.IngestOnce(ctx); err != nil && s.Logger != nil {
				s.Logger.Warn("post ingest failed", zap.Error(err))
			}
		}
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// IngestOnce pages through the feed until a short page and returns how many
// new posts were stored.
func (s *PostIngestService) IngestOnce(ctx context.Context) (int64, error) {
	pageSize := s.Config.PageSize
	if pageSize <= 0 {
		pageSize = 100
	}
	fetchedAt := time.Now().UTC()

	var inserted int64
	for offset := 0; ; offset += pageSize {
		page, err := s.Feed.ListPosts(ctx, pageSize, offset)
		if err != nil {
			return inserted, err
		}
		if len(page) == 0 {
			break
		}
		items := make([]models.Post, 0, len(page))
		for _, p := range page {
			if p.ID == "" {
				continue
			}
			items = append(items, toPost(p, fetchedAt))
		}
		n, err := s.Repo.UpsertPosts(ctx, items)
		if err != nil {
			return inserted, err
		}
		inserted += n
		if len(page) < pageSize {
			break
		}
	}

	if s.Logger != nil && inserted > 0 {
		s.Logger.Info("posts ingested", zap.Int64("new", inserted))
	}
	return inserted, nil
}

func toPost(p feed.Post, fetchedAt time.Time) models.Post {
	raw, _ := json.Marshal(p)
	return models.Post{
		ID:           p.ID,
		Title:        p.Title,
		Content:      p.Content,
		AuthorName:   p.Author,
		AuthorKarma:  clampNonNegative(p.Karma),
		Upvotes:      clampNonNegative(p.Upvotes),
		Downvotes:    clampNonNegative(p.Downvotes),
		CommentCount: clampNonNegative(p.CommentCount),
		CreatedAt:    p.Timestamp(),
		FetchedAt:    fetchedAt,
		RawJSON:      datatypes.JSON(raw),
	}
}

func clampNonNegative(v int) int {
	if v < 0 {
		return 0
	}
	return v
}
