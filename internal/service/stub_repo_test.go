package service

import (
	"context"
	"time"

	"gorm.io/gorm"

	"postmarket/internal/models"
	"postmarket/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
type stubRepo struct {
	posts    []models.Post
	markets  []models.Market
	votes    map[uint64][]models.Vote
	settings map[string]models.SystemSetting
	created  []models.Market
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

func (s *stubRepo) UpsertPosts(ctx context.Context, items []models.Post) (int64, error) {
	var inserted int64
	for _, item := range items {
		exists := false
		for _, p := range s.posts {
			if p.ID == item.ID {
				exists = true
				break
			}
		}
		if !exists {
			s.posts = append(s.posts, item)
			inserted++
		}
	}
	return inserted, nil
}
func (s *stubRepo) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	for i := range s.posts {
		if s.posts[i].ID == id {
			return &s.posts[i], nil
		}
	}
	return nil, nil
}
func (s *stubRepo) ListPosts(ctx context.Context, params repository.ListPostsParams) ([]models.Post, error) {
	return s.posts, nil
}
func (s *stubRepo) CountPosts(ctx context.Context, params repository.ListPostsParams) (int64, error) {
	return int64(len(s.posts)), nil
}

func (s *stubRepo) CreateMarket(ctx context.Context, item *models.Market) error {
	item.ID = uint64(len(s.markets) + 1)
	s.markets = append(s.markets, *item)
	s.created = append(s.created, *item)
	return nil
}
func (s *stubRepo) GetMarketByID(ctx context.Context, id uint64) (*models.Market, error) {
	for i := range s.markets {
		if s.markets[i].ID == id {
			return &s.markets[i], nil
		}
	}
	return nil, nil
}
func (s *stubRepo) GetMarketByQuestion(ctx context.Context, question string) (*models.Market, error) {
	for i := range s.markets {
		if s.markets[i].Question == question {
			return &s.markets[i], nil
		}
	}
	return nil, nil
}
func (s *stubRepo) ListMarkets(ctx context.Context, params repository.ListMarketsParams) ([]models.Market, error) {
	return s.markets, nil
}
func (s *stubRepo) CountMarkets(ctx context.Context, params repository.ListMarketsParams) (int64, error) {
	return int64(len(s.markets)), nil
}

func (s *stubRepo) ListVotes(ctx context.Context, params repository.ListVotesParams) ([]models.Vote, error) {
	votes := s.votes[params.MarketID]
	if !params.ValidOnly {
		return votes, nil
	}
	var out []models.Vote
	for _, v := range votes {
		if v.Valid() {
			out = append(out, v)
		}
	}
	return out, nil
}
func (s *stubRepo) CountVotesByMarket(ctx context.Context, marketID uint64) (int64, error) {
	return int64(len(s.votes[marketID])), nil
}
func (s *stubRepo) ReplaceMarketVotes(ctx context.Context, rewrites []repository.MarketRewrite) error {
	return nil
}

func (s *stubRepo) InsertScoreRun(ctx context.Context, item *models.ScoreRun) error { return nil }
func (s *stubRepo) UpdateScoreRun(ctx context.Context, item *models.ScoreRun) error { return nil }
func (s *stubRepo) ListScoreRuns(ctx context.Context, params repository.ListScoreRunsParams) ([]models.ScoreRun, error) {
	return nil, nil
}
func (s *stubRepo) DeleteScoreRunsBefore(ctx context.Context, before time.Time) (int64, error) {
	return 0, nil
}

func (s *stubRepo) InsertAgentDecision(ctx context.Context, item *models.AgentDecision) error {
	return nil
}
func (s *stubRepo) ListAgentDecisions(ctx context.Context, params repository.ListAgentDecisionsParams) ([]models.AgentDecision, error) {
	return nil, nil
}

func (s *stubRepo) UpsertSystemSetting(ctx context.Context, item *models.SystemSetting) error {
	if s.settings == nil {
		s.settings = map[string]models.SystemSetting{}
	}
	s.settings[item.Key] = *item
	return nil
}
func (s *stubRepo) GetSystemSettingByKey(ctx context.Context, key string) (*models.SystemSetting, error) {
	if s.settings == nil {
		return nil, nil
	}
	item, ok := s.settings[key]
	if !ok {
		return nil, nil
	}
	return &item, nil
}
func (s *stubRepo) ListSystemSettings(ctx context.Context, params repository.ListSystemSettingsParams) ([]models.SystemSetting, error) {
	out := make([]models.SystemSetting, 0, len(s.settings))
	for _, item := range s.settings {
		out = append(out, item)
	}
	return out, nil
}
