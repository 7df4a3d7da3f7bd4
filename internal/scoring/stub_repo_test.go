package scoring

import (
	"context"
	"time"

	"gorm.io/gorm"

	"postmarket/internal/models"
	"postmarket/internal/repository"
)

// stubRepo is a test-only in-memory implementation of repository.Repository.
// It implements the full interface but pipeline tests use only posts, markets,
// score runs, and the rewrite capture.
type stubRepo struct {
	posts    []models.Post
	markets  []models.Market
	runs     map[string]*models.ScoreRun
	rewrites []repository.MarketRewrite
}

func (s *stubRepo) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error { return fn(nil) }

func (s *stubRepo) UpsertPosts(ctx context.Context, items []models.Post) (int64, error) {
	s.posts = append(s.posts, items...)
	return int64(len(items)), nil
}
func (s *stubRepo) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	return nil, nil
}
func (s *stubRepo) ListPosts(ctx context.Context, params repository.ListPostsParams) ([]models.Post, error) {
	if params.Offset >= len(s.posts) {
		return nil, nil
	}
	end := params.Offset + params.Limit
	if params.Limit <= 0 || end > len(s.posts) {
		end = len(s.posts)
	}
	return s.posts[params.Offset:end], nil
}
func (s *stubRepo) CountPosts(ctx context.Context, params repository.ListPostsParams) (int64, error) {
	return int64(len(s.posts)), nil
}

func (s *stubRepo) CreateMarket(ctx context.Context, item *models.Market) error { return nil }
func (s *stubRepo) GetMarketByID(ctx context.Context, id uint64) (*models.Market, error) {
	for i := range s.markets {
		if s.markets[i].ID == id {
			return &s.markets[i], nil
		}
	}
	return nil, nil
}
func (s *stubRepo) GetMarketByQuestion(ctx context.Context, question string) (*models.Market, error) {
	return nil, nil
}
func (s *stubRepo) ListMarkets(ctx context.Context, params repository.ListMarketsParams) ([]models.Market, error) {
	if params.Status == nil {
		return s.markets, nil
	}
	var out []models.Market
	for _, m := range s.markets {
		if m.Status == *params.Status {
			out = append(out, m)
		}
	}
	return out, nil
}
func (s *stubRepo) CountMarkets(ctx context.Context, params repository.ListMarketsParams) (int64, error) {
	return int64(len(s.markets)), nil
}

func (s *stubRepo) ListVotes(ctx context.Context, params repository.ListVotesParams) ([]models.Vote, error) {
	for _, rw := range s.rewrites {
		if rw.MarketID == params.MarketID {
			return rw.Votes, nil
		}
	}
	return nil, nil
}
func (s *stubRepo) CountVotesByMarket(ctx context.Context, marketID uint64) (int64, error) {
	return 0, nil
}
func (s *stubRepo) ReplaceMarketVotes(ctx context.Context, rewrites []repository.MarketRewrite) error {
	s.rewrites = rewrites
	return nil
}

func (s *stubRepo) InsertScoreRun(ctx context.Context, item *models.ScoreRun) error {
	if s.runs == nil {
		s.runs = map[string]*models.ScoreRun{}
	}
	cp := *item
	s.runs[item.ID] = &cp
	return nil
}
func (s *stubRepo) UpdateScoreRun(ctx context.Context, item *models.ScoreRun) error {
	if s.runs == nil {
		s.runs = map[string]*models.ScoreRun{}
	}
	cp := *item
	s.runs[item.ID] = &cp
	return nil
}
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
	return nil
}
func (s *stubRepo) GetSystemSettingByKey(ctx context.Context, key string) (*models.SystemSetting, error) {
	return nil, nil
}
func (s *stubRepo) ListSystemSettings(ctx context.Context, params repository.ListSystemSettingsParams) ([]models.SystemSetting, error) {
	return nil, nil
}
