package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"postmarket/internal/models"
)

type ListPostsParams struct {
	Limit   int
	Offset  int
	Author  *string
	Since   *time.Time
	OrderBy string
	Asc     *bool
}

type ListMarketsParams struct {
	Limit    int
	Offset   int
	Status   *string
	Category *string
	OrderBy  string
	Asc      *bool
}

type ListVotesParams struct {
	MarketID uint64
	// ValidOnly restricts to YES/NO rows (the probability-bearing subset).
	ValidOnly bool
	Limit     int
	Offset    int
}

type ListScoreRunsParams struct {
	Limit  int
	Offset int
	Status *string
}

type ListAgentDecisionsParams struct {
	Limit     int
	Offset    int
	AgentName *string
	MarketID  *uint64
}

type ListSystemSettingsParams struct {
	Limit     int
	Offset    int
	KeyPrefix *string
}

// MarketRewrite is the unit of the destructive batch recompute: the full new
// vote set for one market plus the aggregate derived from it. All rewrites of
// a run commit in one transaction so readers never see a cleared vote table.
type MarketRewrite struct {
	MarketID       uint64
	Votes          []models.Vote
	YesProbability float64
	NoProbability  float64
	TotalOpinions  int
}

type Repository interface {
	InTx(ctx context.Context, fn func(tx *gorm.DB) error) error

	// Posts. UpsertPosts is idempotent: an existing id is left untouched.
	UpsertPosts(ctx context.Context, items []models.Post) (int64, error)
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	ListPosts(ctx context.Context, params ListPostsParams) ([]models.Post, error)
	CountPosts(ctx context.Context, params ListPostsParams) (int64, error)

	// Markets.
	CreateMarket(ctx context.Context, item *models.Market) error
	GetMarketByID(ctx context.Context, id uint64) (*models.Market, error)
	GetMarketByQuestion(ctx context.Context, question string) (*models.Market, error)
	ListMarkets(ctx context.Context, params ListMarketsParams) ([]models.Market, error)
	CountMarkets(ctx context.Context, params ListMarketsParams) (int64, error)

	// Votes. ListVotes orders by created_at ascending with nulls first, then
	// id, which is the replay order the history builder expects.
	ListVotes(ctx context.Context, params ListVotesParams) ([]models.Vote, error)
	CountVotesByMarket(ctx context.Context, marketID uint64) (int64, error)
	ReplaceMarketVotes(ctx context.Context, rewrites []MarketRewrite) error

	// Score runs.
	InsertScoreRun(ctx context.Context, item *models.ScoreRun) error
	UpdateScoreRun(ctx context.Context, item *models.ScoreRun) error
	ListScoreRuns(ctx context.Context, params ListScoreRunsParams) ([]models.ScoreRun, error)
	DeleteScoreRunsBefore(ctx context.Context, before time.Time) (int64, error)

	// Agent decisions.
	InsertAgentDecision(ctx context.Context, item *models.AgentDecision) error
	ListAgentDecisions(ctx context.Context, params ListAgentDecisionsParams) ([]models.AgentDecision, error)

	// System settings.
	UpsertSystemSetting(ctx context.Context, item *models.SystemSetting) error
	GetSystemSettingByKey(ctx context.Context, key string) (*models.SystemSetting, error)
	ListSystemSettings(ctx context.Context, params ListSystemSettingsParams) ([]models.SystemSetting, error)
}
