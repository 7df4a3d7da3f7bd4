package gormrepository

import (
	"context"
	"errors"
	"strings"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"postmarket/internal/models"
	"postmarket/internal/repository"
)

type Store struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) InTx(ctx context.Context, fn func(tx *gorm.DB) error) error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(fn)
}

// --- posts ------------------------------------------------------------------

func (s *Store) UpsertPosts(ctx context.Context, items []models.Post) (int64, error) {
	if s == nil || s.db == nil || len(items) == 0 {
		return 0, nil
	}
	res := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoNothing: true,
	}).Create(&items)
	return res.RowsAffected, res.Error
}

func (s *Store) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Post
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListPosts(ctx context.Context, params repository.ListPostsParams) ([]models.Post, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.applyPostFilters(ctx, params)
	query = applyOrder(query, params.OrderBy, params.Asc, "fetched_at")
	var items []models.Post
	if err := query.
		Limit(normalizeLimit(params.Limit, 200)).
		Offset(normalizeOffset(params.Offset)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountPosts(ctx context.Context, params repository.ListPostsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := s.applyPostFilters(ctx, params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) applyPostFilters(ctx context.Context, params repository.ListPostsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Post{})
	if params.Author != nil && strings.TrimSpace(*params.Author) != "" {
		query = query.Where("author_name = ?", strings.TrimSpace(*params.Author))
	}
	if params.Since != nil && !params.Since.IsZero() {
		query = query.Where("created_at >= ?", *params.Since)
	}
	return query
}

// --- markets ----------------------------------------------------------------

func (s *Store) CreateMarket(ctx context.Context, item *models.Market) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) GetMarketByID(ctx context.Context, id uint64) (*models.Market, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Market
	err := s.db.WithContext(ctx).First(&item, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) GetMarketByQuestion(ctx context.Context, question string) (*models.Market, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.Market
	err := s.db.WithContext(ctx).First(&item, "question = ?", question).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListMarkets(ctx context.Context, params repository.ListMarketsParams) ([]models.Market, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.applyMarketFilters(ctx, params)
	query = applyOrder(query, params.OrderBy, params.Asc, "total_opinions")
	var items []models.Market
	if err := query.
		Limit(normalizeLimit(params.Limit, 200)).
		Offset(normalizeOffset(params.Offset)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountMarkets(ctx context.Context, params repository.ListMarketsParams) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	if err := s.applyMarketFilters(ctx, params).Count(&total).Error; err != nil {
		return 0, err
	}
	return total, nil
}

func (s *Store) applyMarketFilters(ctx context.Context, params repository.ListMarketsParams) *gorm.DB {
	query := s.db.WithContext(ctx).Model(&models.Market{})
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(*params.Status))
	}
	if params.Category != nil && strings.TrimSpace(*params.Category) != "" {
		query = query.Where("category = ?", strings.TrimSpace(*params.Category))
	}
	return query
}

// --- votes ------------------------------------------------------------------

func (s *Store) ListVotes(ctx context.Context, params repository.ListVotesParams) ([]models.Vote, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).
		Model(&models.Vote{}).
		Where("market_id = ?", params.MarketID)
	if params.ValidOnly {
		query = query.Where("vote IN ?", []string{models.VoteYes, models.VoteNo})
	}
	// Replay order: null timestamps first, then chronological, id as tiebreak.
	query = query.Order("created_at ASC NULLS FIRST").Order("id ASC")
	if params.Limit > 0 {
		query = query.Limit(params.Limit).Offset(normalizeOffset(params.Offset))
	}
	var items []models.Vote
	if err := query.Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) CountVotesByMarket(ctx context.Context, marketID uint64) (int64, error) {
	if s == nil || s.db == nil {
		return 0, nil
	}
	var total int64
	err := s.db.WithContext(ctx).
		Model(&models.Vote{}).
		Where("market_id = ?", marketID).
		Count(&total).Error
	return total, err
}

// ReplaceMarketVotes performs the destructive batch rewrite: per market it
// deletes every vote, inserts the regenerated set, and stores the aggregate.
// Everything commits in one transaction; a failure anywhere rolls the whole
// run back so no market is left with a partially cleared vote table.
func (s *Store) ReplaceMarketVotes(ctx context.Context, rewrites []repository.MarketRewrite) error {
	if s == nil || s.db == nil || len(rewrites) == 0 {
		return nil
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range rewrites {
			rw := &rewrites[i]
			if err := tx.Where("market_id = ?", rw.MarketID).Delete(&models.Vote{}).Error; err != nil {
				return err
			}
			if len(rw.Votes) > 0 {
				if err := tx.CreateInBatches(&rw.Votes, 500).Error; err != nil {
					return err
				}
			}
			if err := tx.Model(&models.Market{}).
				Where("id = ?", rw.MarketID).
				Updates(map[string]any{
					"yes_probability": rw.YesProbability,
					"no_probability":  rw.NoProbability,
					"total_opinions":  rw.TotalOpinions,
				}).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// --- score runs -------------------------------------------------------------

func (s *Store) InsertScoreRun(ctx context.Context, item *models.ScoreRun) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) UpdateScoreRun(ctx context.Context, item *models.ScoreRun) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Save(item).Error
}

func (s *Store) ListScoreRuns(ctx context.Context, params repository.ListScoreRunsParams) ([]models.ScoreRun, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.ScoreRun{})
	if params.Status != nil && strings.TrimSpace(*params.Status) != "" {
		query = query.Where("status = ?", strings.TrimSpace(*params.Status))
	}
	var items []models.ScoreRun
	if err := query.
		Order("started_at DESC").
		Limit(normalizeLimit(params.Limit, 50)).
		Offset(normalizeOffset(params.Offset)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func (s *Store) DeleteScoreRunsBefore(ctx context.Context, before time.Time) (int64, error) {
	if s == nil || s.db == nil || before.IsZero() {
		return 0, nil
	}
	res := s.db.WithContext(ctx).
		Where("started_at < ?", before).
		Where("status <> ?", models.ScoreRunRunning).
		Delete(&models.ScoreRun{})
	return res.RowsAffected, res.Error
}

// --- agent decisions --------------------------------------------------------

func (s *Store) InsertAgentDecision(ctx context.Context, item *models.AgentDecision) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	return s.db.WithContext(ctx).Create(item).Error
}

func (s *Store) ListAgentDecisions(ctx context.Context, params repository.ListAgentDecisionsParams) ([]models.AgentDecision, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.AgentDecision{})
	if params.AgentName != nil && strings.TrimSpace(*params.AgentName) != "" {
		query = query.Where("agent_name = ?", strings.TrimSpace(*params.AgentName))
	}
	if params.MarketID != nil && *params.MarketID > 0 {
		query = query.Where("market_id = ?", *params.MarketID)
	}
	var items []models.AgentDecision
	if err := query.
		Order("created_at DESC").
		Limit(normalizeLimit(params.Limit, 100)).
		Offset(normalizeOffset(params.Offset)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- system settings --------------------------------------------------------

func (s *Store) UpsertSystemSetting(ctx context.Context, item *models.SystemSetting) error {
	if s == nil || s.db == nil || item == nil {
		return nil
	}
	if strings.TrimSpace(item.Key) == "" {
		return nil
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "description", "updated_at"}),
	}).Create(item).Error
}

func (s *Store) GetSystemSettingByKey(ctx context.Context, key string) (*models.SystemSetting, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	var item models.SystemSetting
	err := s.db.WithContext(ctx).First(&item, "key = ?", strings.TrimSpace(key)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &item, nil
}

func (s *Store) ListSystemSettings(ctx context.Context, params repository.ListSystemSettingsParams) ([]models.SystemSetting, error) {
	if s == nil || s.db == nil {
		return nil, nil
	}
	query := s.db.WithContext(ctx).Model(&models.SystemSetting{})
	if params.KeyPrefix != nil && strings.TrimSpace(*params.KeyPrefix) != "" {
		query = query.Where("key LIKE ?", strings.TrimSpace(*params.KeyPrefix)+"%")
	}
	var items []models.SystemSetting
	if err := query.
		Order("key ASC").
		Limit(normalizeLimit(params.Limit, 200)).
		Offset(normalizeOffset(params.Offset)).
		Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// --- helpers ----------------------------------------------------------------

func applyOrder(query *gorm.DB, orderBy string, asc *bool, fallback string) *gorm.DB {
	column := strings.TrimSpace(orderBy)
	if column == "" {
		column = fallback
	}
	direction := "DESC"
	if asc != nil && *asc {
		direction = "ASC"
	}
	return query.Order(column + " " + direction)
}

func normalizeLimit(limit, def int) int {
	if limit <= 0 {
		return def
	}
	if limit > 1000 {
		return 1000
	}
	return limit
}

func normalizeOffset(offset int) int {
	if offset < 0 {
		return 0
	}
	return offset
}
