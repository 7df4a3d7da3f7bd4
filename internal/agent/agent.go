package agent

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/datatypes"

	"postmarket/internal/client/feed"
	"postmarket/internal/client/marketapi"
	"postmarket/internal/models"
	"postmarket/internal/repository"
)

// Agent is one orchestrator trading agent: an independent polling loop that
// reads markets through the HTTP API, researches via the platform search, and
// records rule-based position decisions. Agents share nothing with each other
// beyond the read-only API.
type Agent struct {
	Name         string
	Strategy     Strategy
	API          *marketapi.Client
	Feed         *feed.Client
	Repo         repository.Repository
	Logger       *zap.Logger
	PollInterval time.Duration
	MaxMarkets   int
}

func (a *Agent) Run(ctx context.Context) error {
	if a == nil || a.Strategy == nil || a.API == nil {
		return nil
	}
	interval := a.PollInterval
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			if err := a.cycle(ctx); err != nil && a.Logger != nil {
				a.Logger.Warn("agent cycle failed",
					zap.String("agent", a.Name),
					zap.Error(err),
				)
			}
		}
	}
}

// cycle is one discover → research → decide → record pass.
func (a *Agent) cycle(ctx context.Context) error {
	limit := a.MaxMarkets
	if limit <= 0 {
		limit = 10
	}
	markets, err := a.API.ListMarkets(ctx, limit)
	if err != nil {
		return err
	}

	for _, m := range markets {
		if m.Status != models.MarketStatusActive {
			continue
		}
		if err := a.evaluateMarket(ctx, m); err != nil && a.Logger != nil {
			a.Logger.Warn("agent market evaluation failed",
				zap.String("agent", a.Name),
				zap.Uint64("market_id", m.ID),
				zap.Error(err),
			)
		}
	}
	return nil
}

func (a *Agent) evaluateMarket(ctx context.Context, m marketapi.Market) error {
	detail, err := a.API.GetMarket(ctx, m.ID)
	if err != nil {
		return err
	}
	history, err := a.API.GetMarketHistory(ctx, m.ID)
	if err != nil {
		return err
	}

	var research []feed.Post
	if a.Feed != nil {
		// Research failure degrades to zero hits rather than skipping the
		// market; the platform search is best-effort.
		research, err = a.Feed.Search(ctx, researchQuery(m.Question), 10)
		if err != nil {
			research = nil
			if a.Logger != nil {
				a.Logger.Warn("agent research failed",
					zap.String("agent", a.Name),
					zap.Uint64("market_id", m.ID),
					zap.Error(err),
				)
			}
		}
	}

	decision := a.Strategy.Decide(Input{
		Market:       m,
		Trend:        detail.Trend,
		History:      history.History,
		ResearchHits: len(research),
	})

	if a.Logger != nil {
		a.Logger.Info("agent decision",
			zap.String("agent", a.Name),
			zap.String("strategy", a.Strategy.Name()),
			zap.Uint64("market_id", m.ID),
			zap.String("action", decision.Action),
			zap.String("reasoning", decision.Reasoning),
		)
	}
	if a.Repo == nil {
		return nil
	}

	var researchJSON datatypes.JSON
	if len(research) > 0 {
		titles := make([]string, 0, len(research))
		for _, p := range research {
			titles = append(titles, p.Title)
		}
		if raw, err := json.Marshal(titles); err == nil {
			researchJSON = datatypes.JSON(raw)
		}
	}

	return a.Repo.InsertAgentDecision(ctx, &models.AgentDecision{
		AgentName: a.Name,
		Strategy:  a.Strategy.Name(),
		MarketID:  m.ID,
		Action:    decision.Action,
		Signal:    m.Signal,
		Trend:     detail.Trend,
		Reasoning: decision.Reasoning,
		Research:  researchJSON,
	})
}

// researchQuery distills a market question into a few search keywords.
func researchQuery(question string) string {
	cleaned := strings.Map(func(r rune) rune {
		if r == '?' || r == ',' || r == '.' || r == '!' {
			return -1
		}
		return r
	}, strings.ToLower(question))

	var terms []string
	for _, word := range strings.Fields(cleaned) {
		if len(word) > 3 {
			terms = append(terms, word)
		}
		if len(terms) == 4 {
			break
		}
	}
	if len(terms) == 0 {
		return question
	}
	return strings.Join(terms, " ")
}
