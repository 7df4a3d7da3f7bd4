package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"postmarket/internal/market"
	"postmarket/internal/models"
	"postmarket/internal/repository"
)

// ErrMarketNotFound maps to a 404 at the API layer; no partial payload is
// returned for unknown ids.
var ErrMarketNotFound = errors.New("market not found")

// voteListCap bounds the per-side vote lists in the market detail payload.
// A payload-size cap, not a correctness bound.
const voteListCap = 20

// QueryService is the read side of the store: markets, vote breakdowns, and
// probability history, shaped for the HTTP API.
type QueryService struct {
	Repo repository.Repository
}

// MarketItem is the list/detail representation of a market. Probabilities are
// percentages 0-100 rounded to one decimal, unlike the stored 0-1 floats.
type MarketItem struct {
	ID             uint64        `json:"id"`
	Question       string        `json:"question"`
	Description    string        `json:"description"`
	Category       string        `json:"category"`
	ResolutionDate string        `json:"resolution_date"`
	Probabilities  Probabilities `json:"probabilities"`
	TotalOpinions  int           `json:"total_opinions"`
	Status         string        `json:"status"`
	Signal         string        `json:"signal"`
	CreatedAt      time.Time     `json:"created_at"`
}

type Probabilities struct {
	Yes float64 `json:"yes"`
	No  float64 `json:"no"`
}

type VoteItem struct {
	PostID     string     `json:"post_id"`
	Author     string     `json:"author"`
	Karma      int        `json:"karma"`
	Vote       string     `json:"vote"`
	Confidence string     `json:"confidence"`
	Reasoning  string     `json:"reasoning"`
	Title      string     `json:"title"`
	Excerpt    string     `json:"excerpt"`
	Upvotes    int        `json:"upvotes"`
	CreatedAt  *time.Time `json:"created_at"`
}

type SideSummary struct {
	Count      int     `json:"count"`
	Percentage float64 `json:"percentage"`
}

type VoteSummary struct {
	Yes SideSummary `json:"yes"`
	No  SideSummary `json:"no"`
}

type MarketDetail struct {
	Market      MarketItem  `json:"market"`
	VoteSummary VoteSummary `json:"vote_summary"`
	Votes       VoteGroups  `json:"votes"`
	Trend       string      `json:"trend"`
}

type VoteGroups struct {
	Yes []VoteItem `json:"yes"`
	No  []VoteItem `json:"no"`
}

type MarketHistory struct {
	MarketID uint64                `json:"market_id"`
	History  []market.HistoryPoint `json:"history"`
}

// ListMarkets returns markets sorted by total_opinions descending.
func (s *QueryService) ListMarkets(ctx context.Context, params repository.ListMarketsParams) ([]MarketItem, int64, error) {
	if params.OrderBy == "" {
		params.OrderBy = "total_opinions"
	}
	total, err := s.Repo.CountMarkets(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	markets, err := s.Repo.ListMarkets(ctx, params)
	if err != nil {
		return nil, 0, err
	}
	items := make([]MarketItem, 0, len(markets))
	for _, m := range markets {
		items = append(items, marketItem(m))
	}
	return items, total, nil
}

// GetMarket returns one market with its vote summary and the top votes per
// side. Unknown ids yield ErrMarketNotFound and nothing else.
func (s *QueryService) GetMarket(ctx context.Context, id uint64) (*MarketDetail, error) {
	m, err := s.Repo.GetMarketByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMarketNotFound
	}
	votes, err := s.Repo.ListVotes(ctx, repository.ListVotesParams{MarketID: id})
	if err != nil {
		return nil, err
	}

	var yesVotes, noVotes []models.Vote
	var yesCount, noCount int
	for _, v := range votes {
		switch v.Vote {
		case models.VoteYes:
			yesCount++
			yesVotes = append(yesVotes, v)
		case models.VoteNo:
			noCount++
			noVotes = append(noVotes, v)
		}
	}

	summary := VoteSummary{
		Yes: SideSummary{Count: yesCount},
		No:  SideSummary{Count: noCount},
	}
	if valid := yesCount + noCount; valid > 0 {
		summary.Yes.Percentage = market.Pct1(float64(yesCount) / float64(valid))
		summary.No.Percentage = market.Pct1(float64(noCount) / float64(valid))
	}

	return &MarketDetail{
		Market:      marketItem(*m),
		VoteSummary: summary,
		Votes: VoteGroups{
			Yes: topVotes(yesVotes),
			No:  topVotes(noVotes),
		},
		Trend: market.TrendFor(votes),
	}, nil
}

// GetMarketHistory rebuilds the cumulative probability series from stored
// votes.
func (s *QueryService) GetMarketHistory(ctx context.Context, id uint64) (*MarketHistory, error) {
	m, err := s.Repo.GetMarketByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if m == nil {
		return nil, ErrMarketNotFound
	}
	votes, err := s.Repo.ListVotes(ctx, repository.ListVotesParams{MarketID: id, ValidOnly: true})
	if err != nil {
		return nil, err
	}
	return &MarketHistory{
		MarketID: id,
		History:  market.BuildHistory(*m, votes, time.Now().UTC()),
	}, nil
}

func marketItem(m models.Market) MarketItem {
	return MarketItem{
		ID:             m.ID,
		Question:       m.Question,
		Description:    m.Description,
		Category:       m.Category,
		ResolutionDate: m.ResolutionDate,
		Probabilities: Probabilities{
			Yes: market.Pct1(m.YesProbability),
			No:  market.Pct1(m.NoProbability),
		},
		TotalOpinions: m.TotalOpinions,
		Status:        m.Status,
		Signal:        market.SignalFor(m.YesProbability),
		CreatedAt:     m.CreatedAt,
	}
}

// topVotes sorts one side by upvotes descending and caps it.
func topVotes(votes []models.Vote) []VoteItem {
	sort.SliceStable(votes, func(i, j int) bool {
		return votes[i].Upvotes > votes[j].Upvotes
	})
	if len(votes) > voteListCap {
		votes = votes[:voteListCap]
	}
	items := make([]VoteItem, 0, len(votes))
	for _, v := range votes {
		items = append(items, VoteItem{
			PostID:     v.PostID,
			Author:     v.AuthorName,
			Karma:      v.AuthorKarma,
			Vote:       v.Vote,
			Confidence: fmt.Sprintf("%.1f%%", market.Pct1(v.Confidence)),
			Reasoning:  v.Reasoning,
			Title:      v.PostTitle,
			Excerpt:    v.PostExcerpt,
			Upvotes:    v.Upvotes,
			CreatedAt:  v.CreatedAt,
		})
	}
	return items
}
