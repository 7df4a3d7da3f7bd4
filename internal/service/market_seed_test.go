package service

import (
	"context"
	"testing"

	"postmarket/internal/keyword"
	"postmarket/internal/models"
)

func seedBook() *keyword.Book {
	return &keyword.Book{
		Categories: map[string]keyword.Config{
			"crypto": {Required: []string{"btc"}},
		},
		Markets: []keyword.MarketDef{
			{Question: "Will Bitcoin reach $150k?", Category: "crypto", ResolutionDate: "2026-12-31"},
			{Question: "Will Bitcoin crash below $50k?", Category: "crypto"},
		},
	}
}

func TestEnsureMarketsCreatesMissing(t *testing.T) {
	repo := &stubRepo{}
	if err := EnsureMarkets(context.Background(), repo, seedBook(), nil); err != nil {
		t.Fatalf("EnsureMarkets: %v", err)
	}
	if len(repo.created) != 2 {
		t.Fatalf("created %d markets, want 2", len(repo.created))
	}
	m := repo.created[0]
	if m.Status != models.MarketStatusActive {
		t.Fatalf("status = %s", m.Status)
	}
	if m.YesProbability != 0.5 || m.NoProbability != 0.5 {
		t.Fatalf("new market prior = %v/%v", m.YesProbability, m.NoProbability)
	}
}

func TestEnsureMarketsLeavesExistingAlone(t *testing.T) {
	repo := &stubRepo{markets: []models.Market{{
		ID:             1,
		Question:       "Will Bitcoin reach $150k?",
		YesProbability: 0.9,
		NoProbability:  0.1,
	}}}
	if err := EnsureMarkets(context.Background(), repo, seedBook(), nil); err != nil {
		t.Fatalf("EnsureMarkets: %v", err)
	}
	if len(repo.created) != 1 {
		t.Fatalf("created %d markets, want only the missing one", len(repo.created))
	}
	existing, _ := repo.GetMarketByQuestion(context.Background(), "Will Bitcoin reach $150k?")
	if existing.YesProbability != 0.9 {
		t.Fatalf("existing market was modified")
	}
}
