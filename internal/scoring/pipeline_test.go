package scoring

import (
	"context"
	"math"
	"strings"
	"testing"

	"postmarket/internal/keyword"
	"postmarket/internal/models"
)

func testBook() *keyword.Book {
	return &keyword.Book{
		Categories: map[string]keyword.Config{
			"crypto": btcConfig,
		},
	}
}

func testPosts() []models.Post {
	return []models.Post{
		{ID: "a", Title: "Bitcoin at $100k", Content: "very bullish, moon incoming"},
		{ID: "b", Title: "My sourdough journey", Content: "crumb looking great"},
		{ID: "c", Title: "BTC price analysis", Content: "crash and bearish action ahead"},
		{ID: "d", Title: "bitcoin price thread", Content: "could go either way"},
		{ID: "e", Title: "btc price rally", Content: "rally continues"},
		{ID: "f", Title: "bitcoin $ levels", Content: "bullish structure"},
	}
}

func TestPipelineRun(t *testing.T) {
	repo := &stubRepo{
		posts: testPosts(),
		markets: []models.Market{
			{ID: 1, Question: "Will Bitcoin reach $150k?", Category: "crypto", Status: models.MarketStatusActive},
		},
	}
	p := &Pipeline{Repo: repo, Book: testBook()}

	run, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if run.Status != models.ScoreRunCompleted {
		t.Fatalf("run status = %s", run.Status)
	}
	if run.PostsScanned != 6 || run.MarketsScored != 1 {
		t.Fatalf("run counters = %d posts, %d markets", run.PostsScanned, run.MarketsScored)
	}

	if len(repo.rewrites) != 1 {
		t.Fatalf("expected one rewrite, got %d", len(repo.rewrites))
	}
	rw := repo.rewrites[0]
	if rw.MarketID != 1 {
		t.Fatalf("rewrite market id = %d", rw.MarketID)
	}
	// Post b is irrelevant and must leave no vote row at all.
	if len(rw.Votes) != 5 {
		t.Fatalf("expected 5 votes, got %d", len(rw.Votes))
	}
	for _, v := range rw.Votes {
		if v.PostID == "b" {
			t.Fatalf("irrelevant post scored")
		}
	}

	var yes, no, abstain int
	for _, v := range rw.Votes {
		switch v.Vote {
		case models.VoteYes:
			yes++
		case models.VoteNo:
			no++
		case models.VoteAbstain:
			abstain++
		}
	}
	if yes != 3 || no != 1 || abstain != 1 {
		t.Fatalf("vote split = %d/%d/%d, want 3/1/1", yes, no, abstain)
	}
	if math.Abs(rw.YesProbability-0.75) > 1e-9 || math.Abs(rw.NoProbability-0.25) > 1e-9 {
		t.Fatalf("probabilities = %v/%v, want 0.75/0.25", rw.YesProbability, rw.NoProbability)
	}
	if rw.TotalOpinions != 5 {
		t.Fatalf("total opinions = %d, want 5 (abstain included)", rw.TotalOpinions)
	}
}

func TestPipelineIdempotent(t *testing.T) {
	repo := &stubRepo{
		posts: testPosts(),
		markets: []models.Market{
			{ID: 1, Question: "Will Bitcoin reach $150k?", Category: "crypto", Status: models.MarketStatusActive},
		},
	}
	p := &Pipeline{Repo: repo, Book: testBook()}

	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("first run: %v", err)
	}
	first := repo.rewrites[0]
	if _, err := p.Run(context.Background()); err != nil {
		t.Fatalf("second run: %v", err)
	}
	second := repo.rewrites[0]

	if len(first.Votes) != len(second.Votes) {
		t.Fatalf("vote counts differ: %d vs %d", len(first.Votes), len(second.Votes))
	}
	if first.YesProbability != second.YesProbability || first.TotalOpinions != second.TotalOpinions {
		t.Fatalf("aggregates differ between identical runs")
	}
}

func TestPipelineSkipsMarketsWithoutConfig(t *testing.T) {
	repo := &stubRepo{
		posts: testPosts(),
		markets: []models.Market{
			{ID: 1, Question: "Will it rain?", Category: "weather", Status: models.MarketStatusActive},
		},
	}
	p := &Pipeline{Repo: repo, Book: testBook()}

	run, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if run.MarketsScored != 0 {
		t.Fatalf("markets scored = %d, want 0", run.MarketsScored)
	}
	if len(repo.rewrites) != 0 {
		t.Fatalf("unexpected rewrite for unconfigured market")
	}
}

func TestPipelineSkipsInactiveMarkets(t *testing.T) {
	repo := &stubRepo{
		posts: testPosts(),
		markets: []models.Market{
			{ID: 2, Question: "Resolved already", Category: "crypto", Status: models.MarketStatusResolved},
		},
	}
	p := &Pipeline{Repo: repo, Book: testBook()}

	run, err := p.Run(context.Background())
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if run.MarketsScored != 0 {
		t.Fatalf("resolved market was scored")
	}
}

func TestExcerptRuneSafe(t *testing.T) {
	long := strings.Repeat("é", excerptLimit+50)
	got := excerpt(long)
	if len([]rune(got)) != excerptLimit {
		t.Fatalf("excerpt length = %d runes", len([]rune(got)))
	}
	short := "short content"
	if excerpt(short) != short {
		t.Fatalf("short content must pass through unchanged")
	}
}
