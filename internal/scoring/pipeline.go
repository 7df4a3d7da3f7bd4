package scoring

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"postmarket/internal/keyword"
	"postmarket/internal/market"
	"postmarket/internal/models"
	"postmarket/internal/repository"
)

const excerptLimit = 300

// Pipeline is the batch recompute: it scores every stored post against every
// active market and destructively rewrites the vote table. Recomputation is
// total, not incremental; re-running over unchanged posts is idempotent.
type Pipeline struct {
	Repo   repository.Repository
	Book   *keyword.Book
	Logger *zap.Logger

	matcher *Matcher
}

// Run executes one full scoring pass and records it as a ScoreRun.
func (p *Pipeline) Run(ctx context.Context) (*models.ScoreRun, error) {
	if p == nil || p.Repo == nil || p.Book == nil {
		return nil, nil
	}
	if p.matcher == nil {
		p.matcher = NewMatcher()
	}

	run := &models.ScoreRun{
		ID:        uuid.NewString(),
		Status:    models.ScoreRunRunning,
		StartedAt: time.Now().UTC(),
	}
	if err := p.Repo.InsertScoreRun(ctx, run); err != nil {
		return nil, err
	}

	err := p.score(ctx, run)
	now := time.Now().UTC()
	run.CompletedAt = &now
	if err != nil {
		run.Status = models.ScoreRunFailed
		msg := err.Error()
		run.ErrorMessage = &msg
	} else {
		run.Status = models.ScoreRunCompleted
	}
	if uerr := p.Repo.UpdateScoreRun(ctx, run); uerr != nil && p.Logger != nil {
		p.Logger.Warn("score run update failed", zap.String("run_id", run.ID), zap.Error(uerr))
	}
	if err != nil {
		return run, err
	}

	if p.Logger != nil {
		p.Logger.Info("score run complete",
			zap.String("run_id", run.ID),
			zap.Int("markets", run.MarketsScored),
			zap.Int("posts", run.PostsScanned),
			zap.Int("votes", run.VotesCreated),
		)
	}
	return run, nil
}

func (p *Pipeline) score(ctx context.Context, run *models.ScoreRun) error {
	active := models.MarketStatusActive
	markets, err := p.Repo.ListMarkets(ctx, repository.ListMarketsParams{
		Limit:  1000,
		Status: &active,
	})
	if err != nil {
		return err
	}

	posts, err := p.listAllPosts(ctx)
	if err != nil {
		return err
	}
	run.PostsScanned = len(posts)

	scoredAt := time.Now().UTC()
	rewrites := make([]repository.MarketRewrite, 0, len(markets))
	for _, m := range markets {
		cfg, ok := p.Book.ForQuestion(m.Question, m.Category)
		if !ok {
			if p.Logger != nil {
				p.Logger.Warn("market has no keyword config, skipping",
					zap.Uint64("market_id", m.ID),
					zap.String("category", m.Category),
				)
			}
			continue
		}

		votes := p.scoreMarket(m, cfg, posts, scoredAt)
		agg := market.Recompute(votes)
		rewrites = append(rewrites, repository.MarketRewrite{
			MarketID:       m.ID,
			Votes:          votes,
			YesProbability: agg.YesProbability,
			NoProbability:  agg.NoProbability,
			TotalOpinions:  agg.TotalOpinions,
		})
		run.MarketsScored++
		run.VotesCreated += len(votes)
	}

	return p.Repo.ReplaceMarketVotes(ctx, rewrites)
}

// scoreMarket produces one Vote per relevant post. Irrelevant posts leave no
// row at all.
func (p *Pipeline) scoreMarket(m models.Market, cfg keyword.Config, posts []models.Post, scoredAt time.Time) []models.Vote {
	var votes []models.Vote
	for _, post := range posts {
		text := PostText(post)
		if !p.matcher.IsRelevant(text, cfg) {
			continue
		}
		res := p.matcher.Score(text, cfg)
		votes = append(votes, models.Vote{
			MarketID:    m.ID,
			PostID:      post.ID,
			AuthorName:  post.AuthorName,
			AuthorKarma: post.AuthorKarma,
			Vote:        res.Vote,
			Confidence:  res.Confidence,
			Reasoning:   res.Reasoning,
			PostTitle:   post.Title,
			PostExcerpt: excerpt(post.Content),
			Upvotes:     post.Upvotes,
			CreatedAt:   post.CreatedAt,
			ScoredAt:    scoredAt,
		})
	}
	return votes
}

func (p *Pipeline) listAllPosts(ctx context.Context) ([]models.Post, error) {
	const page = 1000
	var all []models.Post
	asc := true
	for offset := 0; ; offset += page {
		batch, err := p.Repo.ListPosts(ctx, repository.ListPostsParams{
			Limit:   page,
			Offset:  offset,
			OrderBy: "id",
			Asc:     &asc,
		})
		if err != nil {
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < page {
			return all, nil
		}
	}
}

func excerpt(content string) string {
	runes := []rune(content)
	if len(runes) <= excerptLimit {
		return content
	}
	return string(runes[:excerptLimit])
}
