package service

import (
	"context"

	"go.uber.org/zap"

	"postmarket/internal/keyword"
	"postmarket/internal/models"
	"postmarket/internal/repository"
)

// EnsureMarkets creates every market declared in the keyword book that does
// not exist yet, matched by question. Existing markets are never modified so
// operator edits and aggregator output survive restarts.
func EnsureMarkets(ctx context.Context, repo repository.Repository, book *keyword.Book, logger *zap.Logger) error {
	for _, def := range book.Markets {
		existing, err := repo.GetMarketByQuestion(ctx, def.Question)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		item := &models.Market{
			Question:       def.Question,
			Description:    def.Description,
			Category:       def.Category,
			ResolutionDate: def.ResolutionDate,
			Status:         models.MarketStatusActive,
			YesProbability: 0.5,
			NoProbability:  0.5,
		}
		if err := repo.CreateMarket(ctx, item); err != nil {
			return err
		}
		if logger != nil {
			logger.Info("market created",
				zap.Uint64("market_id", item.ID),
				zap.String("question", item.Question),
				zap.String("category", item.Category),
			)
		}
	}
	return nil
}
