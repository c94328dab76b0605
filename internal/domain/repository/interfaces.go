package repository

import (
	"context"

	"MarketChat/internal/domain/models"
)

// MarketSource is one external market-data provider. Both the keyless
// primary and the keyed fallback implement it; failover lives above.
// History reports a series with no points as models.ErrNotFound rather
// than an empty slice.
type MarketSource interface {
	Name() string
	Quote(ctx context.Context, symbol string) (*models.Quote, error)
	Profile(ctx context.Context, symbol string) (*models.Profile, error)
	History(ctx context.Context, symbol string, period Period) ([]models.PricePoint, error)
	CryptoQuote(ctx context.Context, symbol string) (*models.Quote, error)
}

type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error)
}

// Completer is the hosted LLM used when no capability matches.
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

type Metrics interface {
	RecordInvocation(capability string)
	RecordFallback(capability string)
	RecordProviderError(provider, kind string)
	RecordChatLatency(seconds float64)
}
