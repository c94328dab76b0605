//go:build wireinject
// +build wireinject

package di

import (
	"MarketChat/pkg/config"
	"MarketChat/pkg/server"

	"github.com/google/wire"
)

// InitializeApp wires up all dependencies and returns the application.
// Wire generates the implementation of this function.
func InitializeApp(cfg *config.Config) (*server.App, error) {
	wire.Build(
		// Observability
		ProvideCollector,
		ProvideLogger,
		ProvideMetrics,

		// Provider clients
		ProvidePrimarySource,
		ProvideFallbackSource,
		ProvideSearcher,
		ProvideCompleter,

		// Use cases
		ProvideMarketTools,
		ProvideChatAgent,

		// HTTP surface
		ProvideChatHandler,
		ProvideApp,
	)
	return &server.App{}, nil
}
