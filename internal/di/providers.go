package di

import (
	"MarketChat/internal/domain/repository"
	"MarketChat/internal/handler/api"
	"MarketChat/internal/service/alphavantage"
	"MarketChat/internal/service/cache"
	"MarketChat/internal/service/duckduckgo"
	"MarketChat/internal/service/groq"
	"MarketChat/internal/service/ratelimit"
	"MarketChat/internal/service/yahoo"
	"MarketChat/internal/usecase"
	"MarketChat/pkg/config"
	xhttp "MarketChat/pkg/http"
	"MarketChat/pkg/logger"
	"MarketChat/pkg/metrics"
	"MarketChat/pkg/server"
)

// ProvideCollector creates the diagnostics ring buffer.
func ProvideCollector() *logger.Collector {
	return logger.NewCollector(64)
}

// ProvideLogger creates the application logger with the diagnostics
// collector attached.
func ProvideLogger(cfg *config.Config, collector *logger.Collector) (*logger.Logger, error) {
	format := "console"
	if cfg.Environment == "production" {
		format = "json"
	}
	log, err := logger.New(&logger.Config{Level: "info", Format: format, Output: "stdout"})
	if err != nil {
		return nil, err
	}
	log.SetCollector(collector)
	return log, nil
}

// ProvideMetrics creates a Prometheus metrics recorder.
func ProvideMetrics() repository.Metrics {
	return metrics.New()
}

// PrimarySource and FallbackSource are distinct types for the two
// MarketSource bindings so the injector can tell them apart.
type (
	PrimarySource  repository.MarketSource
	FallbackSource repository.MarketSource
)

// ProvidePrimarySource creates the keyless primary market source.
func ProvidePrimarySource(cfg *config.Config) PrimarySource {
	return yahoo.New(cfg.Primary.BaseURL, cfg.Primary.Timeout)
}

// ProvideFallbackSource creates the keyed fallback market source.
func ProvideFallbackSource(cfg *config.Config) FallbackSource {
	return alphavantage.New(cfg.AlphaVantage.BaseURL, cfg.AlphaVantage.APIKey, cfg.AlphaVantage.Timeout)
}

// ProvideSearcher creates the web search client.
func ProvideSearcher(cfg *config.Config) repository.Searcher {
	return duckduckgo.New(cfg.Search.BaseURL, cfg.Search.Timeout)
}

// ProvideCompleter creates the hosted completion client.
func ProvideCompleter(cfg *config.Config) repository.Completer {
	return groq.New(cfg.Groq.BaseURL, cfg.Groq.APIKey, cfg.Groq.Model, cfg.Groq.Temperature, cfg.Groq.Timeout)
}

// ProvideMarketTools assembles the data-backed tools service.
func ProvideMarketTools(
	primary PrimarySource,
	fallback FallbackSource,
	searcher repository.Searcher,
	m repository.Metrics,
	log *logger.Logger,
	cfg *config.Config,
) *usecase.MarketTools {
	return usecase.NewMarketTools(
		primary,
		fallback,
		searcher,
		ratelimit.NewPacer(cfg.Primary.Throttle),
		cache.NewTTLCache(),
		m,
		log,
		cfg.Agent.QuoteCacheTTL,
		cfg.Search.MaxResults,
	)
}

// ProvideChatAgent assembles the dialogue orchestrator.
func ProvideChatAgent(
	tools *usecase.MarketTools,
	llm repository.Completer,
	m repository.Metrics,
	log *logger.Logger,
	cfg *config.Config,
) *usecase.ChatAgent {
	return usecase.NewChatAgent(tools, llm, m, log, cfg.Agent.HistoryPeriod, cfg.Agent.AverageDays)
}

// ProvideChatHandler creates the HTTP handler.
func ProvideChatHandler(
	log *logger.Logger,
	collector *logger.Collector,
	agent *usecase.ChatAgent,
	cfg *config.Config,
) xhttp.Handler {
	return api.NewChatHandler(log, agent, api.RateLimitConfig{
		Enabled:      cfg.RateLimit.Enabled,
		Capacity:     cfg.RateLimit.Capacity,
		RefillPerSec: cfg.RateLimit.RefillPerSec,
	}, collector)
}

// ProvideApp creates the application server.
func ProvideApp(cfg *config.Config, log *logger.Logger, handler xhttp.Handler) *server.App {
	return server.New(cfg, log, handler)
}
