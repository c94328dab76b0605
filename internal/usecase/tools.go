package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"MarketChat/internal/domain/models"
	drepo "MarketChat/internal/domain/repository"
	"MarketChat/internal/service/cache"
	"MarketChat/internal/service/ratelimit"
	"MarketChat/pkg/logger"
)

// MarketTools answers the data-backed capabilities. Every method returns
// user-facing text: provider failures render inline rather than
// propagating, so the conversation never dies on an upstream hiccup.
// Failover is silent to the user apart from the source annotation.
type MarketTools struct {
	primary  drepo.MarketSource
	fallback drepo.MarketSource
	searcher drepo.Searcher
	pacer    *ratelimit.Pacer
	quotes   *cache.TTLCache
	metrics  drepo.Metrics
	log      *logger.Logger

	quoteTTL   time.Duration
	maxResults int
}

// NewMarketTools creates the tools service.
func NewMarketTools(
	primary drepo.MarketSource,
	fallback drepo.MarketSource,
	searcher drepo.Searcher,
	pacer *ratelimit.Pacer,
	quotes *cache.TTLCache,
	metrics drepo.Metrics,
	log *logger.Logger,
	quoteTTL time.Duration,
	maxResults int,
) *MarketTools {
	if maxResults <= 0 {
		maxResults = 3
	}
	return &MarketTools{
		primary:    primary,
		fallback:   fallback,
		searcher:   searcher,
		pacer:      pacer,
		quotes:     quotes,
		metrics:    metrics,
		log:        log,
		quoteTTL:   quoteTTL,
		maxResults: maxResults,
	}
}

// failover reports whether err means the primary is throttled and the
// fallback should take the call.
func failover(err error) bool {
	return errors.Is(err, models.ErrRateLimited)
}

func (t *MarketTools) noteFallback(capability, symbol string) {
	t.metrics.RecordFallback(capability)
	t.log.Info("primary limited, using fallback",
		logger.String("capability", capability),
		logger.String("symbol", symbol),
		logger.String("provider", t.fallback.Name()),
	)
}

func (t *MarketTools) noteError(provider, kind string, err error) {
	t.metrics.RecordProviderError(provider, kind)
	t.log.Warn("provider error",
		logger.String("provider", provider),
		logger.String("kind", kind),
		logger.Error(err),
	)
}

// StockPrice returns the current price line for a stock symbol.
func (t *MarketTools) StockPrice(ctx context.Context, symbol string) string {
	q, fromFallback, err := t.quote(ctx, "stock_price", symbol, false)
	if err != nil {
		return fmt.Sprintf("Error fetching price for %s: %v", symbol, err)
	}
	if fromFallback {
		return fmt.Sprintf("Current price of %s (Alpha Vantage): $%.2f", symbol, q.Price)
	}
	return fmt.Sprintf("Current price of %s: $%.2f", symbol, q.Price)
}

// CryptoPrice returns the current price line for a cryptocurrency.
func (t *MarketTools) CryptoPrice(ctx context.Context, symbol string) string {
	q, fromFallback, err := t.quote(ctx, "crypto_price", symbol, true)
	if err != nil {
		return fmt.Sprintf("Error fetching crypto price for %s: %v", symbol, err)
	}
	if fromFallback {
		return fmt.Sprintf("Current price of %s (Alpha Vantage): $%.2f", symbol, q.Price)
	}
	return fmt.Sprintf("Current price of %s: $%.2f", symbol, q.Price)
}

// quote fetches one quote with cache, pacing and failover.
func (t *MarketTools) quote(ctx context.Context, capability, symbol string, crypto bool) (*models.Quote, bool, error) {
	kind := "stock"
	if crypto {
		kind = "crypto"
	}
	cacheKey := kind + ":" + symbol

	if v, ok := t.quotes.Get(cacheKey); ok {
		q := v.(*models.Quote)
		return q, q.Source == t.fallback.Name(), nil
	}

	fetch := func(src drepo.MarketSource) (*models.Quote, error) {
		if crypto {
			return src.CryptoQuote(ctx, symbol)
		}
		return src.Quote(ctx, symbol)
	}

	if err := t.pacer.Wait(ctx); err != nil {
		return nil, false, err
	}
	q, err := fetch(t.primary)
	if err == nil {
		t.quotes.Set(cacheKey, q, t.quoteTTL)
		return q, false, nil
	}
	if !failover(err) {
		t.noteError(t.primary.Name(), kind+"_quote", err)
		return nil, false, err
	}

	t.noteFallback(capability, symbol)
	q, err = fetch(t.fallback)
	if err != nil {
		t.noteError(t.fallback.Name(), kind+"_quote", err)
		return nil, true, err
	}
	t.quotes.Set(cacheKey, q, t.quoteTTL)
	return q, true, nil
}

// StockInfo returns the detailed snapshot block for a symbol.
func (t *MarketTools) StockInfo(ctx context.Context, symbol string) string {
	if err := t.pacer.Wait(ctx); err != nil {
		return fmt.Sprintf("Error fetching info for %s: %v", symbol, err)
	}
	p, err := t.primary.Profile(ctx, symbol)
	if err == nil {
		return renderProfile(p, "")
	}
	if !failover(err) {
		t.noteError(t.primary.Name(), "profile", err)
		return fmt.Sprintf("Error fetching info for %s: %v", symbol, err)
	}

	t.noteFallback("stock_info", symbol)
	p, err = t.fallback.Profile(ctx, symbol)
	if err != nil {
		t.noteError(t.fallback.Name(), "profile", err)
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Sprintf("No detailed data available for %s from Alpha Vantage", symbol)
		}
		return fmt.Sprintf("Error fetching detailed info from Alpha Vantage for %s: %v", symbol, err)
	}
	return renderProfile(p, " (Alpha Vantage)")
}

func renderProfile(p *models.Profile, source string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Stock Information for %s%s:\n", p.Symbol, source)
	fmt.Fprintf(&b, "Current Price: $%.2f\n", p.Price)
	fmt.Fprintf(&b, "Previous Close: $%.2f\n", p.PrevClose)
	fmt.Fprintf(&b, "Market Cap: $%.0f\n", p.MarketCap)
	fmt.Fprintf(&b, "Volume: %d\n", p.Volume)
	fmt.Fprintf(&b, "52 Week High: $%.2f\n", p.FiftyTwoHigh)
	fmt.Fprintf(&b, "52 Week Low: $%.2f\n", p.FiftyTwoLow)
	return b.String()
}

// HistoricalData returns the latest/previous/change block for a symbol
// over period.
func (t *MarketTools) HistoricalData(ctx context.Context, symbol string, period drepo.Period) string {
	if err := t.pacer.Wait(ctx); err != nil {
		return fmt.Sprintf("Error fetching historical data for %s: %v", symbol, err)
	}
	points, err := t.primary.History(ctx, symbol, period)
	if err == nil {
		return renderHistory(symbol, period, points, "")
	}
	if errors.Is(err, models.ErrNotFound) {
		return fmt.Sprintf("No historical data available for %s", symbol)
	}
	if !failover(err) {
		t.noteError(t.primary.Name(), "history", err)
		return fmt.Sprintf("Error fetching historical data for %s: %v", symbol, err)
	}

	t.noteFallback("historical_data", symbol)
	points, err = t.fallback.History(ctx, symbol, period)
	if err != nil {
		t.noteError(t.fallback.Name(), "history", err)
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Sprintf("No historical data available for %s from Alpha Vantage", symbol)
		}
		return fmt.Sprintf("Error fetching historical data from Alpha Vantage for %s: %v", symbol, err)
	}
	return renderHistory(symbol, period, points, " - Alpha Vantage")
}

// renderHistory reports the latest close against the one before it. A
// single-point series reports a 0.00% change. Sources signal an empty
// series with ErrNotFound, but a source returning an empty slice with a
// nil error must not slip through to the indexing below.
func renderHistory(symbol string, period drepo.Period, points []models.PricePoint, source string) string {
	if len(points) == 0 {
		return fmt.Sprintf("No historical data available for %s", symbol)
	}
	latest := points[len(points)-1].Close
	previous := latest
	if len(points) > 1 {
		previous = points[len(points)-2].Close
	}
	change := 0.0
	if previous != 0 {
		change = (latest - previous) / previous * 100
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Historical data for %s (%s)%s:\n", symbol, period, source)
	fmt.Fprintf(&b, "Latest Close: $%.2f\n", latest)
	fmt.Fprintf(&b, "Previous Close: $%.2f\n", previous)
	fmt.Fprintf(&b, "Change: %.2f%%\n", change)
	return b.String()
}

// AveragePrice returns the mean close over the last days calendar days.
func (t *MarketTools) AveragePrice(ctx context.Context, symbol string, days int) string {
	period := drepo.DayWindow(days)

	if err := t.pacer.Wait(ctx); err != nil {
		return fmt.Sprintf("Error calculating average for %s: %v", symbol, err)
	}
	points, err := t.primary.History(ctx, symbol, period)
	if err == nil {
		return fmt.Sprintf("Average price of %s over last %d days: $%.2f", symbol, days, mean(points))
	}
	if errors.Is(err, models.ErrNotFound) {
		return fmt.Sprintf("No data available for %s", symbol)
	}
	if !failover(err) {
		t.noteError(t.primary.Name(), "average", err)
		return fmt.Sprintf("Error calculating average for %s: %v", symbol, err)
	}

	t.noteFallback("average_price", symbol)
	points, err = t.fallback.History(ctx, symbol, period)
	if err != nil {
		t.noteError(t.fallback.Name(), "average", err)
		if errors.Is(err, models.ErrNotFound) {
			return fmt.Sprintf("No data available for calculating average of %s from Alpha Vantage", symbol)
		}
		return fmt.Sprintf("Error calculating average from Alpha Vantage for %s: %v", symbol, err)
	}
	// The fallback daily series covers far more than the window; keep
	// only the most recent days points.
	if len(points) > days {
		points = points[len(points)-days:]
	}
	return fmt.Sprintf("Average price of %s over last %d days (Alpha Vantage): $%.2f", symbol, len(points), mean(points))
}

func mean(points []models.PricePoint) float64 {
	if len(points) == 0 {
		return 0
	}
	var sum float64
	for _, p := range points {
		sum += p.Close
	}
	return sum / float64(len(points))
}

// WebSearch returns a numbered list of search hits for the raw message.
func (t *MarketTools) WebSearch(ctx context.Context, query string) string {
	results, err := t.searcher.Search(ctx, query, t.maxResults)
	if err != nil {
		t.noteError("duckduckgo", "search", err)
		return fmt.Sprintf("Error performing web search: %v", err)
	}
	if len(results) == 0 {
		return "No search results found"
	}

	var b strings.Builder
	b.WriteString("Search results:\n")
	for i, r := range results {
		fmt.Fprintf(&b, "%d. %s\n   %s\n\n", i+1, r.Title, r.Snippet)
	}
	return b.String()
}
