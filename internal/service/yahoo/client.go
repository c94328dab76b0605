package yahoo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"MarketChat/internal/domain/models"
	drepo "MarketChat/internal/domain/repository"
	xhttp "MarketChat/pkg/http"
)

// Client implements the primary MarketSource over the public Yahoo quote
// endpoints. The API is keyless, which is why it rate-limits aggressively;
// failover to the keyed source hangs off the errors classified here.
type Client struct {
	baseURL string
	http    *xhttp.Client
}

// New creates the primary market source.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

func (c *Client) Name() string { return "yahoo" }

type chartResponse struct {
	Chart struct {
		Result []struct {
			Meta struct {
				Symbol             string  `json:"symbol"`
				RegularMarketPrice float64 `json:"regularMarketPrice"`
				PreviousClose      float64 `json:"previousClose"`
				ChartPreviousClose float64 `json:"chartPreviousClose"`
			} `json:"meta"`
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Close []float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

type quoteResponse struct {
	QuoteResponse struct {
		Result []struct {
			RegularMarketPrice         float64 `json:"regularMarketPrice"`
			RegularMarketPreviousClose float64 `json:"regularMarketPreviousClose"`
			MarketCap                  float64 `json:"marketCap"`
			RegularMarketVolume        int64   `json:"regularMarketVolume"`
			FiftyTwoWeekHigh           float64 `json:"fiftyTwoWeekHigh"`
			FiftyTwoWeekLow            float64 `json:"fiftyTwoWeekLow"`
		} `json:"result"`
	} `json:"quoteResponse"`
}

func (c *Client) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	var resp chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, symbol),
		QueryParams: map[string][]string{
			"range":    {"1d"},
			"interval": {"1d"},
		},
	}, &resp)
	if err != nil {
		return nil, classifyErr(fmt.Errorf("yahoo quote %s: %w", symbol, err))
	}

	if resp.Chart.Error != nil || len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo quote %s: %w", symbol, models.ErrNotFound)
	}

	meta := resp.Chart.Result[0].Meta
	prev := meta.PreviousClose
	if prev == 0 {
		prev = meta.ChartPreviousClose
	}
	return &models.Quote{
		Symbol:    symbol,
		Price:     meta.RegularMarketPrice,
		PrevClose: prev,
		Source:    c.Name(),
		FetchedAt: time.Now(),
	}, nil
}

func (c *Client) Profile(ctx context.Context, symbol string) (*models.Profile, error) {
	var resp quoteResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v7/finance/quote", c.baseURL),
		QueryParams: map[string][]string{
			"symbols": {symbol},
		},
	}, &resp)
	if err != nil {
		return nil, classifyErr(fmt.Errorf("yahoo profile %s: %w", symbol, err))
	}

	if len(resp.QuoteResponse.Result) == 0 {
		return nil, fmt.Errorf("yahoo profile %s: %w", symbol, models.ErrNotFound)
	}

	r := resp.QuoteResponse.Result[0]
	return &models.Profile{
		Symbol:       symbol,
		Price:        r.RegularMarketPrice,
		PrevClose:    r.RegularMarketPreviousClose,
		MarketCap:    r.MarketCap,
		Volume:       r.RegularMarketVolume,
		FiftyTwoHigh: r.FiftyTwoWeekHigh,
		FiftyTwoLow:  r.FiftyTwoWeekLow,
		Source:       c.Name(),
	}, nil
}

func (c *Client) History(ctx context.Context, symbol string, period drepo.Period) ([]models.PricePoint, error) {
	var resp chartResponse
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    fmt.Sprintf("%s/v8/finance/chart/%s", c.baseURL, symbol),
		QueryParams: map[string][]string{
			"range":    {string(period)},
			"interval": {"1d"},
		},
	}, &resp)
	if err != nil {
		return nil, classifyErr(fmt.Errorf("yahoo history %s: %w", symbol, err))
	}

	if resp.Chart.Error != nil || len(resp.Chart.Result) == 0 {
		return nil, fmt.Errorf("yahoo history %s: %w", symbol, models.ErrNotFound)
	}

	result := resp.Chart.Result[0]
	if len(result.Indicators.Quote) == 0 {
		return nil, fmt.Errorf("yahoo history %s: %w", symbol, models.ErrNotFound)
	}

	closes := result.Indicators.Quote[0].Close
	points := make([]models.PricePoint, 0, len(closes))
	for i, ts := range result.Timestamp {
		if i >= len(closes) || closes[i] == 0 {
			continue
		}
		points = append(points, models.PricePoint{
			Date:  time.Unix(ts, 0).UTC(),
			Close: closes[i],
		})
	}
	if len(points) == 0 {
		return nil, fmt.Errorf("yahoo history %s: %w", symbol, models.ErrNotFound)
	}
	return points, nil
}

func (c *Client) CryptoQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	// Crypto trades against USD on this provider.
	q, err := c.Quote(ctx, symbol+"-USD")
	if err != nil {
		return nil, err
	}
	q.Symbol = symbol
	return q, nil
}

// classifyErr maps throttling answers onto ErrRateLimited while keeping
// the original error text for diagnostics.
func classifyErr(err error) error {
	var se *xhttp.StatusError
	if errors.As(err, &se) && se.Code == 429 {
		return fmt.Errorf("%v: %w", err, models.ErrRateLimited)
	}
	if strings.Contains(err.Error(), "Too Many Requests") {
		return fmt.Errorf("%v: %w", err, models.ErrRateLimited)
	}
	return err
}
