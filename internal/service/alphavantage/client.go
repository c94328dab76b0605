package alphavantage

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"MarketChat/internal/domain/models"
	drepo "MarketChat/internal/domain/repository"
	xhttp "MarketChat/pkg/http"
	"MarketChat/pkg/util"
)

// Client implements the keyed fallback MarketSource. It only gets traffic
// when the primary source is rate-limited, so the free-tier quota (25
// requests/day) is usually enough.
type Client struct {
	baseURL string
	apiKey  string
	http    *xhttp.Client
}

func New(baseURL, apiKey string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

func (c *Client) Name() string { return "alphavantage" }

// query runs one API function call. Every endpoint shares the same URL
// shape, differing only in the function name and its parameters.
func (c *Client) query(ctx context.Context, params map[string][]string, dest interface{}) error {
	params["apikey"] = []string{c.apiKey}
	return c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method:      xhttp.MethodGet,
		URL:         c.baseURL + "/query",
		QueryParams: params,
	}, dest)
}

type globalQuoteResponse struct {
	GlobalQuote struct {
		Symbol    string `json:"01. symbol"`
		Price     string `json:"05. price"`
		PrevClose string `json:"08. previous close"`
	} `json:"Global Quote"`
	Note        string `json:"Note"`
	Information string `json:"Information"`
}

func (c *Client) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	var resp globalQuoteResponse
	err := c.query(ctx, map[string][]string{
		"function": {"GLOBAL_QUOTE"},
		"symbol":   {symbol},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("alphavantage quote %s: %w", symbol, err)
	}
	if resp.Note != "" || resp.Information != "" {
		return nil, fmt.Errorf("alphavantage quote %s: %w", symbol, models.ErrRateLimited)
	}
	if resp.GlobalQuote.Price == "" {
		return nil, fmt.Errorf("alphavantage quote %s: %w", symbol, models.ErrNotFound)
	}

	price, err := strconv.ParseFloat(resp.GlobalQuote.Price, 64)
	if err != nil {
		return nil, fmt.Errorf("alphavantage quote %s: bad price %q", symbol, resp.GlobalQuote.Price)
	}
	prev, _ := strconv.ParseFloat(resp.GlobalQuote.PrevClose, 64)

	return &models.Quote{
		Symbol:    symbol,
		Price:     price,
		PrevClose: prev,
		Source:    c.Name(),
		FetchedAt: time.Now(),
	}, nil
}

type overviewResponse struct {
	Symbol      string `json:"Symbol"`
	MarketCap   string `json:"MarketCapitalization"`
	WeekHigh52  string `json:"52WeekHigh"`
	WeekLow52   string `json:"52WeekLow"`
	Note        string `json:"Note"`
	Information string `json:"Information"`
}

func (c *Client) Profile(ctx context.Context, symbol string) (*models.Profile, error) {
	// No single endpoint carries the whole snapshot: price and previous
	// close come from the quote, fundamentals from the overview.
	quote, err := c.Quote(ctx, symbol)
	if err != nil {
		return nil, err
	}

	var ov overviewResponse
	err = c.query(ctx, map[string][]string{
		"function": {"OVERVIEW"},
		"symbol":   {symbol},
	}, &ov)
	if err != nil {
		return nil, fmt.Errorf("alphavantage profile %s: %w", symbol, err)
	}
	if ov.Note != "" || ov.Information != "" {
		return nil, fmt.Errorf("alphavantage profile %s: %w", symbol, models.ErrRateLimited)
	}

	mcap, _ := strconv.ParseFloat(ov.MarketCap, 64)
	high, _ := strconv.ParseFloat(ov.WeekHigh52, 64)
	low, _ := strconv.ParseFloat(ov.WeekLow52, 64)

	return &models.Profile{
		Symbol:       symbol,
		Price:        quote.Price,
		PrevClose:    quote.PrevClose,
		MarketCap:    mcap,
		FiftyTwoHigh: high,
		FiftyTwoLow:  low,
		Source:       c.Name(),
	}, nil
}

// seriesResponse covers all three TIME_SERIES shapes; only one of the
// series maps is populated per call.
type seriesResponse struct {
	Intraday    map[string]seriesBar `json:"Time Series (60min)"`
	Daily       map[string]seriesBar `json:"Time Series (Daily)"`
	Monthly     map[string]seriesBar `json:"Monthly Time Series"`
	Note        string               `json:"Note"`
	Information string               `json:"Information"`
}

type seriesBar struct {
	Close string `json:"4. close"`
}

func (c *Client) History(ctx context.Context, symbol string, period drepo.Period) ([]models.PricePoint, error) {
	params := map[string][]string{"symbol": {symbol}}
	switch drepo.FallbackGranularity(period) {
	case drepo.GranIntraday:
		params["function"] = []string{"TIME_SERIES_INTRADAY"}
		params["interval"] = []string{"60min"}
	case drepo.GranDaily:
		params["function"] = []string{"TIME_SERIES_DAILY"}
	default:
		params["function"] = []string{"TIME_SERIES_MONTHLY"}
	}

	var resp seriesResponse
	if err := c.query(ctx, params, &resp); err != nil {
		return nil, fmt.Errorf("alphavantage history %s: %w", symbol, err)
	}
	if resp.Note != "" || resp.Information != "" {
		return nil, fmt.Errorf("alphavantage history %s: %w", symbol, models.ErrRateLimited)
	}

	series := resp.Intraday
	if len(series) == 0 {
		series = resp.Daily
	}
	if len(series) == 0 {
		series = resp.Monthly
	}
	if len(series) == 0 {
		return nil, fmt.Errorf("alphavantage history %s: %w", symbol, models.ErrNotFound)
	}

	points := make([]models.PricePoint, 0, len(series))
	for stamp, bar := range series {
		date, ok := util.ParseDate(stamp)
		if !ok {
			continue
		}
		px, err := strconv.ParseFloat(bar.Close, 64)
		if err != nil {
			continue
		}
		points = append(points, models.PricePoint{Date: date, Close: px})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	if len(points) == 0 {
		return nil, fmt.Errorf("alphavantage history %s: %w", symbol, models.ErrNotFound)
	}
	return points, nil
}

type exchangeRateResponse struct {
	Rate struct {
		ExchangeRate string `json:"5. Exchange Rate"`
	} `json:"Realtime Currency Exchange Rate"`
	Note        string `json:"Note"`
	Information string `json:"Information"`
}

func (c *Client) CryptoQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	var resp exchangeRateResponse
	err := c.query(ctx, map[string][]string{
		"function":      {"CURRENCY_EXCHANGE_RATE"},
		"from_currency": {symbol},
		"to_currency":   {"USD"},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("alphavantage crypto %s: %w", symbol, err)
	}
	if resp.Note != "" || resp.Information != "" {
		return nil, fmt.Errorf("alphavantage crypto %s: %w", symbol, models.ErrRateLimited)
	}
	if resp.Rate.ExchangeRate == "" {
		return nil, fmt.Errorf("alphavantage crypto %s: %w", symbol, models.ErrNotFound)
	}

	price, err := strconv.ParseFloat(resp.Rate.ExchangeRate, 64)
	if err != nil {
		return nil, fmt.Errorf("alphavantage crypto %s: bad rate %q", symbol, resp.Rate.ExchangeRate)
	}
	return &models.Quote{
		Symbol:    symbol,
		Price:     price,
		Source:    c.Name(),
		FetchedAt: time.Now(),
	}, nil
}
