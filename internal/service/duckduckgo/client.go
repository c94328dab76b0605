package duckduckgo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"MarketChat/internal/domain/models"
	xhttp "MarketChat/pkg/http"
)

// Client answers web search requests through the DuckDuckGo Instant
// Answer API. No key required.
type Client struct {
	baseURL string
	http    *xhttp.Client
}

func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		http:    xhttp.NewClient(xhttp.WithTimeout(timeout)),
	}
}

type instantAnswer struct {
	Heading       string `json:"Heading"`
	AbstractText  string `json:"AbstractText"`
	AbstractURL   string `json:"AbstractURL"`
	RelatedTopics []struct {
		Text     string `json:"Text"`
		FirstURL string `json:"FirstURL"`
	} `json:"RelatedTopics"`
}

func (c *Client) Search(ctx context.Context, query string, maxResults int) ([]models.SearchResult, error) {
	var resp instantAnswer
	err := c.http.SendAndParse(ctx, &xhttp.RequestOptions{
		Method: xhttp.MethodGet,
		URL:    c.baseURL + "/",
		QueryParams: map[string][]string{
			"q":           {query},
			"format":      {"json"},
			"no_redirect": {"1"},
			"no_html":     {"1"},
		},
	}, &resp)
	if err != nil {
		return nil, fmt.Errorf("search %q: %w", query, err)
	}

	results := make([]models.SearchResult, 0, maxResults)
	if resp.AbstractText != "" {
		title := resp.Heading
		if title == "" {
			title = resp.AbstractURL
		}
		results = append(results, models.SearchResult{
			Title:   title,
			Snippet: resp.AbstractText,
		})
	}
	for _, topic := range resp.RelatedTopics {
		if len(results) >= maxResults {
			break
		}
		if topic.Text == "" {
			continue
		}
		results = append(results, models.SearchResult{
			Title:   topic.FirstURL,
			Snippet: topic.Text,
		})
	}
	return results, nil
}
