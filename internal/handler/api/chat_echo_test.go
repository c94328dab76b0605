package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"MarketChat/internal/domain/models"
	drepo "MarketChat/internal/domain/repository"
	"MarketChat/internal/service/cache"
	"MarketChat/internal/service/ratelimit"
	"MarketChat/internal/usecase"
	xlogger "MarketChat/pkg/logger"

	"github.com/labstack/echo/v4"
)

type stubSource struct{ quote *models.Quote }

func (s *stubSource) Name() string { return "stub" }

func (s *stubSource) Quote(ctx context.Context, symbol string) (*models.Quote, error) {
	return s.quote, nil
}

func (s *stubSource) Profile(ctx context.Context, symbol string) (*models.Profile, error) {
	return nil, models.ErrNotFound
}

func (s *stubSource) History(ctx context.Context, symbol string, period drepo.Period) ([]models.PricePoint, error) {
	return nil, models.ErrNotFound
}

func (s *stubSource) CryptoQuote(ctx context.Context, symbol string) (*models.Quote, error) {
	return s.quote, nil
}

type stubSearcher struct{}

func (stubSearcher) Search(ctx context.Context, query string, max int) ([]models.SearchResult, error) {
	return nil, nil
}

type stubCompleter struct{ reply string }

func (s stubCompleter) Complete(ctx context.Context, prompt string) (string, error) {
	return s.reply, nil
}

type nopMetrics struct{}

func (nopMetrics) RecordInvocation(string)           {}
func (nopMetrics) RecordFallback(string)             {}
func (nopMetrics) RecordProviderError(string, string) {}
func (nopMetrics) RecordChatLatency(float64)         {}

func newTestHandler(t *testing.T, rlCfg RateLimitConfig) *ChatHandler {
	t.Helper()
	log, err := xlogger.New(&xlogger.Config{Level: "error", Format: "json", Output: "stderr"})
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	src := &stubSource{quote: &models.Quote{Symbol: "AAPL", Price: 200, Source: "stub"}}
	tools := usecase.NewMarketTools(
		src, src, stubSearcher{},
		ratelimit.NewPacer(0), cache.NewTTLCache(),
		nopMetrics{}, log, time.Second, 3,
	)
	agent := usecase.NewChatAgent(tools, stubCompleter{reply: "hello"}, nopMetrics{}, log, "1mo", 7)
	return NewChatHandler(log, agent, rlCfg, xlogger.NewCollector(16))
}

func doChat(t *testing.T, h *ChatHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	if err := h.Chat(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	return rec
}

func TestChatEndpointCalculation(t *testing.T) {
	h := newTestHandler(t, RateLimitConfig{})
	rec := doChat(t, h, `{"message":"what is 2+2"}`)

	var resp struct {
		Status int                 `json:"status"`
		Data   models.ChatResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.Status)
	}
	if resp.Data.Reply != "Result: 4" {
		t.Fatalf("reply = %q", resp.Data.Reply)
	}
	if resp.Data.Capability != "calculation" {
		t.Fatalf("capability = %q", resp.Data.Capability)
	}
}

func TestChatEndpointPrice(t *testing.T) {
	h := newTestHandler(t, RateLimitConfig{})
	rec := doChat(t, h, `{"message":"price of AAPL"}`)

	var resp struct {
		Data models.ChatResponse `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Data.Reply != "Current price of AAPL: $200.00" {
		t.Fatalf("reply = %q", resp.Data.Reply)
	}
}

func TestChatEndpointRejectsEmptyMessage(t *testing.T) {
	h := newTestHandler(t, RateLimitConfig{})
	rec := doChat(t, h, `{"message":""}`)

	var resp struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.Status)
	}
}

func TestChatEndpointRateLimit(t *testing.T) {
	h := newTestHandler(t, RateLimitConfig{Enabled: true, Capacity: 1, RefillPerSec: 0.001})

	doChat(t, h, `{"message":"what is 2+2"}`)
	rec := doChat(t, h, `{"message":"what is 2+2"}`)

	var resp struct {
		Status int `json:"status"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", resp.Status)
	}
}

func TestCapabilitiesEndpoint(t *testing.T) {
	h := newTestHandler(t, RateLimitConfig{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/capabilities", nil)
	rec := httptest.NewRecorder()
	if err := h.Capabilities(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp struct {
		Data []capabilityInfo `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(resp.Data) != 7 {
		t.Fatalf("capabilities = %d, want 7", len(resp.Data))
	}
	if resp.Data[0].Name != "stock_price" {
		t.Fatalf("first capability = %q, want stock_price", resp.Data[0].Name)
	}
}

func TestHealthEndpoint(t *testing.T) {
	h := newTestHandler(t, RateLimitConfig{})
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	if err := h.Health(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("code = %d", rec.Code)
	}
}
