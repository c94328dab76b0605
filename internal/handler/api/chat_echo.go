package api

import (
	"net/http"

	"MarketChat/internal/domain/models"
	"MarketChat/internal/service/ratelimit"
	"MarketChat/internal/services/intent"
	"MarketChat/internal/usecase"
	xhttp "MarketChat/pkg/http"
	xlogger "MarketChat/pkg/logger"

	"github.com/labstack/echo/v4"
)

// RateLimitConfig is the per-client chat throttle.
type RateLimitConfig struct {
	Enabled      bool
	Capacity     float64
	RefillPerSec float64
}

// ChatHandler exposes the conversational agent over HTTP.
type ChatHandler struct {
	logger *xlogger.Logger
	agent  *usecase.ChatAgent
	rl     *ratelimit.Limiter
	rlCfg  RateLimitConfig
	diag   *xlogger.Collector
}

func NewChatHandler(logger *xlogger.Logger, agent *usecase.ChatAgent, rlCfg RateLimitConfig, diag *xlogger.Collector) *ChatHandler {
	return &ChatHandler{
		logger: logger,
		agent:  agent,
		rl:     ratelimit.New(),
		rlCfg:  rlCfg,
		diag:   diag,
	}
}

func (h *ChatHandler) RegisterRoutes(e *echo.Echo) {
	e.GET("/healthz", h.Health)

	g := e.Group("/api")
	g.POST("/chat", h.Chat)
	g.GET("/capabilities", h.Capabilities)
	g.GET("/diagnostics", h.Diagnostics)
	g.GET("/ws/chat", h.ChatWS)
}

func (h *ChatHandler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *ChatHandler) Chat(c echo.Context) error {
	req := &models.ChatRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	if h.rlCfg.Enabled && !h.rl.Allow(c.RealIP()+":chat", h.rlCfg.Capacity, h.rlCfg.RefillPerSec) {
		h.logger.Warn("chat rate_limited", xlogger.String("remote", c.RealIP()))
		return xhttp.TooManyRequestsResponse(c)
	}

	reply, capability := h.agent.Chat(c.Request().Context(), req.Message)
	return xhttp.SuccessResponse(c, models.ChatResponse{Reply: reply, Capability: capability})
}

type capabilityInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Capabilities lists what the agent can do, in registry order. Display
// only; routing never consults this endpoint.
func (h *ChatHandler) Capabilities(c echo.Context) error {
	caps := intent.All()
	out := make([]capabilityInfo, 0, len(caps))
	for _, cp := range caps {
		out = append(out, capabilityInfo{Name: cp.String(), Description: cp.Description()})
	}
	return xhttp.SuccessResponse(c, out)
}

// Diagnostics returns recent warn/error log entries for operators.
func (h *ChatHandler) Diagnostics(c echo.Context) error {
	if h.diag == nil {
		return xhttp.SuccessResponse(c, []interface{}{})
	}
	return xhttp.SuccessResponse(c, h.diag.Recent())
}
