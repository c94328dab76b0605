package api

import (
	"net/http"
	"sync"
	"time"

	"MarketChat/internal/domain/models"
	xlogger "MarketChat/pkg/logger"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// CORS is enforced by the HTTP middleware; the upgrade itself
	// accepts any origin.
	CheckOrigin: func(r *http.Request) bool { return true },
}

const (
	wsWriteWait  = 10 * time.Second
	wsPongWait   = 60 * time.Second
	wsPingPeriod = 54 * time.Second
)

// wsFrame is one message on the chat socket. The server echoes the
// running transcript with every reply so thin clients can render it
// without keeping state of their own.
type wsFrame struct {
	Reply      string        `json:"reply"`
	Capability string        `json:"capability,omitempty"`
	History    []models.Turn `json:"history,omitempty"`
}

// wsWriter serializes writes on one connection. The reply loop and the
// ping goroutine both write, and the connection allows a single writer
// at a time.
type wsWriter struct {
	mu   sync.Mutex
	conn *websocket.Conn
}

func (w *wsWriter) writeJSON(v interface{}) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return w.conn.WriteJSON(v)
}

func (w *wsWriter) ping() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	_ = w.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
	return w.conn.WriteMessage(websocket.PingMessage, nil)
}

// ChatWS upgrades to a WebSocket conversation. The transcript lives only
// for the life of the connection; the agent itself stays stateless.
func (h *ChatHandler) ChatWS(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Warn("ws upgrade failed", xlogger.Error(err))
		return nil
	}
	defer conn.Close()

	h.logger.Info("ws chat connected", xlogger.String("remote", c.RealIP()))

	conn.SetReadLimit(4096)
	_ = conn.SetReadDeadline(time.Now().Add(wsPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsPongWait))
	})

	w := &wsWriter{conn: conn}

	done := make(chan struct{})
	defer close(done)
	go func() {
		ticker := time.NewTicker(wsPingPeriod)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if err := w.ping(); err != nil {
					return
				}
			}
		}
	}()

	var history []models.Turn
	for {
		var req models.ChatRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Warn("ws read error", xlogger.Error(err))
			}
			return nil
		}
		if req.Message == "" {
			continue
		}

		if h.rlCfg.Enabled && !h.rl.Allow(c.RealIP()+":chat", h.rlCfg.Capacity, h.rlCfg.RefillPerSec) {
			if err := w.writeJSON(wsFrame{Reply: "Too many requests, slow down"}); err != nil {
				return nil
			}
			continue
		}

		reply, capability := h.agent.Chat(c.Request().Context(), req.Message)
		now := time.Now()
		history = append(history,
			models.Turn{Role: "user", Text: req.Message, At: now},
			models.Turn{Role: "agent", Text: reply, At: now},
		)

		if err := w.writeJSON(wsFrame{Reply: reply, Capability: capability, History: history}); err != nil {
			h.logger.Warn("ws write error", xlogger.Error(err))
			return nil
		}
	}
}
