package api

import (
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"MarketChat/internal/domain/models"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

func dialWS(t *testing.T, srv *httptest.Server, path string) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + path
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	return conn
}

func TestChatWSConversation(t *testing.T) {
	h := newTestHandler(t, RateLimitConfig{})
	e := echo.New()
	e.GET("/api/ws/chat", h.ChatWS)
	srv := httptest.NewServer(e)
	defer srv.Close()

	conn := dialWS(t, srv, "/api/ws/chat")
	defer conn.Close()

	if err := conn.WriteJSON(models.ChatRequest{Message: "what is 2+2"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	var frame wsFrame
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read: %v", err)
	}
	if frame.Reply != "Result: 4" || frame.Capability != "calculation" {
		t.Fatalf("frame = %+v", frame)
	}
	if len(frame.History) != 2 {
		t.Fatalf("history = %d turns, want 2", len(frame.History))
	}

	// The transcript grows across turns on the same connection.
	if err := conn.WriteJSON(models.ChatRequest{Message: "price of AAPL"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := conn.ReadJSON(&frame); err != nil {
		t.Fatalf("read: %v", err)
	}
	if frame.Reply != "Current price of AAPL: $200.00" {
		t.Fatalf("reply = %q", frame.Reply)
	}
	if len(frame.History) != 4 {
		t.Fatalf("history = %d turns, want 4", len(frame.History))
	}
}

func TestChatWSRateLimit(t *testing.T) {
	h := newTestHandler(t, RateLimitConfig{Enabled: true, Capacity: 1, RefillPerSec: 0.001})
	e := echo.New()
	e.GET("/api/ws/chat", h.ChatWS)
	srv := httptest.NewServer(e)
	defer srv.Close()

	conn := dialWS(t, srv, "/api/ws/chat")
	defer conn.Close()

	var frame wsFrame
	for _, msg := range []string{"what is 2+2", "what is 2+2"} {
		if err := conn.WriteJSON(models.ChatRequest{Message: msg}); err != nil {
			t.Fatalf("write: %v", err)
		}
		if err := conn.ReadJSON(&frame); err != nil {
			t.Fatalf("read: %v", err)
		}
	}
	if frame.Reply != "Too many requests, slow down" {
		t.Fatalf("second reply = %q, want throttle notice", frame.Reply)
	}
}

func TestChatWSWriterSerializesConcurrentWrites(t *testing.T) {
	// The reply loop and the keepalive goroutine share one connection;
	// unserialized writes make the connection panic. Hammer both paths
	// at once and make sure every data frame still arrives.
	const frames = 50

	e := echo.New()
	e.GET("/ws", func(c echo.Context) error {
		conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
		if err != nil {
			return err
		}
		w := &wsWriter{conn: conn}

		var wg sync.WaitGroup
		wg.Add(2)
		go func() {
			defer wg.Done()
			for i := 0; i < frames; i++ {
				if err := w.writeJSON(wsFrame{Reply: "tick"}); err != nil {
					return
				}
			}
		}()
		go func() {
			defer wg.Done()
			for i := 0; i < frames; i++ {
				if err := w.ping(); err != nil {
					return
				}
			}
		}()
		wg.Wait()
		_ = w.writeJSON(wsFrame{Reply: "done"})
		conn.Close()
		return nil
	})
	srv := httptest.NewServer(e)
	defer srv.Close()

	conn := dialWS(t, srv, "/ws")
	defer conn.Close()
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	// The server never reads, so don't auto-pong its pings: the default
	// handler's pong write fails once the server hard-closes, surfacing a
	// broken-pipe error from ReadJSON before the data frames are drained.
	conn.SetPingHandler(func(string) error { return nil })

	got := 0
	for {
		var frame wsFrame
		if err := conn.ReadJSON(&frame); err != nil {
			t.Fatalf("read after %d frames: %v", got, err)
		}
		if frame.Reply == "done" {
			break
		}
		got++
	}
	if got != frames {
		t.Fatalf("data frames = %d, want %d", got, frames)
	}
}
