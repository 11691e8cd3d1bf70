package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/phrazzld/overboard/internal/api/shared"
	"github.com/phrazzld/overboard/internal/events"
	"github.com/phrazzld/overboard/internal/platform/logger"
)

const (
	feedWriteWait      = 10 * time.Second
	feedPongWait       = 60 * time.Second
	feedPingPeriod     = (feedPongWait * 9) / 10
	feedMaxMessageSize = 512
)

// FeedHub fans board events out to websocket subscribers. It is an
// events.EventHandler: register it with the emitter and mount it on
// GET /api/feed.
//
// Each subscriber has a bounded buffer. A subscriber that falls a full
// buffer behind is disconnected rather than allowed to slow the board.
type FeedHub struct {
	mu          sync.Mutex
	subscribers map[*feedSubscriber]struct{}
	closed      bool

	bufferSize int
	upgrader   websocket.Upgrader
	logger     *slog.Logger
}

type feedSubscriber struct {
	send chan []byte
}

// NewFeedHub creates a FeedHub whose subscribers buffer up to bufferSize
// events. If logger is nil, slog.Default() is used.
func NewFeedHub(bufferSize int, logger *slog.Logger) *FeedHub {
	if bufferSize < 1 {
		bufferSize = 1
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &FeedHub{
		subscribers: make(map[*feedSubscriber]struct{}),
		bufferSize:  bufferSize,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		logger: logger.With(slog.String("component", "feed_hub")),
	}
}

var _ events.EventHandler = (*FeedHub)(nil)

// HandleEvent implements events.EventHandler. It never blocks on a
// subscriber.
func (h *FeedHub) HandleEvent(ctx context.Context, event *events.BoardEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for sub := range h.subscribers {
		select {
		case sub.send <- data:
		default:
			h.logger.Warn("dropping slow feed subscriber",
				slog.String("event_type", event.Type),
				slog.Int("buffer_size", h.bufferSize))
			h.removeLocked(sub)
		}
	}
	return nil
}

// SubscriberCount returns the number of connected subscribers.
func (h *FeedHub) SubscriberCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}

// Close disconnects every subscriber and rejects new ones.
func (h *FeedHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.closed = true
	for sub := range h.subscribers {
		h.removeLocked(sub)
	}
}

func (h *FeedHub) subscribe() (*feedSubscriber, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return nil, false
	}
	sub := &feedSubscriber{send: make(chan []byte, h.bufferSize)}
	h.subscribers[sub] = struct{}{}
	return sub, true
}

func (h *FeedHub) unsubscribe(sub *feedSubscriber) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(sub)
}

// removeLocked closes sub's channel exactly once. h.mu must be held.
func (h *FeedHub) removeLocked(sub *feedSubscriber) {
	if _, ok := h.subscribers[sub]; !ok {
		return
	}
	delete(h.subscribers, sub)
	close(sub.send)
}

// ServeHTTP upgrades the request to a websocket and streams events to it
// until either side goes away.
func (h *FeedHub) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sub, ok := h.subscribe()
	if !ok {
		shared.RespondWithError(w, r, http.StatusServiceUnavailable, "Feed is shutting down")
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already written the error response.
		h.unsubscribe(sub)
		log.Debug("feed upgrade failed", slog.String("error", err.Error()))
		return
	}
	log.Debug("feed subscriber connected")

	done := make(chan struct{})
	go func() {
		defer close(done)
		h.writePump(conn, sub)
	}()

	h.readPump(conn)
	h.unsubscribe(sub)
	<-done
	log.Debug("feed subscriber disconnected")
}

// readPump discards client messages and returns once the connection fails
// or is closed. It keeps the read deadline alive through pongs.
func (h *FeedHub) readPump(conn *websocket.Conn) {
	conn.SetReadLimit(feedMaxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(feedPongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(feedPongWait))
	})
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("feed connection closed unexpectedly", slog.String("error", err.Error()))
			}
			return
		}
	}
}

// writePump sends one text message per event and pings periodically. It
// owns the connection and closes it on exit.
func (h *FeedHub) writePump(conn *websocket.Conn, sub *feedSubscriber) {
	ticker := time.NewTicker(feedPingPeriod)
	defer func() {
		ticker.Stop()
		_ = conn.Close()
	}()

	for {
		select {
		case message, ok := <-sub.send:
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "feed closed"))
				return
			}
			if err := conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(feedWriteWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
