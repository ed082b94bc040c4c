package gateway

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/coder/websocket"
	"github.com/gin-gonic/gin"

	"github.com/stablearb/arbgate/business/opportunity/domain"
	"github.com/stablearb/arbgate/internal/logger"
)

const (
	// Per-subscriber outbound buffer. A subscriber that falls this far
	// behind is disconnected rather than blocking the broadcast.
	subscriberBuffer = 16

	streamWriteTimeout = 10 * time.Second
)

// StreamHub fans opportunity scan batches out to WebSocket subscribers.
type StreamHub struct {
	logger  logger.LoggerInterface
	origins []string

	mu   sync.RWMutex
	subs map[chan []byte]struct{}
}

// NewStreamHub creates a hub accepting connections from the given
// origins.
func NewStreamHub(allowedOrigins []string, log logger.LoggerInterface) *StreamHub {
	return &StreamHub{
		logger:  log,
		origins: allowedOrigins,
		subs:    map[chan []byte]struct{}{},
	}
}

// Broadcast pushes one scan batch to every connected subscriber. Slow
// subscribers are dropped.
func (h *StreamHub) Broadcast(result *domain.ScanResult) {
	payload, err := json.Marshal(result)
	if err != nil {
		h.logger.Error(context.Background(), "scan batch marshal failed", "error", err)
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.subs {
		select {
		case ch <- payload:
		default:
			delete(h.subs, ch)
			close(ch)
		}
	}
}

// SubscriberCount reports the number of connected subscribers.
func (h *StreamHub) SubscriberCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}

func (h *StreamHub) subscribe() chan []byte {
	ch := make(chan []byte, subscriberBuffer)
	h.mu.Lock()
	h.subs[ch] = struct{}{}
	h.mu.Unlock()
	return ch
}

func (h *StreamHub) unsubscribe(ch chan []byte) {
	h.mu.Lock()
	if _, ok := h.subs[ch]; ok {
		delete(h.subs, ch)
		close(ch)
	}
	h.mu.Unlock()
}

// handle upgrades the request and streams scan batches until the peer
// disconnects.
func (h *StreamHub) handle(c *gin.Context) {
	conn, err := websocket.Accept(c.Writer, c.Request, &websocket.AcceptOptions{
		OriginPatterns: h.origins,
	})
	if err != nil {
		h.logger.Warn(c.Request.Context(), "websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close(websocket.StatusInternalError, "stream closed")

	// Inbound frames are not part of the protocol; CloseRead surfaces
	// the peer's close through context cancellation.
	ctx := conn.CloseRead(c.Request.Context())

	ch := h.subscribe()
	defer h.unsubscribe(ch)

	h.logger.Debug(ctx, "stream subscriber connected",
		"request_id", c.GetString("request_id"))

	for {
		select {
		case <-ctx.Done():
			conn.Close(websocket.StatusNormalClosure, "")
			return
		case payload, open := <-ch:
			if !open {
				conn.Close(websocket.StatusPolicyViolation, "subscriber too slow")
				return
			}
			writeCtx, cancel := context.WithTimeout(ctx, streamWriteTimeout)
			err := conn.Write(writeCtx, websocket.MessageText, payload)
			cancel()
			if err != nil {
				h.logger.Debug(ctx, "stream write failed, dropping subscriber", "error", err)
				return
			}
		}
	}
}
