package gateway

import (
	"encoding/json"
	"io"
	"testing"
	"time"

	"github.com/stablearb/arbgate/business/opportunity/domain"
	"github.com/stablearb/arbgate/internal/logger"
)

func newTestHub() *StreamHub {
	return NewStreamHub([]string{"*"}, logger.New(io.Discard, logger.LevelError, "test", nil))
}

func TestHubBroadcastReachesSubscriber(t *testing.T) {
	hub := newTestHub()
	ch := hub.subscribe()
	defer hub.unsubscribe(ch)

	hub.Broadcast(&domain.ScanResult{
		Opportunities: []*domain.EnhancedOpportunity{},
		Count:         0,
		Timestamp:     time.Now(),
	})

	select {
	case payload := <-ch:
		var result domain.ScanResult
		if err := json.Unmarshal(payload, &result); err != nil {
			t.Fatalf("broadcast payload is not a scan result: %v", err)
		}
		if result.Opportunities == nil {
			t.Error("opportunities must marshal as an array")
		}
	case <-time.After(time.Second):
		t.Fatal("broadcast did not reach subscriber")
	}
}

func TestHubDropsSlowSubscriber(t *testing.T) {
	hub := newTestHub()
	ch := hub.subscribe()

	batch := &domain.ScanResult{Timestamp: time.Now()}
	for i := 0; i < subscriberBuffer+1; i++ {
		hub.Broadcast(batch)
	}

	if got := hub.SubscriberCount(); got != 0 {
		t.Errorf("subscriber count = %d, want 0 after overflow", got)
	}

	// The channel is closed on eviction once drained.
	drained := 0
	for range ch {
		drained++
	}
	if drained != subscriberBuffer {
		t.Errorf("drained %d messages, want %d", drained, subscriberBuffer)
	}
}

func TestHubUnsubscribeIdempotent(t *testing.T) {
	hub := newTestHub()
	ch := hub.subscribe()

	hub.unsubscribe(ch)
	hub.unsubscribe(ch)

	if got := hub.SubscriberCount(); got != 0 {
		t.Errorf("subscriber count = %d, want 0", got)
	}
}
