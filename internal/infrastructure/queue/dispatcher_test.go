package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/collabhub/marketplace-api/internal/core/ports"
)

type recordingSink struct {
	mu       sync.Mutex
	byConv   map[string][]string
	delivered chan struct{}
}

func newRecordingSink(expected int) *recordingSink {
	return &recordingSink{
		byConv:    make(map[string][]string),
		delivered: make(chan struct{}, expected),
	}
}

func (s *recordingSink) Deliver(_ context.Context, msg ports.OutboundMessage) error {
	s.mu.Lock()
	s.byConv[msg.ConversationID] = append(s.byConv[msg.ConversationID], msg.Body)
	s.mu.Unlock()
	s.delivered <- struct{}{}
	return nil
}

func TestDispatcher_PerConversationOrdering(t *testing.T) {
	const perConv = 20
	sink := newRecordingSink(perConv * 2)

	d := NewDispatcher(4, sink, zerolog.Nop())
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	d.Start(ctx)

	for i := 0; i < perConv; i++ {
		d.Enqueue(ports.OutboundMessage{ConversationID: "chat_a", SenderID: "u1", Body: body(i)})
		d.Enqueue(ports.OutboundMessage{ConversationID: "chat_b", SenderID: "u2", Body: body(i)})
	}

	for i := 0; i < perConv*2; i++ {
		select {
		case <-sink.delivered:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for delivery %d", i)
		}
	}

	sink.mu.Lock()
	defer sink.mu.Unlock()
	for _, conv := range []string{"chat_a", "chat_b"} {
		got := sink.byConv[conv]
		if len(got) != perConv {
			t.Fatalf("%s: expected %d messages, got %d", conv, perConv, len(got))
		}
		for i, b := range got {
			if b != body(i) {
				t.Fatalf("%s: message %d out of order: %s", conv, i, b)
			}
		}
	}
}

func TestDispatcher_ShardIsDeterministic(t *testing.T) {
	d := NewDispatcher(8, newRecordingSink(0), zerolog.Nop())
	first := d.shardIndex("chat_42")
	for i := 0; i < 10; i++ {
		if d.shardIndex("chat_42") != first {
			t.Fatalf("shard index not deterministic")
		}
	}
}

func body(i int) string {
	return string(rune('a' + i%26))
}
