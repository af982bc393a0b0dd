package ws

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recorder struct {
	mu     sync.Mutex
	msgs   []Envelope
	fail   bool
	closed bool
}

func (r *recorder) Write(_ context.Context, _ websocket.MessageType, p []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.fail {
		return errors.New("broken pipe")
	}
	var env Envelope
	if err := json.Unmarshal(p, &env); err != nil {
		return err
	}
	r.msgs = append(r.msgs, env)
	return nil
}

func (r *recorder) Close(websocket.StatusCode, string) error {
	r.closed = true
	return nil
}

func TestBroadcastAndSend(t *testing.T) {
	h := NewHub()
	a, b, other := &recorder{}, &recorder{}, &recorder{}
	h.Add("R1", "a", a)
	h.Add("R1", "b", b)
	h.Add("R2", "a", other)

	h.Broadcast("R1", Envelope{Type: TypeState})
	h.Send("R1", Envelope{Type: TypeRejected, Payload: Rejection{Reason: "not_your_turn"}}, "b")

	require.Len(t, a.msgs, 1)
	require.Len(t, b.msgs, 2)
	assert.Equal(t, TypeRejected, b.msgs[1].Type)
	assert.Empty(t, other.msgs, "rooms are isolated")
}

func TestFailedWriteDropsClient(t *testing.T) {
	h := NewHub()
	bad := &recorder{fail: true}
	good := &recorder{}
	h.Add("R1", "a", bad)
	h.Add("R1", "b", good)

	h.Broadcast("R1", Envelope{Type: TypeEvent})
	assert.True(t, bad.closed)
	assert.Equal(t, 1, h.Count("R1"))

	h.Remove("R1", good)
	assert.Zero(t, h.Count("R1"))
}

// stalled blocks every write until released.
type stalled struct{ release chan struct{} }

func (s *stalled) Write(ctx context.Context, _ websocket.MessageType, _ []byte) error {
	select {
	case <-s.release:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *stalled) Close(websocket.StatusCode, string) error { return nil }

func TestSlowRoomDoesNotBlockOthers(t *testing.T) {
	h := NewHub()
	slow := &stalled{release: make(chan struct{})}
	fast := &recorder{}
	h.Add("SLOW", "a", slow)
	h.Add("FAST", "b", fast)

	stuck := make(chan struct{})
	go func() {
		h.Broadcast("SLOW", Envelope{Type: TypeState})
		close(stuck)
	}()

	done := make(chan struct{})
	go func() {
		h.Broadcast("FAST", Envelope{Type: TypeState})
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcast to FAST waited on SLOW")
	}
	assert.Len(t, fast.msgs, 1)

	close(slow.release)
	<-stuck
}

func TestBroadcastEachBuildsPerPlayer(t *testing.T) {
	h := NewHub()
	a1, a2, b := &recorder{}, &recorder{}, &recorder{}
	h.Add("R1", "a", a1)
	h.Add("R1", "a", a2)
	h.Add("R1", "b", b)

	calls := map[string]int{}
	h.BroadcastEach("R1", func(player string) Envelope {
		calls[player]++
		return Envelope{Type: TypeState, Payload: "for-" + player}
	})

	assert.Equal(t, map[string]int{"a": 1, "b": 1}, calls, "built once per player")
	require.Len(t, a1.msgs, 1)
	require.Len(t, a2.msgs, 1)
	require.Len(t, b.msgs, 1)
	assert.Equal(t, "for-a", a2.msgs[0].Payload)
	assert.Equal(t, "for-b", b.msgs[0].Payload)
}
