package websocket

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func receive(t *testing.T, ch chan []byte) []byte {
	t.Helper()
	select {
	case data := <-ch:
		return data
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for broadcast")
		return nil
	}
}

func TestHubBroadcastsToMatchWatchers(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	watcherA := &Client{MatchKey: "A-01", Send: make(chan []byte, 4)}
	watcherB := &Client{MatchKey: "A-01", Send: make(chan []byte, 4)}
	otherMatch := &Client{MatchKey: "B-02", Send: make(chan []byte, 4)}
	hub.Register(watcherA)
	hub.Register(watcherB)
	hub.Register(otherMatch)

	hub.BroadcastToMatch("A-01", []byte("scorecard"))

	assert.Equal(t, []byte("scorecard"), receive(t, watcherA.Send))
	assert.Equal(t, []byte("scorecard"), receive(t, watcherB.Send))

	// The other match's watcher hears nothing.
	select {
	case data := <-otherMatch.Send:
		t.Fatalf("unexpected broadcast to other match: %q", data)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	client := &Client{MatchKey: "A-01", Send: make(chan []byte, 1)}
	hub.Register(client)
	hub.Unregister(client)

	select {
	case _, open := <-client.Send:
		require.False(t, open, "send channel should be closed after unregister")
	case <-time.After(time.Second):
		t.Fatal("send channel never closed")
	}
}

func TestHubDropsSlowClientWithoutStalling(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// A slow client: its Send buffer is already full, so the next
	// broadcast cannot be delivered to it.
	slow := &Client{MatchKey: "A-01", Send: make(chan []byte)}
	healthy := &Client{MatchKey: "A-01", Send: make(chan []byte, 4)}
	hub.Register(slow)
	hub.Register(healthy)

	hub.BroadcastToMatch("A-01", []byte("first"))

	// The healthy watcher still gets the message.
	assert.Equal(t, []byte("first"), receive(t, healthy.Send))

	// The slow client was dropped: its channel closes instead of the
	// hub blocking on it.
	select {
	case _, open := <-slow.Send:
		require.False(t, open, "slow client's send channel should be closed")
	case <-time.After(time.Second):
		t.Fatal("slow client was never dropped")
	}

	// The hub's event loop must still be serving: a fresh register and
	// broadcast both complete.
	registered := make(chan struct{})
	late := &Client{MatchKey: "A-01", Send: make(chan []byte, 4)}
	go func() {
		hub.Register(late)
		close(registered)
	}()
	select {
	case <-registered:
	case <-time.After(time.Second):
		t.Fatal("hub stopped accepting registrations after dropping a slow client")
	}

	hub.BroadcastToMatch("A-01", []byte("second"))
	assert.Equal(t, []byte("second"), receive(t, healthy.Send))
	assert.Equal(t, []byte("second"), receive(t, late.Send))
}

func TestHubBroadcastToEmptyMatchIsHarmless(t *testing.T) {
	hub := NewHub()
	go hub.Run()

	// Nobody watching: the message is simply dropped.
	hub.BroadcastToMatch("Z-99", []byte("nothing to see"))

	client := &Client{MatchKey: "Z-99", Send: make(chan []byte, 1)}
	hub.Register(client)
	hub.BroadcastToMatch("Z-99", []byte("now someone is"))
	assert.Equal(t, []byte("now someone is"), receive(t, client.Send))
}
