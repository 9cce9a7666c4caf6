// Package websocket implements a hub for broadcasting live scorecard
// updates. Anyone watching a match holds a persistent connection; when a
// hole score lands, the refreshed scorecard is pushed to every watcher of
// that match immediately instead of them polling the summary endpoint.
package websocket

import "sync"

// Client represents a single connected watcher.
type Client struct {
	MatchKey string      // Which match this client is watching
	Send     chan []byte // Buffered outgoing messages; the Hub writes, the connection drains
}

// Message is a unit of data to broadcast to all clients watching a match.
type Message struct {
	MatchKey string
	Data     []byte // JSON-encoded scorecard payload
}

// Hub manages all active connections, grouped by match key. It runs in
// its own goroutine and processes register/unregister/broadcast events
// through channels, keeping map mutation on a single goroutine.
type Hub struct {
	// clients: matchKey -> set of connected clients. A map[*Client]bool
	// used as a set, since Go has no built-in set type.
	clients map[string]map[*Client]bool

	broadcast  chan *Message
	register   chan *Client
	unregister chan *Client

	// mu lets broadcast reads (RLock) overlap safely with the event
	// loop's writes (Lock).
	mu sync.RWMutex
}

// NewHub creates an empty hub. The broadcast channel is buffered so a
// handler submitting scores isn't blocked by a briefly busy hub
// goroutine; register/unregister stay synchronous.
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, 256),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run is the hub's event loop; call it in a goroutine ("go hub.Run()").
func (h *Hub) Run() {
	for {
		select {

		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.MatchKey] == nil {
				h.clients[client.MatchKey] = make(map[*Client]bool)
			}
			h.clients[client.MatchKey][client] = true
			h.mu.Unlock()

		case client := <-h.unregister:
			h.remove(client)

		case msg := <-h.broadcast:
			h.mu.RLock()
			watchers := make([]*Client, 0, len(h.clients[msg.MatchKey]))
			for client := range h.clients[msg.MatchKey] {
				watchers = append(watchers, client)
			}
			h.mu.RUnlock()

			for _, client := range watchers {
				select {
				case client.Send <- msg.Data:
				default:
					// Full buffer means a slow client; drop it inline
					// rather than stalling the broadcast for everyone
					// else. It must NOT go back through h.unregister —
					// this goroutine is that channel's only receiver,
					// so sending on it here would block forever.
					h.remove(client)
				}
			}
		}
	}
}

// remove takes a client out of its match's set and closes its Send
// channel, which signals the connection's writer goroutine to stop.
// Removing a client that was already dropped is a no-op.
func (h *Hub) remove(client *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	clients, ok := h.clients[client.MatchKey]
	if !ok {
		return
	}
	if _, ok := clients[client]; !ok {
		return
	}
	delete(clients, client)
	close(client.Send)
	if len(clients) == 0 {
		delete(h.clients, client.MatchKey)
	}
}

// BroadcastToMatch sends data to every client watching the given match.
// Handlers call this after persisting a score submission.
func (h *Hub) BroadcastToMatch(matchKey string, data []byte) {
	h.broadcast <- &Message{MatchKey: matchKey, Data: data}
}

// Register adds a client so it starts receiving broadcasts for its match.
func (h *Hub) Register(client *Client) {
	h.register <- client
}

// Unregister removes a client when its connection closes.
func (h *Hub) Unregister(client *Client) {
	h.unregister <- client
}
