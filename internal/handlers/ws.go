package handlers

import (
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"

	ws "github.com/trentd187/match-play-scoring/internal/websocket"
)

// WebSocketUpgrade gates the websocket routes: plain HTTP requests get
// 426 instead of reaching the upgrade handler.
func WebSocketUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// MatchSocket returns the handler for GET /ws/matches/:key — a live
// feed of scorecard summaries for one singles match. The connection is
// read-only from the client's side: submissions still go through the
// HTTP endpoint, the socket just receives the refreshed summary after
// every accepted write.
func MatchSocket(hub *ws.Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		client := &ws.Client{
			MatchKey: conn.Params("key"),
			Send:     make(chan []byte, 16),
		}
		hub.Register(client)
		defer hub.Unregister(client)

		// Reader goroutine: clients send nothing meaningful, but reading
		// is how we notice the connection closing.
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case data, ok := <-client.Send:
				if !ok {
					// The hub dropped us (slow consumer); close out.
					return
				}
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	})
}
