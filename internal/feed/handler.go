package feed

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

// UpgradeMiddleware rejects plain HTTP requests on the feed route.
func UpgradeMiddleware(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		c.Locals("allowed", true)
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Handler subscribes the connection to the hub and writes events until the
// client goes away. Inbound messages are ignored; the feed is one-way.
func Handler(hub *Hub) fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		c := &client{
			id:   uuid.New().String(),
			send: make(chan []byte, 16),
		}
		hub.register <- c

		done := make(chan struct{})
		go func() {
			defer close(done)
			for msg := range c.send {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			}
		}()

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Printf("feed: read: %v", err)
				}
				break
			}
		}

		hub.unregister <- c
		<-done
		conn.Close()
	})
}
