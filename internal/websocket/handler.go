package websocket

import (
	"transcript-assistant-be/internal/pkg/serverutils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// ServeWs registers the connection and blocks until it closes.
func ServeWs(hub *Hub, conn *websocket.Conn) {
	client := newClient(hub, conn)
	if !hub.add(client) {
		conn.Close()
		return
	}

	hub.logger.Info("Handler", "WebSocket session started", map[string]interface{}{
		"client_id": client.ID,
	})
	go client.writePump()
	client.readPump()
	hub.logger.Info("Handler", "WebSocket session ended", map[string]interface{}{
		"client_id": client.ID,
	})
}

// NewHandler upgrades /ws requests. Browsers cannot set headers on a websocket
// handshake, so when secret is set the token comes from the "token" query.
func NewHandler(hub *Hub, secret string) fiber.Handler {
	upgrade := websocket.New(func(conn *websocket.Conn) {
		ServeWs(hub, conn)
	})

	return func(ctx *fiber.Ctx) error {
		if !websocket.IsWebSocketUpgrade(ctx) {
			return fiber.ErrUpgradeRequired
		}

		if secret != "" {
			if _, err := serverutils.VerifyToken(secret, ctx.Query("token")); err != nil {
				return serverutils.NewUnauthorizedError("Invalid token")
			}
		}

		return upgrade(ctx)
	}
}
