// handlers/ws.go - Live badge unlock feed
package handlers

import (
	"log"
	"time"

	"academy/services"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// WSUpgrade gates the websocket route: non-upgrade requests get a 426.
func WSUpgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// UnlockFeed streams the authenticated user's badge unlocks as they
// happen. Consumers: notification senders and dashboards. The awarder
// never blocks on this feed; slow readers miss events.
func UnlockFeed() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		defer conn.Close()

		userID, ok := wsUserID(conn)
		if !ok {
			_ = conn.WriteJSON(fiber.Map{"error": "User not authenticated"})
			return
		}

		notifier := services.GetNotifier()
		if notifier == nil {
			_ = conn.WriteJSON(fiber.Map{"error": "Notifications unavailable"})
			return
		}

		unlocks, cancel := notifier.Subscribe(userID)
		defer cancel()

		// Drain reads so client close frames are noticed.
		closed := make(chan struct{})
		go func() {
			defer close(closed)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		ping := time.NewTicker(30 * time.Second)
		defer ping.Stop()

		for {
			select {
			case badge, ok := <-unlocks:
				if !ok {
					return
				}
				if err := conn.WriteJSON(fiber.Map{
					"type":  "badge_unlocked",
					"badge": badge,
				}); err != nil {
					log.Printf("Unlock feed write failed for user %d: %v", userID, err)
					return
				}
			case <-ping.C:
				if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
					return
				}
			case <-closed:
				return
			}
		}
	})
}

// wsUserID pulls the user id stashed by WSAuthMiddleware out of the
// upgraded connection's locals.
func wsUserID(conn *websocket.Conn) (uint, bool) {
	switch v := conn.Locals("userId").(type) {
	case float64:
		return uint(v), true
	case uint:
		return v, true
	default:
		return 0, false
	}
}
