package ws

import (
	"net/http"

	"asimply_pulse/internal/logger"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// the dashboard frontend is served from another origin in development
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Serve upgrades the connection and keeps it registered until the client
// disconnects. Clients only receive; incoming messages are drained and
// ignored.
func Serve(hub *Hub) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("websocket upgrade failed", "error", err)
			return
		}
		hub.Add(conn)

		go func() {
			defer hub.Remove(conn)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()
	}
}
