package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

func (h *Hub) ServeWS(c *gin.Context) {
	deviceKey := c.Query("device_key")
	if deviceKey == "" {
		h.logger.Warnw("WebSocket connection rejected: device_key missing",
			"client_ip", c.ClientIP(),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "device_key is required"})
		return
	}

	participant, err := h.identitySvc.GetOrCreate(deviceKey)
	if err != nil {
		h.logger.Warnw("WebSocket connection rejected: identity lookup failed",
			"client_ip", c.ClientIP(),
			"error", err,
		)
		c.JSON(http.StatusUnauthorized, gin.H{"error": "participant not found"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Errorw("Failed to upgrade connection", "error", err)
		return
	}
	defer conn.Close()

	client := &Client{
		hub:           h,
		conn:          conn,
		ID:            generateClientID(),
		ParticipantID: participant.ID,
	}

	h.logger.Infow("WebSocket connection established",
		"client_id", client.ID,
		"participant_id", client.ParticipantID,
		"client_ip", c.ClientIP(),
	)

	h.register <- client

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.unregister <- client
}
