package websocket

import (
	"crypto/rand"
	"encoding/base64"
	"time"

	"reflectboard/internal/app/identity"
	"reflectboard/internal/utils"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type Client struct {
	hub           *Hub
	conn          *websocket.Conn
	ID            string
	ParticipantID string
}

func generateClientID() string {
	bytes := make([]byte, 6)
	if _, err := rand.Read(bytes); err != nil {
		return "xxxxx"
	}
	return base64.URLEncoding.EncodeToString(bytes)
}

// Hub fans board-change notifications out to connected clients. The
// payload is deliberately light: clients re-fetch through the API on
// receipt rather than merging deltas.
type Hub struct {
	clients     map[*Client]bool
	register    chan *Client
	unregister  chan *Client
	eventBus    *utils.EventBus
	identitySvc identity.Service
	logger      *zap.SugaredLogger
}

func NewHub(logger *zap.Logger, eventBus *utils.EventBus, identitySvc identity.Service) *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		eventBus:    eventBus,
		identitySvc: identitySvc,
		logger:      logger.Sugar(),
	}
}

// Run owns the client set and the connection writes; everything funnels
// through this goroutine so no connection is written concurrently.
func (h *Hub) Run() {
	h.logger.Info("WebSocket Hub started")

	events := h.eventBus.SubscribeCh()

	for {
		select {
		case client := <-h.register:
			h.clients[client] = true
			h.logger.Infow("Client connected",
				"client_id", client.ID,
				"clients_count", len(h.clients),
			)

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				h.logger.Infow("Client disconnected",
					"client_id", client.ID,
					"clients_count", len(h.clients),
				)
			}

		case event := <-events:
			h.broadcast(event)
		}
	}
}

func (h *Hub) broadcast(event utils.Event) {
	msg := map[string]interface{}{
		"event":     event.Event,
		"timestamp": time.Now().UTC().Unix(),
	}

	for client := range h.clients {
		client.conn.SetWriteDeadline(time.Now().Add(10 * time.Second))
		if err := client.conn.WriteJSON(msg); err != nil {
			h.logger.Warnw("Failed to write to client, dropping",
				"client_id", client.ID,
				"error", err,
			)
			client.conn.Close()
			delete(h.clients, client)
		}
	}
}
