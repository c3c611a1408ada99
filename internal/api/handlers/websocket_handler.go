package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/isdelr/chat-relay-be/internal/auth"
	"github.com/isdelr/chat-relay-be/internal/services"
	ws "github.com/isdelr/chat-relay-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

// WebSocketHandler handles upgrading HTTP connections to WebSocket connections.
type WebSocketHandler struct {
	hub   *ws.Hub
	relay services.RelayServiceProvider
}

// NewWebSocketHandler creates a new WebSocketHandler.
func NewWebSocketHandler(hub *ws.Hub, relay services.RelayServiceProvider) *WebSocketHandler {
	return &WebSocketHandler{hub: hub, relay: relay}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins (consider tightening this in production).
		return true
	},
}

// inboundMessage is the single event type accepted from clients.
type inboundMessage struct {
	Message string `json:"message"`
}

// Serve handles the WebSocket connection request. The route sits behind the
// auth middleware, so the claims are always present by the time we upgrade.
func (h *WebSocketHandler) Serve(w http.ResponseWriter, r *http.Request) {
	claims, ok := auth.ClaimsFromContext(r.Context())
	if !ok {
		http.Error(w, "Could not retrieve user from token", http.StatusInternalServerError)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("Failed to upgrade websocket connection")
		return
	}

	client := ws.NewClient(h.hub, conn, claims.Username)
	h.hub.Register <- client

	go client.WritePump()
	go client.ReadPump(h.handleIncomingWSMessage)
}

// handleIncomingWSMessage relays a frame received from a websocket client.
// Messages from one connection arrive here serially, so per-connection order
// is preserved through the relay.
func (h *WebSocketHandler) handleIncomingWSMessage(client *ws.Client, message []byte) {
	var msg inboundMessage
	if err := json.Unmarshal(message, &msg); err != nil {
		log.Error().Err(err).Bytes("message", message).Msg("Error decoding websocket message")
		return
	}
	if msg.Message == "" {
		return
	}

	if _, err := h.relay.Relay(client.Username, msg.Message); err != nil {
		log.Error().Err(err).Str("username", client.Username).Msg("Failed to relay websocket message")
	}
}
