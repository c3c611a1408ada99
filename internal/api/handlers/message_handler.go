package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/isdelr/chat-relay-be/internal/models"
	"github.com/isdelr/chat-relay-be/internal/services"
	"github.com/rs/zerolog/log"
)

// MessageHandler handles HTTP requests for the message log.
type MessageHandler struct {
	service services.MessageServiceProvider
	relay   services.RelayServiceProvider
}

// NewMessageHandler creates a new MessageHandler.
func NewMessageHandler(service services.MessageServiceProvider, relay services.RelayServiceProvider) *MessageHandler {
	return &MessageHandler{service: service, relay: relay}
}

// GetPage handles the paginated history read, most recent first.
func (h *MessageHandler) GetPage(w http.ResponseWriter, r *http.Request) {
	page, err := strconv.Atoi(r.URL.Query().Get("page"))
	if err != nil || page < 1 {
		page = services.DefaultPage
	}
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = services.DefaultPageSize
	}

	messages, err := h.service.GetPage(page, limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to retrieve messages")
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "message": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// Search handles the substring history search.
func (h *MessageHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("query")
	if query == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Missing query parameter"})
		return
	}

	messages, err := h.service.Search(query)
	if err != nil {
		log.Error().Err(err).Str("query", query).Msg("Failed to search messages")
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "message": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

// PostPayload defines the structure for inbound chat messages.
type PostPayload struct {
	Message string `json:"message"`
}

// Post persists an inbound message, broadcasts it along with the synthesized
// bot reply, and returns the reply to the sender.
func (h *MessageHandler) Post(w http.ResponseWriter, r *http.Request) {
	var payload PostPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Invalid request body"})
		return
	}
	if payload.Message == "" {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"success": false, "message": "Message is required"})
		return
	}

	botResponse, err := h.relay.RelayWithReply("user", payload.Message)
	if err != nil {
		if errors.Is(err, models.ErrStorageUnavailable) {
			log.Error().Err(err).Msg("Message append failed, broadcast aborted")
			writeJSON(w, http.StatusServiceUnavailable, map[string]interface{}{"success": false, "message": "Storage unavailable"})
			return
		}
		log.Error().Err(err).Msg("Failed to process message")
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"success": false, "message": "Internal server error"})
		return
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{"success": true, "botResponse": botResponse})
}
