package websocket

import "encoding/json"

// ChatFrame is the single chat event type pushed to connected clients.
type ChatFrame struct {
	User    string `json:"user"`
	Message string `json:"message"`
}

// PresenceFrame reports the live connection count.
type PresenceFrame struct {
	Event   string `json:"event"`
	Clients int    `json:"clients"`
}

// NewChatFrame encodes a chat event for broadcast.
func NewChatFrame(user, message string) []byte {
	data, _ := json.Marshal(ChatFrame{User: user, Message: message})
	return data
}

// NewPresenceFrame encodes a presence event for broadcast.
func NewPresenceFrame(clients int) []byte {
	data, _ := json.Marshal(PresenceFrame{Event: "presence", Clients: clients})
	return data
}
