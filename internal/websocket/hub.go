package websocket

import "github.com/rs/zerolog/log"

// Hub maintains the set of active clients and broadcasts messages to them.
// The client set is owned exclusively by the Run goroutine; connection
// handlers never touch it directly.
type Hub struct {
	// Registered clients.
	clients map[*Client]bool

	// Inbound messages from the relay for global broadcast.
	Broadcast chan []byte

	// Register requests from the clients.
	Register chan *Client

	// Unregister requests from clients.
	Unregister chan *Client

	// Count requests, answered with the live client total.
	count chan chan int
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		Broadcast:  make(chan []byte),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		clients:    make(map[*Client]bool),
		count:      make(chan chan int),
	}
}

// Run starts the Hub's message processing loop.
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.clients[client] = true
			log.Info().Int("total_clients", len(h.clients)).Msg("Client connected")
		case client := <-h.Unregister:
			// Idempotent: clients can disconnect during any stage of
			// processing, so a repeat unregister is a no-op.
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.Send)
				log.Info().Int("total_clients", len(h.clients)).Msg("Client disconnected")
			}
		case message := <-h.Broadcast:
			// Enqueue only; the actual socket write happens in each
			// client's WritePump. A full Send buffer means the client
			// stopped draining, so it is dropped here.
			for client := range h.clients {
				select {
				case client.Send <- message:
				default:
					close(client.Send)
					delete(h.clients, client)
				}
			}
		case reply := <-h.count:
			reply <- len(h.clients)
		}
	}
}

// Publish delivers a frame to every currently registered client.
func (h *Hub) Publish(message []byte) {
	h.Broadcast <- message
}

// Count reports the number of live clients.
func (h *Hub) Count() int {
	reply := make(chan int, 1)
	h.count <- reply
	return <-reply
}
