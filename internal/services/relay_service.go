package services

import (
	"github.com/isdelr/chat-relay-be/internal/models"
	"github.com/isdelr/chat-relay-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

// BotResponse is the canned reply appended after every user message.
const BotResponse = "This is a bot response based on NLP analysis."

// BotAuthor tags messages synthesized by the responder.
const BotAuthor = "bot"

// MessagePublisher fans a frame out to every live connection.
type MessagePublisher interface {
	Publish(message []byte)
}

// RelayServiceProvider defines the interface for the broadcast relay.
type RelayServiceProvider interface {
	Relay(author, body string) (models.Message, error)
	RelayWithReply(author, body string) (string, error)
}

// RelayService persists inbound messages and fans them out to live
// connections. A message is never published before its append succeeds.
type RelayService struct {
	messages  MessageServiceProvider
	publisher MessagePublisher
}

// NewRelayService creates a new RelayService.
func NewRelayService(messages MessageServiceProvider, publisher MessagePublisher) *RelayService {
	return &RelayService{messages: messages, publisher: publisher}
}

// Relay persists one message and broadcasts it. If the append fails, nothing
// is broadcast and the storage error is returned to the sender.
func (s *RelayService) Relay(author, body string) (models.Message, error) {
	msg, err := s.messages.Append(models.Message{Author: author, Body: body})
	if err != nil {
		return models.Message{}, err
	}

	s.publisher.Publish(websocket.NewChatFrame(msg.Author, msg.Body))
	return msg, nil
}

// RelayWithReply relays the user message, then synthesizes and relays the
// bot reply. The reply is persisted independently: its failure does not roll
// back the user message, which is already durable and broadcast.
func (s *RelayService) RelayWithReply(author, body string) (string, error) {
	if _, err := s.Relay(author, body); err != nil {
		return "", err
	}

	if _, err := s.Relay(BotAuthor, BotResponse); err != nil {
		log.Error().Err(err).Msg("Failed to persist bot response")
	}

	return BotResponse, nil
}
