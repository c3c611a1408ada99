package monitoring

import (
	"time"

	ws "github.com/isdelr/chat-relay-be/internal/websocket"
	"github.com/rs/zerolog/log"
)

// PresenceUpdater periodically broadcasts the live connection count to every
// connected client. Frames are only sent when the count changed.
type PresenceUpdater struct {
	hub    *ws.Hub
	ticker *time.Ticker
	done   chan bool
	last   int
}

// NewPresenceUpdater creates a new PresenceUpdater.
func NewPresenceUpdater(hub *ws.Hub) *PresenceUpdater {
	return &PresenceUpdater{
		hub:  hub,
		done: make(chan bool),
		last: -1,
	}
}

// Run starts the periodic updates.
func (pu *PresenceUpdater) Run() {
	log.Info().Msg("Starting presence updater...")
	pu.ticker = time.NewTicker(15 * time.Second)
	defer pu.ticker.Stop()

	for {
		select {
		case <-pu.done:
			log.Info().Msg("Stopping presence updater.")
			return
		case <-pu.ticker.C:
			pu.broadcastCount()
		}
	}
}

// Stop halts the periodic updates.
func (pu *PresenceUpdater) Stop() {
	pu.done <- true
}

func (pu *PresenceUpdater) broadcastCount() {
	count := pu.hub.Count()
	if count == pu.last {
		return
	}
	pu.last = count
	if count == 0 {
		// Nobody left to tell.
		return
	}
	pu.hub.Publish(ws.NewPresenceFrame(count))
}
