package monitoring

import (
	"time"

	"github.com/isdelr/chat-relay-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// RetentionPruner deletes messages older than the configured age on a cron
// schedule. A zero maxAge disables pruning entirely.
type RetentionPruner struct {
	messages services.MessageServiceProvider
	schedule cron.Schedule
	maxAge   time.Duration
	ticker   *time.Ticker
	done     chan bool
	nextRun  time.Time
}

// NewRetentionPruner parses the cron expression and builds a pruner.
func NewRetentionPruner(messages services.MessageServiceProvider, cronExpr string, maxAge time.Duration) (*RetentionPruner, error) {
	schedule, err := cron.ParseStandard(cronExpr)
	if err != nil {
		return nil, err
	}
	return &RetentionPruner{
		messages: messages,
		schedule: schedule,
		maxAge:   maxAge,
		done:     make(chan bool),
	}, nil
}

// Run starts the pruner's ticking loop.
func (p *RetentionPruner) Run() {
	if p.maxAge <= 0 {
		log.Info().Msg("Message retention pruning disabled")
		<-p.done
		return
	}

	log.Info().Dur("max_age", p.maxAge).Msg("Starting message retention pruner...")
	p.nextRun = p.schedule.Next(time.Now())
	p.ticker = time.NewTicker(1 * time.Minute)
	defer p.ticker.Stop()

	for {
		select {
		case <-p.done:
			log.Info().Msg("Stopping message retention pruner.")
			return
		case <-p.ticker.C:
			now := time.Now()
			if now.After(p.nextRun) {
				p.prune(now)
				p.nextRun = p.schedule.Next(now)
			}
		}
	}
}

// Stop halts the pruner.
func (p *RetentionPruner) Stop() {
	p.done <- true
}

func (p *RetentionPruner) prune(now time.Time) {
	cutoff := now.Add(-p.maxAge)
	deleted, err := p.messages.DeleteOlderThan(cutoff)
	if err != nil {
		log.Error().Err(err).Msg("RetentionPruner: failed to delete old messages")
		return
	}
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Time("cutoff", cutoff).Msg("Pruned old messages")
	}
}
