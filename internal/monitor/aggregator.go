// If you are AI: This file is the monitor's aggregator actor, grounded on
// original_source/xlive-monitor/src/monitor.rs: one mailbox collects each
// host's latest snapshot, a oneshot-style request reads the merged state.

package monitor

import (
	"github.com/rs/zerolog"

	"xlive/internal/actor"
)

type updateMsg struct {
	host   string
	counts map[string]int
}

type snapshotMsg struct {
	reply chan map[string]map[string]int
}

// Aggregator merges per-host channel snapshots into one nested view.
type Aggregator struct {
	mailbox *actor.Mailbox
	log     zerolog.Logger
}

// NewAggregator starts the aggregator's actor goroutine.
func NewAggregator(logger zerolog.Logger) *Aggregator {
	a := &Aggregator{
		mailbox: actor.NewMailbox(),
		log:     logger.With().Str("component", "monitor").Logger(),
	}
	go a.run()
	return a
}

// Update records host's latest {channel -> subscriberCount} snapshot.
func (a *Aggregator) Update(host string, counts map[string]int) {
	a.mailbox.Send(updateMsg{host: host, counts: counts})
}

// Snapshot returns the current {host -> {channel -> subscriberCount}} view.
func (a *Aggregator) Snapshot() map[string]map[string]int {
	reply := make(chan map[string]map[string]int, 1)
	a.mailbox.Send(snapshotMsg{reply: reply})
	return <-reply
}

func (a *Aggregator) run() {
	state := make(map[string]map[string]int)
	for msg := range a.mailbox.C() {
		switch m := msg.(type) {
		case updateMsg:
			state[m.host] = m.counts
		case snapshotMsg:
			out := make(map[string]map[string]int, len(state))
			for host, counts := range state {
				out[host] = counts
			}
			m.reply <- out
		}
	}
}
