// If you are AI: This file is the Channel actor (spec §4.3): a named live
// stream's single-writer owner. Cache updates, broadcast, replay snapshots
// and (on origin) registry heartbeats all happen on one goroutine driven by
// the mailbox, so no field inside a Channel is ever touched concurrently.

package channel

import (
	"time"

	"github.com/rs/zerolog"

	"xlive/internal/actor"
	"xlive/internal/bus"
	"xlive/internal/frame"
)

// State is the Channel actor's lifecycle stage.
type State int32

const (
	Active State = iota
	Closing
	Terminated
)

func (s State) String() string {
	switch s {
	case Active:
		return "active"
	case Closing:
		return "closing"
	case Terminated:
		return "terminated"
	default:
		return "unknown"
	}
}

// UpstreamForwarder mirrors locally published frames to the next tier up
// (edge → cache). Only consulted for Packet, never for PacketFromOrigin.
type UpstreamForwarder interface {
	Forward(frame.Frame) error
}

// Announcer drives the registry heartbeat for an origin-resident channel.
// Implementations own the UDP socket; the Channel only calls Announce/Withdraw.
type Announcer interface {
	Announce(name string) error
	Withdraw(name string) error
}

const heartbeatInterval = 1 * time.Second

// Snapshot is the atomic reply to InitData: the cache as it stood at the
// moment the Channel processed the request.
type Snapshot struct {
	Frames []frame.Frame
}

type packetMsg struct {
	f          frame.Frame
	fromOrigin bool
}

type initDataMsg struct {
	reply chan Snapshot
}

type disconnectMsg struct{}

// Channel is a named live stream: cache, broadcast bus, and (on origin) a
// registry announcer, all owned by a single actor goroutine.
type Channel struct {
	Name string

	mailbox   *actor.Mailbox
	bus       *bus.Bus
	cache     *Cache
	forwarder UpstreamForwarder
	announcer Announcer
	onClosed  func()
	log       zerolog.Logger

	state State
}

// Options configures a new Channel.
type Options struct {
	Name      string
	FullGOP   bool
	Forwarder UpstreamForwarder // nil unless this node mirrors locally published frames upstream
	Announcer Announcer         // non-nil only on origin with a registry configured
	OnClosed  func()            // best-effort hook invoked once the actor terminates
	Logger    zerolog.Logger
}

// New allocates a Channel and starts its actor goroutine. Callers obtain a
// Bus to hand to subscribers via Bus().
func New(opts Options) *Channel {
	c := &Channel{
		Name:      opts.Name,
		mailbox:   actor.NewMailbox(),
		bus:       bus.New(),
		cache:     NewCache(opts.FullGOP),
		forwarder: opts.Forwarder,
		announcer: opts.Announcer,
		onClosed:  opts.OnClosed,
		log:       opts.Logger.With().Str("channel", opts.Name).Logger(),
		state:     Active,
	}
	go c.run()
	return c
}

// Bus exposes the broadcast bus for attaching new subscribers.
func (c *Channel) Bus() *bus.Bus { return c.bus }

// SubscriberCount reports how many subscribers are currently attached.
func (c *Channel) SubscriberCount() int { return c.bus.Count() }

// Packet delivers a frame from a local publisher adapter.
func (c *Channel) Packet(f frame.Frame) {
	c.mailbox.Send(packetMsg{f: f, fromOrigin: false})
}

// PacketFromOrigin delivers a frame read from the upstream puller.
func (c *Channel) PacketFromOrigin(f frame.Frame) {
	c.mailbox.Send(packetMsg{f: f, fromOrigin: true})
}

// InitData requests a fast-start snapshot of the cache. It blocks until the
// actor has produced the snapshot or has terminated, in which case ok is false.
func (c *Channel) InitData() (Snapshot, bool) {
	reply := make(chan Snapshot, 1)
	c.mailbox.Send(initDataMsg{reply: reply})
	snap, ok := <-reply
	return snap, ok
}

// Disconnect signals the actor to close after draining its current mailbox.
func (c *Channel) Disconnect() {
	c.mailbox.Send(disconnectMsg{})
}

func (c *Channel) run() {
	var heartbeat *time.Ticker
	var heartbeatC <-chan time.Time
	if c.announcer != nil {
		if err := c.announcer.Announce(c.Name); err != nil {
			c.log.Warn().Err(err).Msg("initial registry announce failed")
		}
		heartbeat = time.NewTicker(heartbeatInterval)
		heartbeatC = heartbeat.C
		defer heartbeat.Stop()
	}

	closing := false

	for {
		select {
		case msg, ok := <-c.mailbox.C():
			if !ok {
				c.terminate()
				return
			}
			switch m := msg.(type) {
			case packetMsg:
				c.handlePacket(m)
			case initDataMsg:
				c.handleInitData(m)
			case disconnectMsg:
				// Closing the mailbox stops new sends from being accepted;
				// already-queued messages still drain through this same loop
				// until C() reports closed, per the Active->Closing->Terminated
				// state machine.
				closing = true
				c.state = Closing
				c.mailbox.Close()
			}

		case <-heartbeatC:
			if closing {
				continue
			}
			if err := c.announcer.Announce(c.Name); err != nil {
				c.log.Warn().Err(err).Msg("registry heartbeat failed")
			}
		}
	}
}

func (c *Channel) handlePacket(m packetMsg) {
	c.cache.Update(m.f)
	if c.bus.Count() > 0 {
		c.bus.Publish(m.f)
	}
	if !m.fromOrigin && c.forwarder != nil {
		if err := c.forwarder.Forward(m.f); err != nil {
			c.log.Warn().Err(err).Msg("upstream mirror send failed, continuing locally")
		}
	}
}

func (c *Channel) handleInitData(m initDataMsg) {
	defer close(m.reply)
	select {
	case m.reply <- Snapshot{Frames: c.cache.Replay()}:
	default:
	}
}

func (c *Channel) terminate() {
	c.state = Terminated
	c.bus.CloseAll()
	if c.announcer != nil {
		if err := c.announcer.Withdraw(c.Name); err != nil {
			c.log.Warn().Err(err).Msg("registry withdraw failed")
		}
	}
	if c.onClosed != nil {
		c.onClosed()
	}
}
