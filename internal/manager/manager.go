// If you are AI: This file is the Manager actor (spec §4.4): owns the
// channel directory and the trigger registry, and serializes every
// directory mutation through its own mailbox so Create/Join/Release never
// race each other.

package manager

import (
	"errors"

	"github.com/rs/zerolog"

	"xlive/internal/actor"
	"xlive/internal/bus"
	"xlive/internal/channel"
)

// ErrChannelExists is returned by Create when the name is already taken.
var ErrChannelExists = errors.New("manager: channel already exists")

// ErrNotFound is returned by Join when there is no local entry and either
// no upstream policy is configured or the upstream pull failed.
var ErrNotFound = errors.New("manager: channel not found")

// JoinKind tells the adapter whether the player's data is replayed from a
// pre-existing local cache or will begin arriving from a freshly opened
// upstream session.
type JoinKind int

const (
	Local JoinKind = iota
	Origin
)

// JoinResult is the reply to a successful Join.
type JoinResult struct {
	Kind       JoinKind
	Channel    *channel.Channel
	Subscriber *bus.Subscriber
}

// Puller resolves a directory miss by reaching upstream. It returns a
// freshly constructed, already-running Channel that the Manager will insert
// into its directory, or an error if the channel could not be located.
// nil on nodes with no upstream policy (origin).
type Puller func(name string) (*channel.Channel, error)

// TriggerEvent names a fan-out point triggers can subscribe to.
type TriggerEvent string

// CreateSession fires once per successful Create or upstream-installed Join.
const CreateSession TriggerEvent = "create_session"

// Trigger receives a best-effort, fire-and-forget notification.
type Trigger func(name string, sub *bus.Subscriber)

type createMsg struct {
	name       string
	newChannel func() *channel.Channel
	reply      chan createReply
}

type createReply struct {
	ch  *channel.Channel
	err error
}

type joinMsg struct {
	name  string
	reply chan joinReply
}

type joinReply struct {
	res JoinResult
	err error
}

type releaseMsg struct {
	name string
}

type registerTriggerMsg struct {
	event TriggerEvent
	fn    Trigger
}

type snapshotMsg struct {
	reply chan map[string]int
}

// Manager owns the channel directory. All public methods are safe for
// concurrent use; each is serialized onto the Manager's single actor goroutine.
type Manager struct {
	mailbox *actor.Mailbox
	puller  Puller
	log     zerolog.Logger

	directory map[string]*channel.Channel
	triggers  map[TriggerEvent][]Trigger
}

// New creates a Manager and starts its actor goroutine. puller may be nil
// on nodes with no upstream policy (origin); Join then fails fast on a miss.
func New(puller Puller, logger zerolog.Logger) *Manager {
	m := &Manager{
		mailbox:   actor.NewMailbox(),
		puller:    puller,
		log:       logger.With().Str("component", "manager").Logger(),
		directory: make(map[string]*channel.Channel),
		triggers:  make(map[TriggerEvent][]Trigger),
	}
	go m.run()
	return m
}

// Create installs a new channel for name, built by newChannel, unless one
// already exists. newChannel is invoked on the Manager's own goroutine only
// after the name is confirmed free, so it never races a concurrent Create.
func (m *Manager) Create(name string, newChannel func() *channel.Channel) (*channel.Channel, error) {
	reply := make(chan createReply, 1)
	m.mailbox.Send(createMsg{name: name, newChannel: newChannel, reply: reply})
	r := <-reply
	return r.ch, r.err
}

// Join attaches to an existing channel, or (if an upstream policy is
// configured) attempts to pull one into existence.
func (m *Manager) Join(name string) (JoinResult, error) {
	reply := make(chan joinReply, 1)
	m.mailbox.Send(joinMsg{name: name, reply: reply})
	r := <-reply
	return r.res, r.err
}

// Release removes name from the directory. It does not synchronously
// terminate the Channel; callers that own the publisher handle are
// responsible for calling Channel.Disconnect.
func (m *Manager) Release(name string) {
	m.mailbox.Send(releaseMsg{name: name})
}

// RegisterTrigger appends fn to the fan-out list for event. Best-effort,
// fire-and-forget: a panicking or slow trigger must not affect Create.
func (m *Manager) RegisterTrigger(event TriggerEvent, fn Trigger) {
	m.mailbox.Send(registerTriggerMsg{event: event, fn: fn})
}

// Snapshot returns a point-in-time {name -> subscriber count} mapping.
func (m *Manager) Snapshot() map[string]int {
	reply := make(chan map[string]int, 1)
	m.mailbox.Send(snapshotMsg{reply: reply})
	return <-reply
}

func (m *Manager) run() {
	for msg := range m.mailbox.C() {
		switch req := msg.(type) {
		case createMsg:
			m.handleCreate(req)
		case joinMsg:
			m.handleJoin(req)
		case releaseMsg:
			delete(m.directory, req.name)
		case registerTriggerMsg:
			m.triggers[req.event] = append(m.triggers[req.event], req.fn)
		case snapshotMsg:
			m.handleSnapshot(req)
		}
	}
}

func (m *Manager) handleCreate(req createMsg) {
	if _, exists := m.directory[req.name]; exists {
		req.reply <- createReply{err: ErrChannelExists}
		return
	}
	ch := req.newChannel()
	m.directory[req.name] = ch
	m.fireCreateSession(req.name, ch)
	req.reply <- createReply{ch: ch}
}

func (m *Manager) handleJoin(req joinMsg) {
	if ch, ok := m.directory[req.name]; ok {
		sub := ch.Bus().Attach()
		req.reply <- joinReply{res: JoinResult{Kind: Local, Channel: ch, Subscriber: sub}}
		return
	}

	if m.puller == nil {
		req.reply <- joinReply{err: ErrNotFound}
		return
	}

	ch, err := m.puller(req.name)
	if err != nil {
		req.reply <- joinReply{err: ErrNotFound}
		return
	}
	m.directory[req.name] = ch
	m.fireCreateSession(req.name, ch)
	sub := ch.Bus().Attach()
	req.reply <- joinReply{res: JoinResult{Kind: Origin, Channel: ch, Subscriber: sub}}
}

func (m *Manager) handleSnapshot(req snapshotMsg) {
	out := make(map[string]int, len(m.directory))
	for name, ch := range m.directory {
		out[name] = ch.SubscriberCount()
	}
	req.reply <- out
}

func (m *Manager) fireCreateSession(name string, ch *channel.Channel) {
	fns := m.triggers[CreateSession]
	if len(fns) == 0 {
		return
	}
	var sub *bus.Subscriber
	if ch != nil {
		sub = ch.Bus().Attach()
	}
	for _, fn := range fns {
		go func(fn Trigger) {
			defer func() {
				if r := recover(); r != nil {
					m.log.Warn().Interface("panic", r).Str("channel", name).Msg("create_session trigger panicked")
				}
			}()
			fn(name, sub)
		}(fn)
	}
}
