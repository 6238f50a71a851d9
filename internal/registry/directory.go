// If you are AI: This file is the registry's soft-state directory (spec
// §4.7): two TTL'd maps, channel name -> announcer and announcer address ->
// last-seen, the latter kept independently for /servers_info.

package registry

import (
	"net"
	"sync"
	"time"
)

// TTL is how long a Set (or an announcer's latest datagram) remains valid.
const TTL = 10 * time.Second

type channelEntry struct {
	addr     *net.UDPAddr
	lastSeen time.Time
}

// Directory is the registry's in-memory state. The UDP server loop drives
// every write and the HTTP query handlers drive reads from their own
// goroutines, so a RWMutex guards both maps rather than relying on callers
// to serialize access themselves.
type Directory struct {
	mu       sync.RWMutex
	channels map[string]channelEntry
	servers  map[string]time.Time // announcer address string -> last seen
	now      func() time.Time
}

// NewDirectory creates an empty directory. now defaults to time.Now; tests
// may override it to exercise TTL expiry deterministically.
func NewDirectory(now func() time.Time) *Directory {
	if now == nil {
		now = time.Now
	}
	return &Directory{
		channels: make(map[string]channelEntry),
		servers:  make(map[string]time.Time),
		now:      now,
	}
}

// Set upserts the channel's announcer address and the announcer's own
// liveness entry.
func (d *Directory) Set(name string, addr *net.UDPAddr) {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	d.channels[name] = channelEntry{addr: addr, lastSeen: now}
	d.servers[addr.String()] = now
}

// Touch records that addr is alive without associating it with a channel,
// used for every inbound datagram so /servers_info reflects Get/Delete
// senders too, not only Set announcers.
func (d *Directory) Touch(addr *net.UDPAddr) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.servers[addr.String()] = d.now()
}

// Get returns the live announcer address for name, evicting it first if its
// TTL has expired.
func (d *Directory) Get(name string) (*net.UDPAddr, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()
	entry, ok := d.channels[name]
	if !ok {
		return nil, false
	}
	if d.now().Sub(entry.lastSeen) >= TTL {
		delete(d.channels, name)
		return nil, false
	}
	return entry.addr, true
}

// Delete drops the channel's entry unconditionally.
func (d *Directory) Delete(name string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.channels, name)
}

// Channels returns a snapshot of {name -> announcer address} for live entries.
func (d *Directory) Channels() map[string]string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	out := make(map[string]string, len(d.channels))
	now := d.now()
	for name, entry := range d.channels {
		if now.Sub(entry.lastSeen) < TTL {
			out[name] = entry.addr.String()
		}
	}
	return out
}

// Servers returns the announcer addresses seen within the TTL window.
func (d *Directory) Servers() []string {
	d.mu.RLock()
	defer d.mu.RUnlock()
	now := d.now()
	out := make([]string, 0, len(d.servers))
	for addr, lastSeen := range d.servers {
		if now.Sub(lastSeen) < TTL {
			out = append(out, addr)
		}
	}
	return out
}
