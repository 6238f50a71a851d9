// If you are AI: This file adapts a registry.Client into the
// channel.Announcer interface, so the Channel actor's heartbeat loop never
// needs to know the registry's wire format.

package heartbeat

import "xlive/internal/registry"

// Announcer drives origin channels' registry presence through one UDP client
// connection; the origin node shares a single Announcer across its channels.
type Announcer struct {
	client *registry.Client
}

// Dial opens a registry client for heartbeat announcements.
func Dial(registryAddr string) (*Announcer, error) {
	client, err := registry.Dial(registryAddr)
	if err != nil {
		return nil, err
	}
	return &Announcer{client: client}, nil
}

// Announce sends Register{Set, name}.
func (a *Announcer) Announce(name string) error {
	return a.client.Set(name)
}

// Withdraw sends Register{Delete, name}.
func (a *Announcer) Withdraw(name string) error {
	return a.client.Delete(name)
}

// Close releases the underlying UDP socket.
func (a *Announcer) Close() error {
	return a.client.Close()
}
