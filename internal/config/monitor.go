// If you are AI: This file decodes the monitor's TOML host list (spec §6:
// "-c/--config: TOML file listing hosts = [{name, addr}]").

package config

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"
)

// Host is one node the monitor polls for GET /monitor.
type Host struct {
	Name string `toml:"name"`
	Addr string `toml:"addr"`
}

// MonitorConfig is the decoded contents of the monitor's TOML file.
type MonitorConfig struct {
	Hosts []Host `toml:"hosts"`
}

// LoadMonitorConfig reads and decodes path.
func LoadMonitorConfig(path string) (*MonitorConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read monitor config: %w", err)
	}
	var cfg MonitorConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("decode monitor config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects a monitor config with no hosts or a host missing a name/addr.
func (c *MonitorConfig) Validate() error {
	if len(c.Hosts) == 0 {
		return fmt.Errorf("monitor config: at least one host is required")
	}
	seen := make(map[string]bool, len(c.Hosts))
	for _, h := range c.Hosts {
		if h.Name == "" || h.Addr == "" {
			return fmt.Errorf("monitor config: host entries require both name and addr, got %+v", h)
		}
		if seen[h.Name] {
			return fmt.Errorf("monitor config: duplicate host name %q", h.Name)
		}
		seen[h.Name] = true
	}
	return nil
}
