// If you are AI: This file lists the fixed listen addresses spec.md §6
// assigns to each node type; unlike the CLI flags above, these are not configurable.

package config

const (
	OriginInterNodeAddr = "0.0.0.0:9878"
	CacheInterNodeAddr  = "0.0.0.0:9888"
	EdgeHTTPAddr        = "[::]:3000"
	RegistryUDPAddr     = "0.0.0.0:9336"
	RegistryHTTPAddr    = "[::]:3033"
	MonitorHTTPAddr     = "[::]:3032"

	// OriginHTTPAddr and CacheHTTPAddr serve /monitor and /healthz; the
	// monitor aggregator polls them and the fixed-port table in spec.md §6
	// is silent on a port for these two (only edge's client-facing HTTP-FLV
	// port is named there), so these are this project's own assignment.
	OriginHTTPAddr = "0.0.0.0:3030"
	CacheHTTPAddr  = "0.0.0.0:3031"
)
