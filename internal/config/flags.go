// If you are AI: This file defines the per-node CLI flag sets (spec §6's
// CLI table plus the ambient `-log-format` flag every node shares). pflag
// gives the dual short/long form the table specifies (e.g. -r/--register).

package config

import "github.com/spf13/pflag"

func logFormatFlag(fs *pflag.FlagSet) *string {
	return fs.String("log-format", "console", "log output format: console or json")
}

// OriginConfig configures the origin binary.
type OriginConfig struct {
	Register  string // registry UDP address; empty disables heartbeating
	LogFormat string
}

// ParseOrigin parses origin's flags from args (typically os.Args[1:]).
func ParseOrigin(args []string) (OriginConfig, error) {
	fs := pflag.NewFlagSet("origin", pflag.ContinueOnError)
	register := fs.StringP("register", "r", "127.0.0.1:9336", "registry UDP address; empty disables")
	logFormat := logFormatFlag(fs)
	if err := fs.Parse(args); err != nil {
		return OriginConfig{}, err
	}
	return OriginConfig{Register: *register, LogFormat: *logFormat}, nil
}

// CacheConfig configures the cache binary.
type CacheConfig struct {
	Register  string // registry UDP address
	Origin    string // fallback origin address if Register is empty
	LogFormat string
}

// ParseCache parses cache's flags from args.
func ParseCache(args []string) (CacheConfig, error) {
	fs := pflag.NewFlagSet("cache", pflag.ContinueOnError)
	register := fs.StringP("register", "r", "127.0.0.1:9336", "registry UDP address")
	origin := fs.StringP("origin", "o", "127.0.0.1:9878", "fallback origin address if registry is empty")
	logFormat := logFormatFlag(fs)
	if err := fs.Parse(args); err != nil {
		return CacheConfig{}, err
	}
	return CacheConfig{Register: *register, Origin: *origin, LogFormat: *logFormat}, nil
}

// EdgeConfig configures the edge binary.
type EdgeConfig struct {
	Register  string // registry address; preferred over Origin/Cache if set
	Origin    string // origin address
	Cache     string // cache address; preferred over Origin if set
	Bind      string // realtime-streaming listen address
	LogFormat string
}

// ParseEdge parses edge's flags from args.
func ParseEdge(args []string) (EdgeConfig, error) {
	fs := pflag.NewFlagSet("edge", pflag.ContinueOnError)
	register := fs.StringP("register", "r", "", "registry address; preferred if set")
	origin := fs.StringP("origin", "o", "127.0.0.1:9878", "origin address")
	cache := fs.StringP("cache", "c", "", "cache address; preferred over origin if set")
	bind := fs.StringP("bind", "b", "[::]:1935", "realtime-streaming listen address")
	logFormat := logFormatFlag(fs)
	if err := fs.Parse(args); err != nil {
		return EdgeConfig{}, err
	}
	return EdgeConfig{Register: *register, Origin: *origin, Cache: *cache, Bind: *bind, LogFormat: *logFormat}, nil
}

// MonitorFlags configures the monitor binary's flags. The actual host list
// lives in the TOML file named by ConfigPath (see monitor.go).
type MonitorFlags struct {
	ConfigPath string
	LogFormat  string
}

// ParseMonitor parses the monitor's flags from args.
func ParseMonitor(args []string) (MonitorFlags, error) {
	fs := pflag.NewFlagSet("monitor", pflag.ContinueOnError)
	path := fs.StringP("config", "c", "config.toml", "TOML file listing hosts = [{name, addr}]")
	logFormat := logFormatFlag(fs)
	if err := fs.Parse(args); err != nil {
		return MonitorFlags{}, err
	}
	return MonitorFlags{ConfigPath: *path, LogFormat: *logFormat}, nil
}

// RegisterFlags configures the registry binary's flags.
type RegisterFlags struct {
	LogFormat string
}

// ParseRegister parses the registry binary's flags from args.
func ParseRegister(args []string) (RegisterFlags, error) {
	fs := pflag.NewFlagSet("register", pflag.ContinueOnError)
	logFormat := logFormatFlag(fs)
	if err := fs.Parse(args); err != nil {
		return RegisterFlags{}, err
	}
	return RegisterFlags{LogFormat: *logFormat}, nil
}
