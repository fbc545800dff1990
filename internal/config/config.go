// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults, Load(ctx) to layer
//   file and environment sources on top.
// - External errors are wrapped via this package's sentinel kinds.
package config

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// RosterPath points to the class roster YAML file served in HTTP mode.
	RosterPath string `koanf:"roster_path"`

	// WatchRoster enables rebuilding the store when the roster file changes.
	WatchRoster bool `koanf:"watch_roster"`

	// SubjectCount is the default subject count offered by the console.
	SubjectCount int `koanf:"subject_count"`

	// MaxLeaderboardLimit caps GET /leaderboard?limit.
	MaxLeaderboardLimit int `koanf:"max_leaderboard_limit"`
}

// New creates a Config populated with defaults.
func New() *Config {
	return &Config{
		LogLevel:            "info",
		Addr:                ":9080",
		RosterPath:          "roster.yaml",
		WatchRoster:         true,
		SubjectCount:        5,
		MaxLeaderboardLimit: 100,
	}
}
