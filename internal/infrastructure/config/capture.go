package config

// CaptureConfig configures pkg/capture.Server: where captured requests
// are written on disk and which port the catch-all ingestion listener
// binds to (spec.md §6.6 persisted-state layout).
type CaptureConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Port         int    `mapstructure:"port"`
	Dir          string `mapstructure:"dir"`
	MaxBodyBytes int    `mapstructure:"max_body_bytes"`
}

// ReplayConfig selects and tunes the webhook.ReplayStore backend
// (spec.md §4.3/§9: memory for a single process, redis for multiple).
type ReplayConfig struct {
	Backend       string `mapstructure:"backend"` // memory|redis
	RedisAddr     string `mapstructure:"redis_addr"`
	RedisPassword string `mapstructure:"redis_password"`
	RedisDB       int    `mapstructure:"redis_db"`
	ToleranceSec  int64  `mapstructure:"tolerance_sec"`
	InFlightSec   int64  `mapstructure:"in_flight_sec"`
	CommitSec     int64  `mapstructure:"commit_sec"`
	MaxEntries    int    `mapstructure:"max_entries"`
}
