package config

// Config holds all application configuration.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" validate:"required"`
	Board    BoardConfig    `mapstructure:"board" validate:"required"`
	Database DatabaseConfig `mapstructure:"database"`
	Feed     FeedConfig     `mapstructure:"feed" validate:"required"`
}

// ServerConfig contains all server-related configuration settings.
type ServerConfig struct {
	Port     int    `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel string `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	// ShutdownTimeoutSeconds bounds graceful shutdown.
	ShutdownTimeoutSeconds int `mapstructure:"shutdown_timeout_seconds" validate:"gt=0"`
}

// BoardConfig names the board the server hosts.
type BoardConfig struct {
	Name string `mapstructure:"name" validate:"required"`
}

// DatabaseConfig configures the activity journal. An empty URL disables it.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver" validate:"required,oneof=pgx sqlite"`
	URL    string `mapstructure:"url"`
}

// Enabled reports whether a journal database is configured.
func (c DatabaseConfig) Enabled() bool {
	return c.URL != ""
}

// FeedConfig tunes the websocket activity feed.
type FeedConfig struct {
	// BufferSize is the number of events queued per subscriber before it is
	// dropped as too slow.
	BufferSize int `mapstructure:"buffer_size" validate:"gt=0"`
}
