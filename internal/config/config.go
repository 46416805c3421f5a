package config

import "time"

// Config is the root application configuration.
type Config struct {
	Database DatabaseConfig `yaml:"database"`
	Legacy   LegacyConfig   `yaml:"legacy"`
	Import   ImportConfig   `yaml:"import"`
	Log      LogConfig      `yaml:"log"`
}

// DatabaseConfig holds PostgreSQL connection settings for the target store.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"                env-required:"true"`
	MaxConns        int32         `yaml:"max_conns"          env:"DATABASE_MAX_CONNS"          env-default:"5"`
	MinConns        int32         `yaml:"min_conns"          env:"DATABASE_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DATABASE_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DATABASE_MAX_CONN_IDLE_TIME" env-default:"30m"`
	ApplicationName string        `yaml:"application_name"   env:"DATABASE_APPLICATION_NAME"   env-default:"pkp-import"`
	// LockTimeout bounds how long a statement waits on a row lock held by a
	// concurrent import. Zero waits indefinitely.
	LockTimeout time.Duration `yaml:"lock_timeout" env:"DATABASE_LOCK_TIMEOUT" env-default:"30s"`
}

// LegacyConfig holds connection settings for the legacy OJS database.
// Command-line flags override these values.
type LegacyConfig struct {
	Driver   string `yaml:"driver"   env:"LEGACY_DRIVER"   env-default:"mysql"`
	Host     string `yaml:"host"     env:"LEGACY_HOST"     env-default:"localhost"`
	Port     int    `yaml:"port"     env:"LEGACY_PORT"`
	User     string `yaml:"user"     env:"LEGACY_USER"`
	Password string `yaml:"password" env:"LEGACY_PASSWORD"`
	Name     string `yaml:"name"     env:"LEGACY_NAME"`

	ConnectTimeout time.Duration `yaml:"connect_timeout" env:"LEGACY_CONNECT_TIMEOUT" env-default:"30s"`
}

// ImportConfig holds import run settings.
type ImportConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"IMPORT_TIMEOUT" env-default:"30m"`
	// RetryMaxElapsed bounds the insert-or-fetch retry of reference entities.
	RetryMaxElapsed time.Duration `yaml:"retry_max_elapsed" env:"IMPORT_RETRY_MAX_ELAPSED" env-default:"5s"`
	// MaxAttempts bounds how often a run is repeated after a serialization
	// failure or deadlock in the target database.
	MaxAttempts int `yaml:"max_attempts" env:"IMPORT_MAX_ATTEMPTS" env-default:"3"`
	// PasswordHashCost is the bcrypt cost of placeholder passwords of migrated users.
	PasswordHashCost int `yaml:"password_hash_cost" env:"IMPORT_PASSWORD_HASH_COST" env-default:"10"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// DefaultPort returns the conventional port of the legacy driver when none is configured.
func (c LegacyConfig) DefaultPort() int {
	if c.Port != 0 {
		return c.Port
	}
	switch c.Driver {
	case "mysql":
		return 3306
	case "pgx":
		return 5432
	default:
		return 0
	}
}
