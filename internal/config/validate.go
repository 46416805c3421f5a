package config

import (
	"fmt"
	"slices"
)

// SupportedLegacyDrivers lists the database/sql drivers the legacy reader can use.
var SupportedLegacyDrivers = []string{"mysql", "pgx", "sqlite3"}

// Validate performs business-rule validation on the loaded configuration.
// It must be called after loading; Load calls it automatically.
func (c *Config) Validate() error {
	if err := c.Legacy.Validate(); err != nil {
		return fmt.Errorf("legacy: %w", err)
	}

	if c.Import.Timeout <= 0 {
		return fmt.Errorf("import.timeout must be > 0 (got %s)", c.Import.Timeout)
	}
	if c.Import.RetryMaxElapsed < 0 {
		return fmt.Errorf("import.retry_max_elapsed must be >= 0 (got %s)", c.Import.RetryMaxElapsed)
	}

	if c.Import.MaxAttempts < 1 {
		return fmt.Errorf("import.max_attempts must be >= 1 (got %d)", c.Import.MaxAttempts)
	}

	if c.Import.PasswordHashCost < 4 || c.Import.PasswordHashCost > 31 {
		return fmt.Errorf("import.password_hash_cost must be in 4..31 (got %d)", c.Import.PasswordHashCost)
	}

	if c.Database.LockTimeout < 0 {
		return fmt.Errorf("database.lock_timeout must be >= 0 (got %s)", c.Database.LockTimeout)
	}

	if c.Database.MinConns > c.Database.MaxConns {
		return fmt.Errorf("database.min_conns (%d) must not exceed max_conns (%d)", c.Database.MinConns, c.Database.MaxConns)
	}

	return nil
}

// Validate checks the legacy connection settings. It is also called by the
// CLI after flags have been applied.
func (c *LegacyConfig) Validate() error {
	if !slices.Contains(SupportedLegacyDrivers, c.Driver) {
		return fmt.Errorf("driver %q is not supported (want one of %v)", c.Driver, SupportedLegacyDrivers)
	}
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port must be in 0..65535 (got %d)", c.Port)
	}
	return nil
}
