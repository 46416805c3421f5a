package legacy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/go-sql-driver/mysql"
	_ "github.com/jackc/pgx/v5/stdlib" // pgx driver for database/sql
	_ "github.com/mattn/go-sqlite3"    // sqlite3 driver for database/sql

	"github.com/heartmarshall/pkp-import/internal/config"
)

// Supported database/sql driver names of the legacy store.
const (
	DriverMySQL    = "mysql"
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite3"
)

// DSN builds the driver-specific connection string for the legacy database.
func DSN(cfg config.LegacyConfig) (string, error) {
	port := strconv.Itoa(cfg.DefaultPort())

	switch cfg.Driver {
	case DriverMySQL:
		mc := mysql.NewConfig()
		mc.User = cfg.User
		mc.Passwd = cfg.Password
		mc.Net = "tcp"
		mc.Addr = net.JoinHostPort(cfg.Host, port)
		mc.DBName = cfg.Name
		mc.ParseTime = true
		return mc.FormatDSN(), nil

	case DriverPostgres:
		u := url.URL{
			Scheme: "postgres",
			Host:   net.JoinHostPort(cfg.Host, port),
			Path:   "/" + cfg.Name,
		}
		if cfg.User != "" {
			u.User = url.UserPassword(cfg.User, cfg.Password)
		}
		return u.String(), nil

	case DriverSQLite:
		if cfg.Name == "" {
			return "", errors.New("sqlite3: database path is required")
		}
		return "file:" + cfg.Name + "?mode=ro", nil

	default:
		return "", fmt.Errorf("unsupported legacy driver %q", cfg.Driver)
	}
}

// Open connects to the legacy database and verifies the connection.
// Transient network failures during the initial ping are retried with
// exponential backoff for up to cfg.ConnectTimeout.
func Open(ctx context.Context, cfg config.LegacyConfig, log *slog.Logger) (*sql.DB, error) {
	dsn, err := DSN(cfg)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(cfg.Driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("open legacy database: %w", err)
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = cfg.ConnectTimeout
	if bo.MaxElapsedTime <= 0 {
		bo.MaxElapsedTime = 30 * time.Second
	}

	attempt := 0
	err = backoff.Retry(func() error {
		attempt++
		err := db.PingContext(ctx)
		if err == nil {
			return nil
		}
		if !isRetryableError(err) {
			return backoff.Permanent(err)
		}
		log.Warn("legacy database not reachable, retrying",
			slog.String("driver", cfg.Driver),
			slog.Int("attempt", attempt),
			slog.String("error", err.Error()),
		)
		return err
	}, backoff.WithContext(bo, ctx))
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping legacy database: %w", err)
	}

	return db, nil
}

// isRetryableError returns true if the error is a transient connection error.
func isRetryableError(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return true
	}

	errStr := strings.ToLower(err.Error())
	for _, s := range []string{
		"driver: bad connection",
		"invalid connection",
		"broken pipe",
		"connection reset",
		"connection refused",
		"i/o timeout",
		"too many connections",
	} {
		if strings.Contains(errStr, s) {
			return true
		}
	}
	return false
}
