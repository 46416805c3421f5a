package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/heartmarshall/pkp-import/internal/adapter/postgres"
	"github.com/heartmarshall/pkp-import/internal/adapter/postgres/article"
	"github.com/heartmarshall/pkp-import/internal/adapter/postgres/contact"
	"github.com/heartmarshall/pkp-import/internal/adapter/postgres/issue"
	"github.com/heartmarshall/pkp-import/internal/adapter/postgres/journal"
	"github.com/heartmarshall/pkp-import/internal/adapter/postgres/journaluser"
	"github.com/heartmarshall/pkp-import/internal/adapter/postgres/language"
	"github.com/heartmarshall/pkp-import/internal/adapter/postgres/publisher"
	"github.com/heartmarshall/pkp-import/internal/adapter/postgres/section"
	"github.com/heartmarshall/pkp-import/internal/adapter/postgres/user"
	"github.com/heartmarshall/pkp-import/internal/config"
	"github.com/heartmarshall/pkp-import/internal/legacy"
	"github.com/heartmarshall/pkp-import/internal/service/importer"
	"github.com/heartmarshall/pkp-import/pkg/ctxutil"
)

// Report summarizes a journal import run.
type Report struct {
	*importer.Result
	Members int
}

// ImportJournal connects to the legacy and target databases, imports the
// legacy journal oldID and then its memberships. The run is bounded by
// cfg.Import.Timeout.
func ImportJournal(ctx context.Context, cfg *config.Config, log *slog.Logger, oldID int64) (*Report, error) {
	ctx, cancel := context.WithTimeout(ctx, cfg.Import.Timeout)
	defer cancel()
	ctx, _ = ctxutil.NewRunID(ctx)

	log.InfoContext(ctx, "starting import",
		slog.String("version", BuildVersion()),
		slog.String("legacy_driver", cfg.Legacy.Driver),
		slog.Int64("legacy_journal_id", oldID),
	)

	legacyDB, err := legacy.Open(ctx, cfg.Legacy, log)
	if err != nil {
		return nil, err
	}
	defer legacyDB.Close()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect to target database: %w", err)
	}
	defer pool.Close()

	repos := importer.Repos{
		Languages:  language.New(pool),
		Publishers: publisher.New(pool),
		Contacts:   contact.New(pool),
		Users:      user.New(pool),
		Journals:   journal.New(pool),
		Sections:   section.New(pool),
		Issues:     issue.New(pool),
		Articles:   article.New(pool),
		Members:    journaluser.New(pool),
	}
	src := legacy.NewSource(legacyDB, cfg.Legacy.Driver)
	svc := importer.NewService(log, postgres.NewTxManager(pool), src, repos, cfg.Import)

	attempts := cfg.Import.MaxAttempts
	res, err := retryTransient(ctx, log, attempts, func() (*importer.Result, error) {
		return svc.ImportJournal(ctx, oldID)
	})
	if err != nil {
		return nil, err
	}

	members, err := retryTransient(ctx, log, attempts, func() (int, error) {
		return svc.ImportJournalUsers(ctx, res.NewID, oldID)
	})
	if err != nil {
		return &Report{Result: res}, err
	}

	return &Report{Result: res, Members: members}, nil
}

// retryTransient runs op up to attempts times while it fails with a
// serialization failure or deadlock. Every attempt runs in a fresh
// transaction, so a failed one leaves nothing behind.
func retryTransient[T any](ctx context.Context, log *slog.Logger, attempts int, op func() (T, error)) (T, error) {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 200 * time.Millisecond

	var retries uint64
	if attempts > 1 {
		retries = uint64(attempts - 1)
	}

	return backoff.RetryNotifyWithData(
		func() (T, error) {
			v, err := op()
			if err != nil && !postgres.IsTransient(err) {
				return v, backoff.Permanent(err)
			}
			return v, err
		},
		backoff.WithContext(backoff.WithMaxRetries(b, retries), ctx),
		func(err error, wait time.Duration) {
			log.WarnContext(ctx, "transient failure, retrying",
				slog.String("error", err.Error()),
				slog.Duration("wait", wait),
			)
		},
	)
}

// Migrate applies pending target schema migrations.
func Migrate(ctx context.Context, cfg *config.Config, log *slog.Logger) error {
	start := time.Now()
	applied, err := postgres.Migrate(ctx, cfg.Database.DSN)
	if err != nil {
		return err
	}
	log.Info("migrations applied",
		slog.Any("versions", applied),
		slog.Duration("took", time.Since(start)),
	)
	return nil
}
