package importer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"

	"github.com/heartmarshall/pkp-import/internal/domain"
	"github.com/heartmarshall/pkp-import/internal/legacy"
)

const maxResolveRetries = 4

// errNotVisible is returned when an insert lost a natural-key race but the
// winning row cannot be read back yet.
var errNotVisible = errors.New("conflicting row not visible")

func retryPolicy(maxElapsed time.Duration) func() backoff.BackOff {
	return func() backoff.BackOff {
		b := backoff.NewExponentialBackOff()
		b.InitialInterval = 20 * time.Millisecond
		b.MaxElapsedTime = maxElapsed
		return backoff.WithMaxRetries(b, maxResolveRetries)
	}
}

// insertOrFetch returns the ID of the row found by find, creating it with
// create when absent. create reports false when a concurrent writer inserted
// the same natural key first; the row is then fetched again, retrying with b
// until it becomes visible.
func insertOrFetch(
	ctx context.Context,
	b backoff.BackOff,
	find func(ctx context.Context) (uuid.UUID, error),
	create func(ctx context.Context) (uuid.UUID, bool, error),
) (uuid.UUID, bool, error) {
	var created bool

	op := func() (uuid.UUID, error) {
		id, err := find(ctx)
		if err == nil {
			return id, nil
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return uuid.Nil, backoff.Permanent(err)
		}

		id, inserted, err := create(ctx)
		if err != nil {
			return uuid.Nil, backoff.Permanent(err)
		}
		if inserted {
			created = true
			return id, nil
		}

		id, err = find(ctx)
		if errors.Is(err, domain.ErrNotFound) {
			return uuid.Nil, errNotVisible
		}
		if err != nil {
			return uuid.Nil, backoff.Permanent(err)
		}
		return id, nil
	}

	id, err := backoff.RetryWithData(op, backoff.WithContext(b, ctx))
	return id, created, err
}

// ---------------------------------------------------------------------------
// Reference entities
// ---------------------------------------------------------------------------

const (
	kindPublisher   = "publisher"
	kindLanguage    = "language"
	kindContactType = "contact_type"
)

// refResolver finds or creates publishers, languages and contact types by
// natural key. Resolutions are memoized until Reset.
type refResolver struct {
	languages  languageRepo
	publishers publisherRepo
	contacts   contactRepo
	newBackOff func() backoff.BackOff
	log        *slog.Logger

	memo map[string]map[string]uuid.UUID
}

func newRefResolver(
	log *slog.Logger,
	languages languageRepo,
	publishers publisherRepo,
	contacts contactRepo,
	newBackOff func() backoff.BackOff,
) *refResolver {
	return &refResolver{
		languages:  languages,
		publishers: publishers,
		contacts:   contacts,
		newBackOff: newBackOff,
		log:        log,
		memo:       make(map[string]map[string]uuid.UUID),
	}
}

// Reset forgets all resolutions. It must be called after a rollback, since
// entities created in the rolled back transaction no longer exist.
func (r *refResolver) Reset() {
	clear(r.memo)
}

func (r *refResolver) resolveOrCreate(
	ctx context.Context,
	kind, key string,
	find func(ctx context.Context) (uuid.UUID, error),
	create func(ctx context.Context) (uuid.UUID, bool, error),
) (uuid.UUID, error) {
	if id, ok := r.memo[kind][key]; ok {
		return id, nil
	}

	id, created, err := insertOrFetch(ctx, r.newBackOff(), find, create)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve %s %q: %w", kind, key, err)
	}

	if r.memo[kind] == nil {
		r.memo[kind] = make(map[string]uuid.UUID)
	}
	r.memo[kind][key] = id

	r.log.DebugContext(ctx, "reference resolved",
		slog.String("kind", kind),
		slog.String("key", key),
		slog.String("id", id.String()),
		slog.Bool("created", created),
	)
	return id, nil
}

// ResolvePublisher returns the publisher named name, creating it with url and
// the localized about texts when it does not exist. An existing publisher is
// never modified.
func (r *refResolver) ResolvePublisher(ctx context.Context, name string, url *string, about []domain.PublisherTranslation) (uuid.UUID, error) {
	return r.resolveOrCreate(ctx, kindPublisher, name,
		func(ctx context.Context) (uuid.UUID, error) {
			p, err := r.publishers.GetByName(ctx, name)
			if err != nil {
				return uuid.Nil, err
			}
			return p.ID, nil
		},
		func(ctx context.Context) (uuid.UUID, bool, error) {
			p := domain.Publisher{
				ID:           uuid.New(),
				Name:         name,
				Email:        domain.PublisherPlaceholderEmail,
				Address:      domain.PlaceholderText,
				Phone:        domain.PlaceholderText,
				URL:          url,
				Translations: about,
			}
			inserted, err := r.publishers.InsertIfAbsent(ctx, &p)
			return p.ID, inserted, err
		},
	)
}

// UnknownPublisher returns the shared placeholder publisher.
func (r *refResolver) UnknownPublisher(ctx context.Context) (uuid.UUID, error) {
	url := domain.UnknownPublisherURL
	return r.ResolvePublisher(ctx, domain.UnknownPublisherName, &url, []domain.PublisherTranslation{
		{Locale: "en", About: domain.PlaceholderText},
	})
}

// ResolveLanguage returns the language with the two-letter code.
func (r *refResolver) ResolveLanguage(ctx context.Context, code string) (uuid.UUID, error) {
	return r.resolveOrCreate(ctx, kindLanguage, code,
		func(ctx context.Context) (uuid.UUID, error) {
			l, err := r.languages.GetByCode(ctx, code)
			if err != nil {
				return uuid.Nil, err
			}
			return l.ID, nil
		},
		func(ctx context.Context) (uuid.UUID, bool, error) {
			l := domain.NewLanguage(code)
			inserted, err := r.languages.InsertIfAbsent(ctx, &l)
			return l.ID, inserted, err
		},
	)
}

// ResolveContactType returns the contact type with the given name.
func (r *refResolver) ResolveContactType(ctx context.Context, name string) (uuid.UUID, error) {
	return r.resolveOrCreate(ctx, kindContactType, name,
		func(ctx context.Context) (uuid.UUID, error) {
			ct, err := r.contacts.GetTypeByName(ctx, name)
			if err != nil {
				return uuid.Nil, err
			}
			return ct.ID, nil
		},
		func(ctx context.Context) (uuid.UUID, bool, error) {
			ct := domain.ContactType{ID: uuid.New(), Name: name}
			inserted, err := r.contacts.InsertTypeIfAbsent(ctx, &ct)
			return ct.ID, inserted, err
		},
	)
}

// publisherAbout builds the localized about texts of a publisher from the
// journal's publisherNote settings.
func publisherAbout(settings legacy.SettingsMap) []domain.PublisherTranslation {
	recs := legacy.Fanout(settings, []legacy.FieldSpec{
		{Target: "about", Key: legacy.FieldPublisherNote, Default: domain.PlaceholderText},
	})
	out := make([]domain.PublisherTranslation, 0, len(recs))
	for _, rec := range recs {
		out = append(out, domain.PublisherTranslation{Locale: rec.Locale, About: rec.Value("about")})
	}
	return out
}
