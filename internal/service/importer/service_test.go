package importer

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/pkp-import/internal/config"
	"github.com/heartmarshall/pkp-import/internal/domain"
	"github.com/heartmarshall/pkp-import/internal/legacy"
	"github.com/heartmarshall/pkp-import/internal/legacy/legacytest"
)

//go:generate moq -out tx_manager_mock_test.go -pkg importer . txManager
//go:generate moq -out language_repo_mock_test.go -pkg importer . languageRepo
//go:generate moq -out publisher_repo_mock_test.go -pkg importer . publisherRepo
//go:generate moq -out contact_repo_mock_test.go -pkg importer . contactRepo
//go:generate moq -out user_repo_mock_test.go -pkg importer . userRepo
//go:generate moq -out journal_repo_mock_test.go -pkg importer . journalRepo
//go:generate moq -out section_repo_mock_test.go -pkg importer . sectionRepo
//go:generate moq -out issue_repo_mock_test.go -pkg importer . issueRepo
//go:generate moq -out article_repo_mock_test.go -pkg importer . articleRepo
//go:generate moq -out membership_repo_mock_test.go -pkg importer . membershipRepo
//go:generate moq -out legacy_user_source_mock_test.go -pkg importer . legacyUserSource

// ---------------------------------------------------------------------------
// In-memory target
// ---------------------------------------------------------------------------

// store is the state behind the repository mocks.
type store struct {
	languages    map[string]domain.Language
	publishers   map[string]domain.Publisher
	contactTypes map[string]domain.ContactType
	users        map[int64]domain.User
	contacts     []domain.JournalContact
	journals     []domain.Journal
	sections     []domain.Section
	issues       []domain.Issue
	articles     []domain.Article
	members      []domain.JournalUser
}

func newStore() *store {
	return &store{
		languages:    make(map[string]domain.Language),
		publishers:   make(map[string]domain.Publisher),
		contactTypes: make(map[string]domain.ContactType),
		users:        make(map[int64]domain.User),
	}
}

func (s *store) snapshot() store {
	return store{
		languages:    maps.Clone(s.languages),
		publishers:   maps.Clone(s.publishers),
		contactTypes: maps.Clone(s.contactTypes),
		users:        maps.Clone(s.users),
		contacts:     slices.Clone(s.contacts),
		journals:     slices.Clone(s.journals),
		sections:     slices.Clone(s.sections),
		issues:       slices.Clone(s.issues),
		articles:     slices.Clone(s.articles),
		members:      slices.Clone(s.members),
	}
}

func notFound(entity string, key any) error {
	return fmt.Errorf("%s %v: %w", entity, key, domain.ErrNotFound)
}

// fakeTarget wires every repository mock to one store. The tx mock restores
// the store when fn fails.
type fakeTarget struct {
	st *store

	tx         *txManagerMock
	languages  *languageRepoMock
	publishers *publisherRepoMock
	contacts   *contactRepoMock
	users      *userRepoMock
	journals   *journalRepoMock
	sections   *sectionRepoMock
	issues     *issueRepoMock
	articles   *articleRepoMock
	members    *membershipRepoMock
}

func newFakeTarget() *fakeTarget {
	return newFakeTargetOn(newStore())
}

// newFakeTargetOn builds mocks over an existing store, as a second run against
// the same database would see it.
func newFakeTargetOn(st *store) *fakeTarget {
	f := &fakeTarget{st: st}

	f.tx = &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(ctx context.Context) error) error {
			saved := st.snapshot()
			if err := fn(ctx); err != nil {
				*st = saved
				return err
			}
			return nil
		},
	}

	f.languages = &languageRepoMock{
		GetByCodeFunc: func(ctx context.Context, code string) (*domain.Language, error) {
			l, ok := st.languages[code]
			if !ok {
				return nil, notFound("language", code)
			}
			return &l, nil
		},
		InsertIfAbsentFunc: func(ctx context.Context, l *domain.Language) (bool, error) {
			if _, ok := st.languages[l.Code]; ok {
				return false, nil
			}
			st.languages[l.Code] = *l
			return true, nil
		},
	}

	f.publishers = &publisherRepoMock{
		GetByNameFunc: func(ctx context.Context, name string) (*domain.Publisher, error) {
			p, ok := st.publishers[name]
			if !ok {
				return nil, notFound("publisher", name)
			}
			return &p, nil
		},
		InsertIfAbsentFunc: func(ctx context.Context, p *domain.Publisher) (bool, error) {
			if _, ok := st.publishers[p.Name]; ok {
				return false, nil
			}
			st.publishers[p.Name] = *p
			return true, nil
		},
	}

	f.contacts = &contactRepoMock{
		GetTypeByNameFunc: func(ctx context.Context, name string) (*domain.ContactType, error) {
			ct, ok := st.contactTypes[name]
			if !ok {
				return nil, notFound("contact_type", name)
			}
			return &ct, nil
		},
		InsertTypeIfAbsentFunc: func(ctx context.Context, ct *domain.ContactType) (bool, error) {
			if _, ok := st.contactTypes[ct.Name]; ok {
				return false, nil
			}
			st.contactTypes[ct.Name] = *ct
			return true, nil
		},
		CreateJournalContactFunc: func(ctx context.Context, c *domain.JournalContact) error {
			st.contacts = append(st.contacts, *c)
			return nil
		},
	}

	f.users = &userRepoMock{
		GetByLegacyIDFunc: func(ctx context.Context, legacyID int64) (*domain.User, error) {
			u, ok := st.users[legacyID]
			if !ok {
				return nil, notFound("user", legacyID)
			}
			return &u, nil
		},
		InsertIfAbsentFunc: func(ctx context.Context, u *domain.User) (bool, error) {
			if _, ok := st.users[u.LegacyID]; ok {
				return false, nil
			}
			u.CreatedAt = time.Now()
			st.users[u.LegacyID] = *u
			return true, nil
		},
	}

	f.journals = &journalRepoMock{
		CreateFunc: func(ctx context.Context, j *domain.Journal) error {
			st.journals = append(st.journals, *j)
			return nil
		},
	}
	f.sections = &sectionRepoMock{
		CreateFunc: func(ctx context.Context, s *domain.Section) error {
			st.sections = append(st.sections, *s)
			return nil
		},
	}
	f.issues = &issueRepoMock{
		CreateFunc: func(ctx context.Context, i *domain.Issue) error {
			st.issues = append(st.issues, *i)
			return nil
		},
	}
	f.articles = &articleRepoMock{
		CreateFunc: func(ctx context.Context, a *domain.Article) error {
			st.articles = append(st.articles, *a)
			return nil
		},
	}
	f.members = &membershipRepoMock{
		AddFunc: func(ctx context.Context, m domain.JournalUser) (bool, error) {
			if slices.Contains(st.members, m) {
				return false, nil
			}
			st.members = append(st.members, m)
			return true, nil
		},
	}

	return f
}

func (f *fakeTarget) repos() Repos {
	return Repos{
		Languages:  f.languages,
		Publishers: f.publishers,
		Contacts:   f.contacts,
		Users:      f.users,
		Journals:   f.journals,
		Sections:   f.sections,
		Issues:     f.issues,
		Articles:   f.articles,
		Members:    f.members,
	}
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

func testImportConfig() config.ImportConfig {
	return config.ImportConfig{
		RetryMaxElapsed:  time.Second,
		PasswordHashCost: bcrypt.MinCost,
	}
}

// newTestService creates a Service reading from a fresh legacy fixture and
// writing to f, with a discard logger.
func newTestService(t *testing.T, f *fakeTarget) (*Service, *legacytest.DB) {
	t.Helper()
	fx := legacytest.New(t)
	return newTestServiceOn(fx, f), fx
}

func newTestServiceOn(fx *legacytest.DB, f *fakeTarget) *Service {
	src := legacy.NewSource(fx.DB, legacy.DriverSQLite)
	return NewService(slog.New(slog.DiscardHandler), f.tx, src, f.repos(), testImportConfig())
}

func setting(locale, name, value string) legacytest.Setting {
	return legacytest.Setting{Locale: locale, Name: name, Value: value}
}

func translationsByLocale[T any](trs []T, locale func(T) string) map[string]T {
	out := make(map[string]T, len(trs))
	for _, tr := range trs {
		out[locale(tr)] = tr
	}
	return out
}
