// Package importer migrates one legacy journal and everything under it into
// the target store, inside a single transaction.
package importer

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/pkp-import/internal/config"
	"github.com/heartmarshall/pkp-import/internal/domain"
	"github.com/heartmarshall/pkp-import/internal/legacy"
)

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

type legacySource interface {
	Journal(ctx context.Context, id int64) (legacy.JournalRecord, error)
	JournalSettings(ctx context.Context, journalID int64) ([]legacy.SettingsRow, error)
	JournalRoles(ctx context.Context, journalID int64) ([]legacy.RoleRecord, error)
	Sections(ctx context.Context, journalID int64) ([]legacy.SectionRecord, error)
	SectionSettings(ctx context.Context, sectionID int64) ([]legacy.SettingsRow, error)
	Issues(ctx context.Context, journalID int64) ([]legacy.IssueRecord, error)
	IssueSettings(ctx context.Context, issueID int64) ([]legacy.SettingsRow, error)
	IssueSections(ctx context.Context, issueID int64) ([]legacy.IssueSectionRecord, error)
	Articles(ctx context.Context, journalID int64) ([]legacy.ArticleRecord, error)
	ArticleSettings(ctx context.Context, articleID int64) ([]legacy.SettingsRow, error)
	Authors(ctx context.Context, articleID int64) ([]legacy.AuthorRecord, error)
	EditorIDs(ctx context.Context, articleID int64) ([]int64, error)
	User(ctx context.Context, id int64) (legacy.UserRecord, error)
}

type languageRepo interface {
	GetByCode(ctx context.Context, code string) (*domain.Language, error)
	InsertIfAbsent(ctx context.Context, l *domain.Language) (bool, error)
}

type publisherRepo interface {
	GetByName(ctx context.Context, name string) (*domain.Publisher, error)
	InsertIfAbsent(ctx context.Context, p *domain.Publisher) (bool, error)
}

type contactRepo interface {
	GetTypeByName(ctx context.Context, name string) (*domain.ContactType, error)
	InsertTypeIfAbsent(ctx context.Context, ct *domain.ContactType) (bool, error)
	CreateJournalContact(ctx context.Context, c *domain.JournalContact) error
}

type userRepo interface {
	GetByLegacyID(ctx context.Context, legacyID int64) (*domain.User, error)
	InsertIfAbsent(ctx context.Context, u *domain.User) (bool, error)
}

type journalRepo interface {
	Create(ctx context.Context, j *domain.Journal) error
}

type sectionRepo interface {
	Create(ctx context.Context, s *domain.Section) error
}

type issueRepo interface {
	Create(ctx context.Context, i *domain.Issue) error
}

type articleRepo interface {
	Create(ctx context.Context, a *domain.Article) error
}

type membershipRepo interface {
	Add(ctx context.Context, m domain.JournalUser) (bool, error)
}

// Repos bundles the target repositories the importer writes through.
type Repos struct {
	Languages  languageRepo
	Publishers publisherRepo
	Contacts   contactRepo
	Users      userRepo
	Journals   journalRepo
	Sections   sectionRepo
	Issues     issueRepo
	Articles   articleRepo
	Members    membershipRepo
}

// Service imports legacy journals.
type Service struct {
	tx       txManager
	source   legacySource
	journals journalRepo
	sections sectionRepo
	issues   issueRepo
	articles articleRepo
	contacts contactRepo
	members  membershipRepo
	refs     *refResolver
	users    *userResolver
	log      *slog.Logger
}

// NewService creates a new importer service.
func NewService(
	log *slog.Logger,
	tx txManager,
	source legacySource,
	repos Repos,
	cfg config.ImportConfig,
) *Service {
	log = log.With("service", "importer")
	newBackOff := retryPolicy(cfg.RetryMaxElapsed)

	return &Service{
		tx:       tx,
		source:   source,
		journals: repos.Journals,
		sections: repos.Sections,
		issues:   repos.Issues,
		articles: repos.Articles,
		contacts: repos.Contacts,
		members:  repos.Members,
		refs:     newRefResolver(log, repos.Languages, repos.Publishers, repos.Contacts, newBackOff),
		users:    newUserResolver(log, source, repos.Users, newBackOff, cfg.PasswordHashCost),
		log:      log,
	}
}

// Result describes a committed journal import.
type Result struct {
	NewID    uuid.UUID
	OldID    int64
	Sections int
	Issues   int
	Articles int
	Duration time.Duration
}

// idMap maps a legacy numeric ID to the ID of the entity created from it.
type idMap map[int64]uuid.UUID

// journalRef is what child importers need to know about the journal being imported.
type journalRef struct {
	ID            uuid.UUID
	OldID         int64
	PrimaryLocale string
}
