package importer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/heartmarshall/pkp-import/internal/domain"
	"github.com/heartmarshall/pkp-import/internal/legacy"
)

// Stage names a step of a journal import. Stages are logged with the "stage" attribute.
type Stage string

const (
	StageLoadSettings     Stage = "load_settings"
	StageBuildJournal     Stage = "build_journal"
	StageResolvePublisher Stage = "resolve_publisher"
	StageResolveLanguage  Stage = "resolve_language"
	StagePersistJournal   Stage = "persist_journal"
	StageImportContact    Stage = "import_contact"
	StageImportSections   Stage = "import_sections"
	StageImportIssues     Stage = "import_issues"
	StageImportArticles   Stage = "import_articles"
	StageCommit           Stage = "commit"

	StageCommitted  Stage = "committed"
	StageRolledBack Stage = "rolled_back"
)

var journalFields = []legacy.FieldSpec{
	{Target: "title", Key: legacy.FieldTitle, Default: domain.DefaultJournalTitle},
	{Target: "description", Key: legacy.FieldDescription, Default: domain.PlaceholderText},
}

// ImportJournal migrates the legacy journal oldID with its sections, issues
// and articles. Everything is written in one transaction: on failure nothing
// of the run persists.
//
// A missing legacy journal yields a *legacy.NotFoundError before any
// transaction is opened.
func (s *Service) ImportJournal(ctx context.Context, oldID int64) (*Result, error) {
	start := time.Now()
	log := s.log.With(slog.Int64("legacy_journal_id", oldID))

	var (
		rec      legacy.JournalRecord
		settings legacy.SettingsMap
	)
	err := s.stage(ctx, log, StageLoadSettings, func() error {
		var err error
		rec, err = s.source.Journal(ctx, oldID)
		if err != nil {
			return err
		}
		rows, err := s.source.JournalSettings(ctx, oldID)
		if err != nil {
			return err
		}
		settings = legacy.Flatten(rows, rec.PrimaryLocale)
		return nil
	})
	if err != nil {
		return nil, err
	}

	res := &Result{OldID: oldID}
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		var j *domain.Journal
		if err := s.stage(ctx, log, StageBuildJournal, func() error {
			j = buildJournal(rec, settings)
			return nil
		}); err != nil {
			return err
		}

		if err := s.stage(ctx, log, StageResolvePublisher, func() error {
			id, err := s.resolveJournalPublisher(ctx, settings)
			j.PublisherID = id
			return err
		}); err != nil {
			return err
		}

		if err := s.stage(ctx, log, StageResolveLanguage, func() error {
			id, err := s.refs.ResolveLanguage(ctx, legacy.LanguageCode(rec.PrimaryLocale))
			j.MandatoryLangID = id
			j.LanguageIDs = []uuid.UUID{id}
			return err
		}); err != nil {
			return err
		}

		if err := s.stage(ctx, log, StagePersistJournal, func() error {
			if err := j.Validate(); err != nil {
				return err
			}
			return s.journals.Create(ctx, j)
		}); err != nil {
			return err
		}

		ref := journalRef{ID: j.ID, OldID: oldID, PrimaryLocale: rec.PrimaryLocale}

		if err := s.stage(ctx, log, StageImportContact, func() error {
			return s.importContact(ctx, ref, settings)
		}); err != nil {
			return err
		}

		var sections, issues, articles idMap
		if err := s.stage(ctx, log, StageImportSections, func() error {
			var err error
			sections, err = s.importSections(ctx, ref)
			return err
		}); err != nil {
			return err
		}
		if err := s.stage(ctx, log, StageImportIssues, func() error {
			var err error
			issues, err = s.importIssues(ctx, ref, sections)
			return err
		}); err != nil {
			return err
		}
		if err := s.stage(ctx, log, StageImportArticles, func() error {
			var err error
			articles, err = s.importArticles(ctx, ref, issues, sections)
			return err
		}); err != nil {
			return err
		}

		log.InfoContext(ctx, "stage started", slog.String("stage", string(StageCommit)))

		res.NewID = j.ID
		res.Sections = len(sections)
		res.Issues = len(issues)
		res.Articles = len(articles)
		return nil
	})
	if err != nil {
		s.refs.Reset()
		s.users.Reset()
		log.ErrorContext(ctx, "journal import failed",
			slog.String("stage", string(StageRolledBack)),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("import journal %d: %w", oldID, err)
	}

	res.Duration = time.Since(start)
	log.InfoContext(ctx, "journal imported",
		slog.String("stage", string(StageCommitted)),
		slog.String("journal_id", res.NewID.String()),
		slog.Int("sections", res.Sections),
		slog.Int("issues", res.Issues),
		slog.Int("articles", res.Articles),
		slog.Duration("duration", res.Duration),
	)
	return res, nil
}

func (s *Service) stage(ctx context.Context, log *slog.Logger, stage Stage, fn func() error) error {
	start := time.Now()
	log.InfoContext(ctx, "stage started", slog.String("stage", string(stage)))

	if err := fn(); err != nil {
		return fmt.Errorf("%s: %w", stage, err)
	}

	log.InfoContext(ctx, "stage completed",
		slog.String("stage", string(stage)),
		slog.Duration("took", time.Since(start)),
	)
	return nil
}

// buildJournal assembles the journal from its legacy row and settings.
// Publisher and languages are resolved separately.
func buildJournal(rec legacy.JournalRecord, settings legacy.SettingsMap) *domain.Journal {
	j := &domain.Journal{
		ID:            uuid.New(),
		LegacyID:      rec.ID,
		Slug:          rec.Path,
		Status:        domain.JournalStatusActive,
		Published:     true,
		ISSN:          settings.PrimaryOr(legacy.FieldPrintISSN, domain.DefaultISSN),
		EISSN:         settings.PrimaryOr(legacy.FieldOnlineISSN, domain.DefaultISSN),
		Founded:       foundedDate(settings),
		ViewCount:     settings.PrimaryInt(legacy.FieldTotalViews, 0),
		DownloadCount: settings.PrimaryInt(legacy.FieldTotalDownloads, 0),
	}

	for _, l := range legacy.Fanout(settings, journalFields) {
		j.Translations = append(j.Translations, domain.JournalTranslation{
			Locale:      l.Locale,
			Title:       l.Value("title"),
			Description: l.Value("description"),
		})
	}
	return j
}

// foundedDate is January 1st of the initialYear setting.
func foundedDate(settings legacy.SettingsMap) time.Time {
	year := settings.PrimaryInt(legacy.FieldInitialYear, domain.DefaultFoundedYear)
	if year < 1 || year > 9999 {
		year = domain.DefaultFoundedYear
	}
	return time.Date(int(year), time.January, 1, 0, 0, 0, 0, time.UTC)
}

func (s *Service) resolveJournalPublisher(ctx context.Context, settings legacy.SettingsMap) (uuid.UUID, error) {
	name := settings.Primary(legacy.FieldPublisherInstitution)
	if name == "" {
		return s.refs.UnknownPublisher(ctx)
	}

	var url *string
	if v := settings.Primary(legacy.FieldPublisherURL); v != "" {
		url = &v
	}
	return s.refs.ResolvePublisher(ctx, name, url, publisherAbout(settings))
}
