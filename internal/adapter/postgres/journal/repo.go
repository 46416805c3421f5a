// Package journal implements the Journal repository using PostgreSQL.
// A journal row is written together with its translations and language set.
package journal

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/pkp-import/internal/adapter/postgres"
	"github.com/heartmarshall/pkp-import/internal/domain"
)

// Repo provides journal persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new journal repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var journalColumns = []string{
	"id", "legacy_id", "slug", "status", "published", "issn", "eissn", "founded",
	"view_count", "download_count", "mandatory_lang_id", "publisher_id", "created_at",
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts j with its translations and language set.
// j.CreatedAt is filled from the database.
func (r *Repo) Create(ctx context.Context, j *domain.Journal) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sqlStr, args, err := postgres.Builder().
		Insert("journals").
		Columns(
			"id", "legacy_id", "slug", "status", "published", "issn", "eissn", "founded",
			"view_count", "download_count", "mandatory_lang_id", "publisher_id",
		).
		Values(
			j.ID, j.LegacyID, j.Slug, j.Status, j.Published, j.ISSN, j.EISSN, j.Founded,
			j.ViewCount, j.DownloadCount, j.MandatoryLangID, j.PublisherID,
		).
		Suffix("RETURNING created_at").
		ToSql()
	if err != nil {
		return err
	}
	if err := q.QueryRow(ctx, sqlStr, args...).Scan(&j.CreatedAt); err != nil {
		return postgres.MapError(err, "journal", j.ID)
	}

	if len(j.Translations) > 0 {
		ins := postgres.Builder().
			Insert("journal_translations").
			Columns("journal_id", "locale", "title", "description")
		for _, tr := range j.Translations {
			ins = ins.Values(j.ID, tr.Locale, tr.Title, tr.Description)
		}
		if err := postgres.Exec(ctx, q, ins, "journal_translation", j.ID); err != nil {
			return err
		}
	}

	if len(j.LanguageIDs) > 0 {
		ins := postgres.Builder().
			Insert("journal_languages").
			Columns("journal_id", "language_id").
			Suffix("ON CONFLICT DO NOTHING")
		for _, langID := range j.LanguageIDs {
			ins = ins.Values(j.ID, langID)
		}
		if err := postgres.Exec(ctx, q, ins, "journal_language", j.ID); err != nil {
			return err
		}
	}

	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a journal with translations (ordered by locale) and language set.
// Returns domain.ErrNotFound if the journal does not exist.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Journal, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sqlStr, args, err := postgres.Builder().
		Select(journalColumns...).
		From("journals").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var j domain.Journal
	err = q.QueryRow(ctx, sqlStr, args...).Scan(
		&j.ID, &j.LegacyID, &j.Slug, &j.Status, &j.Published, &j.ISSN, &j.EISSN, &j.Founded,
		&j.ViewCount, &j.DownloadCount, &j.MandatoryLangID, &j.PublisherID, &j.CreatedAt,
	)
	if err != nil {
		return nil, postgres.MapError(err, "journal", id)
	}

	if err := r.loadTranslations(ctx, q, &j); err != nil {
		return nil, err
	}
	if err := r.loadLanguages(ctx, q, &j); err != nil {
		return nil, err
	}

	return &j, nil
}

func (r *Repo) loadTranslations(ctx context.Context, q postgres.Querier, j *domain.Journal) error {
	sqlStr, args, err := postgres.Builder().
		Select("locale", "title", "description").
		From("journal_translations").
		Where(sq.Eq{"journal_id": j.ID}).
		OrderBy("locale").
		ToSql()
	if err != nil {
		return err
	}

	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("list journal translations: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var tr domain.JournalTranslation
		if err := rows.Scan(&tr.Locale, &tr.Title, &tr.Description); err != nil {
			return fmt.Errorf("scan journal translation: %w", err)
		}
		j.Translations = append(j.Translations, tr)
	}
	return rows.Err()
}

func (r *Repo) loadLanguages(ctx context.Context, q postgres.Querier, j *domain.Journal) error {
	sqlStr, args, err := postgres.Builder().
		Select("language_id").
		From("journal_languages").
		Where(sq.Eq{"journal_id": j.ID}).
		ToSql()
	if err != nil {
		return err
	}

	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("list journal languages: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan journal language: %w", err)
		}
		j.LanguageIDs = append(j.LanguageIDs, id)
	}
	return rows.Err()
}
