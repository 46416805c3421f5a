// Package issue implements the Issue repository using PostgreSQL.
package issue

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/pkp-import/internal/adapter/postgres"
	"github.com/heartmarshall/pkp-import/internal/domain"
)

// Repo provides issue persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new issue repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts i, its translations and its section links.
// Section links keep the order of i.SectionIDs.
func (r *Repo) Create(ctx context.Context, i *domain.Issue) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	ins := postgres.Builder().
		Insert("issues").
		Columns("id", "journal_id", "legacy_id", "volume", "number", "year", "published", "current", "published_at").
		Values(i.ID, i.JournalID, i.LegacyID, i.Volume, i.Number, i.Year, i.Published, i.Current, i.PublishedAt)
	if err := postgres.Exec(ctx, q, ins, "issue", i.ID); err != nil {
		return err
	}

	if len(i.Translations) > 0 {
		trIns := postgres.Builder().
			Insert("issue_translations").
			Columns("issue_id", "locale", "title", "description")
		for _, tr := range i.Translations {
			trIns = trIns.Values(i.ID, tr.Locale, tr.Title, tr.Description)
		}
		if err := postgres.Exec(ctx, q, trIns, "issue_translation", i.ID); err != nil {
			return err
		}
	}

	if len(i.SectionIDs) > 0 {
		linkIns := postgres.Builder().
			Insert("issue_sections").
			Columns("issue_id", "section_id", "position").
			Suffix("ON CONFLICT DO NOTHING")
		for pos, sectionID := range i.SectionIDs {
			linkIns = linkIns.Values(i.ID, sectionID, pos)
		}
		if err := postgres.Exec(ctx, q, linkIns, "issue_section", i.ID); err != nil {
			return err
		}
	}

	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByJournal returns the issues of a journal ordered by legacy ID, with
// translations and section links.
func (r *Repo) ListByJournal(ctx context.Context, journalID uuid.UUID) ([]domain.Issue, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sqlStr, args, err := postgres.Builder().
		Select("id", "journal_id", "legacy_id", "volume", "number", "year", "published", "current", "published_at").
		From("issues").
		Where(sq.Eq{"journal_id": journalID}).
		OrderBy("legacy_id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list issues: %w", err)
	}
	defer rows.Close()

	var out []domain.Issue
	for rows.Next() {
		var i domain.Issue
		if err := rows.Scan(&i.ID, &i.JournalID, &i.LegacyID, &i.Volume, &i.Number, &i.Year, &i.Published, &i.Current, &i.PublishedAt); err != nil {
			return nil, fmt.Errorf("scan issue: %w", err)
		}
		out = append(out, i)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for idx := range out {
		if err := r.loadDetails(ctx, q, &out[idx]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Repo) loadDetails(ctx context.Context, q postgres.Querier, i *domain.Issue) error {
	sqlStr, args, err := postgres.Builder().
		Select("locale", "title", "description").
		From("issue_translations").
		Where(sq.Eq{"issue_id": i.ID}).
		OrderBy("locale").
		ToSql()
	if err != nil {
		return err
	}

	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("list issue translations: %w", err)
	}
	for rows.Next() {
		var tr domain.IssueTranslation
		if err := rows.Scan(&tr.Locale, &tr.Title, &tr.Description); err != nil {
			rows.Close()
			return fmt.Errorf("scan issue translation: %w", err)
		}
		i.Translations = append(i.Translations, tr)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	sqlStr, args, err = postgres.Builder().
		Select("section_id").
		From("issue_sections").
		Where(sq.Eq{"issue_id": i.ID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return err
	}

	rows, err = q.Query(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("list issue sections: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return fmt.Errorf("scan issue section: %w", err)
		}
		i.SectionIDs = append(i.SectionIDs, id)
	}
	return rows.Err()
}
