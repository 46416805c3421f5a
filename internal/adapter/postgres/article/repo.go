// Package article implements the Article repository using PostgreSQL.
// An article is written with its translations, byline and editor assignments.
package article

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/pkp-import/internal/adapter/postgres"
	"github.com/heartmarshall/pkp-import/internal/domain"
)

// Repo provides article persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new article repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// Create inserts a and all of its child rows.
func (r *Repo) Create(ctx context.Context, a *domain.Article) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	ins := postgres.Builder().
		Insert("articles").
		Columns(
			"id", "journal_id", "legacy_id", "section_id", "issue_id", "submitter_id",
			"status", "pages", "primary_language", "submitted_at", "published_at",
		).
		Values(
			a.ID, a.JournalID, a.LegacyID, a.SectionID, a.IssueID, a.SubmitterID,
			a.Status, a.Pages, a.PrimaryLanguage, a.SubmittedAt, a.PublishedAt,
		)
	if err := postgres.Exec(ctx, q, ins, "article", a.ID); err != nil {
		return err
	}

	if len(a.Translations) > 0 {
		trIns := postgres.Builder().
			Insert("article_translations").
			Columns("article_id", "locale", "title", "abstract", "keywords")
		for _, tr := range a.Translations {
			trIns = trIns.Values(a.ID, tr.Locale, tr.Title, tr.Abstract, tr.Keywords)
		}
		if err := postgres.Exec(ctx, q, trIns, "article_translation", a.ID); err != nil {
			return err
		}
	}

	if len(a.Authors) > 0 {
		auIns := postgres.Builder().
			Insert("article_authors").
			Columns("id", "article_id", "first_name", "middle_name", "last_name", "email", "country", "primary_contact", "position")
		for _, au := range a.Authors {
			auIns = auIns.Values(au.ID, a.ID, au.FirstName, au.MiddleName, au.LastName, au.Email, au.Country, au.PrimaryContact, au.Position)
		}
		if err := postgres.Exec(ctx, q, auIns, "article_author", a.ID); err != nil {
			return err
		}
	}

	if len(a.EditorIDs) > 0 {
		edIns := postgres.Builder().
			Insert("article_editors").
			Columns("article_id", "user_id").
			Suffix("ON CONFLICT DO NOTHING")
		for _, userID := range a.EditorIDs {
			edIns = edIns.Values(a.ID, userID)
		}
		if err := postgres.Exec(ctx, q, edIns, "article_editor", a.ID); err != nil {
			return err
		}
	}

	return nil
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// ListByJournal returns the articles of a journal ordered by legacy ID with
// translations, authors and editors.
func (r *Repo) ListByJournal(ctx context.Context, journalID uuid.UUID) ([]domain.Article, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sqlStr, args, err := postgres.Builder().
		Select(
			"id", "journal_id", "legacy_id", "section_id", "issue_id", "submitter_id",
			"status", "pages", "primary_language", "submitted_at", "published_at",
		).
		From("articles").
		Where(sq.Eq{"journal_id": journalID}).
		OrderBy("legacy_id").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list articles: %w", err)
	}
	defer rows.Close()

	var out []domain.Article
	for rows.Next() {
		var a domain.Article
		if err := rows.Scan(
			&a.ID, &a.JournalID, &a.LegacyID, &a.SectionID, &a.IssueID, &a.SubmitterID,
			&a.Status, &a.Pages, &a.PrimaryLanguage, &a.SubmittedAt, &a.PublishedAt,
		); err != nil {
			return nil, fmt.Errorf("scan article: %w", err)
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range out {
		if err := r.loadDetails(ctx, q, &out[i]); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (r *Repo) loadDetails(ctx context.Context, q postgres.Querier, a *domain.Article) error {
	var err error

	a.Translations, err = collect(ctx, q,
		postgres.Builder().
			Select("locale", "title", "abstract", "keywords").
			From("article_translations").
			Where(sq.Eq{"article_id": a.ID}).
			OrderBy("locale"),
		func(row scanner) (domain.ArticleTranslation, error) {
			var tr domain.ArticleTranslation
			err := row.Scan(&tr.Locale, &tr.Title, &tr.Abstract, &tr.Keywords)
			return tr, err
		})
	if err != nil {
		return fmt.Errorf("article translations: %w", err)
	}

	a.Authors, err = collect(ctx, q,
		postgres.Builder().
			Select("id", "article_id", "first_name", "middle_name", "last_name", "email", "country", "primary_contact", "position").
			From("article_authors").
			Where(sq.Eq{"article_id": a.ID}).
			OrderBy("position"),
		func(row scanner) (domain.ArticleAuthor, error) {
			var au domain.ArticleAuthor
			err := row.Scan(&au.ID, &au.ArticleID, &au.FirstName, &au.MiddleName, &au.LastName,
				&au.Email, &au.Country, &au.PrimaryContact, &au.Position)
			return au, err
		})
	if err != nil {
		return fmt.Errorf("article authors: %w", err)
	}

	a.EditorIDs, err = collect(ctx, q,
		postgres.Builder().
			Select("user_id").
			From("article_editors").
			Where(sq.Eq{"article_id": a.ID}),
		func(row scanner) (uuid.UUID, error) {
			var id uuid.UUID
			err := row.Scan(&id)
			return id, err
		})
	if err != nil {
		return fmt.Errorf("article editors: %w", err)
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func collect[T any](ctx context.Context, q postgres.Querier, b sq.SelectBuilder, scan func(scanner) (T, error)) ([]T, error) {
	sqlStr, args, err := b.ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
