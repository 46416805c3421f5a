// Package publisher implements the Publisher reference repository using PostgreSQL.
// Publishers are deduplicated by exact name.
package publisher

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/pkp-import/internal/adapter/postgres"
	"github.com/heartmarshall/pkp-import/internal/domain"
)

// Repo provides publisher persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new publisher repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByName returns the publisher with the given name, without translations.
// Returns domain.ErrNotFound if there is none.
func (r *Repo) GetByName(ctx context.Context, name string) (*domain.Publisher, error) {
	sqlStr, args, err := postgres.Builder().
		Select("id", "name", "email", "address", "phone", "url", "created_at").
		From("publishers").
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var p domain.Publisher
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sqlStr, args...).
		Scan(&p.ID, &p.Name, &p.Email, &p.Address, &p.Phone, &p.URL, &p.CreatedAt)
	if err != nil {
		return nil, postgres.MapError(err, "publisher", name)
	}
	return &p, nil
}

// LoadTranslations fills p.Translations ordered by locale.
func (r *Repo) LoadTranslations(ctx context.Context, p *domain.Publisher) error {
	sqlStr, args, err := postgres.Builder().
		Select("locale", "about").
		From("publisher_translations").
		Where(sq.Eq{"publisher_id": p.ID}).
		OrderBy("locale").
		ToSql()
	if err != nil {
		return err
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("list publisher translations: %w", err)
	}
	defer rows.Close()

	p.Translations = p.Translations[:0]
	for rows.Next() {
		var tr domain.PublisherTranslation
		if err := rows.Scan(&tr.Locale, &tr.About); err != nil {
			return fmt.Errorf("scan publisher translation: %w", err)
		}
		p.Translations = append(p.Translations, tr)
	}
	return rows.Err()
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// InsertIfAbsent inserts p and its translations unless a publisher with the
// same name exists. Reports whether the row was inserted.
func (r *Repo) InsertIfAbsent(ctx context.Context, p *domain.Publisher) (bool, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sqlStr, args, err := postgres.Builder().
		Insert("publishers").
		Columns("id", "name", "email", "address", "phone", "url").
		Values(p.ID, p.Name, p.Email, p.Address, p.Phone, p.URL).
		Suffix("ON CONFLICT (name) DO NOTHING RETURNING created_at").
		ToSql()
	if err != nil {
		return false, err
	}

	err = q.QueryRow(ctx, sqlStr, args...).Scan(&p.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, postgres.MapError(err, "publisher", p.Name)
	}

	if len(p.Translations) == 0 {
		return true, nil
	}

	ins := postgres.Builder().
		Insert("publisher_translations").
		Columns("publisher_id", "locale", "about")
	for _, tr := range p.Translations {
		ins = ins.Values(p.ID, tr.Locale, tr.About)
	}
	if err := postgres.Exec(ctx, q, ins, "publisher_translation", p.Name); err != nil {
		return false, err
	}

	return true, nil
}
