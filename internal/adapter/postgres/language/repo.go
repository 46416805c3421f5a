// Package language implements the Language reference repository using PostgreSQL.
// Languages are deduplicated by their two-letter code.
package language

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/pkp-import/internal/adapter/postgres"
	"github.com/heartmarshall/pkp-import/internal/domain"
)

// Repo provides language persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new language repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// GetByCode returns the language with the given code.
// Returns domain.ErrNotFound if there is none.
func (r *Repo) GetByCode(ctx context.Context, code string) (*domain.Language, error) {
	sqlStr, args, err := postgres.Builder().
		Select("id", "code", "name").
		From("languages").
		Where(sq.Eq{"code": code}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var l domain.Language
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sqlStr, args...).Scan(&l.ID, &l.Code, &l.Name)
	if err != nil {
		return nil, postgres.MapError(err, "language", code)
	}
	return &l, nil
}

// InsertIfAbsent inserts l unless a language with the same code exists.
// Reports whether the row was inserted.
func (r *Repo) InsertIfAbsent(ctx context.Context, l *domain.Language) (bool, error) {
	sqlStr, args, err := postgres.Builder().
		Insert("languages").
		Columns("id", "code", "name").
		Values(l.ID, l.Code, l.Name).
		Suffix("ON CONFLICT (code) DO NOTHING RETURNING id").
		ToSql()
	if err != nil {
		return false, err
	}

	var id uuid.UUID
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sqlStr, args...).Scan(&id)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, postgres.MapError(err, "language", l.Code)
	}
	return true, nil
}
