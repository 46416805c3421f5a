// Package user implements the User repository using PostgreSQL.
// Migrated users are unique by their legacy ID.
package user

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/pkp-import/internal/adapter/postgres"
	"github.com/heartmarshall/pkp-import/internal/domain"
)

// Repo provides user persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new user repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

var userColumns = []string{
	"id", "legacy_id", "username", "email", "first_name", "last_name",
	"password_hash", "confirmation_token", "enabled", "created_at",
}

// ---------------------------------------------------------------------------
// Read operations
// ---------------------------------------------------------------------------

// GetByID returns a user by primary key.
func (r *Repo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	u, err := r.getOne(ctx, sq.Eq{"id": id})
	if err != nil {
		return nil, postgres.MapError(err, "user", id)
	}
	return u, nil
}

// GetByLegacyID returns the user migrated from the given legacy user.
// Returns domain.ErrNotFound if it has not been migrated yet.
func (r *Repo) GetByLegacyID(ctx context.Context, legacyID int64) (*domain.User, error) {
	u, err := r.getOne(ctx, sq.Eq{"legacy_id": legacyID})
	if err != nil {
		return nil, postgres.MapError(err, "user", legacyID)
	}
	return u, nil
}

func (r *Repo) getOne(ctx context.Context, where sq.Eq) (*domain.User, error) {
	sqlStr, args, err := postgres.Builder().
		Select(userColumns...).
		From("users").
		Where(where).
		ToSql()
	if err != nil {
		return nil, err
	}

	var u domain.User
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sqlStr, args...).Scan(
		&u.ID, &u.LegacyID, &u.Username, &u.Email, &u.FirstName, &u.LastName,
		&u.PasswordHash, &u.ConfirmationToken, &u.Enabled, &u.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// ---------------------------------------------------------------------------
// Write operations
// ---------------------------------------------------------------------------

// InsertIfAbsent inserts u unless a user with the same legacy ID exists.
// Reports whether the row was inserted; u.CreatedAt is filled on insert.
func (r *Repo) InsertIfAbsent(ctx context.Context, u *domain.User) (bool, error) {
	sqlStr, args, err := postgres.Builder().
		Insert("users").
		Columns(
			"id", "legacy_id", "username", "email", "first_name", "last_name",
			"password_hash", "confirmation_token", "enabled",
		).
		Values(
			u.ID, u.LegacyID, u.Username, u.Email, u.FirstName, u.LastName,
			u.PasswordHash, u.ConfirmationToken, u.Enabled,
		).
		Suffix("ON CONFLICT (legacy_id) DO NOTHING RETURNING created_at").
		ToSql()
	if err != nil {
		return false, err
	}

	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sqlStr, args...).Scan(&u.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, postgres.MapError(err, "user", u.LegacyID)
	}
	return true, nil
}
