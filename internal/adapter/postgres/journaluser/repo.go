// Package journaluser implements journal membership persistence using PostgreSQL.
package journaluser

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/pkp-import/internal/adapter/postgres"
	"github.com/heartmarshall/pkp-import/internal/domain"
)

// Repo provides journal membership persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new journal membership repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Add grants m.Role to m.UserID in m.JournalID. Existing memberships are left
// untouched; the result reports whether a row was inserted.
func (r *Repo) Add(ctx context.Context, m domain.JournalUser) (bool, error) {
	sqlStr, args, err := postgres.Builder().
		Insert("journal_users").
		Columns("journal_id", "user_id", "role").
		Values(m.JournalID, m.UserID, string(m.Role)).
		Suffix("ON CONFLICT DO NOTHING").
		ToSql()
	if err != nil {
		return false, err
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, sqlStr, args...)
	if err != nil {
		return false, postgres.MapError(err, "journal_user", m.UserID)
	}
	return tag.RowsAffected() == 1, nil
}

// ListByJournal returns the memberships of a journal.
func (r *Repo) ListByJournal(ctx context.Context, journalID uuid.UUID) ([]domain.JournalUser, error) {
	sqlStr, args, err := postgres.Builder().
		Select("journal_id", "user_id", "role").
		From("journal_users").
		Where(sq.Eq{"journal_id": journalID}).
		OrderBy("user_id", "role").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list journal users: %w", err)
	}
	defer rows.Close()

	var out []domain.JournalUser
	for rows.Next() {
		var (
			m    domain.JournalUser
			role string
		)
		if err := rows.Scan(&m.JournalID, &m.UserID, &role); err != nil {
			return nil, fmt.Errorf("scan journal user: %w", err)
		}
		m.Role = domain.Role(role)
		out = append(out, m)
	}
	return out, rows.Err()
}
