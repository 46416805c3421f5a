// Package contact implements persistence for contact types and journal contacts.
package contact

import (
	"context"
	"errors"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/pkp-import/internal/adapter/postgres"
	"github.com/heartmarshall/pkp-import/internal/domain"
)

// Repo provides contact persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new contact repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// ---------------------------------------------------------------------------
// Contact types
// ---------------------------------------------------------------------------

// GetTypeByName returns the contact type with the given name.
// Returns domain.ErrNotFound if there is none.
func (r *Repo) GetTypeByName(ctx context.Context, name string) (*domain.ContactType, error) {
	sqlStr, args, err := postgres.Builder().
		Select("id", "name").
		From("contact_types").
		Where(sq.Eq{"name": name}).
		ToSql()
	if err != nil {
		return nil, err
	}

	var ct domain.ContactType
	err = postgres.QuerierFromCtx(ctx, r.db).QueryRow(ctx, sqlStr, args...).Scan(&ct.ID, &ct.Name)
	if err != nil {
		return nil, postgres.MapError(err, "contact_type", name)
	}
	return &ct, nil
}

// InsertTypeIfAbsent inserts ct unless a contact type with the same name exists.
func (r *Repo) InsertTypeIfAbsent(ctx context.Context, ct *domain.ContactType) (bool, error) {
	sqlStr, args, err := postgres.Builder().
		Insert("contact_types").
		Columns("id", "name").
		Values(ct.ID, ct.Name).
		Suffix("ON CONFLICT (name) DO NOTHING RETURNING id").
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
		return false, postgres.MapError(err, "contact_type", ct.Name)
	}
	return true, nil
}

// ---------------------------------------------------------------------------
// Journal contacts
// ---------------------------------------------------------------------------

// CreateJournalContact inserts the contact of a journal.
func (r *Repo) CreateJournalContact(ctx context.Context, c *domain.JournalContact) error {
	ins := postgres.Builder().
		Insert("journal_contacts").
		Columns("id", "journal_id", "contact_type_id", "full_name", "email", "phone", "address").
		Values(c.ID, c.JournalID, c.ContactTypeID, c.FullName, c.Email, c.Phone, c.Address)

	return postgres.Exec(ctx, postgres.QuerierFromCtx(ctx, r.db), ins, "journal_contact", c.ID)
}

// ListJournalContacts returns the contacts of a journal.
func (r *Repo) ListJournalContacts(ctx context.Context, journalID uuid.UUID) ([]domain.JournalContact, error) {
	sqlStr, args, err := postgres.Builder().
		Select("id", "journal_id", "contact_type_id", "full_name", "email", "phone", "address").
		From("journal_contacts").
		Where(sq.Eq{"journal_id": journalID}).
		OrderBy("full_name").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := postgres.QuerierFromCtx(ctx, r.db).Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list journal contacts: %w", err)
	}
	defer rows.Close()

	var out []domain.JournalContact
	for rows.Next() {
		var c domain.JournalContact
		if err := rows.Scan(&c.ID, &c.JournalID, &c.ContactTypeID, &c.FullName, &c.Email, &c.Phone, &c.Address); err != nil {
			return nil, fmt.Errorf("scan journal contact: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
