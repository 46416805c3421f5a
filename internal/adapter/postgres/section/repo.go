// Package section implements the Section repository using PostgreSQL.
package section

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"

	postgres "github.com/heartmarshall/pkp-import/internal/adapter/postgres"
	"github.com/heartmarshall/pkp-import/internal/domain"
)

// Repo provides section persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new section repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// Create inserts s and its translations.
func (r *Repo) Create(ctx context.Context, s *domain.Section) error {
	q := postgres.QuerierFromCtx(ctx, r.db)

	ins := postgres.Builder().
		Insert("sections").
		Columns("id", "journal_id", "legacy_id", "allow_index", "hide_title", "position").
		Values(s.ID, s.JournalID, s.LegacyID, s.AllowIndex, s.HideTitle, s.Position)
	if err := postgres.Exec(ctx, q, ins, "section", s.ID); err != nil {
		return err
	}

	if len(s.Translations) == 0 {
		return nil
	}

	trIns := postgres.Builder().
		Insert("section_translations").
		Columns("section_id", "locale", "title")
	for _, tr := range s.Translations {
		trIns = trIns.Values(s.ID, tr.Locale, tr.Title)
	}
	return postgres.Exec(ctx, q, trIns, "section_translation", s.ID)
}

// ListByJournal returns the sections of a journal ordered by position, each
// with its translations ordered by locale.
func (r *Repo) ListByJournal(ctx context.Context, journalID uuid.UUID) ([]domain.Section, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	sqlStr, args, err := postgres.Builder().
		Select("s.id", "s.journal_id", "s.legacy_id", "s.allow_index", "s.hide_title", "s.position", "t.locale", "t.title").
		From("sections s").
		LeftJoin("section_translations t ON t.section_id = s.id").
		Where(sq.Eq{"s.journal_id": journalID}).
		OrderBy("s.position", "s.legacy_id", "t.locale").
		ToSql()
	if err != nil {
		return nil, err
	}

	rows, err := q.Query(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()

	var (
		out   []domain.Section
		index = make(map[uuid.UUID]int)
	)
	for rows.Next() {
		var (
			s             domain.Section
			locale, title *string
		)
		if err := rows.Scan(&s.ID, &s.JournalID, &s.LegacyID, &s.AllowIndex, &s.HideTitle, &s.Position, &locale, &title); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		i, ok := index[s.ID]
		if !ok {
			i = len(out)
			index[s.ID] = i
			out = append(out, s)
		}
		if locale != nil {
			out[i].Translations = append(out[i].Translations, domain.SectionTranslation{Locale: *locale, Title: *title})
		}
	}
	return out, rows.Err()
}
