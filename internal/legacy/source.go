package legacy

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
)

// Source reads legacy records. All reads are plain SELECTs; the legacy
// database is never written to.
type Source struct {
	db *sql.DB
	sb sq.StatementBuilderType
}

// NewSource wraps an open legacy connection. driver selects the placeholder
// style ("pgx" uses $n, everything else uses ?).
func NewSource(db *sql.DB, driver string) *Source {
	format := sq.PlaceholderFormat(sq.Question)
	if driver == DriverPostgres {
		format = sq.Dollar
	}
	return &Source{
		db: db,
		sb: sq.StatementBuilder.PlaceholderFormat(format),
	}
}

// ---------------------------------------------------------------------------
// Journals
// ---------------------------------------------------------------------------

// Journal returns the legacy journal with the given ID.
// Returns *NotFoundError if it does not exist.
func (s *Source) Journal(ctx context.Context, id int64) (JournalRecord, error) {
	query := s.sb.
		Select("journal_id", "path", "primary_locale").
		From("journals").
		Where(sq.Eq{"journal_id": id}).
		Limit(1)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return JournalRecord{}, fmt.Errorf("build journal query: %w", err)
	}

	var (
		rec    JournalRecord
		path   sql.NullString
		locale sql.NullString
	)
	err = s.db.QueryRowContext(ctx, sqlStr, args...).Scan(&rec.ID, &path, &locale)
	if errors.Is(err, sql.ErrNoRows) {
		return JournalRecord{}, &NotFoundError{Entity: "journal", ID: id}
	}
	if err != nil {
		return JournalRecord{}, fmt.Errorf("get journal %d: %w", id, err)
	}

	rec.Path = path.String
	rec.PrimaryLocale = locale.String
	return rec, nil
}

// JournalSettings returns all settings rows of a journal.
func (s *Source) JournalSettings(ctx context.Context, journalID int64) ([]SettingsRow, error) {
	return s.settings(ctx, "journal_settings", "journal_id", journalID)
}

// JournalRoles returns the membership rows of a journal.
func (s *Source) JournalRoles(ctx context.Context, journalID int64) ([]RoleRecord, error) {
	query := s.sb.
		Select("journal_id", "user_id", "role_id").
		From("roles").
		Where(sq.Eq{"journal_id": journalID}).
		OrderBy("user_id", "role_id")

	return queryAll(ctx, s.db, query, func(rows *sql.Rows) (RoleRecord, error) {
		var r RoleRecord
		err := rows.Scan(&r.JournalID, &r.UserID, &r.RoleID)
		return r, err
	})
}

// ---------------------------------------------------------------------------
// Sections
// ---------------------------------------------------------------------------

// Sections returns every section of a journal.
func (s *Source) Sections(ctx context.Context, journalID int64) ([]SectionRecord, error) {
	query := s.sb.
		Select("section_id", "journal_id", "meta_indexed", "hide_title", "seq").
		From("sections").
		Where(sq.Eq{"journal_id": journalID}).
		OrderBy("section_id")

	return queryAll(ctx, s.db, query, func(rows *sql.Rows) (SectionRecord, error) {
		var (
			r                      SectionRecord
			metaIndexed, hideTitle sql.NullInt64
			seq                    sql.NullFloat64
		)
		if err := rows.Scan(&r.ID, &r.JournalID, &metaIndexed, &hideTitle, &seq); err != nil {
			return r, err
		}
		r.MetaIndexed = metaIndexed.Int64
		r.HideTitle = hideTitle.Int64
		r.Seq = int(seq.Float64)
		return r, nil
	})
}

// SectionSettings returns all settings rows of a section.
func (s *Source) SectionSettings(ctx context.Context, sectionID int64) ([]SettingsRow, error) {
	return s.settings(ctx, "section_settings", "section_id", sectionID)
}

// ---------------------------------------------------------------------------
// Issues
// ---------------------------------------------------------------------------

// Issues returns every issue of a journal.
func (s *Source) Issues(ctx context.Context, journalID int64) ([]IssueRecord, error) {
	query := s.sb.
		Select("issue_id", "journal_id", "volume", "number", "year", "published", "current", "date_published").
		From("issues").
		Where(sq.Eq{"journal_id": journalID}).
		OrderBy("issue_id")

	return queryAll(ctx, s.db, query, func(rows *sql.Rows) (IssueRecord, error) {
		var (
			r                  IssueRecord
			volume, number     sql.NullString
			year               sql.NullInt64
			published, current sql.NullInt64
			datePublished      sql.NullTime
		)
		if err := rows.Scan(&r.ID, &r.JournalID, &volume, &number, &year, &published, &current, &datePublished); err != nil {
			return r, err
		}
		r.Volume = volume.String
		r.Number = number.String
		r.Year = int(year.Int64)
		r.Published = published.Int64 != 0
		r.Current = current.Int64 != 0
		r.DatePublished = nullTimePtr(datePublished)
		return r, nil
	})
}

// IssueSettings returns all settings rows of an issue.
func (s *Source) IssueSettings(ctx context.Context, issueID int64) ([]SettingsRow, error) {
	return s.settings(ctx, "issue_settings", "issue_id", issueID)
}

// IssueSections returns the custom section order of an issue.
func (s *Source) IssueSections(ctx context.Context, issueID int64) ([]IssueSectionRecord, error) {
	query := s.sb.
		Select("issue_id", "section_id", "seq").
		From("custom_section_orders").
		Where(sq.Eq{"issue_id": issueID}).
		OrderBy("seq")

	return queryAll(ctx, s.db, query, func(rows *sql.Rows) (IssueSectionRecord, error) {
		var (
			r   IssueSectionRecord
			seq sql.NullFloat64
		)
		if err := rows.Scan(&r.IssueID, &r.SectionID, &seq); err != nil {
			return r, err
		}
		r.Seq = int(seq.Float64)
		return r, nil
	})
}

// ---------------------------------------------------------------------------
// Articles
// ---------------------------------------------------------------------------

// Articles returns every article of a journal joined with its publication row.
func (s *Source) Articles(ctx context.Context, journalID int64) ([]ArticleRecord, error) {
	query := s.sb.
		Select(
			"a.article_id", "a.journal_id", "a.section_id", "a.user_id", "a.language",
			"a.status", "a.pages", "a.date_submitted", "pa.issue_id", "pa.date_published",
		).
		From("articles a").
		LeftJoin("published_articles pa ON pa.article_id = a.article_id").
		Where(sq.Eq{"a.journal_id": journalID}).
		OrderBy("a.article_id")

	return queryAll(ctx, s.db, query, func(rows *sql.Rows) (ArticleRecord, error) {
		var (
			r                          ArticleRecord
			sectionID, userID, issueID sql.NullInt64
			status                     sql.NullInt64
			language, pages            sql.NullString
			submitted, published       sql.NullTime
		)
		if err := rows.Scan(
			&r.ID, &r.JournalID, &sectionID, &userID, &language,
			&status, &pages, &submitted, &issueID, &published,
		); err != nil {
			return r, err
		}
		r.SectionID = sectionID.Int64
		r.UserID = userID.Int64
		r.Language = language.String
		r.Status = int(status.Int64)
		r.Pages = pages.String
		r.DateSubmitted = nullTimePtr(submitted)
		r.IssueID = issueID.Int64
		r.DatePublished = nullTimePtr(published)
		return r, nil
	})
}

// ArticleSettings returns all settings rows of an article.
func (s *Source) ArticleSettings(ctx context.Context, articleID int64) ([]SettingsRow, error) {
	return s.settings(ctx, "article_settings", "article_id", articleID)
}

// Authors returns the byline of an article in display order.
func (s *Source) Authors(ctx context.Context, articleID int64) ([]AuthorRecord, error) {
	query := s.sb.
		Select("author_id", "submission_id", "first_name", "middle_name", "last_name",
			"email", "country", "primary_contact", "seq").
		From("authors").
		Where(sq.Eq{"submission_id": articleID}).
		OrderBy("seq", "author_id")

	return queryAll(ctx, s.db, query, func(rows *sql.Rows) (AuthorRecord, error) {
		var (
			r                                      AuthorRecord
			first, middle, last, email, country sql.NullString
			primary                                sql.NullInt64
			seq                                    sql.NullFloat64
		)
		if err := rows.Scan(&r.ID, &r.ArticleID, &first, &middle, &last, &email, &country, &primary, &seq); err != nil {
			return r, err
		}
		r.FirstName = first.String
		r.MiddleName = middle.String
		r.LastName = last.String
		r.Email = email.String
		r.Country = country.String
		r.PrimaryContact = primary.Int64 != 0
		r.Seq = int(seq.Float64)
		return r, nil
	})
}

// EditorIDs returns the legacy user IDs of editors assigned to an article.
func (s *Source) EditorIDs(ctx context.Context, articleID int64) ([]int64, error) {
	query := s.sb.
		Select("editor_id").
		Distinct().
		From("edit_assignments").
		Where(sq.Eq{"article_id": articleID}).
		OrderBy("editor_id")

	return queryAll(ctx, s.db, query, func(rows *sql.Rows) (int64, error) {
		var id int64
		err := rows.Scan(&id)
		return id, err
	})
}

// ---------------------------------------------------------------------------
// Users
// ---------------------------------------------------------------------------

// User returns the legacy user with the given ID.
// Returns *NotFoundError if it does not exist.
func (s *Source) User(ctx context.Context, id int64) (UserRecord, error) {
	query := s.sb.
		Select("user_id", "username", "first_name", "last_name", "email", "disabled", "date_registered").
		From("users").
		Where(sq.Eq{"user_id": id}).
		Limit(1)

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return UserRecord{}, fmt.Errorf("build user query: %w", err)
	}

	var (
		r                            UserRecord
		username, first, last, email sql.NullString
		disabled                     sql.NullInt64
		registered                   sql.NullTime
	)
	err = s.db.QueryRowContext(ctx, sqlStr, args...).
		Scan(&r.ID, &username, &first, &last, &email, &disabled, &registered)
	if errors.Is(err, sql.ErrNoRows) {
		return UserRecord{}, &NotFoundError{Entity: "user", ID: id}
	}
	if err != nil {
		return UserRecord{}, fmt.Errorf("get user %d: %w", id, err)
	}

	r.Username = username.String
	r.FirstName = first.String
	r.LastName = last.String
	r.Email = email.String
	r.Disabled = disabled.Int64 != 0
	r.DateRegistered = nullTimePtr(registered)
	return r, nil
}

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// settings reads the EAV rows of one record from a *_settings table.
func (s *Source) settings(ctx context.Context, table, idColumn string, id int64) ([]SettingsRow, error) {
	query := s.sb.
		Select("locale", "setting_name", "setting_value").
		From(table).
		Where(sq.Eq{idColumn: id})

	rows, err := queryAll(ctx, s.db, query, func(rows *sql.Rows) (SettingsRow, error) {
		var (
			r             SettingsRow
			locale, value sql.NullString
		)
		if err := rows.Scan(&locale, &r.Name, &value); err != nil {
			return r, err
		}
		r.Locale = locale.String
		r.Value = value.String
		return r, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s %d: %w", table, id, err)
	}
	return rows, nil
}

// queryAll runs a SELECT and scans every row with scan.
func queryAll[T any](ctx context.Context, db *sql.DB, query sq.SelectBuilder, scan func(*sql.Rows) (T, error)) ([]T, error) {
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	rows, err := db.QueryContext(ctx, sqlStr, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return out, nil
}

func nullTimePtr(t sql.NullTime) *time.Time {
	if !t.Valid || t.Time.IsZero() {
		return nil
	}
	v := t.Time
	return &v
}
