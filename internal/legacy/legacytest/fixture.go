// Package legacytest builds throwaway OJS 2.x databases on SQLite for tests.
package legacytest

import (
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3" // sqlite3 driver for database/sql

	"github.com/heartmarshall/pkp-import/internal/config"
)

// DB is a writable legacy database backed by a temporary SQLite file.
type DB struct {
	*sql.DB
	Path string
}

// New creates an empty legacy schema in t.TempDir(). The handle is closed via t.Cleanup.
func New(t *testing.T) *DB {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ojs.db")
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		t.Fatalf("legacytest: open: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	if _, err := db.Exec(schema); err != nil {
		t.Fatalf("legacytest: create schema: %v", err)
	}

	return &DB{DB: db, Path: path}
}

// Config returns a legacy connection config pointing at this database.
func (d *DB) Config() config.LegacyConfig {
	return config.LegacyConfig{Driver: "sqlite3", Name: d.Path, ConnectTimeout: time.Second}
}

func (d *DB) exec(t *testing.T, query string, args ...any) {
	t.Helper()
	if _, err := d.Exec(query, args...); err != nil {
		t.Fatalf("legacytest: %s: %v", query, err)
	}
}

// Setting is one EAV settings row.
type Setting struct {
	Locale string
	Name   string
	Value  string
}

// Journal inserts a journal row and its settings.
func (d *DB) Journal(t *testing.T, id int64, path, primaryLocale string, settings ...Setting) {
	t.Helper()
	d.exec(t, `INSERT INTO journals (journal_id, path, primary_locale) VALUES (?, ?, ?)`, id, path, primaryLocale)
	d.settings(t, "journal_settings", "journal_id", id, settings)
}

// Section is a legacy section row.
type Section struct {
	ID          int64
	JournalID   int64
	MetaIndexed int64
	HideTitle   int64
	Seq         float64
	Settings    []Setting
}

// Section inserts a section row and its settings.
func (d *DB) Section(t *testing.T, s Section) {
	t.Helper()
	d.exec(t, `INSERT INTO sections (section_id, journal_id, seq, meta_indexed, hide_title) VALUES (?, ?, ?, ?, ?)`,
		s.ID, s.JournalID, s.Seq, s.MetaIndexed, s.HideTitle)
	d.settings(t, "section_settings", "section_id", s.ID, s.Settings)
}

// Issue is a legacy issue row together with its custom section order.
type Issue struct {
	ID            int64
	JournalID     int64
	Volume        int64
	Number        string
	Year          int64
	Published     bool
	Current       bool
	DatePublished *time.Time
	SectionIDs    []int64
	Settings      []Setting
}

// Issue inserts an issue row, its settings and custom_section_orders rows.
func (d *DB) Issue(t *testing.T, i Issue) {
	t.Helper()
	d.exec(t, `INSERT INTO issues (issue_id, journal_id, volume, number, year, published, current, date_published)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		i.ID, i.JournalID, intOrNil(i.Volume), i.Number, i.Year, boolInt(i.Published), boolInt(i.Current), timeOrNil(i.DatePublished))
	d.settings(t, "issue_settings", "issue_id", i.ID, i.Settings)
	for seq, sectionID := range i.SectionIDs {
		d.exec(t, `INSERT INTO custom_section_orders (issue_id, section_id, seq) VALUES (?, ?, ?)`, i.ID, sectionID, seq+1)
	}
}

// Article is a legacy article row. A non-zero IssueID also creates its
// published_articles row.
type Article struct {
	ID            int64
	JournalID     int64
	SectionID     int64
	UserID        int64
	Language      string
	Status        int64
	Pages         string
	DateSubmitted *time.Time
	IssueID       int64
	DatePublished *time.Time
	Settings      []Setting
	EditorIDs     []int64
}

// Article inserts an article row, its settings, publication and edit assignments.
func (d *DB) Article(t *testing.T, a Article) {
	t.Helper()
	d.exec(t, `INSERT INTO articles (article_id, user_id, journal_id, section_id, language, date_submitted, status, pages)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, intOrNil(a.UserID), a.JournalID, intOrNil(a.SectionID), a.Language, timeOrNil(a.DateSubmitted), a.Status, a.Pages)
	d.settings(t, "article_settings", "article_id", a.ID, a.Settings)
	if a.IssueID != 0 {
		d.exec(t, `INSERT INTO published_articles (article_id, issue_id, date_published) VALUES (?, ?, ?)`,
			a.ID, a.IssueID, timeOrNil(a.DatePublished))
	}
	for _, editorID := range a.EditorIDs {
		d.exec(t, `INSERT INTO edit_assignments (article_id, editor_id) VALUES (?, ?)`, a.ID, editorID)
	}
}

// Author is a legacy author row.
type Author struct {
	ID             int64
	ArticleID      int64
	FirstName      string
	LastName       string
	Email          string
	Country        string
	PrimaryContact bool
	Seq            float64
}

// Author inserts an author row.
func (d *DB) Author(t *testing.T, a Author) {
	t.Helper()
	d.exec(t, `INSERT INTO authors (author_id, submission_id, primary_contact, seq, first_name, last_name, country, email)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.ArticleID, boolInt(a.PrimaryContact), a.Seq, a.FirstName, a.LastName, a.Country, a.Email)
}

// User is a legacy user row.
type User struct {
	ID        int64
	Username  string
	FirstName string
	LastName  string
	Email     string
	Disabled  bool
}

// User inserts a user row.
func (d *DB) User(t *testing.T, u User) {
	t.Helper()
	d.exec(t, `INSERT INTO users (user_id, username, first_name, last_name, email, disabled, date_registered)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Username, u.FirstName, u.LastName, u.Email, boolInt(u.Disabled), time.Date(2010, time.January, 1, 0, 0, 0, 0, time.UTC))
}

// Role inserts a journal membership row.
func (d *DB) Role(t *testing.T, journalID, userID, roleID int64) {
	t.Helper()
	d.exec(t, `INSERT INTO roles (journal_id, user_id, role_id) VALUES (?, ?, ?)`, journalID, userID, roleID)
}

func (d *DB) settings(t *testing.T, table, idColumn string, id int64, settings []Setting) {
	t.Helper()
	for _, s := range settings {
		d.exec(t, `INSERT INTO `+table+` (`+idColumn+`, locale, setting_name, setting_value) VALUES (?, ?, ?, ?)`,
			id, s.Locale, s.Name, s.Value)
	}
}

func boolInt(b bool) int64 {
	if b {
		return 1
	}
	return 0
}

func intOrNil(v int64) any {
	if v == 0 {
		return nil
	}
	return v
}

func timeOrNil(t *time.Time) any {
	if t == nil {
		return nil
	}
	return *t
}
