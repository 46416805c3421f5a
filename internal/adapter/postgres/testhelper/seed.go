package testhelper

import (
	"context"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/pkp-import/internal/domain"
)

// uniqueSuffix returns a short unique string for generating non-conflicting test data.
func uniqueSuffix() string {
	return uuid.New().String()[:8]
}

// UniqueLegacyID returns a legacy ID that is very unlikely to collide with
// IDs used by other tests sharing the container.
func UniqueLegacyID() int64 {
	return 1_000_000 + rand.Int64N(1_000_000_000)
}

// SeedUser creates a migrated user with a random legacy ID.
func SeedUser(t *testing.T, pool *pgxpool.Pool) domain.User {
	t.Helper()
	ctx := context.Background()

	suffix := uniqueSuffix()
	user := domain.User{
		ID:                uuid.New(),
		LegacyID:          UniqueLegacyID(),
		Username:          "user-" + suffix,
		Email:             "user-" + suffix + "@example.com",
		FirstName:         "Test",
		LastName:          "User " + suffix,
		PasswordHash:      "x",
		ConfirmationToken: uuid.NewString(),
		Enabled:           true,
		CreatedAt:         time.Now().UTC().Truncate(time.Microsecond),
	}

	_, err := pool.Exec(ctx,
		`INSERT INTO users (id, legacy_id, username, email, first_name, last_name, password_hash, confirmation_token, enabled, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		user.ID, user.LegacyID, user.Username, user.Email, user.FirstName, user.LastName,
		user.PasswordHash, user.ConfirmationToken, user.Enabled, user.CreatedAt,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedUser: %v", err)
	}

	return user
}

// SeedLanguage creates a language with a random code.
func SeedLanguage(t *testing.T, pool *pgxpool.Pool) domain.Language {
	t.Helper()

	lang := domain.Language{ID: uuid.New(), Code: uniqueSuffix()[:6], Name: "Test Language"}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO languages (id, code, name) VALUES ($1, $2, $3)`,
		lang.ID, lang.Code, lang.Name,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedLanguage: %v", err)
	}
	return lang
}

// SeedPublisher creates a publisher with a random name.
func SeedPublisher(t *testing.T, pool *pgxpool.Pool) domain.Publisher {
	t.Helper()

	pub := domain.Publisher{
		ID:      uuid.New(),
		Name:    "Publisher " + uniqueSuffix(),
		Email:   domain.PublisherPlaceholderEmail,
		Address: domain.PlaceholderText,
		Phone:   domain.PlaceholderText,
	}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO publishers (id, name, email, address, phone) VALUES ($1, $2, $3, $4, $5)`,
		pub.ID, pub.Name, pub.Email, pub.Address, pub.Phone,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedPublisher: %v", err)
	}
	return pub
}

// SeedJournal creates a journal with its own language and publisher.
func SeedJournal(t *testing.T, pool *pgxpool.Pool) domain.Journal {
	t.Helper()

	lang := SeedLanguage(t, pool)
	pub := SeedPublisher(t, pool)

	j := domain.Journal{
		ID:              uuid.New(),
		LegacyID:        UniqueLegacyID(),
		Slug:            "journal-" + uniqueSuffix(),
		Status:          domain.JournalStatusActive,
		Published:       true,
		ISSN:            domain.DefaultISSN,
		EISSN:           domain.DefaultISSN,
		Founded:         time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC),
		MandatoryLangID: lang.ID,
		PublisherID:     pub.ID,
	}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO journals (id, legacy_id, slug, status, published, issn, eissn, founded, mandatory_lang_id, publisher_id)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		j.ID, j.LegacyID, j.Slug, j.Status, j.Published, j.ISSN, j.EISSN, j.Founded, j.MandatoryLangID, j.PublisherID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedJournal: %v", err)
	}
	return j
}

// SeedSection creates an untranslated section in the journal.
func SeedSection(t *testing.T, pool *pgxpool.Pool, journalID uuid.UUID) domain.Section {
	t.Helper()

	s := domain.Section{ID: uuid.New(), JournalID: journalID, LegacyID: UniqueLegacyID()}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO sections (id, journal_id, legacy_id) VALUES ($1, $2, $3)`,
		s.ID, s.JournalID, s.LegacyID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedSection: %v", err)
	}
	return s
}

// SeedIssue creates an untranslated issue in the journal.
func SeedIssue(t *testing.T, pool *pgxpool.Pool, journalID uuid.UUID) domain.Issue {
	t.Helper()

	i := domain.Issue{ID: uuid.New(), JournalID: journalID, LegacyID: UniqueLegacyID()}
	_, err := pool.Exec(context.Background(),
		`INSERT INTO issues (id, journal_id, legacy_id) VALUES ($1, $2, $3)`,
		i.ID, i.JournalID, i.LegacyID,
	)
	if err != nil {
		t.Fatalf("testhelper: SeedIssue: %v", err)
	}
	return i
}

// CountRows returns SELECT count(*) FROM table WHERE column = value.
// table and column must be trusted identifiers.
func CountRows(t *testing.T, pool *pgxpool.Pool, table, column string, value any) int {
	t.Helper()

	var n int
	err := pool.QueryRow(context.Background(),
		`SELECT count(*) FROM `+table+` WHERE `+column+` = $1`, value,
	).Scan(&n)
	if err != nil {
		t.Fatalf("testhelper: CountRows %s: %v", table, err)
	}
	return n
}
