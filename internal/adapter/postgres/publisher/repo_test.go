package publisher_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/pkp-import/internal/adapter/postgres/publisher"
	"github.com/heartmarshall/pkp-import/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/pkp-import/internal/domain"
)

func newPublisher(name string) domain.Publisher {
	return domain.Publisher{
		ID:      uuid.New(),
		Name:    name,
		Email:   domain.PublisherPlaceholderEmail,
		Address: domain.PlaceholderText,
		Phone:   domain.PlaceholderText,
	}
}

func TestRepo_InsertIfAbsent_WithTranslations(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := publisher.New(pool)
	ctx := context.Background()

	url := domain.UnknownPublisherURL
	p := newPublisher("Press " + uuid.NewString()[:8])
	p.URL = &url
	p.Translations = []domain.PublisherTranslation{
		{Locale: "tr", About: "Hakkında"},
		{Locale: "en", About: "About"},
	}

	inserted, err := repo.InsertIfAbsent(ctx, &p)
	if err != nil {
		t.Fatalf("InsertIfAbsent: %v", err)
	}
	if !inserted {
		t.Fatal("expected insert")
	}
	if p.CreatedAt.IsZero() {
		t.Error("CreatedAt was not filled")
	}

	got, err := repo.GetByName(ctx, p.Name)
	if err != nil {
		t.Fatalf("GetByName: %v", err)
	}
	if got.ID != p.ID {
		t.Errorf("ID = %v, want %v", got.ID, p.ID)
	}
	if got.URL == nil || *got.URL != url {
		t.Errorf("URL = %v, want %q", got.URL, url)
	}
	if len(got.Translations) != 0 {
		t.Errorf("GetByName loaded translations: %+v", got.Translations)
	}

	if err := repo.LoadTranslations(ctx, got); err != nil {
		t.Fatalf("LoadTranslations: %v", err)
	}
	if len(got.Translations) != 2 {
		t.Fatalf("translations = %d, want 2", len(got.Translations))
	}
	if got.Translations[0].Locale != "en" || got.Translations[1].Locale != "tr" {
		t.Errorf("translations not ordered by locale: %+v", got.Translations)
	}
}

func TestRepo_InsertIfAbsent_SameName(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := publisher.New(pool)
	ctx := context.Background()

	existing := testhelper.SeedPublisher(t, pool)

	dup := newPublisher(existing.Name)
	dup.Translations = []domain.PublisherTranslation{{Locale: "en", About: "dup"}}
	inserted, err := repo.InsertIfAbsent(ctx, &dup)
	if err != nil {
		t.Fatalf("InsertIfAbsent: %v", err)
	}
	if inserted {
		t.Fatal("expected no insert for existing name")
	}
	if n := testhelper.CountRows(t, pool, "publisher_translations", "publisher_id", dup.ID); n != 0 {
		t.Errorf("translations written for skipped publisher: %d", n)
	}
}

func TestRepo_GetByName_CaseSensitive(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := publisher.New(pool)

	existing := testhelper.SeedPublisher(t, pool)

	_, err := repo.GetByName(context.Background(), strings.ToUpper(existing.Name))
	if !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("GetByName: expected ErrNotFound, got %v", err)
	}
}
