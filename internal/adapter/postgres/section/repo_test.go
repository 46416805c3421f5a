package section_test

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/heartmarshall/pkp-import/internal/adapter/postgres/section"
	"github.com/heartmarshall/pkp-import/internal/adapter/postgres/testhelper"
	"github.com/heartmarshall/pkp-import/internal/domain"
)

func TestRepo_Create_ThenList(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := section.New(pool)
	ctx := context.Background()

	j := testhelper.SeedJournal(t, pool)

	second := domain.Section{
		ID: uuid.New(), JournalID: j.ID, LegacyID: 20, Position: 2, AllowIndex: true,
		Translations: []domain.SectionTranslation{{Locale: "tr", Title: "Derleme"}, {Locale: "en", Title: "Reviews"}},
	}
	first := domain.Section{
		ID: uuid.New(), JournalID: j.ID, LegacyID: 10, Position: 1, HideTitle: true,
	}
	for _, s := range []*domain.Section{&second, &first} {
		if err := repo.Create(ctx, s); err != nil {
			t.Fatalf("Create %d: %v", s.LegacyID, err)
		}
	}

	got, err := repo.ListByJournal(ctx, j.ID)
	if err != nil {
		t.Fatalf("ListByJournal: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("sections = %d, want 2", len(got))
	}
	if got[0].ID != first.ID || got[1].ID != second.ID {
		t.Fatalf("sections not ordered by position: %v, %v", got[0].LegacyID, got[1].LegacyID)
	}
	if !got[0].HideTitle || got[0].AllowIndex || len(got[0].Translations) != 0 {
		t.Errorf("first section = %+v", got[0])
	}
	if !got[1].AllowIndex || len(got[1].Translations) != 2 || got[1].Translations[0].Locale != "en" {
		t.Errorf("second section = %+v", got[1])
	}
}

func TestRepo_Create_UnknownJournal(t *testing.T) {
	t.Parallel()
	pool := testhelper.SetupTestDB(t)
	repo := section.New(pool)

	s := domain.Section{ID: uuid.New(), JournalID: uuid.New(), LegacyID: 1}
	if err := repo.Create(context.Background(), &s); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("Create: expected ErrNotFound, got %v", err)
	}
}
