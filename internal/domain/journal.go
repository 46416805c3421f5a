package domain

import (
	"time"

	"github.com/google/uuid"
)

// Journal status values carried over from the legacy platform.
const (
	JournalStatusActive = 1
)

// Defaults applied when the legacy journal settings omit a value.
const (
	DefaultJournalTitle = "Unknown Journal"
	DefaultISSN         = "1234-5679"
	DefaultFoundedYear  = 2015
)

// Journal is the root of an imported entity tree.
type Journal struct {
	ID              uuid.UUID
	LegacyID        int64
	Slug            string
	Status          int
	Published       bool
	ISSN            string
	EISSN           string
	Founded         time.Time
	ViewCount       int64
	DownloadCount   int64
	MandatoryLangID uuid.UUID
	PublisherID     uuid.UUID
	CreatedAt       time.Time

	// LanguageIDs always contains MandatoryLangID.
	LanguageIDs  []uuid.UUID
	Translations []JournalTranslation
}

// JournalTranslation holds the localized fields of a journal.
type JournalTranslation struct {
	Locale      string
	Title       string
	Description string
}

// Title returns the title for locale, or "" when the journal has no translation for it.
func (j *Journal) Title(locale string) string {
	for _, tr := range j.Translations {
		if tr.Locale == locale {
			return tr.Title
		}
	}
	return ""
}

// JournalContact is the contact person published on a journal's page.
type JournalContact struct {
	ID            uuid.UUID
	JournalID     uuid.UUID
	ContactTypeID *uuid.UUID
	FullName      string
	Email         string
	Phone         string
	Address       string
}
