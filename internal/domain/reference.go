package domain

import (
	"time"

	"github.com/google/uuid"
)

// Reference entities are deduplicated by a natural key and shared between imports.

const (
	UnknownPublisherName = "Unknown Publisher"
	UnknownPublisherURL  = "http://example.com"
	UnknownLanguageName  = "Unknown Language"

	DefaultContactTypeName = "Journal Contact"

	// Placeholder contact data for publishers created from a bare name.
	PublisherPlaceholderEmail = "publisher@example.com"
	PlaceholderText           = "-"
)

// Publisher is identified by its exact, case-sensitive name.
type Publisher struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Address   string
	Phone     string
	URL       *string
	CreatedAt time.Time

	Translations []PublisherTranslation
}

// PublisherTranslation holds the localized "about" text of a publisher.
type PublisherTranslation struct {
	Locale string
	About  string
}

// Language is identified by its two-letter code.
type Language struct {
	ID   uuid.UUID
	Code string
	Name string
}

// ContactType classifies journal contacts.
type ContactType struct {
	ID   uuid.UUID
	Name string
}

var languageNames = map[string]string{
	"tr": "Türkçe",
	"en": "English",
	"de": "Deutsch",
	"fr": "Français",
	"ru": "Русский язык",
}

// LanguageName returns the display name for a two-letter code,
// or UnknownLanguageName for codes outside the static table.
func LanguageName(code string) string {
	if name, ok := languageNames[code]; ok {
		return name
	}
	return UnknownLanguageName
}

// NewLanguage builds a Language for code with a fresh ID.
func NewLanguage(code string) Language {
	return Language{
		ID:   uuid.New(),
		Code: code,
		Name: LanguageName(code),
	}
}
