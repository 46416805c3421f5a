package domain

import (
	"time"

	"github.com/google/uuid"
)

// Section groups articles of a journal.
type Section struct {
	ID         uuid.UUID
	JournalID  uuid.UUID
	LegacyID   int64
	AllowIndex bool
	HideTitle  bool
	Position   int

	Translations []SectionTranslation
}

// SectionTranslation holds the localized title of a section.
type SectionTranslation struct {
	Locale string
	Title  string
}

// Issue is a published (or scheduled) issue of a journal.
type Issue struct {
	ID          uuid.UUID
	JournalID   uuid.UUID
	LegacyID    int64
	Volume      string
	Number      string
	Year        int
	Published   bool
	Current     bool
	PublishedAt *time.Time

	Translations []IssueTranslation
	// SectionIDs lists linked sections in display order.
	SectionIDs []uuid.UUID
}

// IssueTranslation holds the localized fields of an issue.
type IssueTranslation struct {
	Locale      string
	Title       string
	Description string
}

// Article is a submission of a journal, optionally placed in an issue.
type Article struct {
	ID              uuid.UUID
	JournalID       uuid.UUID
	LegacyID        int64
	SectionID       *uuid.UUID
	IssueID         *uuid.UUID
	SubmitterID     *uuid.UUID
	Status          int
	Pages           string
	PrimaryLanguage string
	SubmittedAt     *time.Time
	PublishedAt     *time.Time

	Translations []ArticleTranslation
	Authors      []ArticleAuthor
	EditorIDs    []uuid.UUID
}

// ArticleTranslation holds the localized fields of an article.
type ArticleTranslation struct {
	Locale   string
	Title    string
	Abstract string
	Keywords string
}

// ArticleAuthor is a byline entry of an article. Authors are not users.
type ArticleAuthor struct {
	ID             uuid.UUID
	ArticleID      uuid.UUID
	FirstName      string
	MiddleName     string
	LastName       string
	Email          string
	Country        string
	PrimaryContact bool
	Position       int
}
