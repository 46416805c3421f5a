package domain

import (
	"fmt"

	"github.com/google/uuid"
)

// Validate checks the invariants of a journal built for persistence and
// collects all violations.
func (j *Journal) Validate() error {
	var errs []FieldError

	errs = requireID(errs, "id", j.ID)
	errs = requireID(errs, "publisher_id", j.PublisherID)
	errs = requireID(errs, "mandatory_lang_id", j.MandatoryLangID)

	if j.ISSN == "" {
		errs = append(errs, FieldError{Field: "issn", Message: "required"})
	}
	if j.Founded.IsZero() {
		errs = append(errs, FieldError{Field: "founded", Message: "required"})
	}

	mandatory := false
	for _, id := range j.LanguageIDs {
		if id == j.MandatoryLangID {
			mandatory = true
			break
		}
	}
	if !mandatory {
		errs = append(errs, FieldError{Field: "language_ids", Message: "must contain mandatory_lang_id"})
	}

	if len(j.Translations) == 0 {
		errs = append(errs, FieldError{Field: "translations", Message: "at least one required"})
	}
	seen := make(map[string]bool, len(j.Translations))
	for idx, tr := range j.Translations {
		errs = checkLocale(errs, seen, idx, tr.Locale)
		if tr.Title == "" {
			errs = append(errs, FieldError{Field: fmt.Sprintf("translations[%d].title", idx), Message: "required"})
		}
	}

	return validationResult("journal", errs)
}

// Validate checks the invariants of a section built for persistence.
func (s *Section) Validate() error {
	var errs []FieldError

	errs = requireID(errs, "id", s.ID)
	errs = requireID(errs, "journal_id", s.JournalID)

	seen := make(map[string]bool, len(s.Translations))
	for idx, tr := range s.Translations {
		errs = checkLocale(errs, seen, idx, tr.Locale)
	}

	return validationResult("section", errs)
}

// Validate checks the invariants of an issue built for persistence.
func (i *Issue) Validate() error {
	var errs []FieldError

	errs = requireID(errs, "id", i.ID)
	errs = requireID(errs, "journal_id", i.JournalID)

	seen := make(map[string]bool, len(i.Translations))
	for idx, tr := range i.Translations {
		errs = checkLocale(errs, seen, idx, tr.Locale)
	}

	return validationResult("issue", errs)
}

// Validate checks the invariants of an article built for persistence.
func (a *Article) Validate() error {
	var errs []FieldError

	errs = requireID(errs, "id", a.ID)
	errs = requireID(errs, "journal_id", a.JournalID)

	seen := make(map[string]bool, len(a.Translations))
	for idx, tr := range a.Translations {
		errs = checkLocale(errs, seen, idx, tr.Locale)
	}

	for idx, au := range a.Authors {
		if au.ArticleID != a.ID {
			errs = append(errs, FieldError{Field: fmt.Sprintf("authors[%d].article_id", idx), Message: "must match article id"})
		}
		if au.Position != idx {
			errs = append(errs, FieldError{Field: fmt.Sprintf("authors[%d].position", idx), Message: "out of order"})
		}
	}

	for idx, id := range a.EditorIDs {
		errs = requireID(errs, fmt.Sprintf("editor_ids[%d]", idx), id)
	}

	return validationResult("article", errs)
}

func requireID(errs []FieldError, field string, id uuid.UUID) []FieldError {
	if id == uuid.Nil {
		return append(errs, FieldError{Field: field, Message: "required"})
	}
	return errs
}

func checkLocale(errs []FieldError, seen map[string]bool, idx int, locale string) []FieldError {
	field := fmt.Sprintf("translations[%d].locale", idx)
	switch {
	case locale == "":
		return append(errs, FieldError{Field: field, Message: "required"})
	case seen[locale]:
		return append(errs, FieldError{Field: field, Message: "duplicate " + locale})
	}
	seen[locale] = true
	return errs
}

func validationResult(entity string, errs []FieldError) error {
	if len(errs) > 0 {
		return NewValidationErrors(entity, errs)
	}
	return nil
}
