package importer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/pkp-import/internal/domain"
	"github.com/heartmarshall/pkp-import/internal/legacy"
)

var articleFields = []legacy.FieldSpec{
	{Target: "title", Key: legacy.FieldTitle, Default: domain.PlaceholderText},
	{Target: "abstract", Key: legacy.FieldAbstract, Default: domain.PlaceholderText},
	{Target: "keywords", Key: legacy.FieldSubject},
}

// importArticles creates every article of the journal with its byline and
// editors. Sections and issues are resolved through the maps of the earlier
// stages; unknown ones leave the reference empty.
func (s *Service) importArticles(ctx context.Context, ref journalRef, issues, sections idMap) (idMap, error) {
	recs, err := s.source.Articles(ctx, ref.OldID)
	if err != nil {
		return nil, err
	}

	out := make(idMap, len(recs))
	for _, rec := range recs {
		a, err := s.buildArticle(ctx, ref, rec, issues, sections)
		if err != nil {
			return nil, fmt.Errorf("article %d: %w", rec.ID, err)
		}
		if err := a.Validate(); err != nil {
			return nil, fmt.Errorf("article %d: %w", rec.ID, err)
		}
		if err := s.articles.Create(ctx, a); err != nil {
			return nil, fmt.Errorf("article %d: %w", rec.ID, err)
		}
		out[rec.ID] = a.ID
	}
	return out, nil
}

func (s *Service) buildArticle(ctx context.Context, ref journalRef, rec legacy.ArticleRecord, issues, sections idMap) (*domain.Article, error) {
	rows, err := s.source.ArticleSettings(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	settings := legacy.Flatten(rows, ref.PrimaryLocale)

	language := rec.Language
	if language == "" {
		language = ref.PrimaryLocale
	}

	a := &domain.Article{
		ID:              uuid.New(),
		JournalID:       ref.ID,
		LegacyID:        rec.ID,
		SectionID:       lookup(sections, rec.SectionID),
		IssueID:         lookup(issues, rec.IssueID),
		Status:          rec.Status,
		Pages:           rec.Pages,
		PrimaryLanguage: legacy.LanguageCode(language),
		SubmittedAt:     rec.DateSubmitted,
		PublishedAt:     rec.DatePublished,
	}

	for _, l := range legacy.Fanout(settings, articleFields) {
		a.Translations = append(a.Translations, domain.ArticleTranslation{
			Locale:   l.Locale,
			Title:    l.Value("title"),
			Abstract: l.Value("abstract"),
			Keywords: l.Value("keywords"),
		})
	}

	if rec.UserID != 0 {
		id, err := s.users.ResolveUser(ctx, rec.UserID)
		if err != nil {
			return nil, fmt.Errorf("submitter: %w", err)
		}
		a.SubmitterID = &id
	}

	authors, err := s.source.Authors(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	for pos, au := range authors {
		a.Authors = append(a.Authors, domain.ArticleAuthor{
			ID:             uuid.New(),
			ArticleID:      a.ID,
			FirstName:      au.FirstName,
			MiddleName:     au.MiddleName,
			LastName:       au.LastName,
			Email:          au.Email,
			Country:        au.Country,
			PrimaryContact: au.PrimaryContact,
			Position:       pos,
		})
	}

	editors, err := s.source.EditorIDs(ctx, rec.ID)
	if err != nil {
		return nil, err
	}
	for _, oldID := range editors {
		if oldID == 0 {
			continue
		}
		id, err := s.users.ResolveUser(ctx, oldID)
		if err != nil {
			return nil, fmt.Errorf("editor: %w", err)
		}
		a.EditorIDs = append(a.EditorIDs, id)
	}

	return a, nil
}

// lookup returns the new ID of oldID, or nil when oldID is zero or unknown.
func lookup(m idMap, oldID int64) *uuid.UUID {
	if oldID == 0 {
		return nil
	}
	id, ok := m[oldID]
	if !ok {
		return nil
	}
	return &id
}
