package importer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/pkp-import/internal/domain"
	"github.com/heartmarshall/pkp-import/internal/legacy"
)

var issueFields = []legacy.FieldSpec{
	{Target: "title", Key: legacy.FieldTitle, Default: domain.PlaceholderText},
	{Target: "description", Key: legacy.FieldDescription, Default: domain.PlaceholderText},
}

// importIssues creates every issue of the journal, linking each to the
// sections of its custom section order. Legacy sections missing from
// sections are skipped.
func (s *Service) importIssues(ctx context.Context, ref journalRef, sections idMap) (idMap, error) {
	recs, err := s.source.Issues(ctx, ref.OldID)
	if err != nil {
		return nil, err
	}

	out := make(idMap, len(recs))
	for _, rec := range recs {
		rows, err := s.source.IssueSettings(ctx, rec.ID)
		if err != nil {
			return nil, err
		}
		links, err := s.source.IssueSections(ctx, rec.ID)
		if err != nil {
			return nil, err
		}

		issue := buildIssue(ref, rec, legacy.Flatten(rows, ref.PrimaryLocale))
		for _, link := range links {
			if id, ok := sections[link.SectionID]; ok {
				issue.SectionIDs = append(issue.SectionIDs, id)
			}
		}

		if err := issue.Validate(); err != nil {
			return nil, fmt.Errorf("issue %d: %w", rec.ID, err)
		}
		if err := s.issues.Create(ctx, issue); err != nil {
			return nil, fmt.Errorf("issue %d: %w", rec.ID, err)
		}
		out[rec.ID] = issue.ID
	}
	return out, nil
}

func buildIssue(ref journalRef, rec legacy.IssueRecord, settings legacy.SettingsMap) *domain.Issue {
	issue := &domain.Issue{
		ID:          uuid.New(),
		JournalID:   ref.ID,
		LegacyID:    rec.ID,
		Volume:      rec.Volume,
		Number:      rec.Number,
		Year:        rec.Year,
		Published:   rec.Published,
		Current:     rec.Current,
		PublishedAt: rec.DatePublished,
	}
	for _, l := range legacy.Fanout(settings, issueFields) {
		issue.Translations = append(issue.Translations, domain.IssueTranslation{
			Locale:      l.Locale,
			Title:       l.Value("title"),
			Description: l.Value("description"),
		})
	}
	return issue
}
