package importer

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/heartmarshall/pkp-import/internal/domain"
	"github.com/heartmarshall/pkp-import/internal/legacy"
)

var sectionFields = []legacy.FieldSpec{
	{Target: "title", Key: legacy.FieldTitle, Default: domain.PlaceholderText},
}

// importSections creates every section of the journal and returns the
// legacy-to-new section ID map.
func (s *Service) importSections(ctx context.Context, ref journalRef) (idMap, error) {
	recs, err := s.source.Sections(ctx, ref.OldID)
	if err != nil {
		return nil, err
	}

	out := make(idMap, len(recs))
	for _, rec := range recs {
		rows, err := s.source.SectionSettings(ctx, rec.ID)
		if err != nil {
			return nil, err
		}

		section := buildSection(ref, rec, legacy.Flatten(rows, ref.PrimaryLocale))
		if err := section.Validate(); err != nil {
			return nil, fmt.Errorf("section %d: %w", rec.ID, err)
		}
		if err := s.sections.Create(ctx, section); err != nil {
			return nil, fmt.Errorf("section %d: %w", rec.ID, err)
		}
		out[rec.ID] = section.ID
	}
	return out, nil
}

func buildSection(ref journalRef, rec legacy.SectionRecord, settings legacy.SettingsMap) *domain.Section {
	section := &domain.Section{
		ID:         uuid.New(),
		JournalID:  ref.ID,
		LegacyID:   rec.ID,
		AllowIndex: rec.MetaIndexed != 0,
		HideTitle:  rec.HideTitle != 0,
		Position:   rec.Seq,
	}
	for _, l := range legacy.Fanout(settings, sectionFields) {
		section.Translations = append(section.Translations, domain.SectionTranslation{
			Locale: l.Locale,
			Title:  l.Value("title"),
		})
	}
	return section
}
