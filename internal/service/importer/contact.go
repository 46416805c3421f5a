package importer

import (
	"context"

	"github.com/google/uuid"

	"github.com/heartmarshall/pkp-import/internal/domain"
	"github.com/heartmarshall/pkp-import/internal/legacy"
)

// importContact creates the journal contact from the primary-locale contact
// settings. Nothing is created when none of them is set.
func (s *Service) importContact(ctx context.Context, ref journalRef, settings legacy.SettingsMap) error {
	name := settings.Primary(legacy.FieldContactName)
	email := settings.Primary(legacy.FieldContactEmail)
	phone := settings.Primary(legacy.FieldContactPhone)
	address := settings.Primary(legacy.FieldContactMailingAddress)
	if name == "" && email == "" && phone == "" && address == "" {
		return nil
	}

	typeID, err := s.refs.ResolveContactType(ctx, domain.DefaultContactTypeName)
	if err != nil {
		return err
	}

	return s.contacts.CreateJournalContact(ctx, &domain.JournalContact{
		ID:            uuid.New(),
		JournalID:     ref.ID,
		ContactTypeID: &typeID,
		FullName:      orPlaceholder(name),
		Email:         orPlaceholder(email),
		Phone:         orPlaceholder(phone),
		Address:       orPlaceholder(address),
	})
}

func orPlaceholder(v string) string {
	if v == "" {
		return domain.PlaceholderText
	}
	return v
}
