package importer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/heartmarshall/pkp-import/internal/domain"
)

// ImportJournalUsers grants the migrated journal the memberships its legacy
// journal had in the roles table. It runs in its own transaction and returns
// the number of memberships created.
func (s *Service) ImportJournalUsers(ctx context.Context, newJournalID uuid.UUID, oldJournalID int64) (int, error) {
	roles, err := s.source.JournalRoles(ctx, oldJournalID)
	if err != nil {
		return 0, fmt.Errorf("load roles of journal %d: %w", oldJournalID, err)
	}

	var added int
	err = s.tx.RunInTx(ctx, func(ctx context.Context) error {
		added = 0
		for _, rec := range roles {
			userID, err := s.users.ResolveUser(ctx, rec.UserID)
			if err != nil {
				return err
			}

			ok, err := s.members.Add(ctx, domain.JournalUser{
				JournalID: newJournalID,
				UserID:    userID,
				Role:      domain.RoleFromLegacyID(rec.RoleID),
			})
			if err != nil {
				return err
			}
			if ok {
				added++
			}
		}
		return nil
	})
	if err != nil {
		s.users.Reset()
		return 0, fmt.Errorf("import users of journal %d: %w", oldJournalID, err)
	}

	s.log.InfoContext(ctx, "journal users imported",
		slog.Int64("legacy_journal_id", oldJournalID),
		slog.String("journal_id", newJournalID.String()),
		slog.Int("roles", len(roles)),
		slog.Int("added", added),
	)
	return added, nil
}
