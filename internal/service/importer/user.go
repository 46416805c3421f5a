package importer

import (
	"context"
	"crypto/rand"
	"fmt"
	"log/slog"

	"github.com/cenkalti/backoff/v4"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/heartmarshall/pkp-import/internal/domain"
	"github.com/heartmarshall/pkp-import/internal/legacy"
)

type legacyUserSource interface {
	User(ctx context.Context, id int64) (legacy.UserRecord, error)
}

// userResolver maps legacy user IDs to migrated users, creating them on
// first use. Resolutions are memoized until Reset; across runs users are
// deduplicated by their legacy ID.
type userResolver struct {
	source     legacyUserSource
	users      userRepo
	newBackOff func() backoff.BackOff
	hashCost   int
	log        *slog.Logger

	memo map[int64]uuid.UUID
}

func newUserResolver(
	log *slog.Logger,
	source legacyUserSource,
	users userRepo,
	newBackOff func() backoff.BackOff,
	hashCost int,
) *userResolver {
	if hashCost == 0 {
		hashCost = bcrypt.DefaultCost
	}
	return &userResolver{
		source:     source,
		users:      users,
		newBackOff: newBackOff,
		hashCost:   hashCost,
		log:        log,
		memo:       make(map[int64]uuid.UUID),
	}
}

// Reset forgets all resolutions.
func (r *userResolver) Reset() {
	clear(r.memo)
}

// ResolveUser returns the ID of the user migrated from oldID. A legacy user
// that does not exist is a *legacy.NotFoundError.
func (r *userResolver) ResolveUser(ctx context.Context, oldID int64) (uuid.UUID, error) {
	if id, ok := r.memo[oldID]; ok {
		return id, nil
	}

	id, created, err := insertOrFetch(ctx, r.newBackOff(),
		func(ctx context.Context) (uuid.UUID, error) {
			u, err := r.users.GetByLegacyID(ctx, oldID)
			if err != nil {
				return uuid.Nil, err
			}
			return u.ID, nil
		},
		func(ctx context.Context) (uuid.UUID, bool, error) {
			u, err := r.newUser(ctx, oldID)
			if err != nil {
				return uuid.Nil, false, err
			}
			inserted, err := r.users.InsertIfAbsent(ctx, u)
			return u.ID, inserted, err
		},
	)
	if err != nil {
		return uuid.Nil, fmt.Errorf("resolve user %d: %w", oldID, err)
	}

	r.memo[oldID] = id
	if created {
		r.log.DebugContext(ctx, "user created",
			slog.Int64("legacy_id", oldID),
			slog.String("user_id", id.String()),
		)
	}
	return id, nil
}

func (r *userResolver) newUser(ctx context.Context, oldID int64) (*domain.User, error) {
	rec, err := r.source.User(ctx, oldID)
	if err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(rand.Text()), r.hashCost)
	if err != nil {
		return nil, fmt.Errorf("hash placeholder password: %w", err)
	}

	return &domain.User{
		ID:                uuid.New(),
		LegacyID:          rec.ID,
		Username:          rec.Username,
		Email:             rec.Email,
		FirstName:         rec.FirstName,
		LastName:          rec.LastName,
		PasswordHash:      string(hash),
		ConfirmationToken: uuid.NewString(),
		Enabled:           !rec.Disabled,
	}, nil
}
