package importer

import (
	"context"
	"sync"

	"github.com/heartmarshall/pkp-import/internal/domain"
)

var _ userRepo = &userRepoMock{}

type userRepoMock struct {
	GetByLegacyIDFunc  func(ctx context.Context, legacyID int64) (*domain.User, error)
	InsertIfAbsentFunc func(ctx context.Context, u *domain.User) (bool, error)

	calls struct {
		GetByLegacyID []struct {
			Ctx      context.Context
			LegacyID int64
		}
		InsertIfAbsent []struct {
			Ctx context.Context
			U   *domain.User
		}
	}
	lockGetByLegacyID  sync.RWMutex
	lockInsertIfAbsent sync.RWMutex
}

func (mock *userRepoMock) GetByLegacyID(ctx context.Context, legacyID int64) (*domain.User, error) {
	if mock.GetByLegacyIDFunc == nil {
		panic("userRepoMock.GetByLegacyIDFunc: method is nil but userRepo.GetByLegacyID was just called")
	}
	callInfo := struct {
		Ctx      context.Context
		LegacyID int64
	}{
		Ctx:      ctx,
		LegacyID: legacyID,
	}
	mock.lockGetByLegacyID.Lock()
	mock.calls.GetByLegacyID = append(mock.calls.GetByLegacyID, callInfo)
	mock.lockGetByLegacyID.Unlock()
	return mock.GetByLegacyIDFunc(ctx, legacyID)
}

func (mock *userRepoMock) GetByLegacyIDCalls() []struct {
	Ctx      context.Context
	LegacyID int64
} {
	var calls []struct {
		Ctx      context.Context
		LegacyID int64
	}
	mock.lockGetByLegacyID.RLock()
	calls = mock.calls.GetByLegacyID
	mock.lockGetByLegacyID.RUnlock()
	return calls
}

func (mock *userRepoMock) InsertIfAbsent(ctx context.Context, u *domain.User) (bool, error) {
	if mock.InsertIfAbsentFunc == nil {
		panic("userRepoMock.InsertIfAbsentFunc: method is nil but userRepo.InsertIfAbsent was just called")
	}
	callInfo := struct {
		Ctx context.Context
		U   *domain.User
	}{
		Ctx: ctx,
		U:   u,
	}
	mock.lockInsertIfAbsent.Lock()
	mock.calls.InsertIfAbsent = append(mock.calls.InsertIfAbsent, callInfo)
	mock.lockInsertIfAbsent.Unlock()
	return mock.InsertIfAbsentFunc(ctx, u)
}

func (mock *userRepoMock) InsertIfAbsentCalls() []struct {
	Ctx context.Context
	U   *domain.User
} {
	var calls []struct {
		Ctx context.Context
		U   *domain.User
	}
	mock.lockInsertIfAbsent.RLock()
	calls = mock.calls.InsertIfAbsent
	mock.lockInsertIfAbsent.RUnlock()
	return calls
}
