package importer

import (
	"context"
	"sync"

	"github.com/heartmarshall/pkp-import/internal/domain"
)

var _ membershipRepo = &membershipRepoMock{}

type membershipRepoMock struct {
	AddFunc func(ctx context.Context, m domain.JournalUser) (bool, error)

	calls struct {
		Add []struct {
			Ctx context.Context
			M   domain.JournalUser
		}
	}
	lockAdd sync.RWMutex
}

func (mock *membershipRepoMock) Add(ctx context.Context, m domain.JournalUser) (bool, error) {
	if mock.AddFunc == nil {
		panic("membershipRepoMock.AddFunc: method is nil but membershipRepo.Add was just called")
	}
	callInfo := struct {
		Ctx context.Context
		M   domain.JournalUser
	}{
		Ctx: ctx,
		M:   m,
	}
	mock.lockAdd.Lock()
	mock.calls.Add = append(mock.calls.Add, callInfo)
	mock.lockAdd.Unlock()
	return mock.AddFunc(ctx, m)
}

func (mock *membershipRepoMock) AddCalls() []struct {
	Ctx context.Context
	M   domain.JournalUser
} {
	var calls []struct {
		Ctx context.Context
		M   domain.JournalUser
	}
	mock.lockAdd.RLock()
	calls = mock.calls.Add
	mock.lockAdd.RUnlock()
	return calls
}
