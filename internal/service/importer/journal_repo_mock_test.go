package importer

import (
	"context"
	"sync"

	"github.com/heartmarshall/pkp-import/internal/domain"
)

var _ journalRepo = &journalRepoMock{}

type journalRepoMock struct {
	CreateFunc func(ctx context.Context, j *domain.Journal) error

	calls struct {
		Create []struct {
			Ctx context.Context
			J   *domain.Journal
		}
	}
	lockCreate sync.RWMutex
}

func (mock *journalRepoMock) Create(ctx context.Context, j *domain.Journal) error {
	if mock.CreateFunc == nil {
		panic("journalRepoMock.CreateFunc: method is nil but journalRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		J   *domain.Journal
	}{
		Ctx: ctx,
		J:   j,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, j)
}

func (mock *journalRepoMock) CreateCalls() []struct {
	Ctx context.Context
	J   *domain.Journal
} {
	var calls []struct {
		Ctx context.Context
		J   *domain.Journal
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
