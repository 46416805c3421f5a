package importer

import (
	"context"
	"sync"

	"github.com/heartmarshall/pkp-import/internal/domain"
)

var _ issueRepo = &issueRepoMock{}

type issueRepoMock struct {
	CreateFunc func(ctx context.Context, i *domain.Issue) error

	calls struct {
		Create []struct {
			Ctx context.Context
			I   *domain.Issue
		}
	}
	lockCreate sync.RWMutex
}

func (mock *issueRepoMock) Create(ctx context.Context, i *domain.Issue) error {
	if mock.CreateFunc == nil {
		panic("issueRepoMock.CreateFunc: method is nil but issueRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		I   *domain.Issue
	}{
		Ctx: ctx,
		I:   i,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, i)
}

func (mock *issueRepoMock) CreateCalls() []struct {
	Ctx context.Context
	I   *domain.Issue
} {
	var calls []struct {
		Ctx context.Context
		I   *domain.Issue
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
