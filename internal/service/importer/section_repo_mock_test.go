package importer

import (
	"context"
	"sync"

	"github.com/heartmarshall/pkp-import/internal/domain"
)

var _ sectionRepo = &sectionRepoMock{}

type sectionRepoMock struct {
	CreateFunc func(ctx context.Context, s *domain.Section) error

	calls struct {
		Create []struct {
			Ctx context.Context
			S   *domain.Section
		}
	}
	lockCreate sync.RWMutex
}

func (mock *sectionRepoMock) Create(ctx context.Context, s *domain.Section) error {
	if mock.CreateFunc == nil {
		panic("sectionRepoMock.CreateFunc: method is nil but sectionRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		S   *domain.Section
	}{
		Ctx: ctx,
		S:   s,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, s)
}

func (mock *sectionRepoMock) CreateCalls() []struct {
	Ctx context.Context
	S   *domain.Section
} {
	var calls []struct {
		Ctx context.Context
		S   *domain.Section
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
