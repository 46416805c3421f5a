package importer

import (
	"context"
	"sync"

	"github.com/heartmarshall/pkp-import/internal/domain"
)

var _ articleRepo = &articleRepoMock{}

type articleRepoMock struct {
	CreateFunc func(ctx context.Context, a *domain.Article) error

	calls struct {
		Create []struct {
			Ctx context.Context
			A   *domain.Article
		}
	}
	lockCreate sync.RWMutex
}

func (mock *articleRepoMock) Create(ctx context.Context, a *domain.Article) error {
	if mock.CreateFunc == nil {
		panic("articleRepoMock.CreateFunc: method is nil but articleRepo.Create was just called")
	}
	callInfo := struct {
		Ctx context.Context
		A   *domain.Article
	}{
		Ctx: ctx,
		A:   a,
	}
	mock.lockCreate.Lock()
	mock.calls.Create = append(mock.calls.Create, callInfo)
	mock.lockCreate.Unlock()
	return mock.CreateFunc(ctx, a)
}

func (mock *articleRepoMock) CreateCalls() []struct {
	Ctx context.Context
	A   *domain.Article
} {
	var calls []struct {
		Ctx context.Context
		A   *domain.Article
	}
	mock.lockCreate.RLock()
	calls = mock.calls.Create
	mock.lockCreate.RUnlock()
	return calls
}
