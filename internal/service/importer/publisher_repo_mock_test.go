package importer

import (
	"context"
	"sync"

	"github.com/heartmarshall/pkp-import/internal/domain"
)

var _ publisherRepo = &publisherRepoMock{}

type publisherRepoMock struct {
	GetByNameFunc      func(ctx context.Context, name string) (*domain.Publisher, error)
	InsertIfAbsentFunc func(ctx context.Context, p *domain.Publisher) (bool, error)

	calls struct {
		GetByName []struct {
			Ctx  context.Context
			Name string
		}
		InsertIfAbsent []struct {
			Ctx context.Context
			P   *domain.Publisher
		}
	}
	lockGetByName      sync.RWMutex
	lockInsertIfAbsent sync.RWMutex
}

func (mock *publisherRepoMock) GetByName(ctx context.Context, name string) (*domain.Publisher, error) {
	if mock.GetByNameFunc == nil {
		panic("publisherRepoMock.GetByNameFunc: method is nil but publisherRepo.GetByName was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Name string
	}{
		Ctx:  ctx,
		Name: name,
	}
	mock.lockGetByName.Lock()
	mock.calls.GetByName = append(mock.calls.GetByName, callInfo)
	mock.lockGetByName.Unlock()
	return mock.GetByNameFunc(ctx, name)
}

func (mock *publisherRepoMock) GetByNameCalls() []struct {
	Ctx  context.Context
	Name string
} {
	var calls []struct {
		Ctx  context.Context
		Name string
	}
	mock.lockGetByName.RLock()
	calls = mock.calls.GetByName
	mock.lockGetByName.RUnlock()
	return calls
}

func (mock *publisherRepoMock) InsertIfAbsent(ctx context.Context, p *domain.Publisher) (bool, error) {
	if mock.InsertIfAbsentFunc == nil {
		panic("publisherRepoMock.InsertIfAbsentFunc: method is nil but publisherRepo.InsertIfAbsent was just called")
	}
	callInfo := struct {
		Ctx context.Context
		P   *domain.Publisher
	}{
		Ctx: ctx,
		P:   p,
	}
	mock.lockInsertIfAbsent.Lock()
	mock.calls.InsertIfAbsent = append(mock.calls.InsertIfAbsent, callInfo)
	mock.lockInsertIfAbsent.Unlock()
	return mock.InsertIfAbsentFunc(ctx, p)
}

func (mock *publisherRepoMock) InsertIfAbsentCalls() []struct {
	Ctx context.Context
	P   *domain.Publisher
} {
	var calls []struct {
		Ctx context.Context
		P   *domain.Publisher
	}
	mock.lockInsertIfAbsent.RLock()
	calls = mock.calls.InsertIfAbsent
	mock.lockInsertIfAbsent.RUnlock()
	return calls
}
