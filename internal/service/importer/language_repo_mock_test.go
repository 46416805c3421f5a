package importer

import (
	"context"
	"sync"

	"github.com/heartmarshall/pkp-import/internal/domain"
)

var _ languageRepo = &languageRepoMock{}

type languageRepoMock struct {
	GetByCodeFunc      func(ctx context.Context, code string) (*domain.Language, error)
	InsertIfAbsentFunc func(ctx context.Context, l *domain.Language) (bool, error)

	calls struct {
		GetByCode []struct {
			Ctx  context.Context
			Code string
		}
		InsertIfAbsent []struct {
			Ctx context.Context
			L   *domain.Language
		}
	}
	lockGetByCode      sync.RWMutex
	lockInsertIfAbsent sync.RWMutex
}

func (mock *languageRepoMock) GetByCode(ctx context.Context, code string) (*domain.Language, error) {
	if mock.GetByCodeFunc == nil {
		panic("languageRepoMock.GetByCodeFunc: method is nil but languageRepo.GetByCode was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Code string
	}{
		Ctx:  ctx,
		Code: code,
	}
	mock.lockGetByCode.Lock()
	mock.calls.GetByCode = append(mock.calls.GetByCode, callInfo)
	mock.lockGetByCode.Unlock()
	return mock.GetByCodeFunc(ctx, code)
}

func (mock *languageRepoMock) GetByCodeCalls() []struct {
	Ctx  context.Context
	Code string
} {
	var calls []struct {
		Ctx  context.Context
		Code string
	}
	mock.lockGetByCode.RLock()
	calls = mock.calls.GetByCode
	mock.lockGetByCode.RUnlock()
	return calls
}

func (mock *languageRepoMock) InsertIfAbsent(ctx context.Context, l *domain.Language) (bool, error) {
	if mock.InsertIfAbsentFunc == nil {
		panic("languageRepoMock.InsertIfAbsentFunc: method is nil but languageRepo.InsertIfAbsent was just called")
	}
	callInfo := struct {
		Ctx context.Context
		L   *domain.Language
	}{
		Ctx: ctx,
		L:   l,
	}
	mock.lockInsertIfAbsent.Lock()
	mock.calls.InsertIfAbsent = append(mock.calls.InsertIfAbsent, callInfo)
	mock.lockInsertIfAbsent.Unlock()
	return mock.InsertIfAbsentFunc(ctx, l)
}

func (mock *languageRepoMock) InsertIfAbsentCalls() []struct {
	Ctx context.Context
	L   *domain.Language
} {
	var calls []struct {
		Ctx context.Context
		L   *domain.Language
	}
	mock.lockInsertIfAbsent.RLock()
	calls = mock.calls.InsertIfAbsent
	mock.lockInsertIfAbsent.RUnlock()
	return calls
}
