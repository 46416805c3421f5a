package importer

import (
	"context"
	"sync"

	"github.com/heartmarshall/pkp-import/internal/legacy"
)

var _ legacyUserSource = &legacyUserSourceMock{}

type legacyUserSourceMock struct {
	UserFunc func(ctx context.Context, id int64) (legacy.UserRecord, error)

	calls struct {
		User []struct {
			Ctx context.Context
			Id  int64
		}
	}
	lockUser sync.RWMutex
}

func (mock *legacyUserSourceMock) User(ctx context.Context, id int64) (legacy.UserRecord, error) {
	if mock.UserFunc == nil {
		panic("legacyUserSourceMock.UserFunc: method is nil but legacyUserSource.User was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Id  int64
	}{
		Ctx: ctx,
		Id:  id,
	}
	mock.lockUser.Lock()
	mock.calls.User = append(mock.calls.User, callInfo)
	mock.lockUser.Unlock()
	return mock.UserFunc(ctx, id)
}

func (mock *legacyUserSourceMock) UserCalls() []struct {
	Ctx context.Context
	Id  int64
} {
	var calls []struct {
		Ctx context.Context
		Id  int64
	}
	mock.lockUser.RLock()
	calls = mock.calls.User
	mock.lockUser.RUnlock()
	return calls
}
