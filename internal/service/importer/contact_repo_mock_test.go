package importer

import (
	"context"
	"sync"

	"github.com/heartmarshall/pkp-import/internal/domain"
)

var _ contactRepo = &contactRepoMock{}

type contactRepoMock struct {
	CreateJournalContactFunc func(ctx context.Context, c *domain.JournalContact) error
	GetTypeByNameFunc        func(ctx context.Context, name string) (*domain.ContactType, error)
	InsertTypeIfAbsentFunc   func(ctx context.Context, ct *domain.ContactType) (bool, error)

	calls struct {
		CreateJournalContact []struct {
			Ctx context.Context
			C   *domain.JournalContact
		}
		GetTypeByName []struct {
			Ctx  context.Context
			Name string
		}
		InsertTypeIfAbsent []struct {
			Ctx context.Context
			Ct  *domain.ContactType
		}
	}
	lockCreateJournalContact sync.RWMutex
	lockGetTypeByName        sync.RWMutex
	lockInsertTypeIfAbsent   sync.RWMutex
}

func (mock *contactRepoMock) CreateJournalContact(ctx context.Context, c *domain.JournalContact) error {
	if mock.CreateJournalContactFunc == nil {
		panic("contactRepoMock.CreateJournalContactFunc: method is nil but contactRepo.CreateJournalContact was just called")
	}
	callInfo := struct {
		Ctx context.Context
		C   *domain.JournalContact
	}{
		Ctx: ctx,
		C:   c,
	}
	mock.lockCreateJournalContact.Lock()
	mock.calls.CreateJournalContact = append(mock.calls.CreateJournalContact, callInfo)
	mock.lockCreateJournalContact.Unlock()
	return mock.CreateJournalContactFunc(ctx, c)
}

func (mock *contactRepoMock) CreateJournalContactCalls() []struct {
	Ctx context.Context
	C   *domain.JournalContact
} {
	var calls []struct {
		Ctx context.Context
		C   *domain.JournalContact
	}
	mock.lockCreateJournalContact.RLock()
	calls = mock.calls.CreateJournalContact
	mock.lockCreateJournalContact.RUnlock()
	return calls
}

func (mock *contactRepoMock) GetTypeByName(ctx context.Context, name string) (*domain.ContactType, error) {
	if mock.GetTypeByNameFunc == nil {
		panic("contactRepoMock.GetTypeByNameFunc: method is nil but contactRepo.GetTypeByName was just called")
	}
	callInfo := struct {
		Ctx  context.Context
		Name string
	}{
		Ctx:  ctx,
		Name: name,
	}
	mock.lockGetTypeByName.Lock()
	mock.calls.GetTypeByName = append(mock.calls.GetTypeByName, callInfo)
	mock.lockGetTypeByName.Unlock()
	return mock.GetTypeByNameFunc(ctx, name)
}

func (mock *contactRepoMock) GetTypeByNameCalls() []struct {
	Ctx  context.Context
	Name string
} {
	var calls []struct {
		Ctx  context.Context
		Name string
	}
	mock.lockGetTypeByName.RLock()
	calls = mock.calls.GetTypeByName
	mock.lockGetTypeByName.RUnlock()
	return calls
}

func (mock *contactRepoMock) InsertTypeIfAbsent(ctx context.Context, ct *domain.ContactType) (bool, error) {
	if mock.InsertTypeIfAbsentFunc == nil {
		panic("contactRepoMock.InsertTypeIfAbsentFunc: method is nil but contactRepo.InsertTypeIfAbsent was just called")
	}
	callInfo := struct {
		Ctx context.Context
		Ct  *domain.ContactType
	}{
		Ctx: ctx,
		Ct:  ct,
	}
	mock.lockInsertTypeIfAbsent.Lock()
	mock.calls.InsertTypeIfAbsent = append(mock.calls.InsertTypeIfAbsent, callInfo)
	mock.lockInsertTypeIfAbsent.Unlock()
	return mock.InsertTypeIfAbsentFunc(ctx, ct)
}

func (mock *contactRepoMock) InsertTypeIfAbsentCalls() []struct {
	Ctx context.Context
	Ct  *domain.ContactType
} {
	var calls []struct {
		Ctx context.Context
		Ct  *domain.ContactType
	}
	mock.lockInsertTypeIfAbsent.RLock()
	calls = mock.calls.InsertTypeIfAbsent
	mock.lockInsertTypeIfAbsent.RUnlock()
	return calls
}
