package service

import (
	"context"
	"sync"

	"github.com/xche909/Galactica/domain"
)

// fakeAccountRepository is an in-memory domain.AccountRepository for tests.
// It enforces the same uniqueness invariants the database indexes do and
// reports violations with the same domain errors the real repository maps
// SQLSTATE 23505 to.
type fakeAccountRepository struct {
	mu       sync.Mutex
	nextID   uint
	accounts map[uint]*domain.Account
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{accounts: make(map[uint]*domain.Account)}
}

func (f *fakeAccountRepository) FindByEmail(ctx context.Context, email string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, acc := range f.accounts {
		if acc.Email != nil && *acc.Email == email {
			return copyAccount(acc), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (f *fakeAccountRepository) FindByDeviceID(ctx context.Context, deviceID string) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, acc := range f.accounts {
		if acc.DeviceID != nil && *acc.DeviceID == deviceID {
			return copyAccount(acc), nil
		}
	}
	return nil, domain.ErrAccountNotFound
}

func (f *fakeAccountRepository) FindByID(ctx context.Context, id uint) (*domain.Account, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	acc, ok := f.accounts[id]
	if !ok {
		return nil, domain.ErrAccountNotFound
	}
	return copyAccount(acc), nil
}

func (f *fakeAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.checkUnique(account, 0); err != nil {
		return err
	}
	f.nextID++
	account.ID = f.nextID
	f.accounts[account.ID] = copyAccount(account)
	return nil
}

func (f *fakeAccountRepository) Update(ctx context.Context, account *domain.Account) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.accounts[account.ID]; !ok {
		return domain.ErrAccountNotFound
	}
	if err := f.checkUnique(account, account.ID); err != nil {
		return err
	}
	f.accounts[account.ID] = copyAccount(account)
	return nil
}

func (f *fakeAccountRepository) Transaction(ctx context.Context, fn func(repo domain.AccountRepository) error) error {
	return fn(f)
}

func (f *fakeAccountRepository) checkUnique(account *domain.Account, selfID uint) error {
	for id, acc := range f.accounts {
		if id == selfID {
			continue
		}
		if account.Email != nil && acc.Email != nil && *acc.Email == *account.Email {
			return domain.ErrEmailTaken
		}
		if account.DeviceID != nil && acc.DeviceID != nil && *acc.DeviceID == *account.DeviceID {
			return domain.ErrAccountExists
		}
	}
	return nil
}

func copyAccount(account *domain.Account) *domain.Account {
	clone := *account
	return &clone
}
