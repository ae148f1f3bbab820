package storefakes

import (
	"sync"

	"github.com/jrsteele09/go-travel-client/token"
)

var _ token.Store = (*FakeStore)(nil)

// FakeStore is an in-memory token.Store for tests.
type FakeStore struct {
	creds    token.Credentials
	hasCreds bool
	lock     sync.RWMutex

	// SetErr, when non-nil, is returned by Set to simulate storage failure.
	SetErr error
}

func NewFakeStore() *FakeStore {
	return &FakeStore{}
}

func (fs *FakeStore) Get() (token.Credentials, error) {
	fs.lock.RLock()
	defer fs.lock.RUnlock()

	if !fs.hasCreds {
		return token.Credentials{}, token.ErrNoCredentials
	}
	return fs.creds, nil
}

func (fs *FakeStore) Set(creds token.Credentials) error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	if fs.SetErr != nil {
		return fs.SetErr
	}
	fs.creds = creds
	fs.hasCreds = true
	return nil
}

func (fs *FakeStore) Clear() error {
	fs.lock.Lock()
	defer fs.lock.Unlock()

	fs.creds = token.Credentials{}
	fs.hasCreds = false
	return nil
}
