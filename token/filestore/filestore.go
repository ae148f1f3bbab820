package filestore

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/jrsteele09/go-travel-client/token"
	"github.com/pkg/errors"
)

const credentialsFile = "credentials.json"

var _ token.Store = (*Store)(nil)

// Store persists the credential pair as a JSON file in a data folder.
// Writes go through a temp file followed by a rename so a crash mid-write
// never leaves a partial pair on disk.
type Store struct {
	path string
	lock sync.Mutex
}

// New creates a file-backed token store rooted at dataFolder. The folder is
// created if it does not exist.
func New(dataFolder string) (*Store, error) {
	if err := os.MkdirAll(dataFolder, 0o700); err != nil {
		return nil, errors.Wrap(err, "[filestore.New] MkdirAll")
	}
	return &Store{path: filepath.Join(dataFolder, credentialsFile)}, nil
}

func (s *Store) Get() (token.Credentials, error) {
	s.lock.Lock()
	defer s.lock.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return token.Credentials{}, token.ErrNoCredentials
	}
	if err != nil {
		return token.Credentials{}, errors.Wrap(err, "[Store.Get] ReadFile")
	}

	var creds token.Credentials
	if err := json.Unmarshal(data, &creds); err != nil {
		return token.Credentials{}, errors.Wrap(err, "[Store.Get] Unmarshal")
	}
	if !creds.Valid() {
		return token.Credentials{}, token.ErrNoCredentials
	}
	return creds, nil
}

func (s *Store) Set(creds token.Credentials) error {
	if !creds.Valid() {
		return errors.New("[Store.Set] refusing to store a partial credential pair")
	}

	s.lock.Lock()
	defer s.lock.Unlock()

	data, err := json.Marshal(creds)
	if err != nil {
		return errors.Wrap(err, "[Store.Set] Marshal")
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return errors.Wrap(err, "[Store.Set] WriteFile")
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return errors.Wrap(err, "[Store.Set] Rename")
	}
	return nil
}

func (s *Store) Clear() error {
	s.lock.Lock()
	defer s.lock.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(err, "[Store.Clear] Remove")
	}
	return nil
}
