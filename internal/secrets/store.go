package secrets

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/search5/openband/pkg/logging"
)

// DefaultStorageDir is the default directory for storing secrets,
// relative to the user's home directory.
const DefaultStorageDir = ".config/openband/secrets"

// ErrNotFound is returned when no secret exists for a service/key pair.
var ErrNotFound = errors.New("secret not found")

// Store provides opaque get/set storage for credentials, keyed by an
// application namestring (service) and a secret name.
//
// The authorization flow uses the keys "authorization_code" and
// "access_token".
type Store interface {
	// Get retrieves a secret. Returns ErrNotFound if it does not exist.
	Get(service, key string) (string, error)

	// Set stores a secret, replacing any previous value.
	Set(service, key, value string) error

	// Delete removes a secret. Deleting a missing secret is not an error.
	Delete(service, key string) error
}

// FileStore persists secrets as one JSON file per service.
//
// SECURITY: This store handles credentials. Files are created with 0600
// permissions and the storage directory with 0700. Secret values are never
// logged; only service names and keys appear in log output.
type FileStore struct {
	mu         sync.Mutex
	storageDir string
	cache      map[string]map[string]string // service -> key -> value
}

// NewFileStore creates a file-backed secret store rooted at storageDir.
// An empty storageDir defaults to ~/.config/openband/secrets.
func NewFileStore(storageDir string) (*FileStore, error) {
	if storageDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		storageDir = filepath.Join(homeDir, DefaultStorageDir)
	}

	if err := os.MkdirAll(storageDir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create secret storage directory: %w", err)
	}

	return &FileStore{
		storageDir: storageDir,
		cache:      make(map[string]map[string]string),
	}, nil
}

// Get retrieves a secret, loading the service file on first access.
func (s *FileStore) Get(service, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, err := s.loadLocked(service)
	if err != nil {
		return "", err
	}

	value, ok := bucket[key]
	if !ok || value == "" {
		return "", ErrNotFound
	}
	return value, nil
}

// Set stores a secret and persists the service file.
func (s *FileStore) Set(service, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, err := s.loadLocked(service)
	if err != nil {
		return err
	}

	bucket[key] = value
	if err := s.writeLocked(service, bucket); err != nil {
		logging.Warn("Secrets", "failed to persist secret %s/%s: %v", service, key, err)
		return fmt.Errorf("failed to persist secret: %w", err)
	}

	logging.Debug("Secrets", "stored secret %s/%s", service, key)
	return nil
}

// Delete removes a secret and persists the service file.
func (s *FileStore) Delete(service, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket, err := s.loadLocked(service)
	if err != nil {
		return err
	}

	if _, ok := bucket[key]; !ok {
		return nil
	}
	delete(bucket, key)
	return s.writeLocked(service, bucket)
}

// loadLocked returns the in-memory bucket for a service, reading its file
// if the bucket has not been loaded yet. Requires s.mu to be held.
func (s *FileStore) loadLocked(service string) (map[string]string, error) {
	if bucket, ok := s.cache[service]; ok {
		return bucket, nil
	}

	bucket := make(map[string]string)
	data, err := os.ReadFile(s.serviceFile(service))
	if err != nil {
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read secret file: %w", err)
		}
	} else if err := json.Unmarshal(data, &bucket); err != nil {
		return nil, fmt.Errorf("failed to unmarshal secret file: %w", err)
	}

	s.cache[service] = bucket
	return bucket, nil
}

// writeLocked persists a service bucket with restricted permissions.
// Requires s.mu to be held.
func (s *FileStore) writeLocked(service string, bucket map[string]string) error {
	data, err := json.MarshalIndent(bucket, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal secrets: %w", err)
	}
	return os.WriteFile(s.serviceFile(service), data, 0600)
}

func (s *FileStore) serviceFile(service string) string {
	return filepath.Join(s.storageDir, service+".json")
}

// MemStore is an in-memory Store for tests and ephemeral sessions.
type MemStore struct {
	mu      sync.Mutex
	secrets map[string]string
}

// NewMemStore creates an empty in-memory secret store.
func NewMemStore() *MemStore {
	return &MemStore{secrets: make(map[string]string)}
}

func (s *MemStore) Get(service, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.secrets[service+"/"+key]
	if !ok || value == "" {
		return "", ErrNotFound
	}
	return value, nil
}

func (s *MemStore) Set(service, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.secrets[service+"/"+key] = value
	return nil
}

func (s *MemStore) Delete(service, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.secrets, service+"/"+key)
	return nil
}
