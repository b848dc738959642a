package tape

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/renameio/v2"

	"github.com/httptape/httptape/pkg/logging"
)

// FileStore persists transactions as pretty-printed JSON files in one flat
// directory. The store exclusively owns that directory; each transaction is
// written to its own uniquely-named file.
type FileStore struct {
	dir string
	log *slog.Logger
}

// NewFileStore creates a store over the given directory. The directory is
// not created until EnsureDir is called.
func NewFileStore(dir string, log *slog.Logger) *FileStore {
	if log == nil {
		log = logging.Nop()
	}
	return &FileStore{dir: dir, log: log}
}

// Dir returns the storage directory.
func (s *FileStore) Dir() string {
	return s.dir
}

// EnsureDir creates the storage directory if needed. Idempotent.
func (s *FileStore) EnsureDir() error {
	if err := os.MkdirAll(s.dir, 0700); err != nil {
		return fmt.Errorf("%w: %v", ErrDirectoryCreate, err)
	}
	return nil
}

// Save serializes a transaction to pretty-printed JSON and writes it
// atomically. Exactly one file per transaction; no in-place update.
func (s *FileStore) Save(tx *Transaction) error {
	data, err := json.MarshalIndent(tx, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: %v", ErrSerialization, err)
	}

	path := filepath.Join(s.dir, tx.Filename())
	if err := renameio.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// Get retrieves a transaction by ID.
func (s *FileStore) Get(id string) (*Transaction, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, id+".json"))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}

	var tx Transaction
	if err := json.Unmarshal(data, &tx); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSerialization, err)
	}
	return &tx, nil
}

// FindByMethodAndURL scans the storage directory and returns the first
// transaction whose request method and URL match the arguments exactly.
// No normalization is applied: trailing slashes, query parameter order and
// host casing all matter. Files that fail to parse are skipped rather than
// failing the search. The scan is linear and re-reads the directory on
// every call.
func (s *FileStore) FindByMethodAndURL(method, url string) (*Transaction, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.dir, entry.Name()))
		if err != nil {
			s.log.Debug("skipping unreadable transaction file", "file", entry.Name(), "error", err)
			continue
		}

		var tx Transaction
		if err := json.Unmarshal(data, &tx); err != nil {
			s.log.Debug("skipping corrupt transaction file", "file", entry.Name(), "error", err)
			continue
		}

		if tx.Request.Method == method && tx.Request.URL == url {
			return &tx, nil
		}
	}

	return nil, ErrNotFound
}

// List returns all parseable transactions in directory order.
func (s *FileStore) List() ([]*Transaction, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}

	var txs []*Transaction
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		id := strings.TrimSuffix(entry.Name(), ".json")
		tx, err := s.Get(id)
		if err != nil {
			s.log.Debug("skipping corrupt transaction file", "file", entry.Name(), "error", err)
			continue
		}
		txs = append(txs, tx)
	}
	return txs, nil
}

// Remove permanently deletes a transaction file.
func (s *FileStore) Remove(id string) error {
	if err := os.Remove(filepath.Join(s.dir, id+".json")); err != nil {
		if os.IsNotExist(err) {
			return ErrNotFound
		}
		return fmt.Errorf("%w: %v", ErrWrite, err)
	}
	return nil
}

// Stats contains storage usage information.
type Stats struct {
	Count      int       `json:"count"`
	TotalBytes int64     `json:"totalBytes"`
	Oldest     time.Time `json:"oldest,omitzero"`
	Newest     time.Time `json:"newest,omitzero"`
}

// Stats reports usage of the storage directory.
func (s *FileStore) Stats() (*Stats, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return &Stats{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrRead, err)
	}

	stats := &Stats{}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}

		info, err := entry.Info()
		if err != nil {
			continue
		}
		stats.Count++
		stats.TotalBytes += info.Size()

		id := strings.TrimSuffix(entry.Name(), ".json")
		tx, err := s.Get(id)
		if err != nil {
			continue
		}
		if stats.Oldest.IsZero() || tx.Timestamp.Before(stats.Oldest) {
			stats.Oldest = tx.Timestamp
		}
		if stats.Newest.IsZero() || tx.Timestamp.After(stats.Newest) {
			stats.Newest = tx.Timestamp
		}
	}
	return stats, nil
}
