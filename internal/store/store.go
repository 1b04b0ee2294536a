package store

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/goccy/go-json"
)

// ErrStorage covers every failure mode of the record file: unreadable,
// unwritable or unparsable. A corrupt file fails both Load and Save; partial
// data is never returned.
var ErrStorage = errors.New("storage error")

// TimeLayout is the timestamp format of persisted records.
const TimeLayout = "2006-01-02 15:04:05"

type Record struct {
	Employee    string  `json:"employee"`
	Category    string  `json:"category"`
	Amount      float64 `json:"amount"`
	Decision    string  `json:"decision"`
	Explanation string  `json:"explanation"`
	Timestamp   string  `json:"timestamp"`
}

// FileStore persists records as a JSON array, rewriting the full sequence on
// every save. Appends only; records are never mutated or deleted. The mutex
// guards the load-append-rewrite sequence within this process.
type FileStore struct {
	mu   sync.Mutex
	path string
}

func NewFileStore(path string) (*FileStore, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("%w: init %s: %v", ErrStorage, path, err)
		}
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.WriteFile(path, []byte("[]"), 0o644); err != nil {
			return nil, fmt.Errorf("%w: init %s: %v", ErrStorage, path, err)
		}
	}
	return &FileStore{path: path}, nil
}

func (s *FileStore) Path() string { return s.path }

// Load returns all records in insertion order.
func (s *FileStore) Load() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *FileStore) load() ([]Record, error) {
	raw, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrStorage, s.path, err)
	}
	var recs []Record
	if err := json.Unmarshal(raw, &recs); err != nil {
		return nil, fmt.Errorf("%w: corrupt store %s: %v", ErrStorage, s.path, err)
	}
	return recs, nil
}

// Save appends rec and rewrites the whole sequence. Aborts before writing if
// the existing data cannot be parsed.
func (s *FileStore) Save(rec Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	recs, err := s.load()
	if err != nil {
		return err
	}
	recs = append(recs, rec)
	raw, err := json.MarshalIndent(recs, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrStorage, err)
	}
	if err := os.WriteFile(s.path, raw, 0o644); err != nil {
		return fmt.Errorf("%w: write %s: %v", ErrStorage, s.path, err)
	}
	return nil
}
