package repository

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/roteiro/core/internal/domain/entities"
)

// Document is the single flat-file record holding both collections. It is
// loaded whole on every read and rewritten whole on every mutation.
type Document struct {
	Users []*entities.User `json:"usuarios"`
	Items []*entities.Item `json:"itens"`
}

// Store is the flat-file document store backing the default engine.
//
// A single in-process mutex serializes every read-modify-write cycle, so two
// goroutines of the same server never lose updates to each other. There is
// no cross-process locking: the data file assumes a single server instance,
// and a second writer process would silently win with its last write.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a store over the given document path. The file is created
// lazily on the first write.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the document path.
func (s *Store) Path() string {
	return s.path
}

// View runs fn with a snapshot of the document. Mutations inside fn are
// discarded.
func (s *Store) View(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	return fn(doc)
}

// Update runs fn against the document and persists the result wholesale.
// If fn fails, nothing is written.
func (s *Store) Update(fn func(doc *Document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc, err := s.load()
	if err != nil {
		return err
	}
	if err := fn(doc); err != nil {
		return err
	}
	return s.save(doc)
}

func (s *Store) load() (*Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Document{}, nil
		}
		return nil, fmt.Errorf("read document: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode document: %w", err)
	}
	return &doc, nil
}

func (s *Store) save(doc *Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("encode document: %w", err)
	}

	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create data directory: %w", err)
		}
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write document: %w", err)
	}
	return nil
}
