// internal/history/store.go
// Recent searches: deduplicated, newest first, capped, persisted after every change.

package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
)

const (
	// DefaultKey is the single durable key the list lives under.
	DefaultKey = "weatherSearchHistory"
	// MaxEntries caps the list.
	MaxEntries = 5
)

var ErrNoSuchEntry = errors.New("history: no entry at index")

// Storage is a durable key/value slot for the serialized list.
type Storage interface {
	// Get returns ok=false when the key has never been written.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Put(ctx context.Context, key string, value []byte) error
}

type Store struct {
	mu      sync.Mutex
	storage Storage
	key     string
	entries []string
}

func NewStore(storage Storage, key string) *Store {
	if key == "" {
		key = DefaultKey
	}
	return &Store{storage: storage, key: key, entries: []string{}}
}

// Key for a per-owner list, e.g. one per session subject.
func Key(owner string) string {
	if owner == "" {
		return DefaultKey
	}
	return DefaultKey + ":" + owner
}

// Load replaces the in-memory list with the persisted one. Missing or
// corrupt data yields an empty list; problems are logged, never returned.
func (s *Store) Load(ctx context.Context) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = []string{}
	raw, ok, err := s.storage.Get(ctx, s.key)
	if err != nil {
		log.Printf("[WARN] history load %s: %v", s.key, err)
		return
	}
	if !ok || len(raw) == 0 {
		return
	}
	var parsed []string
	if err := json.Unmarshal(raw, &parsed); err != nil {
		log.Printf("[WARN] history %s is corrupt, starting empty: %v", s.key, err)
		return
	}
	s.entries = normalize(parsed)
}

// normalize re-applies the list invariants to data read from storage, which
// may have been written by something else.
func normalize(in []string) []string {
	out := make([]string, 0, MaxEntries)
	seen := make(map[string]struct{}, len(in))
	for _, v := range in {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
		if len(out) == MaxEntries {
			break
		}
	}
	return out
}

// List returns a copy, newest first.
func (s *Store) List() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.entries...)
}

// Add moves term to the front. Blank terms are ignored.
func (s *Store) Add(ctx context.Context, term string) error {
	v := strings.TrimSpace(term)
	if v == "" {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]string, 0, MaxEntries)
	next = append(next, v)
	for _, e := range s.entries {
		if e != v {
			next = append(next, e)
		}
	}
	if len(next) > MaxEntries {
		next = next[:MaxEntries]
	}
	s.entries = next
	return s.persist(ctx)
}

func (s *Store) Remove(ctx context.Context, index int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.entries) {
		return fmt.Errorf("%w %d", ErrNoSuchEntry, index)
	}
	s.entries = append(s.entries[:index:index], s.entries[index+1:]...)
	return s.persist(ctx)
}

func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries = []string{}
	return s.persist(ctx)
}

// Get returns the entry at index.
func (s *Store) Get(index int) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if index < 0 || index >= len(s.entries) {
		return "", fmt.Errorf("%w %d", ErrNoSuchEntry, index)
	}
	return s.entries[index], nil
}

// persist writes the whole list; caller holds mu. The in-memory list stays
// mutated even when the write fails.
func (s *Store) persist(ctx context.Context) error {
	b, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}
	if err := s.storage.Put(ctx, s.key, b); err != nil {
		return fmt.Errorf("save history %s: %w", s.key, err)
	}
	return nil
}
