package storage

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"sync"
)

type memoryEntry struct {
	doc []byte
	rev int64
}

// MemoryStore is an in-process Store used by tests. It honors the same
// revision semantics as the Redis and Postgres backends.
type MemoryStore struct {
	mtx  sync.Mutex
	data map[string]memoryEntry
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]memoryEntry)}
}

func (s *MemoryStore) Get(ctx context.Context, key string, out interface{}) (int64, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	entry, ok := s.data[key]
	if !ok {
		return 0, ErrNotFound
	}

	if err := json.Unmarshal(entry.doc, out); err != nil {
		return 0, err
	}
	return entry.rev, nil
}

func (s *MemoryStore) Put(ctx context.Context, key string, doc interface{}, rev int64) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return err
	}

	s.mtx.Lock()
	defer s.mtx.Unlock()

	entry, ok := s.data[key]
	if rev != AnyRevision {
		if !ok || entry.rev != rev {
			return ErrConflict
		}
	}

	s.data[key] = memoryEntry{doc: raw, rev: entry.rev + 1}
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, key string) error {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	if _, ok := s.data[key]; !ok {
		return ErrNotFound
	}
	delete(s.data, key)
	return nil
}

func (s *MemoryStore) List(ctx context.Context, prefix string) ([]string, error) {
	s.mtx.Lock()
	defer s.mtx.Unlock()

	keys := make([]string, 0)
	for key := range s.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	sort.Strings(keys)
	return keys, nil
}
