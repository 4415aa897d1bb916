package storage

import (
	"context"
	"encoding/json"
	"sync"
)

// KV is the persistence contract the core depends on: a synchronous local
// key-value store keyed by collection name. Get reports whether the key
// existed; when it does not, out is left untouched so the caller's defaults
// survive.
type KV interface {
	Get(ctx context.Context, key string, out any) (bool, error)
	Set(ctx context.Context, key string, value any) error
}

// MemKV keeps snapshots in memory. Used by tests and throwaway sessions.
type MemKV struct {
	mu      sync.Mutex
	entries map[string]json.RawMessage
}

func NewMemKV() *MemKV {
	return &MemKV{entries: make(map[string]json.RawMessage)}
}

func (s *MemKV) Get(ctx context.Context, key string, out any) (bool, error) {
	s.mu.Lock()
	raw, ok := s.entries[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return true, err
	}
	return true, nil
}

func (s *MemKV) Set(ctx context.Context, key string, value any) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.entries[key] = raw
	s.mu.Unlock()
	return nil
}
