package storage

import (
	"encoding/json"
	"fmt"
	"reflect"
	"sort"
	"sync"
)

// KV is the string key/value model the games persist their JSON blobs in.
type KV interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// ScoreKeeper records finished runs in the scores table.
type ScoreKeeper interface {
	SaveScore(gameID string, score int) (int64, error)
	HighScore(gameID string) (int, error)
}

// MemoryKV is an in-process KV used when no database is configured and in tests.
type MemoryKV struct {
	mu    sync.RWMutex
	items map[string]string
}

// NewMemoryKV creates an empty store.
func NewMemoryKV() *MemoryKV {
	return &MemoryKV{items: make(map[string]string)}
}

// GetItem implements KV.
func (m *MemoryKV) GetItem(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.items[key]
	return v, ok, nil
}

// SetItem implements KV.
func (m *MemoryKV) SetItem(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.items[key] = value
	return nil
}

// RemoveItem implements KV.
func (m *MemoryKV) RemoveItem(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.items, key)
	return nil
}

// Keys returns the stored keys in ascending order.
func (m *MemoryKV) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	keys := make([]string, 0, len(m.items))
	for k := range m.items {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ReadJSON decodes the value under key into v.
// found is false when the key is absent. A corrupt value is reported as an
// error and v is left untouched; callers treat it as empty. v must be a
// non-nil pointer.
func ReadJSON(kv KV, key string, v any) (found bool, err error) {
	raw, ok, err := kv.GetItem(key)
	if err != nil || !ok {
		return false, err
	}
	dst := reflect.ValueOf(v)
	if dst.Kind() != reflect.Pointer || dst.IsNil() {
		return true, fmt.Errorf("storage: cannot decode %q into %T", key, v)
	}
	// Unmarshal fills fields before it reports a type mismatch, so decode
	// into a scratch value and copy only on success.
	tmp := reflect.New(dst.Elem().Type())
	if err := json.Unmarshal([]byte(raw), tmp.Interface()); err != nil {
		return true, fmt.Errorf("storage: corrupt value under %q: %w", key, err)
	}
	dst.Elem().Set(tmp.Elem())
	return true, nil
}

// WriteJSON encodes v and stores it under key.
func WriteJSON(kv KV, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("storage: cannot encode %q: %w", key, err)
	}
	return kv.SetItem(key, string(data))
}
