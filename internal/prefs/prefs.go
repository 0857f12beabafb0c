// Package prefs persists user settings (auto-detect flag, calculation
// convention, per-event notification flags) across sessions behind a simple
// get/set key-value interface.
package prefs

import (
	"context"
	"errors"
	"strconv"
	"sync"

	"github.com/miqat-labs/miqat/internal/model"
)

// ErrNotFound is returned when a key has never been set.
var ErrNotFound = errors.New("preference not found")

// Well-known keys.
const (
	KeyAutoDetect = "auto_detect"
	KeyMethod     = "method"
)

// NotifyKey returns the per-event notification flag key.
func NotifyKey(name model.EventName) string {
	return "notify:" + string(name)
}

// Store is the persistence contract consumed by the engine.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string) error
}

// GetBool reads a boolean preference; missing keys return the default.
func GetBool(ctx context.Context, s Store, key string, def bool) bool {
	raw, err := s.Get(ctx, key)
	if err != nil {
		return def
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return def
	}
	return v
}

// SetBool writes a boolean preference.
func SetBool(ctx context.Context, s Store, key string, value bool) error {
	return s.Set(ctx, key, strconv.FormatBool(value))
}

// Memory is an in-process Store used by tests and as a last-resort backend
// when neither Postgres nor Redis is configured.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	if !ok {
		return "", ErrNotFound
	}
	return v, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
