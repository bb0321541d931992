package store

import (
	"context"
	"sync"
	"time"

	"langusta/core/payload"
)

// Memory is an in-process Store.
type Memory struct {
	mu     sync.RWMutex
	record *Record
	saves  int
}

// NewMemory creates an empty in-memory store.
func NewMemory() *Memory {
	return &Memory{}
}

// LoadVersion implements Store.
func (m *Memory) LoadVersion(_ context.Context) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.record == nil {
		return "", false, nil
	}
	return m.record.Version, true, nil
}

// LoadLocalizations implements Store.
func (m *Memory) LoadLocalizations(_ context.Context) (payload.Localizations, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.record == nil {
		return nil, false, nil
	}
	return m.record.Localizations.Clone(), true, nil
}

// LoadRecord implements RecordLoader.
func (m *Memory) LoadRecord(_ context.Context) (*Record, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.record == nil {
		return nil, nil
	}
	return &Record{
		Version:       m.record.Version,
		Localizations: m.record.Localizations.Clone(),
		UpdatedAt:     m.record.UpdatedAt,
	}, nil
}

// Save implements Store.
func (m *Memory) Save(_ context.Context, version string, localizations payload.Localizations) error {
	rec := &Record{
		Version:       version,
		Localizations: localizations.Clone(),
		UpdatedAt:     time.Now(),
	}
	m.mu.Lock()
	m.record = rec
	m.saves++
	m.mu.Unlock()
	return nil
}

// Saves returns how many times Save was called.
func (m *Memory) Saves() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.saves
}
