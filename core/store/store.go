package store

import (
	"context"
	"time"

	"langusta/core/payload"
)

// DefaultNamespace is used when no namespace is configured.
const DefaultNamespace = "default"

// Store persists the last accepted version and localizations.
type Store interface {
	// LoadVersion returns the stored version; ok is false when nothing was saved yet.
	LoadVersion(ctx context.Context) (version string, ok bool, err error)
	// LoadLocalizations returns the stored mapping; ok is false when nothing was saved yet.
	LoadLocalizations(ctx context.Context) (localizations payload.Localizations, ok bool, err error)
	// Save atomically replaces the stored version and mapping.
	Save(ctx context.Context, version string, localizations payload.Localizations) error
}

// Record is a stored version together with its mapping.
type Record struct {
	Version       string
	Localizations payload.Localizations
	UpdatedAt     time.Time
}

// RecordLoader is implemented by stores that can read version and mapping in one operation.
type RecordLoader interface {
	LoadRecord(ctx context.Context) (*Record, error)
}

// LoadRecord reads the stored record, or nil if none exists.
// Stores implementing RecordLoader are read in a single operation.
func LoadRecord(ctx context.Context, s Store) (*Record, error) {
	if rl, ok := s.(RecordLoader); ok {
		return rl.LoadRecord(ctx)
	}

	v, ok, err := s.LoadVersion(ctx)
	if err != nil || !ok {
		return nil, err
	}
	locs, ok, err := s.LoadLocalizations(ctx)
	if err != nil || !ok {
		return nil, err
	}
	return &Record{Version: v, Localizations: locs}, nil
}
