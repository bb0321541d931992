package localization

import (
	"context"

	"langusta/core/langusta"
	"langusta/core/reconcile"

	"go.uber.org/zap"
)

// Value is a resolved localization.
type Value struct {
	Key      string `json:"key"`
	Language string `json:"language"`
	Value    string `json:"value"`
}

// RefreshReport is the JSON form of a refresh result.
type RefreshReport struct {
	Outcome         reconcile.Outcome `json:"outcome"`
	PreviousVersion string            `json:"previous_version"`
	RemoteVersion   string            `json:"remote_version,omitempty"`
	Version         string            `json:"version"`
	Shared          bool              `json:"shared"`
	Error           string            `json:"error,omitempty"`
}

// Service adapts a Langusta instance to the HTTP handlers.
type Service struct {
	langusta *langusta.Langusta
	logger   *zap.Logger
}

// NewService creates a new localization service.
func NewService(l *langusta.Langusta, logger *zap.Logger) *Service {
	return &Service{langusta: l, logger: logger}
}

// Localize resolves key in the active language. A nil args returns the raw value.
func (s *Service) Localize(key string, args []string) (Value, error) {
	language := s.langusta.Language()
	value, err := s.langusta.Lookup(key, args...)
	if err != nil {
		return Value{}, err
	}
	return Value{Key: key, Language: language, Value: value}, nil
}

// Refresh pulls the remote document synchronously.
func (s *Service) Refresh(ctx context.Context) RefreshReport {
	res := s.langusta.Refresh(ctx)
	report := RefreshReport{
		Outcome:         res.Outcome,
		PreviousVersion: res.PreviousVersion,
		RemoteVersion:   res.RemoteVersion,
		Version:         s.langusta.Version(),
		Shared:          res.Shared,
	}
	if res.Err != nil {
		report.Error = res.Err.Error()
	}
	return report
}

// ChangeLanguage switches the active language.
func (s *Service) ChangeLanguage(code string) error {
	return s.langusta.ChangeLanguage(code)
}

// Status describes the active state.
func (s *Service) Status() langusta.Snapshot {
	return s.langusta.Snapshot()
}
