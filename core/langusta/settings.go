package langusta

import (
	"fmt"
	"slices"
	"time"

	"langusta/core/lookup"
)

// Remote source kinds.
const (
	RemoteNone   = "none"
	RemoteHTTP   = "http"
	RemoteObject = "object"
)

// Store kinds.
const (
	StoreMemory = "memory"
	StoreSQL    = "sql"
	StoreRedis  = "redis"
)

// Settings is the configuration file section describing a Langusta instance.
type Settings struct {
	// Platform is the overlay applied over common entries (_, ios, an or a custom code).
	Platform string `mapstructure:"platform" default:"_"`
	// Languages lists supported language codes.
	Languages []string `mapstructure:"languages" default:"en"`
	// DefaultLanguage is the initially active language.
	DefaultLanguage string `mapstructure:"default_language" default:"en"`
	// FetchOnInit starts a refresh right after construction.
	FetchOnInit bool `mapstructure:"fetch_on_init" default:"true"`
	// ValuePolicy is failfast or placeholder.
	ValuePolicy string `mapstructure:"value_policy" default:"placeholder"`
	// BaselineFile is the bundled document.
	BaselineFile string `mapstructure:"baseline_file" default:"localizations.json"`
	// RemoteSource selects where updates come from (none, http, object).
	RemoteSource string `mapstructure:"remote_source" default:"http"`
	// RemoteURL is the endpoint used by the http remote source.
	RemoteURL string `mapstructure:"remote_url" default:""`
	// RemoteObject is the object name used by the object remote source.
	RemoteObject string `mapstructure:"remote_object" default:"localizations.json"`
	// Store selects the version store (memory, sql, redis).
	Store string `mapstructure:"store" default:"memory"`
	// Namespace separates records of several applications sharing one store.
	Namespace string `mapstructure:"namespace" default:"default"`
	// HTTPTimeoutSeconds bounds remote HTTP requests.
	HTTPTimeoutSeconds int `mapstructure:"http_timeout_seconds" default:"10"`
}

// Validate checks the settings for consistency.
func (s Settings) Validate() error {
	if len(s.Languages) == 0 {
		return &ConfigError{Field: "languages", Reason: "at least one language is required"}
	}
	if !slices.Contains(s.Languages, s.DefaultLanguage) {
		return &ConfigError{Field: "default_language", Reason: fmt.Sprintf("'%s' is not in languages %v", s.DefaultLanguage, s.Languages)}
	}
	if _, err := s.Policy(); err != nil {
		return err
	}
	if s.BaselineFile == "" {
		return &ConfigError{Field: "baseline_file", Reason: "is required"}
	}

	switch s.RemoteSource {
	case RemoteNone:
	case RemoteHTTP:
		if s.RemoteURL == "" {
			return &ConfigError{Field: "remote_url", Reason: "is required for the http remote source"}
		}
	case RemoteObject:
		if s.RemoteObject == "" {
			return &ConfigError{Field: "remote_object", Reason: "is required for the object remote source"}
		}
	default:
		return &ConfigError{Field: "remote_source", Reason: fmt.Sprintf("unknown source %q", s.RemoteSource)}
	}

	switch s.Store {
	case StoreMemory, StoreSQL, StoreRedis:
	default:
		return &ConfigError{Field: "store", Reason: fmt.Sprintf("unknown store %q", s.Store)}
	}
	return nil
}

// Policy parses ValuePolicy.
func (s Settings) Policy() (lookup.Policy, error) {
	p, err := lookup.ParsePolicy(s.ValuePolicy)
	if err != nil {
		return 0, &ConfigError{Field: "value_policy", Reason: "must be failfast or placeholder", Err: err}
	}
	return p, nil
}

// HTTPTimeout returns the remote request timeout.
func (s Settings) HTTPTimeout() time.Duration {
	if s.HTTPTimeoutSeconds <= 0 {
		return 10 * time.Second
	}
	return time.Duration(s.HTTPTimeoutSeconds) * time.Second
}
