package langusta

import (
	"slices"

	"langusta/core/datasource"
	"langusta/core/lookup"
	"langusta/core/payload"
	"langusta/core/store"

	"go.uber.org/zap"
)

// Well-known language codes. Any other code may be used as well.
const (
	English  = "en"
	Czech    = "cs"
	Slovak   = "sk"
	Polish   = "pl"
	Romanian = "ro"
)

// Config configures a Langusta instance.
type Config struct {
	// Platform selects the overlay applied over common entries. Defaults to payload.PlatformUniversal.
	Platform string
	// SupportedLanguages must all be present in the baseline.
	SupportedLanguages []string
	// DefaultLanguage is the initially active language; it must be supported.
	DefaultLanguage string
	// DataSource supplies the baseline and remote documents.
	DataSource datasource.DataSource
	// Store persists the last accepted version. Defaults to an in-memory store.
	Store store.Store
	// FetchOnInit starts a background refresh as soon as New returns.
	FetchOnInit bool
	// FilterRemoteByLanguage sends the active language with remote requests.
	// The stored version is shared by all languages, so only enable this when the remote
	// always answers with every language that changed.
	FilterRemoteByLanguage bool
	// ValuePolicy decides how failed lookups are surfaced. The zero value is FailFast.
	ValuePolicy lookup.Policy
	// Logger receives diagnostics. Nil disables logging.
	Logger *zap.Logger
	// Dispatch runs update notifications on the consumer's preferred context.
	// Nil runs them inline on the refreshing goroutine.
	Dispatch func(func())
}

func (c *Config) normalize() error {
	if c.DataSource == nil {
		return &ConfigError{Field: "data source", Reason: "is required"}
	}
	if len(c.SupportedLanguages) == 0 {
		return &ConfigError{Field: "supported languages", Reason: "at least one language is required"}
	}
	for _, lang := range c.SupportedLanguages {
		if lang == "" {
			return &ConfigError{Field: "supported languages", Reason: "language code must not be empty"}
		}
	}
	if !slices.Contains(c.SupportedLanguages, c.DefaultLanguage) {
		return &ConfigError{
			Field:  "default language",
			Reason: "'" + c.DefaultLanguage + "' is not a supported language",
		}
	}
	if c.ValuePolicy != lookup.FailFast && c.ValuePolicy != lookup.Placeholder {
		return &ConfigError{Field: "value policy", Reason: c.ValuePolicy.String()}
	}

	if c.Platform == "" {
		c.Platform = payload.PlatformUniversal
	}
	if c.Store == nil {
		c.Store = store.NewMemory()
	}
	if c.Logger == nil {
		c.Logger = zap.NewNop()
	}
	if c.Dispatch == nil {
		c.Dispatch = func(fn func()) { fn() }
	}
	c.SupportedLanguages = slices.Clone(c.SupportedLanguages)
	return nil
}
