package langusta

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync/atomic"
	"time"

	"langusta/core/lookup"
	"langusta/core/metrics"
	"langusta/core/notify"
	"langusta/core/payload"
	"langusta/core/reconcile"

	"go.uber.org/zap"
)

// Langusta serves localized strings from a versioned, remotely refreshable set.
type Langusta struct {
	cfg      Config
	engine   *reconcile.Engine
	logger   *zap.Logger
	language atomic.Pointer[string]
	onUpdate *notify.Notifier
	failure  atomic.Pointer[func(error)]
}

// Snapshot describes the active state for diagnostics.
type Snapshot struct {
	Version   string           `json:"version"`
	Language  string           `json:"language"`
	Languages []string         `json:"languages"`
	Keys      map[string]int   `json:"keys"`
	Origin    reconcile.Origin `json:"origin"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// New validates cfg, loads the baseline and reconciles it with the stored record.
// Only configuration and baseline failures are returned.
func New(ctx context.Context, cfg Config) (*Langusta, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}

	engine := reconcile.New(cfg.DataSource, cfg.Store, reconcile.Options{
		Platform:  cfg.Platform,
		Languages: cfg.SupportedLanguages,
		Logger:    cfg.Logger,
	})
	if err := engine.Initialize(ctx); err != nil {
		if errors.Is(err, reconcile.ErrMissingLanguages) {
			return nil, &ConfigError{Field: "supported languages", Reason: "not covered by baseline", Err: err}
		}
		return nil, fmt.Errorf("failed to initialize localizations: %w", err)
	}

	l := &Langusta{
		cfg:      cfg,
		engine:   engine,
		logger:   cfg.Logger,
		onUpdate: notify.New(),
	}
	lang := cfg.DefaultLanguage
	l.language.Store(&lang)

	if cfg.FetchOnInit {
		l.Fetch()
	}
	return l, nil
}

// Fetch starts a refresh in the background and returns immediately.
// The returned channel receives the result once the notification has been dispatched.
func (l *Langusta) Fetch() <-chan reconcile.Result {
	ch := make(chan reconcile.Result, 1)
	go func() {
		ch <- l.Refresh(context.Background())
		close(ch)
	}()
	return ch
}

// Refresh pulls the remote document and merges it when newer. Failures are absorbed and
// reported through the result. Subscribers are notified in every case.
func (l *Langusta) Refresh(ctx context.Context) reconcile.Result {
	var language string
	if l.cfg.FilterRemoteByLanguage {
		language = l.Language()
	}

	res := l.engine.Refresh(ctx, language)
	l.cfg.Dispatch(l.onUpdate.Notify)
	return res
}

// ChangeLanguage switches the active language and notifies subscribers synchronously.
func (l *Langusta) ChangeLanguage(code string) error {
	if !slices.Contains(l.cfg.SupportedLanguages, code) {
		return &ConfigError{Field: "language", Reason: "'" + code + "' is not a supported language"}
	}

	l.language.Store(&code)
	metrics.LanguageChangesTotal.Inc()
	l.logger.Debug("Changed language", zap.String("language", code))
	l.onUpdate.Notify()
	return nil
}

// Language returns the active language code.
func (l *Langusta) Language() string {
	return *l.language.Load()
}

// SupportedLanguages returns the configured languages.
func (l *Langusta) SupportedLanguages() []string {
	return slices.Clone(l.cfg.SupportedLanguages)
}

// Version returns the version of the active set.
func (l *Langusta) Version() string {
	return l.engine.Active().Version
}

// Snapshot returns a description of the active state.
func (l *Langusta) Snapshot() Snapshot {
	st := l.engine.Active()
	return Snapshot{
		Version:   st.Version,
		Language:  l.Language(),
		Languages: l.SupportedLanguages(),
		Keys:      st.Localizations.KeyCount(),
		Origin:    st.Origin,
		UpdatedAt: st.UpdatedAt,
	}
}

// OnUpdate returns the notifier fired after every refresh and language change.
func (l *Langusta) OnUpdate() *notify.Notifier {
	return l.onUpdate
}

// SetOnLocalizationFailure registers the callback invoked for each failed lookup under the
// Placeholder policy. Nil removes it.
func (l *Langusta) SetOnLocalizationFailure(fn func(error)) {
	if fn == nil {
		l.failure.Store(nil)
		return
	}
	l.failure.Store(&fn)
}

// Lookup resolves key in the active language and substitutes args. It returns the typed
// lookup error instead of applying the value policy. Without args the value is returned verbatim.
func (l *Langusta) Lookup(key string, args ...string) (string, error) {
	return l.resolve(l.engine.Active().Localizations, l.Language(), key, args)
}

// Loca returns the value for key.
func (l *Langusta) Loca(key string) string {
	return l.loca(key, nil)
}

// LocaArg returns the value for key with its single placeholder replaced by arg.
func (l *Langusta) LocaArg(key, arg string) string {
	return l.loca(key, []string{arg})
}

// LocaArgs returns the value for key with its placeholders replaced by args, in order.
func (l *Langusta) LocaArgs(key string, args ...string) string {
	if args == nil {
		args = []string{}
	}
	return l.loca(key, args)
}

func (l *Langusta) loca(key string, args []string) string {
	value, err := l.resolve(l.engine.Active().Localizations, l.Language(), key, args)
	return l.cfg.ValuePolicy.Apply(key, value, err, l.reportFailure)
}

func (l *Langusta) resolve(set payload.Localizations, language, key string, args []string) (string, error) {
	value, err := lookup.Resolve(set, language, key)
	if err != nil {
		return "", err
	}
	if args == nil {
		return value, nil
	}

	out, err := lookup.Format(value, args)
	if err != nil {
		var mismatch *lookup.ArgumentMismatchError
		if errors.As(err, &mismatch) {
			mismatch.Key = key
		}
		return "", err
	}
	return out, nil
}

func (l *Langusta) reportFailure(err error) {
	metrics.LookupFailuresTotal.WithLabelValues(failureKind(err)).Inc()
	l.logger.Debug("Localization lookup failed", zap.String("language", l.Language()), zap.Error(err))

	if fn := l.failure.Load(); fn != nil {
		(*fn)(err)
	}
}

func failureKind(err error) string {
	switch {
	case errors.Is(err, lookup.ErrLanguageNotFound):
		return "language"
	case errors.Is(err, lookup.ErrKeyNotFound):
		return "key"
	case errors.Is(err, lookup.ErrArgumentMismatch):
		return "arguments"
	default:
		return "unknown"
	}
}
