package reconcile

import (
	"bytes"
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"langusta/core/datasource"
	"langusta/core/metrics"
	"langusta/core/payload"
	"langusta/core/store"
	"langusta/core/version"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// refreshKey is the singleflight key shared by all refreshes of an engine.
const refreshKey = "refresh"

// Engine owns the active localization set.
type Engine struct {
	source datasource.DataSource
	store  store.Store
	opts   Options
	logger *zap.Logger

	active atomic.Pointer[State]
	mu     sync.Mutex
	sf     singleflight.Group
}

// New creates an engine. Initialize must succeed before the engine is used.
func New(source datasource.DataSource, st store.Store, opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Platform == "" {
		opts.Platform = payload.PlatformUniversal
	}
	return &Engine{
		source: source,
		store:  st,
		opts:   opts,
		logger: logger.With(zap.String("platform", opts.Platform)),
	}
}

// Active returns the current snapshot, or nil before Initialize.
func (e *Engine) Active() *State {
	return e.active.Load()
}

// Initialize loads the baseline and reconciles it against the stored record.
// Baseline read, decode and coverage failures are returned; store failures are logged and the
// baseline is used.
func (e *Engine) Initialize(ctx context.Context) error {
	data, err := e.source.Baseline()
	if err != nil {
		return fmt.Errorf("failed to read baseline: %w", err)
	}

	baseline, err := payload.Decode(data, e.opts.Platform)
	if err != nil {
		return fmt.Errorf("invalid baseline: %w", err)
	}

	if missing := MissingLanguages(baseline, e.opts.Languages); len(missing) > 0 {
		return &MissingLanguagesError{Missing: missing}
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	stored, err := store.LoadRecord(ctx, e.store)
	if err != nil {
		e.logger.Warn("Failed to load stored localizations, using baseline", zap.Error(err))
		stored = nil
	}

	plan := PlanBaseline(baseline, stored)
	e.logger.Info("Initialized localizations",
		zap.String("action", string(plan.Action)),
		zap.String("version", plan.Version),
		zap.String("reason", plan.Reason),
	)

	origin := OriginStored
	if plan.Action == ActionUseBaseline {
		origin = OriginBaseline
		if err := e.store.Save(ctx, plan.Version, plan.Localizations); err != nil {
			e.logger.Warn("Failed to persist baseline", zap.Error(err))
		}
	}

	e.swap(plan, origin)
	return nil
}

// Refresh fetches the remote document and reconciles it. language, when non-empty, is sent as a
// filter to the data source. Concurrent callers share one in-flight refresh.
func (e *Engine) Refresh(ctx context.Context, language string) Result {
	v, _, shared := e.sf.Do(refreshKey, func() (any, error) {
		return e.refresh(ctx, language), nil
	})
	res := v.(Result)
	res.Shared = shared
	return res
}

// RefreshAsync runs Refresh on its own goroutine and delivers the result on the returned channel.
func (e *Engine) RefreshAsync(ctx context.Context, language string) <-chan Result {
	ch := make(chan Result, 1)
	go func() {
		ch <- e.Refresh(ctx, language)
		close(ch)
	}()
	return ch
}

func (e *Engine) refresh(ctx context.Context, language string) Result {
	previous := e.currentVersion(ctx)
	res := Result{PreviousVersion: previous}

	data, err := e.source.LoadRemote(ctx, datasource.Query{
		Platform:       e.opts.Platform,
		Language:       language,
		CurrentVersion: previous,
	})
	if err != nil {
		return e.finish(res, OutcomeNoData, err)
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return e.finish(res, OutcomeNoData, nil)
	}

	remote, err := payload.Decode(data, e.opts.Platform)
	if err != nil {
		return e.finish(res, OutcomeInvalid, err)
	}
	res.RemoteVersion = remote.Version

	e.mu.Lock()
	defer e.mu.Unlock()

	// Re-read under the lock; Initialize may have replaced the state meanwhile.
	previous = e.currentVersion(ctx)
	res.PreviousVersion = previous

	var active payload.Localizations
	if st := e.active.Load(); st != nil {
		active = st.Localizations
	}

	plan := PlanRefresh(remote, previous, active)
	if plan.Action == ActionDiscard {
		e.logger.Debug("Discarded remote localizations", zap.String("reason", plan.Reason))
		return e.finish(res, OutcomeDiscarded, nil)
	}

	if err := e.store.Save(ctx, plan.Version, plan.Localizations); err != nil {
		return e.finish(res, OutcomeStoreError, err)
	}

	e.swap(plan, OriginRemote)
	e.logger.Info("Accepted remote localizations",
		zap.String("version", plan.Version),
		zap.String("previous_version", previous),
		zap.Strings("languages", remote.Localizations.Languages()),
	)
	return e.finish(res, OutcomeAccepted, nil)
}

// currentVersion is the newer of the stored and the active version. The store can lag behind
// the active set when persisting the baseline failed.
func (e *Engine) currentVersion(ctx context.Context) string {
	var active string
	if st := e.active.Load(); st != nil {
		active = st.Version
	}

	v, ok, err := e.store.LoadVersion(ctx)
	if err != nil {
		e.logger.Warn("Failed to load stored version", zap.Error(err))
		return active
	}
	if !ok || version.Newer(active, v) {
		return active
	}
	return v
}

func (e *Engine) swap(plan Plan, origin Origin) {
	e.active.Store(&State{
		Version:       plan.Version,
		Localizations: plan.Localizations,
		Origin:        origin,
		UpdatedAt:     time.Now(),
	})
	metrics.ObserveActiveSet(plan.Localizations.KeyCount())
}

func (e *Engine) finish(res Result, outcome Outcome, err error) Result {
	res.Outcome = outcome
	res.Err = err
	metrics.RefreshTotal.WithLabelValues(string(outcome)).Inc()

	if err != nil {
		e.logger.Warn("Remote refresh left localizations unchanged",
			zap.String("outcome", string(outcome)),
			zap.String("previous_version", res.PreviousVersion),
			zap.Error(err),
		)
	}
	return res
}
