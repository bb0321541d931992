package reconcile_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"langusta/core/datasource"
	"langusta/core/payload"
	"langusta/core/reconcile"
	"langusta/core/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const baselineDoc = `{
	"version": "1",
	"localizations": {
		"cs": {"_": {"k1": "Ahoj %@"}, "ios": {}},
		"en": {"_": {"k1": "Hello %@"}, "ios": {"k1": "Hi %@"}}
	}
}`

// fakeSource serves a fixed baseline and a programmable remote.
type fakeSource struct {
	baseline []byte
	remote   func(ctx context.Context, q datasource.Query) ([]byte, error)
	calls    atomic.Int32
	lastQ    atomic.Pointer[datasource.Query]
}

func (f *fakeSource) Baseline() ([]byte, error) {
	return f.baseline, nil
}

func (f *fakeSource) LoadRemote(ctx context.Context, q datasource.Query) ([]byte, error) {
	f.calls.Add(1)
	f.lastQ.Store(&q)
	if f.remote == nil {
		return nil, nil
	}
	return f.remote(ctx, q)
}

func remoteDoc(doc string) func(context.Context, datasource.Query) ([]byte, error) {
	return func(context.Context, datasource.Query) ([]byte, error) { return []byte(doc), nil }
}

// mockStore is a testify mock of store.Store.
type mockStore struct {
	mock.Mock
}

func (m *mockStore) LoadVersion(ctx context.Context) (string, bool, error) {
	args := m.Called(ctx)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *mockStore) LoadLocalizations(ctx context.Context) (payload.Localizations, bool, error) {
	args := m.Called(ctx)
	locs, _ := args.Get(0).(payload.Localizations)
	return locs, args.Bool(1), args.Error(2)
}

func (m *mockStore) Save(ctx context.Context, version string, l payload.Localizations) error {
	args := m.Called(ctx, version, l)
	return args.Error(0)
}

func newEngine(t *testing.T, src datasource.DataSource, st store.Store) *reconcile.Engine {
	t.Helper()
	engine := reconcile.New(src, st, reconcile.Options{
		Platform:  payload.PlatformIOS,
		Languages: []string{"cs", "en"},
	})
	require.NoError(t, engine.Initialize(context.Background()))
	return engine
}

func TestInitialize_BaselineWithoutStoredRecord(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	engine := newEngine(t, &fakeSource{baseline: []byte(baselineDoc)}, st)

	want := payload.Localizations{
		"cs": {"k1": "Ahoj %@"},
		"en": {"k1": "Hi %@"},
	}

	state := engine.Active()
	require.NotNil(t, state)
	assert.Equal(t, "1", state.Version)
	assert.Equal(t, reconcile.OriginBaseline, state.Origin)
	assert.Equal(t, want, state.Localizations)

	rec, err := store.LoadRecord(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, "1", rec.Version)
	assert.Equal(t, want, rec.Localizations)
}

func TestInitialize_StoredRecord(t *testing.T) {
	ctx := context.Background()

	t.Run("NewerStoredWins", func(t *testing.T) {
		st := store.NewMemory()
		storedSet := payload.Localizations{"cs": {"k1": "Cached"}, "en": {"k1": "Cached"}}
		require.NoError(t, st.Save(ctx, "10", storedSet))

		engine := newEngine(t, &fakeSource{baseline: []byte(baselineDoc)}, st)

		assert.Equal(t, "10", engine.Active().Version)
		assert.Equal(t, reconcile.OriginStored, engine.Active().Origin)
		assert.Equal(t, storedSet, engine.Active().Localizations)
		assert.Equal(t, 1, st.Saves())
	})

	t.Run("OlderStoredLosesAndIsOverwritten", func(t *testing.T) {
		st := store.NewMemory()
		require.NoError(t, st.Save(ctx, "0", payload.Localizations{"cs": {"k1": "Old"}}))

		engine := newEngine(t, &fakeSource{baseline: []byte(baselineDoc)}, st)

		assert.Equal(t, "1", engine.Active().Version)
		v, _, _ := st.LoadVersion(ctx)
		assert.Equal(t, "1", v)
	})

	t.Run("StoreReadFailureFallsBackToBaseline", func(t *testing.T) {
		st := new(mockStore)
		st.On("LoadVersion", mock.Anything).Return("", false, assert.AnError)
		st.On("Save", mock.Anything, "1", mock.Anything).Return(nil)

		engine := newEngine(t, &fakeSource{baseline: []byte(baselineDoc)}, st)
		assert.Equal(t, reconcile.OriginBaseline, engine.Active().Origin)
		st.AssertExpectations(t)
	})

	t.Run("StoreWriteFailureStillActivatesBaseline", func(t *testing.T) {
		st := new(mockStore)
		st.On("LoadVersion", mock.Anything).Return("", false, nil)
		st.On("Save", mock.Anything, "1", mock.Anything).Return(assert.AnError)

		engine := newEngine(t, &fakeSource{baseline: []byte(baselineDoc)}, st)
		assert.Equal(t, "1", engine.Active().Version)
	})
}

func TestInitialize_Failures(t *testing.T) {
	ctx := context.Background()

	t.Run("InvalidBaseline", func(t *testing.T) {
		engine := reconcile.New(&fakeSource{baseline: []byte("{")}, store.NewMemory(), reconcile.Options{})
		err := engine.Initialize(ctx)
		assert.ErrorIs(t, err, payload.ErrDecode)
		assert.Nil(t, engine.Active())
	})

	t.Run("UnreadableBaseline", func(t *testing.T) {
		src := datasource.NewComposite(datasource.File("/does/not/exist.json"), nil)
		engine := reconcile.New(src, store.NewMemory(), reconcile.Options{})
		assert.Error(t, engine.Initialize(ctx))
	})

	t.Run("MissingSupportedLanguage", func(t *testing.T) {
		engine := reconcile.New(&fakeSource{baseline: []byte(baselineDoc)}, store.NewMemory(), reconcile.Options{
			Languages: []string{"cs", "sk"},
		})
		err := engine.Initialize(ctx)
		assert.ErrorIs(t, err, reconcile.ErrMissingLanguages)

		var missing *reconcile.MissingLanguagesError
		require.ErrorAs(t, err, &missing)
		assert.Equal(t, []string{"sk"}, missing.Missing)
	})
}

func TestRefresh_AcceptsNewer(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	src := &fakeSource{
		baseline: []byte(baselineDoc),
		remote:   remoteDoc(`{"version":"2","localizations":{"cs":{"k2":"Nove"}}}`),
	}
	engine := newEngine(t, src, st)

	res := engine.Refresh(ctx, "")

	assert.Equal(t, reconcile.OutcomeAccepted, res.Outcome)
	assert.True(t, res.Changed())
	assert.Equal(t, "1", res.PreviousVersion)
	assert.Equal(t, "2", res.RemoteVersion)
	assert.NoError(t, res.Err)

	want := payload.Localizations{
		"cs": {"k1": "Ahoj %@", "k2": "Nove"},
		"en": {"k1": "Hi %@"},
	}
	assert.Equal(t, want, engine.Active().Localizations)
	assert.Equal(t, reconcile.OriginRemote, engine.Active().Origin)

	rec, err := store.LoadRecord(ctx, st)
	require.NoError(t, err)
	assert.Equal(t, "2", rec.Version)
	assert.Equal(t, want, rec.Localizations)

	q := src.lastQ.Load()
	assert.Equal(t, datasource.Query{Platform: "ios", CurrentVersion: "1"}, *q)
}

func TestRefresh_LeavesStateUntouched(t *testing.T) {
	tests := []struct {
		name    string
		remote  func(context.Context, datasource.Query) ([]byte, error)
		outcome reconcile.Outcome
		wantErr bool
	}{
		{"SameVersion", remoteDoc(`{"version":"1","localizations":{"cs":{"k2":"x"}}}`), reconcile.OutcomeDiscarded, false},
		{"OlderVersion", remoteDoc(`{"version":"0","localizations":{"cs":{"k2":"x"}}}`), reconcile.OutcomeDiscarded, false},
		{"NoData", nil, reconcile.OutcomeNoData, false},
		{"Whitespace", remoteDoc("  \n"), reconcile.OutcomeNoData, false},
		{"TransportError", func(context.Context, datasource.Query) ([]byte, error) {
			return nil, &datasource.TransportError{Source: "test", Err: assert.AnError}
		}, reconcile.OutcomeNoData, true},
		{"Malformed", remoteDoc(`{"version":`), reconcile.OutcomeInvalid, true},
		{"MissingVersion", remoteDoc(`{"localizations":{}}`), reconcile.OutcomeInvalid, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := store.NewMemory()
			engine := newEngine(t, &fakeSource{baseline: []byte(baselineDoc), remote: tt.remote}, st)
			before := engine.Active()

			res := engine.Refresh(context.Background(), "")

			assert.Equal(t, tt.outcome, res.Outcome)
			assert.False(t, res.Changed())
			assert.Equal(t, tt.wantErr, res.Err != nil)
			assert.Same(t, before, engine.Active())
			assert.Equal(t, 1, st.Saves())
		})
	}
}

func TestRefresh_StoreFailureKeepsActiveSet(t *testing.T) {
	st := new(mockStore)
	st.On("LoadVersion", mock.Anything).Return("", false, nil).Once()
	st.On("Save", mock.Anything, "1", mock.Anything).Return(nil).Once()

	src := &fakeSource{
		baseline: []byte(baselineDoc),
		remote:   remoteDoc(`{"version":"2","localizations":{"cs":{"k2":"Nove"}}}`),
	}
	engine := newEngine(t, src, st)
	before := engine.Active()

	st.On("LoadVersion", mock.Anything).Return("1", true, nil)
	st.On("Save", mock.Anything, "2", mock.Anything).Return(assert.AnError)

	res := engine.Refresh(context.Background(), "cs")

	assert.Equal(t, reconcile.OutcomeStoreError, res.Outcome)
	assert.ErrorIs(t, res.Err, assert.AnError)
	assert.Same(t, before, engine.Active())
	assert.Equal(t, "cs", src.lastQ.Load().Language)
}

func TestRefresh_ComparesAgainstBaselineWhenStoreLags(t *testing.T) {
	st := new(mockStore)
	st.On("LoadVersion", mock.Anything).Return("0", true, nil)
	st.On("LoadLocalizations", mock.Anything).Return(payload.Localizations{"cs": {"k1": "Old"}}, true, nil)
	st.On("Save", mock.Anything, "1", mock.Anything).Return(assert.AnError)

	src := &fakeSource{
		baseline: []byte(baselineDoc),
		remote:   remoteDoc(`{"version":"0.5","localizations":{"cs":{"k1":"Stale"}}}`),
	}
	engine := newEngine(t, src, st)
	require.Equal(t, "1", engine.Active().Version)

	res := engine.Refresh(context.Background(), "")

	assert.Equal(t, reconcile.OutcomeDiscarded, res.Outcome)
	assert.Equal(t, "1", res.PreviousVersion)
	assert.Equal(t, "1", src.lastQ.Load().CurrentVersion)
	assert.Equal(t, "Ahoj %@", engine.Active().Localizations["cs"]["k1"])
	st.AssertNotCalled(t, "Save", mock.Anything, "0.5", mock.Anything)
}

func TestRefresh_VersionComparisonIsNumeric(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()
	require.NoError(t, st.Save(ctx, "9", payload.Localizations{"cs": {"k1": "Devet"}, "en": {"k1": "Nine"}}))

	src := &fakeSource{
		baseline: []byte(baselineDoc),
		remote:   remoteDoc(`{"version":"10","localizations":{"cs":{"k1":"Deset"}}}`),
	}
	engine := newEngine(t, src, st)
	require.Equal(t, "9", engine.Active().Version)

	res := engine.Refresh(ctx, "")
	assert.Equal(t, reconcile.OutcomeAccepted, res.Outcome)
	assert.Equal(t, "Deset", engine.Active().Localizations["cs"]["k1"])
	assert.Equal(t, "Nine", engine.Active().Localizations["en"]["k1"])
}

func TestRefresh_ConcurrentCallsAreCoalesced(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{}, 8)

	src := &fakeSource{
		baseline: []byte(baselineDoc),
		remote: func(ctx context.Context, q datasource.Query) ([]byte, error) {
			started <- struct{}{}
			<-release
			return []byte(`{"version":"2","localizations":{"cs":{"k2":"Nove"}}}`), nil
		},
	}
	st := store.NewMemory()
	engine := newEngine(t, src, st)

	const callers = 5
	results := make([]reconcile.Result, callers)
	var wg sync.WaitGroup
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i] = engine.Refresh(context.Background(), "")
		}()
	}

	<-started
	// Give the remaining callers time to join the in-flight refresh.
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int32(1), src.calls.Load())
	assert.Equal(t, 2, st.Saves())
	for _, res := range results {
		assert.Equal(t, reconcile.OutcomeAccepted, res.Outcome)
	}
}

func TestRefreshAsync(t *testing.T) {
	src := &fakeSource{
		baseline: []byte(baselineDoc),
		remote:   remoteDoc(`{"version":"3","localizations":{"en":{"k3":"Three"}}}`),
	}
	engine := newEngine(t, src, store.NewMemory())

	select {
	case res := <-engine.RefreshAsync(context.Background(), ""):
		assert.Equal(t, reconcile.OutcomeAccepted, res.Outcome)
		assert.Equal(t, "Three", engine.Active().Localizations["en"]["k3"])
	case <-time.After(2 * time.Second):
		t.Fatal("refresh did not complete")
	}
}
