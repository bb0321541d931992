package store_test

import (
	"context"
	"testing"

	"langusta/core/payload"
	"langusta/core/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// exerciseStore runs the behaviour every Store implementation must share.
func exerciseStore(t *testing.T, st store.Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("EmptyStore", func(t *testing.T) {
		v, ok, err := st.LoadVersion(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Empty(t, v)

		locs, ok, err := st.LoadLocalizations(ctx)
		require.NoError(t, err)
		assert.False(t, ok)
		assert.Nil(t, locs)

		rec, err := store.LoadRecord(ctx, st)
		require.NoError(t, err)
		assert.Nil(t, rec)
	})

	t.Run("SaveThenLoad", func(t *testing.T) {
		locs := payload.Localizations{"cs": {"k1": "Ahoj"}, "en": {"k1": "Hello"}}
		require.NoError(t, st.Save(ctx, "1", locs))

		v, ok, err := st.LoadVersion(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, "1", v)

		loaded, ok, err := st.LoadLocalizations(ctx)
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, locs, loaded)
	})

	t.Run("SaveOverwrites", func(t *testing.T) {
		locs := payload.Localizations{"cs": {"k2": "Nove"}}
		require.NoError(t, st.Save(ctx, "2", locs))

		rec, err := store.LoadRecord(ctx, st)
		require.NoError(t, err)
		require.NotNil(t, rec)
		assert.Equal(t, "2", rec.Version)
		assert.Equal(t, locs, rec.Localizations)
		if _, ok := st.(store.RecordLoader); ok {
			assert.False(t, rec.UpdatedAt.IsZero())
		}
	})
}

func TestMemory(t *testing.T) {
	st := store.NewMemory()
	exerciseStore(t, st)
	assert.Equal(t, 2, st.Saves())
}

func TestMemory_IsolatesCallers(t *testing.T) {
	ctx := context.Background()
	st := store.NewMemory()

	locs := payload.Localizations{"cs": {"k": "v"}}
	require.NoError(t, st.Save(ctx, "1", locs))
	locs["cs"]["k"] = "mutated"

	loaded, _, err := st.LoadLocalizations(ctx)
	require.NoError(t, err)
	assert.Equal(t, "v", loaded["cs"]["k"])
}

// versionOnly only implements the base interface, so LoadRecord falls back to two reads.
type versionOnly struct {
	inner *store.Memory
}

func (v versionOnly) LoadVersion(ctx context.Context) (string, bool, error) {
	return v.inner.LoadVersion(ctx)
}

func (v versionOnly) LoadLocalizations(ctx context.Context) (payload.Localizations, bool, error) {
	return v.inner.LoadLocalizations(ctx)
}

func (v versionOnly) Save(ctx context.Context, version string, l payload.Localizations) error {
	return v.inner.Save(ctx, version, l)
}

func TestLoadRecord_Fallback(t *testing.T) {
	exerciseStore(t, versionOnly{inner: store.NewMemory()})
}
