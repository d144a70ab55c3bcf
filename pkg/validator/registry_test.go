package validator_test

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mkit/pkg/validator"
)

type alwaysFail struct {
	validator.BaseHandler
}

func (alwaysFail) CheckString(string, []string) bool { return false }

func TestRegistry_Defaults(t *testing.T) {
	r := validator.NewRegistry()

	assert.Equal(t, []string{"email", "min"}, r.Keys())
	assert.False(t, r.Has("max"), "max has no implementation and is not registered")

	entry, ok := r.Lookup("min")
	require.True(t, ok)
	assert.False(t, entry.Ready(), "default handlers are constructed lazily")
	assert.NotNil(t, entry.Factory)
}

func TestRegistry_Resolve(t *testing.T) {
	t.Run("constructs once and caches", func(t *testing.T) {
		r := validator.NewEmptyRegistry()
		calls := 0
		require.NoError(t, r.Register("fail", func() validator.Handler {
			calls++
			return alwaysFail{}
		}))

		h1, ok := r.Resolve("fail")
		require.True(t, ok)
		h2, _ := r.Resolve("fail")

		assert.Equal(t, 1, calls)
		assert.Equal(t, h1, h2)

		entry, _ := r.Lookup("fail")
		assert.True(t, entry.Ready())
	})

	t.Run("unknown name", func(t *testing.T) {
		r := validator.NewEmptyRegistry()
		h, ok := r.Resolve("nope")
		assert.False(t, ok)
		assert.Nil(t, h)

		_, ok = r.Lookup("nope")
		assert.False(t, ok)
	})

	t.Run("factory returning nil resolves to nothing", func(t *testing.T) {
		r := validator.NewEmptyRegistry()
		require.NoError(t, r.Register("nil", func() validator.Handler { return nil }))

		_, ok := r.Resolve("nil")
		assert.False(t, ok)
	})

	t.Run("concurrent resolve constructs once", func(t *testing.T) {
		r := validator.NewEmptyRegistry()
		var mu sync.Mutex
		calls := 0
		require.NoError(t, r.Register("min", func() validator.Handler {
			mu.Lock()
			calls++
			mu.Unlock()
			return validator.NewMinimumHandler()
		}))

		var wg sync.WaitGroup
		for range 16 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, _ = r.Resolve("min")
			}()
		}
		wg.Wait()
		assert.Equal(t, 1, calls)
	})
}

func TestRegistry_Mutations(t *testing.T) {
	t.Run("set installs ready instance", func(t *testing.T) {
		r := validator.NewRegistry()
		require.NoError(t, r.Set("min", alwaysFail{}))

		entry, ok := r.Lookup("min")
		require.True(t, ok)
		assert.True(t, entry.Ready())
		assert.Nil(t, entry.Factory)
	})

	t.Run("clear removes entry", func(t *testing.T) {
		r := validator.NewRegistry()
		r.Clear("email")
		assert.False(t, r.Has("email"))
		assert.Equal(t, []string{"min"}, r.Keys())
	})

	t.Run("invalid registrations", func(t *testing.T) {
		r := validator.NewEmptyRegistry()
		assert.ErrorIs(t, r.Set("", alwaysFail{}), validator.ErrEmptyRuleName)
		assert.ErrorIs(t, r.Set("x", nil), validator.ErrNilHandler)
		assert.ErrorIs(t, r.Register("", validator.NewEmailHandler), validator.ErrEmptyRuleName)
		assert.ErrorIs(t, r.Register("x", nil), validator.ErrNilHandler)
		assert.Empty(t, r.Keys())
	})
}
