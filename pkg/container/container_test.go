package container_test

import (
	"bytes"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mkit/pkg/container"
	"github.com/dmitrymomot/mkit/pkg/logger"
)

type service struct {
	id int
}

func counterFactory(calls *int) container.Factory {
	return func(_ *container.Container, _ ...any) any {
		*calls++
		return &service{id: *calls}
	}
}

func TestContainer_Bind(t *testing.T) {
	t.Run("transient binding calls factory every time", func(t *testing.T) {
		c := container.New()
		calls := 0
		require.NoError(t, c.Bind("svc", counterFactory(&calls), false))

		first, ok := c.Make("svc")
		require.True(t, ok)
		second, ok := c.Make("svc")
		require.True(t, ok)

		assert.Equal(t, 2, calls)
		assert.NotSame(t, first, second)
		assert.False(t, c.Resolved("svc"))
	})

	t.Run("singleton binding caches first result", func(t *testing.T) {
		c := container.New()
		calls := 0
		require.NoError(t, c.Singleton("svc", counterFactory(&calls)))
		assert.False(t, c.Resolved("svc"))

		first, _ := c.Make("svc")
		second, _ := c.Make("svc")

		assert.Equal(t, 1, calls)
		assert.Same(t, first, second)
		assert.True(t, c.Resolved("svc"))
	})

	t.Run("rebinding replaces factory and cache", func(t *testing.T) {
		c := container.New()
		require.NoError(t, c.Singleton("v", func(_ *container.Container, _ ...any) any { return "old" }))
		v, _ := c.Make("v")
		require.Equal(t, "old", v)

		require.NoError(t, c.Singleton("v", func(_ *container.Container, _ ...any) any { return "new" }))
		v, _ = c.Make("v")
		assert.Equal(t, "new", v)
	})

	t.Run("nil factory is rejected", func(t *testing.T) {
		c := container.New()
		assert.ErrorIs(t, c.Bind("x", nil, false), container.ErrInvalidFactory)
		assert.False(t, c.Bound("x"))
	})

	t.Run("unbind removes binding", func(t *testing.T) {
		c := container.New()
		require.NoError(t, c.Bind("x", func(_ *container.Container, _ ...any) any { return 1 }, false))
		require.True(t, c.Bound("x"))

		c.Unbind("x")
		assert.False(t, c.Bound("x"))
	})
}

func TestContainer_Make(t *testing.T) {
	t.Run("unbound name returns not found without panic", func(t *testing.T) {
		c := container.New()
		var (
			v  any
			ok bool
		)
		assert.NotPanics(t, func() { v, ok = c.Make("unbound") })
		assert.False(t, ok)
		assert.Nil(t, v)
	})

	t.Run("params and container are passed to factory", func(t *testing.T) {
		c := container.New()
		var got []any
		var gotContainer *container.Container
		require.NoError(t, c.Bind("x", func(cc *container.Container, params ...any) any {
			gotContainer = cc
			got = params
			return nil
		}, false))

		c.Make("x", 1, "two")
		assert.Equal(t, []any{1, "two"}, got)
		assert.Same(t, c, gotContainer)
	})

	t.Run("force re-runs singleton factory and replaces cache", func(t *testing.T) {
		c := container.New()
		calls := 0
		require.NoError(t, c.Singleton("svc", counterFactory(&calls)))

		first, _ := c.Make("svc")
		forced, ok := c.MakeForce("svc")
		require.True(t, ok)
		after, _ := c.Make("svc")

		assert.Equal(t, 2, calls)
		assert.NotSame(t, first, forced)
		assert.Same(t, forced, after)
		assert.True(t, c.Resolved("svc"))
	})

	t.Run("remake is force make", func(t *testing.T) {
		c := container.New()
		calls := 0
		require.NoError(t, c.Singleton("svc", counterFactory(&calls)))

		c.Make("svc")
		v, ok := c.Remake("svc")
		require.True(t, ok)
		assert.Equal(t, 2, v.(*service).id)
	})

	t.Run("nil singleton result is still cached", func(t *testing.T) {
		c := container.New()
		calls := 0
		require.NoError(t, c.Singleton("nil", func(_ *container.Container, _ ...any) any {
			calls++
			return nil
		}))

		c.Make("nil")
		c.Make("nil")
		assert.Equal(t, 1, calls)
	})

	t.Run("factories may resolve other bindings", func(t *testing.T) {
		c := container.New()
		require.NoError(t, c.Singleton("dep", func(_ *container.Container, _ ...any) any { return &service{id: 7} }))
		require.NoError(t, c.Singleton("svc", func(cc *container.Container, _ ...any) any {
			dep, _ := cc.Make("dep")
			return dep.(*service).id * 2
		}))

		v, ok := c.Make("svc")
		require.True(t, ok)
		assert.Equal(t, 14, v)
	})
}

func TestMakeAs(t *testing.T) {
	c := container.New()
	require.NoError(t, c.Singleton("svc", func(_ *container.Container, _ ...any) any { return &service{id: 1} }))

	t.Run("typed result", func(t *testing.T) {
		s, err := container.MakeAs[*service](c, "svc")
		require.NoError(t, err)
		assert.Equal(t, 1, s.id)
	})

	t.Run("not bound", func(t *testing.T) {
		_, err := container.MakeAs[*service](c, "missing")
		assert.ErrorIs(t, err, container.ErrNotBound)
	})

	t.Run("type mismatch", func(t *testing.T) {
		_, err := container.MakeAs[string](c, "svc")
		assert.ErrorIs(t, err, container.ErrTypeMismatch)
	})
}

func TestContainer_Hooks(t *testing.T) {
	t.Run("hooks fire in registration order with params", func(t *testing.T) {
		c := container.New()
		var calls []string
		var received [][]any

		require.NoError(t, c.On("evt", func(cc *container.Container, params ...any) {
			assert.Same(t, c, cc)
			calls = append(calls, "h1")
			received = append(received, params)
		}))
		require.NoError(t, c.On("evt", func(cc *container.Container, params ...any) {
			assert.Same(t, c, cc)
			calls = append(calls, "h2")
			received = append(received, params)
		}))

		c.Call("evt", 1, 2)

		assert.Equal(t, []string{"h1", "h2"}, calls)
		assert.Equal(t, [][]any{{1, 2}, {1, 2}}, received)
		assert.Equal(t, 2, c.Hooks("evt"))
	})

	t.Run("calling unknown event is a no-op", func(t *testing.T) {
		c := container.New()
		assert.NotPanics(t, func() { c.Call("nothing", "x") })
	})

	t.Run("nil hook is rejected", func(t *testing.T) {
		c := container.New()
		assert.ErrorIs(t, c.On("evt", nil), container.ErrInvalidHook)
		assert.Equal(t, 0, c.Hooks("evt"))
	})

	t.Run("off removes hooks", func(t *testing.T) {
		c := container.New()
		fired := false
		require.NoError(t, c.On("evt", func(_ *container.Container, _ ...any) { fired = true }))

		c.Off("evt")
		c.Call("evt")
		assert.False(t, fired)
	})

	t.Run("hooks registered during call fire next time", func(t *testing.T) {
		c := container.New()
		count := 0
		require.NoError(t, c.On("evt", func(cc *container.Container, _ ...any) {
			count++
			_ = cc.On("evt", func(_ *container.Container, _ ...any) { count += 10 })
		}))

		c.Call("evt")
		assert.Equal(t, 1, count)
	})
}

func TestContainer_Logging(t *testing.T) {
	buf := &bytes.Buffer{}
	log := logger.New(logger.WithOutput(buf), logger.WithLevelName("debug"))
	c := container.New(container.WithLogger(log))

	require.NoError(t, c.Singleton("svc", func(_ *container.Container, _ ...any) any { return 1 }))
	c.Make("svc")

	out := buf.String()
	assert.Contains(t, out, `"component":"container"`)
	assert.Contains(t, out, `"binding":"svc"`)
	assert.Contains(t, out, "singleton resolved")
}

func TestContainer_ConcurrentSingleton(t *testing.T) {
	c := container.New()
	var mu sync.Mutex
	calls := 0
	require.NoError(t, c.Singleton("svc", func(_ *container.Container, _ ...any) any {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return &service{id: calls}
	}))

	var wg sync.WaitGroup
	results := make([]any, 20)
	for i := range results {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			results[n], _ = c.Make("svc")
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 1, calls)
	for _, r := range results {
		assert.Same(t, results[0], r)
	}
}
