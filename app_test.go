package mkit_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/mkit"
	"github.com/dmitrymomot/mkit/pkg/container"
	"github.com/dmitrymomot/mkit/pkg/logger"
	"github.com/dmitrymomot/mkit/pkg/validator"
)

func newApp(t *testing.T, cfg mkit.Config, opts ...mkit.Option) *mkit.App {
	t.Helper()
	opts = append([]mkit.Option{mkit.WithLogger(logger.Discard())}, opts...)
	app, err := mkit.New(context.Background(), cfg, opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = app.Close() })
	return app
}

type rejectAll struct{ validator.BaseHandler }

func (rejectAll) CheckString(string, []string) bool { return false }

func TestApp_Validate(t *testing.T) {
	t.Parallel()

	app := newApp(t, mkit.DefaultConfig())
	rules := map[string]string{
		"email": "required|email",
		"name":  "required|min:3",
	}

	t.Run("passes", func(t *testing.T) {
		t.Parallel()
		err := app.Validate(map[string]any{"email": "a@b.co", "name": "alice"}, rules)
		assert.NoError(t, err)
	})

	t.Run("fails", func(t *testing.T) {
		t.Parallel()
		err := app.Validate(map[string]any{"email": "nope", "name": "al"}, rules)
		require.Error(t, err)
		assert.ErrorIs(t, err, validator.ErrValidationFailed)

		var verr mkit.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, []string{"email", "name"}, verr.Fields())
		assert.Equal(t, "The name field failed to validate.", verr.Get("name"))
	})

	t.Run("missing required", func(t *testing.T) {
		t.Parallel()
		err := app.Validate(map[string]any{}, rules)
		var verr mkit.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "The email field is required.", verr.Get("email"))
	})
}

func TestApp_SharedRegistry(t *testing.T) {
	t.Parallel()

	app := newApp(t, mkit.DefaultConfig())
	require.NoError(t, app.Registry().Set("never", rejectAll{}))

	err := app.Validate(map[string]any{"code": "x"}, map[string]string{"code": "never"})
	var verr mkit.ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Equal(t, "The code field failed to validate.", verr.Get("code"))

	reg, ok := app.Make(mkit.BindingRegistry)
	require.True(t, ok)
	assert.Same(t, app.Registry(), reg)
}

func TestApp_Messages(t *testing.T) {
	t.Parallel()

	t.Run("catalog from config", func(t *testing.T) {
		t.Parallel()
		cfg := mkit.DefaultConfig()
		cfg.MessagesFile = "testdata/messages.yaml"
		cfg.Language = "de-AT"
		app := newApp(t, cfg)

		err := app.Validate(map[string]any{"name": "al"}, map[string]string{"name": "required|min:3", "city": "required"})
		var verr mkit.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "Bitte city ausfüllen.", verr.Get("city"))
		assert.Equal(t, "Das Feld name braucht mindestens 3 Zeichen.", verr.Get("name"))
		assert.Equal(t, "CSRF Token Mismatch!  Validation failed.", app.Messages()[validator.MessageCSRF])
	})

	t.Run("option overrides", func(t *testing.T) {
		t.Parallel()
		app := newApp(t, mkit.DefaultConfig(), mkit.WithMessages(map[string]string{"required": ":key is missing"}))
		err := app.Validate(nil, map[string]string{"title": "required"})
		var verr mkit.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.Equal(t, "title is missing", verr.Get("title"))
	})

	t.Run("missing catalog file", func(t *testing.T) {
		t.Parallel()
		cfg := mkit.DefaultConfig()
		cfg.MessagesFile = "testdata/missing.yaml"
		_, err := mkit.New(context.Background(), cfg, mkit.WithLogger(logger.Discard()))
		assert.ErrorIs(t, err, mkit.ErrLoadMessages)
	})
}

func TestApp_Hooks(t *testing.T) {
	t.Parallel()

	app := newApp(t, mkit.DefaultConfig())

	var booted int
	require.NoError(t, app.On(mkit.EventBooted, func(c *container.Container, params ...any) {
		booted++
		require.Len(t, params, 1)
		assert.Same(t, app, params[0])
		assert.Same(t, app.Container(), c)
	}))

	var results []bool
	require.NoError(t, app.On(mkit.EventValidatorChecked, func(_ *container.Container, params ...any) {
		require.Len(t, params, 2)
		_, isValidator := params[0].(*validator.Validator)
		assert.True(t, isValidator)
		results = append(results, params[1].(bool))
	}))

	app.Boot().Boot()
	assert.Equal(t, 1, booted)

	_ = app.Validate(map[string]any{"a": "x"}, map[string]string{"a": "required"})
	_ = app.Validate(nil, map[string]string{"a": "required"})
	assert.Equal(t, []bool{true, false}, results)

	assert.ErrorIs(t, app.On("x", nil), container.ErrInvalidHook)
}

func TestApp_Bindings(t *testing.T) {
	t.Parallel()

	app := newApp(t, mkit.DefaultConfig(), mkit.WithSettings(map[string]any{"site": "example"}))

	assert.Equal(t, "example", app.Settings().GetOr("site", nil))

	l, ok := app.Make(mkit.BindingLogger)
	require.True(t, ok)
	assert.Same(t, app.Logger(), l)

	v1, err := container.MakeAs[*validator.Validator](app.Container(), mkit.BindingValidator, map[string]string{"a": "required"})
	require.NoError(t, err)
	v2, err := container.MakeAs[*validator.Validator](app.Container(), mkit.BindingValidator)
	require.NoError(t, err)
	assert.NotSame(t, v1, v2, "validator binding is transient")
	assert.True(t, v1.HasRulesFor("a"))
	assert.False(t, v2.HasRulesFor("a"))
	assert.Same(t, app.Registry(), v1.Registry())

	s1, ok := app.Make(mkit.BindingSessionStore)
	require.True(t, ok)
	s2, _ := app.Make(mkit.BindingSessionStore)
	assert.Same(t, s1, s2, "session store is a singleton")
}

func TestApp_ValidateRequest(t *testing.T) {
	t.Parallel()

	app := newApp(t, mkit.DefaultConfig())
	mgr, err := app.Sessions()
	require.NoError(t, err)

	sess, err := mgr.Start(context.Background(), "")
	require.NoError(t, err)

	rules := map[string]string{"name": "required|min:3"}

	post := func(form url.Values) *http.Request {
		req := httptest.NewRequest(http.MethodPost, "/profile", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		return req
	}

	t.Run("valid token", func(t *testing.T) {
		t.Parallel()
		form := url.Values{"name": {"alice"}, "csrf_token": {sess.Token()}}
		data, err := app.ValidateRequest(post(form), rules, sess)
		require.NoError(t, err)
		assert.Equal(t, "alice", data["name"])
	})

	t.Run("wrong token", func(t *testing.T) {
		t.Parallel()
		form := url.Values{"name": {"alice"}, "csrf_token": {"forged"}}
		data, err := app.ValidateRequest(post(form), rules, sess)
		var verr mkit.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.True(t, verr.Has(validator.MessageCSRF))
		assert.False(t, verr.Has("name"))
		assert.Equal(t, "alice", data["name"])
	})

	t.Run("session from request context", func(t *testing.T) {
		t.Parallel()
		ctx, attached, err := mgr.Attach(context.Background(), "")
		require.NoError(t, err)

		forged := post(url.Values{"name": {"alice"}, "csrf_token": {"forged"}}).WithContext(ctx)
		_, err = app.ValidateRequest(forged, rules, nil)
		var verr mkit.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.True(t, verr.Has(validator.MessageCSRF))

		valid := post(url.Values{"name": {"alice"}, "csrf_token": {attached.Token()}}).WithContext(ctx)
		_, err = app.ValidateRequest(valid, rules, nil)
		assert.NoError(t, err)
	})

	t.Run("without session", func(t *testing.T) {
		t.Parallel()
		_, err := app.ValidateRequest(post(url.Values{"name": {"al"}}), rules, nil)
		var verr mkit.ValidationError
		require.True(t, errors.As(err, &verr))
		assert.True(t, verr.Has("name"))
	})

	t.Run("bad request", func(t *testing.T) {
		t.Parallel()
		req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader("x"))
		req.Header.Set("Content-Type", "text/csv")
		_, err := app.ValidateRequest(req, rules, nil)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, validator.ErrValidationFailed)
	})
}

func TestApp_Sessions(t *testing.T) {
	t.Parallel()

	app := newApp(t, mkit.DefaultConfig())
	mgr, err := app.Sessions()
	require.NoError(t, err)
	again, err := app.Sessions()
	require.NoError(t, err)
	assert.Same(t, mgr, again)
	assert.Equal(t, mkit.DefaultConfig().SessionTTL, mgr.TTL())
}

func TestApp_CloseTwice(t *testing.T) {
	t.Parallel()

	app := newApp(t, mkit.DefaultConfig())
	_, err := app.Sessions()
	require.NoError(t, err)

	require.NoError(t, app.Close())
	assert.NotPanics(t, func() { assert.NoError(t, app.Close()) })
}

func TestApp_SessionsWithoutStore(t *testing.T) {
	t.Parallel()

	app := newApp(t, mkit.DefaultConfig())
	require.NoError(t, app.Container().Singleton(mkit.BindingSessionStore, func(*container.Container, ...any) any {
		return "not a store"
	}))

	_, err := app.Sessions()
	assert.ErrorIs(t, err, mkit.ErrNoSession)
	assert.NoError(t, app.Close())
}
