package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/iliyamo/office-seating/internal/config"
	"github.com/iliyamo/office-seating/internal/utils"
)

var settings = utils.TokenSettings{Secret: "mw-secret", Issuer: "office-seating", Audience: "clients", TTL: time.Hour}

func token(t *testing.T, userID string, roles ...string) string {
	t.Helper()
	tok, err := utils.NewAccessToken(settings, userID, userID+"@example.com", userID, roles, time.Now())
	require.NoError(t, err)
	return "Bearer " + tok.Token
}

func do(e *echo.Echo, method, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	if auth != "" {
		req.Header.Set(echo.HeaderAuthorization, auth)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func newRedis(t *testing.T) *redis.Client {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return rdb
}

func ok(c echo.Context) error { return c.String(http.StatusOK, UserID(c)) }

func TestJWTAuth(t *testing.T) {
	e := echo.New()
	e.GET("/me", ok, JWTAuth(settings))

	rec := do(e, http.MethodGet, "/me", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"message":"Missing bearer token"}`, rec.Body.String())

	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/me", "Bearer nonsense").Code)

	other := settings
	other.Secret = "another-secret"
	forged, err := utils.NewAccessToken(other, "u1", "", "", nil, time.Now())
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, do(e, http.MethodGet, "/me", "Bearer "+forged.Token).Code)

	rec = do(e, http.MethodGet, "/me", token(t, "u1", "User"))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u1", rec.Body.String())
}

func TestAuthorize(t *testing.T) {
	policy := Policy{
		Key(http.MethodDelete, "/buildings/:id"): {Roles: []string{"Admin"}},
		Key(http.MethodGet, "/users/:id"):        {Roles: []string{"Admin", "Manager"}, SelfParam: "id"},
	}
	e := echo.New()
	g := e.Group("", JWTAuth(settings), Authorize(policy))
	g.DELETE("/buildings/:id", ok)
	g.GET("/users/:id", ok)
	g.GET("/buildings/:id", ok)

	cases := []struct {
		name   string
		method string
		path   string
		auth   string
		want   int
	}{
		{"admin may delete", http.MethodDelete, "/buildings/1", token(t, "a", "Admin"), http.StatusOK},
		{"manager may not delete", http.MethodDelete, "/buildings/1", token(t, "m", "Manager"), http.StatusForbidden},
		{"unlisted route needs only a token", http.MethodGet, "/buildings/1", token(t, "u", "User"), http.StatusOK},
		{"self may read own profile", http.MethodGet, "/users/u", token(t, "u", "User"), http.StatusOK},
		{"user may not read others", http.MethodGet, "/users/v", token(t, "u", "User"), http.StatusForbidden},
		{"manager may read others", http.MethodGet, "/users/v", token(t, "m", "Manager"), http.StatusOK},
		{"anonymous rejected first", http.MethodGet, "/users/v", "", http.StatusUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, do(e, tc.method, tc.path, tc.auth).Code)
		})
	}
}

func TestRateLimit(t *testing.T) {
	cfg := config.RateLimitConfig{
		Enabled: true, Capacity: 2, RefillTokens: 1, RefillInterval: time.Minute,
		TTL: 10 * time.Minute, KeyStrategy: "ip", Prefix: "rl",
	}
	e := echo.New()
	e.Use(RateLimit(cfg, newRedis(t), zap.NewNop()))
	e.GET("/ping", ok)

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/ping", "").Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/ping", "").Code)
	rec := do(e, http.MethodGet, "/ping", "")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("Retry-After"))
	assert.Contains(t, rec.Body.String(), "Too many requests")
}

func TestRateLimitPerUserAfterAuth(t *testing.T) {
	cfg := config.RateLimitConfig{
		Enabled: true, Capacity: 1, RefillTokens: 1, RefillInterval: time.Minute,
		TTL: 10 * time.Minute, KeyStrategy: "user", Prefix: "rl",
	}
	e := echo.New()
	e.GET("/ping", ok, JWTAuth(settings), RateLimit(cfg, newRedis(t), zap.NewNop()))

	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/ping", token(t, "alice")).Code)
	assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/ping", token(t, "bob")).Code)
	assert.Equal(t, http.StatusTooManyRequests, do(e, http.MethodGet, "/ping", token(t, "alice")).Code)
}

func TestRateKeyAnonymousUserFallsBackToIP(t *testing.T) {
	cfg := config.RateLimitConfig{KeyStrategy: "user", Prefix: "rl"}
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = "10.0.0.7:5555"
	c := echo.New().NewContext(req, httptest.NewRecorder())
	assert.Equal(t, "rl:ip:10.0.0.7", rateKey(cfg, c))

	c.Set(ctxUserID, "u1")
	assert.Equal(t, "rl:user:u1", rateKey(cfg, c))
	assert.Equal(t, "rl:auth:ip:10.0.0.7", rateKey(config.RateLimitConfig{KeyStrategy: "user", Prefix: "rl"}.PerIP("auth"), c))
}

func TestRateLimitDisabledWithoutRedis(t *testing.T) {
	e := echo.New()
	e.Use(RateLimit(config.RateLimitConfig{Enabled: true, Capacity: 1}, nil, zap.NewNop()))
	e.GET("/ping", ok)
	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, do(e, http.MethodGet, "/ping", "").Code)
	}
}

func TestResponseCache(t *testing.T) {
	cfg := config.CacheConfig{
		Enabled: true, Methods: map[string]bool{http.MethodGet: true}, TTL: time.Minute,
		KeyStrategy: "route_query", Prefix: "cache", MaxBodyBytes: 1 << 10,
	}
	rdb := newRedis(t)
	log := zap.NewNop()
	calls := 0
	e := echo.New()
	e.Use(InvalidateOnWrite(cfg, rdb, log))
	e.GET("/buildings", func(c echo.Context) error {
		calls++
		return c.JSON(http.StatusOK, echo.Map{"calls": calls})
	}, ResponseCache(cfg, rdb, log))
	e.POST("/buildings", func(c echo.Context) error { return c.NoContent(http.StatusCreated) })
	e.POST("/broken", func(c echo.Context) error { return c.NoContent(http.StatusBadRequest) })

	first := do(e, http.MethodGet, "/buildings", "")
	assert.Equal(t, "MISS", first.Header().Get("X-Cache"))
	second := do(e, http.MethodGet, "/buildings", "")
	assert.Equal(t, "HIT", second.Header().Get("X-Cache"))
	assert.JSONEq(t, first.Body.String(), second.Body.String())
	assert.True(t, strings.HasPrefix(second.Header().Get(echo.HeaderContentType), echo.MIMEApplicationJSON))
	assert.Equal(t, 1, calls)

	do(e, http.MethodPost, "/broken", "")
	assert.Equal(t, "HIT", do(e, http.MethodGet, "/buildings", "").Header().Get("X-Cache"))

	assert.Equal(t, http.StatusCreated, do(e, http.MethodPost, "/buildings", "").Code)
	third := do(e, http.MethodGet, "/buildings", "")
	assert.Equal(t, "MISS", third.Header().Get("X-Cache"))
	assert.JSONEq(t, `{"calls":2}`, third.Body.String())
}

func TestCaptureWriterSkipsOversizedBodies(t *testing.T) {
	rec := httptest.NewRecorder()
	cw := &captureWriter{ResponseWriter: rec, status: http.StatusOK, limit: 4}
	_, _ = cw.Write([]byte("abc"))
	_, _ = cw.Write([]byte("def"))
	assert.True(t, cw.truncated)
	assert.Equal(t, "abcdef", rec.Body.String())
}

func TestPayloadRoundTrip(t *testing.T) {
	hdr := http.Header{"Content-Type": {"application/json"}}
	bs, err := encodePayload(http.StatusOK, hdr, []byte(`{"a":1}`))
	require.NoError(t, err)
	status, got, body, ok := decodePayload(bs)
	require.True(t, ok)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "application/json", got.Get("Content-Type"))
	assert.Equal(t, `{"a":1}`, string(body))

	_, _, _, ok = decodePayload([]byte{0, 0})
	assert.False(t, ok)
}
