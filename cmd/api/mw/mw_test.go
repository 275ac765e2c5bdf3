package mw

import (
	"context"
	"encoding/json"
	"strconv"
	"testing"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/config"
	"github.com/cloudwego/hertz/pkg/common/ut"
	"github.com/cloudwego/hertz/pkg/route"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"videotube.com/cmd/api/handlers/response"
	"videotube.com/pkg/security"
)

func newEngine(t *testing.T) *route.Engine {
	t.Helper()
	var err error
	JwtMiddleware, err = NewJwt("test-secret", time.Hour, time.Hour)
	require.NoError(t, err)

	engine := route.NewEngine(config.NewOptions(nil))
	whoami := func(ctx context.Context, c *app.RequestContext) {
		c.String(200, strconv.FormatInt(UserIdFrom(c), 10))
	}
	engine.GET("/optional", OptionalAuth(), whoami)
	engine.GET("/required", Auth(), whoami)
	return engine
}

func token(t *testing.T, userId int64) string {
	t.Helper()
	tok, _, err := JwtMiddleware.TokenGenerator(userId)
	require.NoError(t, err)
	return tok
}

func TestOptionalAuth(t *testing.T) {
	engine := newEngine(t)
	auth := ut.Header{Key: "Authorization", Value: "Bearer " + token(t, 42)}

	w := ut.PerformRequest(engine, "GET", "/optional", nil, auth)
	assert.Equal(t, "42", string(w.Result().Body()))

	w = ut.PerformRequest(engine, "GET", "/optional", nil)
	assert.Equal(t, "0", string(w.Result().Body()))

	w = ut.PerformRequest(engine, "GET", "/optional", nil, ut.Header{Key: "Authorization", Value: "Bearer garbage"})
	assert.Equal(t, 200, w.Result().StatusCode())
	assert.Equal(t, "0", string(w.Result().Body()))
}

func TestRequiredAuth(t *testing.T) {
	engine := newEngine(t)

	w := ut.PerformRequest(engine, "GET", "/required", nil, ut.Header{Key: "Authorization", Value: "Bearer " + token(t, 7)})
	assert.Equal(t, 200, w.Result().StatusCode())
	assert.Equal(t, "7", string(w.Result().Body()))

	w = ut.PerformRequest(engine, "GET", "/required", nil)
	assert.Equal(t, 401, w.Result().StatusCode())
	var resp response.Response
	require.NoError(t, json.Unmarshal(w.Result().Body(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, 401, resp.StatusCode)
}

type stubLimiter struct {
	result *security.RateLimitResult
	err    error
	seen   []string
}

func (s *stubLimiter) Allow(_ context.Context, subject string) (*security.RateLimitResult, error) {
	s.seen = append(s.seen, subject)
	return s.result, s.err
}

func TestRateLimit(t *testing.T) {
	engine := newEngine(t)
	limiter := &stubLimiter{result: &security.RateLimitResult{Allowed: false, RetryAfter: time.Minute}}
	engine.POST("/toggle", Auth(), RateLimit(limiter), func(ctx context.Context, c *app.RequestContext) {
		c.String(200, "ok")
	})
	auth := ut.Header{Key: "Authorization", Value: "Bearer " + token(t, 9)}

	w := ut.PerformRequest(engine, "POST", "/toggle", nil, auth)
	assert.Equal(t, 429, w.Result().StatusCode())
	assert.Equal(t, "60", string(w.Result().Header.Peek("Retry-After")))
	assert.Equal(t, []string{"9"}, limiter.seen)

	limiter.result = &security.RateLimitResult{Allowed: true, Remaining: 4}
	w = ut.PerformRequest(engine, "POST", "/toggle", nil, auth)
	assert.Equal(t, 200, w.Result().StatusCode())
	assert.Equal(t, "4", string(w.Result().Header.Peek("X-RateLimit-Remaining")))

	// redis 不可用时放行
	limiter.err = errors.New("redis: connection refused")
	w = ut.PerformRequest(engine, "POST", "/toggle", nil, auth)
	assert.Equal(t, 200, w.Result().StatusCode())
}
