package mw

import (
	"context"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"videotube.com/cmd/api/handlers/response"
	"videotube.com/pkg/errno"
	"videotube.com/pkg/security"
)

type limiter interface {
	Allow(ctx context.Context, subject string) (*security.RateLimitResult, error)
}

// RateLimit 按用户限流，需放在 Auth 之后；redis 故障时放行
func RateLimit(l limiter) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		userId := UserIdFrom(c)
		subject := strconv.FormatInt(userId, 10)
		if userId == 0 {
			subject = "ip:" + c.ClientIP()
		}
		res, err := l.Allow(ctx, subject)
		if err != nil {
			hlog.CtxWarnf(ctx, "rate limiter unavailable: %v", err)
			c.Next(ctx)
			return
		}
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(res.Remaining, 10))
		if !res.Allowed {
			c.Header("Retry-After", strconv.Itoa(int(res.RetryAfter.Seconds())))
			response.Abort(ctx, c, errno.TooManyRequestsErr)
			return
		}
		c.Next(ctx)
	}
}
