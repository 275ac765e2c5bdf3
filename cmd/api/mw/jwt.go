package mw

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/jwt"
	"videotube.com/cmd/api/handlers/response"
	"videotube.com/pkg/constants"
	"videotube.com/pkg/errno"
	"videotube.com/pkg/utils"
)

var JwtMiddleware *jwt.HertzJWTMiddleware

// InitJwt 只负责校验访问令牌，令牌签发不在本服务内
func InitJwt(key string, timeout, maxRefresh time.Duration) {
	var err error
	JwtMiddleware, err = NewJwt(key, timeout, maxRefresh)
	if err != nil {
		hlog.Fatalf("JWT Error: %v", err)
	}
}

func NewJwt(key string, timeout, maxRefresh time.Duration) (*jwt.HertzJWTMiddleware, error) {
	return jwt.New(&jwt.HertzJWTMiddleware{
		Realm:         "videotube",
		Key:           []byte(key),
		Timeout:       timeout,
		MaxRefresh:    maxRefresh,
		IdentityKey:   constants.IdentityKey,
		TokenLookup:   "header: Authorization, query: token, cookie: accessToken",
		TokenHeadName: "Bearer",
		TimeFunc:      time.Now,
		PayloadFunc: func(data interface{}) jwt.MapClaims {
			if id, ok := data.(int64); ok {
				return jwt.MapClaims{constants.IdentityKey: id}
			}
			return jwt.MapClaims{}
		},
		IdentityHandler: func(ctx context.Context, c *app.RequestContext) interface{} {
			claims := jwt.ExtractClaims(ctx, c)
			return utils.Transfer(claims[constants.IdentityKey])
		},
		Authenticator: func(ctx context.Context, c *app.RequestContext) (interface{}, error) {
			return nil, jwt.ErrFailedAuthentication
		},
		Unauthorized: func(ctx context.Context, c *app.RequestContext, code int, message string) {
			response.SendResponse(ctx, c, errno.TokenInvailedErr.WithMessage(message), nil)
		},
	})
}

// Auth 必须登录的接口
func Auth() app.HandlerFunc {
	return JwtMiddleware.MiddlewareFunc()
}

// OptionalAuth 令牌有效时写入用户身份，否则按匿名用户处理
func OptionalAuth() app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		claims, err := JwtMiddleware.GetClaimsFromJWT(ctx, c)
		if err == nil {
			if id := utils.Transfer(claims[constants.IdentityKey]); id > 0 {
				c.Set(constants.IdentityKey, id)
			}
		}
		c.Next(ctx)
	}
}

// UserIdFrom 当前请求的用户，匿名时为 0
func UserIdFrom(c *app.RequestContext) int64 {
	v, ok := c.Get(constants.IdentityKey)
	if !ok {
		return constants.AnonymousUserId
	}
	if id := utils.Transfer(v); id > 0 {
		return id
	}
	return constants.AnonymousUserId
}
