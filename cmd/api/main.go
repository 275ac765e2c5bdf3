package main

import (
	"context"
	"io"
	"time"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/middlewares/server/recovery"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/hertz-contrib/cors"
	"videotube.com/cmd/api/handlers/response"
	"videotube.com/cmd/api/mw"
	"videotube.com/cmd/engagement/svc"
	"videotube.com/cmd/engagement/infras/redis"
	"videotube.com/config"
	"videotube.com/config/jaeger"
	"videotube.com/config/pprof"
	"videotube.com/pkg/constants"
	"videotube.com/pkg/errno"
	"videotube.com/pkg/security"
	"videotube.com/pkg/utils"
)

func Init() io.Closer {
	config.Init() // 首先加载配置
	// tracer 必须先于数据库初始化，gorm 插件在注册时固定使用当时的全局 tracer
	closer := jaeger.Load("videotube-api", config.ConfigInfo.Jaeger.Enable, config.ConfigInfo.Jaeger.AgentAddr)
	if err := utils.InitSnowflake(1, 1); err != nil {
		hlog.Fatalf("init snowflake failed: %v", err)
	}
	svc.InitEngagement() // 然后初始化数据库与外部依赖
	if err := mw.InitSentinel(constants.SentinelToggleRes, config.ConfigInfo.Sentinel.ToggleQPS); err != nil {
		hlog.Fatalf("init sentinel failed: %v", err)
	}
	mw.InitJwt(config.ConfigInfo.Jwt.Key,
		svc.ParseDuration(config.ConfigInfo.Jwt.Timeout, time.Hour),
		svc.ParseDuration(config.ConfigInfo.Jwt.MaxRefresh, 24*time.Hour))
	return closer
}


func main() {
	closer := Init()
	defer closer.Close()
	defer svc.Close()

	if config.ConfigInfo.Pprof.Enable {
		pprof.Load(config.ConfigInfo.Pprof.Addr)
	}

	r := server.New(
		server.WithHostPorts(config.ConfigInfo.Server.Addr),
		server.WithHandleMethodNotAllowed(true),
		server.WithMaxRequestBodySize(config.ConfigInfo.Server.MaxRequestBody),
	)

	// 配置 CORS
	r.Use(cors.New(cors.Config{
		AllowOrigins:     config.ConfigInfo.Server.AllowOrigins,
		AllowMethods:     []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	r.Use(mw.Trace())

	// 错误处理
	r.Use(recovery.Recovery(recovery.WithRecoveryHandler(
		func(ctx context.Context, c *app.RequestContext, err interface{}, stack []byte) {
			hlog.SystemLogger().CtxErrorf(ctx, "[Recovery] err=%v\nstack=%s", err, stack)
			status, resp := response.Build(errno.ServiceErr, nil)
			c.JSON(status, resp)
		})))

	limiter := security.NewRateLimiter(redis.Client, constants.ToggleRateLimitPrefix, security.RateLimitConfig{
		WindowSize:  svc.ParseDuration(config.ConfigInfo.RateLimit.Window, time.Minute),
		MaxRequests: config.ConfigInfo.RateLimit.MaxRequests,
	})

	// 注册路由
	register(r, limiter)

	r.Spin()
}
