package mw

import (
	"context"

	sentinel "github.com/alibaba/sentinel-golang/api"
	"github.com/alibaba/sentinel-golang/core/base"
	"github.com/alibaba/sentinel-golang/core/flow"
	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/common/hlog"
	"videotube.com/cmd/api/handlers/response"
	"videotube.com/pkg/errno"
)

// InitSentinel 为切换类接口加载全局 QPS 限制，qps<=0 表示不限流
func InitSentinel(resource string, qps float64) error {
	if err := sentinel.InitDefault(); err != nil {
		return err
	}
	if qps <= 0 {
		return nil
	}
	_, err := flow.LoadRules([]*flow.Rule{
		{
			Resource:               resource,
			TokenCalculateStrategy: flow.Direct,
			ControlBehavior:        flow.Reject,
			Threshold:              qps,
			StatIntervalInMs:       1000,
		},
	})
	if err == nil {
		hlog.Infof("sentinel flow rule loaded: %s qps=%.0f", resource, qps)
	}
	return err
}

// FlowGuard 超过 QPS 时直接拒绝
func FlowGuard(resource string) app.HandlerFunc {
	return func(ctx context.Context, c *app.RequestContext) {
		entry, blockErr := sentinel.Entry(resource, sentinel.WithTrafficType(base.Inbound))
		if blockErr != nil {
			response.Abort(ctx, c, errno.TooManyRequestsErr.WithMessage("service is busy, try again later"))
			return
		}
		defer entry.Exit()
		c.Next(ctx)
	}
}
