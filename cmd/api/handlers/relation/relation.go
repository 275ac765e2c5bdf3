package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"videotube.com/cmd/api/handlers/response"
	"videotube.com/cmd/api/mw"
	"videotube.com/cmd/engagement/svc"
	"videotube.com/cmd/engagement/service"
	"videotube.com/pkg/errno"
)

type ChannelParam struct {
	ChannelId int64 `path:"channelId"`
	Page      int   `query:"page"`
	Limit     int   `query:"limit"`
}

type SubscriberParam struct {
	SubscriberId int64 `path:"subscriberId"`
	Page         int   `query:"page"`
	Limit        int   `query:"limit"`
}

// ToggleSubscription 订阅/取消订阅
func ToggleSubscription(ctx context.Context, c *app.RequestContext) {
	var req ChannelParam
	if err := c.BindAndValidate(&req); err != nil {
		response.SendResponse(ctx, c, errno.ValidationErr.WithMessage(err.Error()), nil)
		return
	}
	res, err := svc.Engagement.ToggleSubscription(ctx, mw.UserIdFrom(c), req.ChannelId)
	response.SendResponse(ctx, c, err, res)
}

// ChannelSubscribers 频道的订阅者列表
func ChannelSubscribers(ctx context.Context, c *app.RequestContext) {
	var req ChannelParam
	if err := c.BindAndValidate(&req); err != nil {
		response.SendResponse(ctx, c, errno.ValidationErr.WithMessage(err.Error()), nil)
		return
	}
	list, err := svc.Engagement.ChannelSubscribers(ctx, req.ChannelId, service.Page{Page: req.Page, Limit: req.Limit})
	response.SendResponse(ctx, c, err, list)
}

// SubscribedChannels 用户订阅的频道
func SubscribedChannels(ctx context.Context, c *app.RequestContext) {
	var req SubscriberParam
	if err := c.BindAndValidate(&req); err != nil {
		response.SendResponse(ctx, c, errno.ValidationErr.WithMessage(err.Error()), nil)
		return
	}
	list, err := svc.Engagement.SubscribedChannels(ctx, req.SubscriberId, service.Page{Page: req.Page, Limit: req.Limit})
	response.SendResponse(ctx, c, err, list)
}
