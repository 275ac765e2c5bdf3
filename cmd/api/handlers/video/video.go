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

// VideoFeed 视频流
func VideoFeed(ctx context.Context, c *app.RequestContext) {
	var req FeedParam
	if err := c.BindAndValidate(&req); err != nil {
		response.SendResponse(ctx, c, errno.ValidationErr.WithMessage(err.Error()), nil)
		return
	}
	page, err := svc.Engagement.VideoFeed(ctx, &service.FeedQuery{
		Query:    req.Query,
		OwnerId:  req.UserId,
		SortBy:   req.SortBy,
		SortType: req.SortType,
		Page:     req.Page,
		Limit:    req.Limit,
	})
	response.SendResponse(ctx, c, err, page)
}

// VideoDetail 视频详情，匿名用户也可访问
func VideoDetail(ctx context.Context, c *app.RequestContext) {
	var req VideoParam
	if err := c.BindAndValidate(&req); err != nil {
		response.SendResponse(ctx, c, errno.ValidationErr.WithMessage(err.Error()), nil)
		return
	}
	detail, err := svc.Engagement.VideoDetail(ctx, mw.UserIdFrom(c), req.VideoId)
	response.SendResponse(ctx, c, err, detail)
}

func VideoDelete(ctx context.Context, c *app.RequestContext) {
	var req VideoParam
	if err := c.BindAndValidate(&req); err != nil {
		response.SendResponse(ctx, c, errno.ValidationErr.WithMessage(err.Error()), nil)
		return
	}
	report, err := svc.Engagement.DeleteVideo(ctx, mw.UserIdFrom(c), req.VideoId)
	response.SendResponse(ctx, c, err, report)
}
