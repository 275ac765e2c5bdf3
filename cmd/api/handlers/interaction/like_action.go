package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"videotube.com/cmd/api/handlers/response"
	"videotube.com/cmd/api/mw"
	"videotube.com/cmd/engagement/svc"
	"videotube.com/pkg/errno"
)

// ToggleVideoLike 点赞/取消点赞视频
func ToggleVideoLike(ctx context.Context, c *app.RequestContext) {
	var req ToggleLikeParam
	if err := c.BindAndValidate(&req); err != nil {
		response.SendResponse(ctx, c, errno.ValidationErr.WithMessage(err.Error()), nil)
		return
	}
	res, err := svc.Engagement.ToggleVideoLike(ctx, mw.UserIdFrom(c), req.VideoId)
	response.SendResponse(ctx, c, err, res)
}

func ToggleCommentLike(ctx context.Context, c *app.RequestContext) {
	var req ToggleLikeParam
	if err := c.BindAndValidate(&req); err != nil {
		response.SendResponse(ctx, c, errno.ValidationErr.WithMessage(err.Error()), nil)
		return
	}
	res, err := svc.Engagement.ToggleCommentLike(ctx, mw.UserIdFrom(c), req.CommentId)
	response.SendResponse(ctx, c, err, res)
}

func ToggleTweetLike(ctx context.Context, c *app.RequestContext) {
	var req ToggleLikeParam
	if err := c.BindAndValidate(&req); err != nil {
		response.SendResponse(ctx, c, errno.ValidationErr.WithMessage(err.Error()), nil)
		return
	}
	res, err := svc.Engagement.ToggleTweetLike(ctx, mw.UserIdFrom(c), req.TweetId)
	response.SendResponse(ctx, c, err, res)
}
