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

// LikedVideos 当前用户点赞过的视频
func LikedVideos(ctx context.Context, c *app.RequestContext) {
	var req LikeListParam
	if err := c.BindAndValidate(&req); err != nil {
		response.SendResponse(ctx, c, errno.ValidationErr.WithMessage(err.Error()), nil)
		return
	}
	list, err := svc.Engagement.LikedVideos(ctx, mw.UserIdFrom(c), service.Page{Page: req.Page, Limit: req.Limit})
	response.SendResponse(ctx, c, err, list)
}
