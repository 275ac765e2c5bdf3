package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"videotube.com/cmd/api/handlers/response"
	"videotube.com/cmd/api/mw"
	"videotube.com/cmd/engagement/svc"
)

// WatchHistory 当前用户的观看历史
func WatchHistory(ctx context.Context, c *app.RequestContext) {
	list, err := svc.Engagement.WatchHistory(ctx, mw.UserIdFrom(c))
	response.SendResponse(ctx, c, err, list)
}
