package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"videotube.com/cmd/api/handlers/response"
	"videotube.com/cmd/api/mw"
	"videotube.com/cmd/engagement/svc"
)

// ChannelStats 当前用户频道的统计数据
func ChannelStats(ctx context.Context, c *app.RequestContext) {
	stats, err := svc.Engagement.ChannelStats(ctx, mw.UserIdFrom(c))
	response.SendResponse(ctx, c, err, stats)
}

// ChannelVideos 当前用户频道的全部视频
func ChannelVideos(ctx context.Context, c *app.RequestContext) {
	videos, err := svc.Engagement.ChannelVideos(ctx, mw.UserIdFrom(c))
	response.SendResponse(ctx, c, err, videos)
}
