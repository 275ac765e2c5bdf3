package main

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	interaction "videotube.com/cmd/api/handlers/interaction"
	playlist "videotube.com/cmd/api/handlers/playlist"
	relation "videotube.com/cmd/api/handlers/relation"
	"videotube.com/cmd/api/handlers/response"
	video "videotube.com/cmd/api/handlers/video"
	"videotube.com/cmd/api/mw"
	"videotube.com/pkg/constants"
	"videotube.com/pkg/security"
)

func register(r *server.Hertz, limiter *security.RateLimiter) {
	r.GET("/api/v1/healthcheck", func(ctx context.Context, c *app.RequestContext) {
		response.SendResponse(ctx, c, nil, "OK")
	})

	v1 := r.Group("/api/v1")
	toggle := []app.HandlerFunc{mw.Auth(), mw.RateLimit(limiter), mw.FlowGuard(constants.SentinelToggleRes)}

	likes := v1.Group("/likes")
	likes.POST("/toggle/v/:videoId", append(toggle, interaction.ToggleVideoLike)...)
	likes.POST("/toggle/c/:commentId", append(toggle, interaction.ToggleCommentLike)...)
	likes.POST("/toggle/t/:tweetId", append(toggle, interaction.ToggleTweetLike)...)
	likes.GET("/videos", mw.Auth(), interaction.LikedVideos)

	subs := v1.Group("/subscriptions")
	subs.POST("/c/:channelId", append(toggle, relation.ToggleSubscription)...)
	subs.GET("/c/:channelId", relation.ChannelSubscribers)
	subs.GET("/u/:subscriberId", relation.SubscribedChannels)

	dashboard := v1.Group("/dashboard", mw.Auth())
	dashboard.GET("/stats", video.ChannelStats)
	dashboard.GET("/videos", video.ChannelVideos)

	videos := v1.Group("/videos")
	videos.GET("", video.VideoFeed)
	videos.POST("", mw.Auth(), video.VideoPublish)
	videos.GET("/:videoId", mw.OptionalAuth(), video.VideoDetail)
	videos.DELETE("/:videoId", mw.Auth(), video.VideoDelete)

	v1.GET("/users/history", mw.Auth(), video.WatchHistory)

	playlists := v1.Group("/playlists")
	playlists.GET("/:playlistId", playlist.PlaylistView)
	playlists.GET("/user/:userId", playlist.UserPlaylists)
	playlists.PATCH("/add/:videoId/:playlistId", mw.Auth(), playlist.AddVideoToPlaylist)
	playlists.PATCH("/remove/:videoId/:playlistId", mw.Auth(), playlist.RemoveVideoFromPlaylist)
}
