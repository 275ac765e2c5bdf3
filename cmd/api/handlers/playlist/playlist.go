package handlers

import (
	"context"

	"github.com/cloudwego/hertz/pkg/app"
	"videotube.com/cmd/api/handlers/response"
	"videotube.com/cmd/api/mw"
	"videotube.com/cmd/engagement/svc"
	"videotube.com/pkg/errno"
)

type PlaylistParam struct {
	PlaylistId int64 `path:"playlistId"`
}

type UserPlaylistParam struct {
	UserId int64 `path:"userId"`
}

type MembershipParam struct {
	VideoId    int64 `path:"videoId"`
	PlaylistId int64 `path:"playlistId"`
}

func PlaylistView(ctx context.Context, c *app.RequestContext) {
	var req PlaylistParam
	if err := c.BindAndValidate(&req); err != nil {
		response.SendResponse(ctx, c, errno.ValidationErr.WithMessage(err.Error()), nil)
		return
	}
	view, err := svc.Engagement.PlaylistView(ctx, req.PlaylistId)
	response.SendResponse(ctx, c, err, view)
}

func UserPlaylists(ctx context.Context, c *app.RequestContext) {
	var req UserPlaylistParam
	if err := c.BindAndValidate(&req); err != nil {
		response.SendResponse(ctx, c, errno.ValidationErr.WithMessage(err.Error()), nil)
		return
	}
	list, err := svc.Engagement.UserPlaylists(ctx, req.UserId)
	response.SendResponse(ctx, c, err, list)
}

func AddVideoToPlaylist(ctx context.Context, c *app.RequestContext) {
	var req MembershipParam
	if err := c.BindAndValidate(&req); err != nil {
		response.SendResponse(ctx, c, errno.ValidationErr.WithMessage(err.Error()), nil)
		return
	}
	err := svc.Engagement.AddVideoToPlaylist(ctx, mw.UserIdFrom(c), req.PlaylistId, req.VideoId)
	response.SendResponse(ctx, c, err, nil)
}

func RemoveVideoFromPlaylist(ctx context.Context, c *app.RequestContext) {
	var req MembershipParam
	if err := c.BindAndValidate(&req); err != nil {
		response.SendResponse(ctx, c, errno.ValidationErr.WithMessage(err.Error()), nil)
		return
	}
	err := svc.Engagement.RemoveVideoFromPlaylist(ctx, mw.UserIdFrom(c), req.PlaylistId, req.VideoId)
	response.SendResponse(ctx, c, err, nil)
}
