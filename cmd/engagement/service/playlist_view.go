package service

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"videotube.com/cmd/model"
	"videotube.com/pkg/errno"
)

// PlaylistVideo 播放列表中的视频，作者只保留公开字段
type PlaylistVideo struct {
	Video *model.Video    `json:"video"`
	Owner *model.UserLite `json:"owner"`
}

// PlaylistView 播放列表详情及聚合
type PlaylistView struct {
	Playlist    *model.Playlist  `json:"playlist"`
	Videos      []*PlaylistVideo `json:"videos"`
	TotalVideos int64            `json:"totalVideos"`
	TotalViews  int64            `json:"totalViews"`
}

// PlaylistSummary 播放列表概要
type PlaylistSummary struct {
	Playlist    *model.Playlist `json:"playlist"`
	TotalVideos int64           `json:"totalVideos"`
	TotalViews  int64           `json:"totalViews"`
}

// PlaylistView 已删除的视频会被跳过，不计入聚合
func (s *EngagementService) PlaylistView(ctx context.Context, playlistId int64) (*PlaylistView, error) {
	playlist, err := s.findPlaylist(ctx, playlistId)
	if err != nil {
		return nil, err
	}
	videos, err := s.resolvePlaylistVideos(ctx, playlistId)
	if err != nil {
		return nil, err
	}

	ownerIds := make([]int64, 0, len(videos))
	for _, v := range videos {
		ownerIds = append(ownerIds, v.UserId)
	}
	owners, err := s.usersById(ctx, ownerIds)
	if err != nil {
		return nil, errors.WithMessage(err, "load owners failed")
	}

	view := &PlaylistView{Playlist: playlist, Videos: make([]*PlaylistVideo, 0, len(videos))}
	for _, v := range videos {
		view.Videos = append(view.Videos, &PlaylistVideo{Video: v, Owner: owners[v.UserId].Lite()})
		view.TotalViews += v.Views
	}
	view.TotalVideos = int64(len(view.Videos))
	return view, nil
}

// UserPlaylists 用户的全部播放列表
func (s *EngagementService) UserPlaylists(ctx context.Context, userId int64) ([]*PlaylistSummary, error) {
	if userId == 0 {
		return nil, errno.ValidationErr.WithMessage("user id is required")
	}
	playlists, err := s.playlists.ListPlaylistsByOwner(ctx, userId)
	if err != nil {
		return nil, errors.WithMessage(err, "list playlists failed")
	}

	list := make([]*PlaylistSummary, 0, len(playlists))
	for _, p := range playlists {
		videos, err := s.resolvePlaylistVideos(ctx, p.PlaylistId)
		if err != nil {
			return nil, err
		}
		summary := &PlaylistSummary{Playlist: p, TotalVideos: int64(len(videos))}
		for _, v := range videos {
			summary.TotalViews += v.Views
		}
		list = append(list, summary)
	}
	return list, nil
}

// AddVideoToPlaylist 重复添加不报错
func (s *EngagementService) AddVideoToPlaylist(ctx context.Context, actorId, playlistId, videoId int64) error {
	if _, err := s.ownedPlaylist(ctx, actorId, playlistId); err != nil {
		return err
	}
	if videoId == 0 {
		return errno.ValidationErr.WithMessage("video id is required")
	}
	video, err := s.videos.FindVideo(ctx, videoId)
	if err != nil {
		return errors.WithMessage(err, "find video failed")
	}
	if video == nil {
		return errno.NotFoundErr.WithMessage("video not found")
	}
	added, err := s.playlists.AddVideo(ctx, playlistId, videoId)
	if err != nil {
		return errors.WithMessage(err, "add video to playlist failed")
	}
	if !added {
		hlog.CtxInfof(ctx, "video %d already in playlist %d", videoId, playlistId)
	}
	return nil
}

func (s *EngagementService) RemoveVideoFromPlaylist(ctx context.Context, actorId, playlistId, videoId int64) error {
	if _, err := s.ownedPlaylist(ctx, actorId, playlistId); err != nil {
		return err
	}
	if videoId == 0 {
		return errno.ValidationErr.WithMessage("video id is required")
	}
	removed, err := s.playlists.RemoveVideo(ctx, playlistId, videoId)
	if err != nil {
		return errors.WithMessage(err, "remove video from playlist failed")
	}
	if !removed {
		return errno.NotFoundErr.WithMessage("video is not in playlist")
	}
	return nil
}

func (s *EngagementService) findPlaylist(ctx context.Context, playlistId int64) (*model.Playlist, error) {
	if playlistId == 0 {
		return nil, errno.ValidationErr.WithMessage("playlist id is required")
	}
	playlist, err := s.playlists.FindPlaylist(ctx, playlistId)
	if err != nil {
		return nil, errors.WithMessage(err, "find playlist failed")
	}
	if playlist == nil {
		return nil, errno.NotFoundErr.WithMessage("playlist not found")
	}
	return playlist, nil
}

func (s *EngagementService) ownedPlaylist(ctx context.Context, actorId, playlistId int64) (*model.Playlist, error) {
	if actorId == 0 {
		return nil, errno.ValidationErr.WithMessage("actor id is required")
	}
	playlist, err := s.findPlaylist(ctx, playlistId)
	if err != nil {
		return nil, err
	}
	if playlist.UserId != actorId {
		return nil, errno.ForbiddenErr.WithMessage("only the owner can modify this playlist")
	}
	return playlist, nil
}

// resolvePlaylistVideos 按列表顺序解析视频，跳过悬空的ID
func (s *EngagementService) resolvePlaylistVideos(ctx context.Context, playlistId int64) ([]*model.Video, error) {
	ids, err := s.playlists.PlaylistVideoIds(ctx, playlistId)
	if err != nil {
		return nil, errors.WithMessage(err, "load playlist videos failed")
	}
	byId, err := s.videosById(ctx, ids)
	if err != nil {
		return nil, errors.WithMessage(err, "resolve playlist videos failed")
	}
	videos := make([]*model.Video, 0, len(ids))
	for _, id := range ids {
		if v, ok := byId[id]; ok {
			videos = append(videos, v)
		}
	}
	return videos, nil
}
