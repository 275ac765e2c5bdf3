package service

import (
	"context"

	"github.com/pkg/errors"
	"videotube.com/cmd/model"
	"videotube.com/pkg/errno"
)

// ChannelStats 频道统计
type ChannelStats struct {
	TotalVideos      int64 `json:"totalVideos"`
	TotalViews       int64 `json:"totalViews"`
	TotalLikes       int64 `json:"totalLikes"`
	TotalSubscribers int64 `json:"totalSubscribers"`
}

// ChannelStats 四个聚合互不依赖，每次调用重新计算
func (s *EngagementService) ChannelStats(ctx context.Context, channelId int64) (*ChannelStats, error) {
	if channelId == 0 {
		return nil, errno.ValidationErr.WithMessage("channel id is required")
	}
	channel, err := s.users.FindUser(ctx, channelId)
	if err != nil {
		return nil, errors.WithMessage(err, "find channel failed")
	}
	if channel == nil {
		return nil, errno.NotFoundErr.WithMessage("channel not found")
	}

	stats := &ChannelStats{}
	if stats.TotalVideos, err = s.videos.CountVideosByOwner(ctx, channelId); err != nil {
		return nil, errors.WithMessage(err, "count videos failed")
	}
	if stats.TotalViews, err = s.videos.SumViewsByOwner(ctx, channelId); err != nil {
		return nil, errors.WithMessage(err, "sum views failed")
	}
	if stats.TotalLikes, err = s.edges.CountVideoLikesByOwner(ctx, channelId); err != nil {
		return nil, errors.WithMessage(err, "count likes failed")
	}
	if stats.TotalSubscribers, err = s.edges.CountEdges(ctx, model.Target{Kind: model.EdgeSubscription, Id: channelId}); err != nil {
		return nil, errors.WithMessage(err, "count subscribers failed")
	}
	return stats, nil
}

// ChannelVideos 频道的全部视频，包含未发布的
func (s *EngagementService) ChannelVideos(ctx context.Context, channelId int64) ([]*model.Video, error) {
	if channelId == 0 {
		return nil, errno.ValidationErr.WithMessage("channel id is required")
	}
	videos, err := s.videos.ListVideosByOwner(ctx, channelId)
	if err != nil {
		return nil, errors.WithMessage(err, "list channel videos failed")
	}
	if videos == nil {
		videos = []*model.Video{}
	}
	return videos, nil
}
