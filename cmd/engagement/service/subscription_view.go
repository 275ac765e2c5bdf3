package service

import (
	"context"

	"github.com/pkg/errors"
	"videotube.com/cmd/model"
	"videotube.com/pkg/errno"
)

// ChannelSubscriber 频道的一个订阅者
type ChannelSubscriber struct {
	UserId           int64  `json:"userId"`
	UserName         string `json:"userName"`
	AvatarUrl        string `json:"avatarUrl"`
	SubscribersCount int64  `json:"subscribersCount"`
	// 频道是否回订了该订阅者
	SubscribedToSubscriber bool `json:"subscribedToSubscriber"`
}

// SubscribedChannel 用户订阅的一个频道
type SubscribedChannel struct {
	UserId      int64        `json:"userId"`
	UserName    string       `json:"userName"`
	AvatarUrl   string       `json:"avatarUrl"`
	LatestVideo *model.Video `json:"latestVideo"`
}

// ChannelSubscribers 已注销的订阅者会被跳过
func (s *EngagementService) ChannelSubscribers(ctx context.Context, channelId int64, page Page) ([]*ChannelSubscriber, error) {
	if channelId == 0 {
		return nil, errno.ValidationErr.WithMessage("channel id is required")
	}
	page = page.normalize()
	edges, err := s.edges.ListEdgesByTarget(ctx, model.Target{Kind: model.EdgeSubscription, Id: channelId}, page.offset(), page.Limit)
	if err != nil {
		return nil, errors.WithMessage(err, "list subscribers failed")
	}

	subscriberIds := make([]int64, 0, len(edges))
	for _, e := range edges {
		subscriberIds = append(subscriberIds, e.ActorId)
	}
	users, err := s.usersById(ctx, subscriberIds)
	if err != nil {
		return nil, errors.WithMessage(err, "load subscribers failed")
	}
	counts, err := s.edges.CountEdgesByTargets(ctx, model.EdgeSubscription, subscriberIds)
	if err != nil {
		return nil, errors.WithMessage(err, "count subscribers of subscribers failed")
	}
	mutual, err := s.edges.ActorEdgeSet(ctx, channelId, model.EdgeSubscription, subscriberIds)
	if err != nil {
		return nil, errors.WithMessage(err, "load channel subscriptions failed")
	}

	list := make([]*ChannelSubscriber, 0, len(edges))
	for _, id := range subscriberIds {
		u, ok := users[id]
		if !ok {
			continue
		}
		list = append(list, &ChannelSubscriber{
			UserId:                 u.UserId,
			UserName:               u.UserName,
			AvatarUrl:              u.AvatarUrl,
			SubscribersCount:       counts[id],
			SubscribedToSubscriber: mutual[id],
		})
	}
	return list, nil
}

// SubscribedChannels LatestVideo 只取已发布的视频
func (s *EngagementService) SubscribedChannels(ctx context.Context, subscriberId int64, page Page) ([]*SubscribedChannel, error) {
	if subscriberId == 0 {
		return nil, errno.ValidationErr.WithMessage("subscriber id is required")
	}
	page = page.normalize()
	edges, err := s.edges.ListEdgesByActor(ctx, subscriberId, model.EdgeSubscription, page.offset(), page.Limit)
	if err != nil {
		return nil, errors.WithMessage(err, "list subscriptions failed")
	}

	channelIds := make([]int64, 0, len(edges))
	for _, e := range edges {
		channelIds = append(channelIds, e.TargetId)
	}
	users, err := s.usersById(ctx, channelIds)
	if err != nil {
		return nil, errors.WithMessage(err, "load channels failed")
	}

	list := make([]*SubscribedChannel, 0, len(edges))
	for _, id := range channelIds {
		u, ok := users[id]
		if !ok {
			continue
		}
		latest, err := s.videos.LatestPublishedByOwner(ctx, id)
		if err != nil {
			return nil, errors.WithMessage(err, "load latest video failed")
		}
		list = append(list, &SubscribedChannel{
			UserId:      u.UserId,
			UserName:    u.UserName,
			AvatarUrl:   u.AvatarUrl,
			LatestVideo: latest,
		})
	}
	return list, nil
}
