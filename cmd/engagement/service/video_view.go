package service

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"videotube.com/cmd/model"
	"videotube.com/pkg/constants"
	"videotube.com/pkg/errno"
)

// VideoOwner 视频作者及当前用户的订阅状态
type VideoOwner struct {
	UserId           int64  `json:"userId"`
	UserName         string `json:"userName"`
	AvatarUrl        string `json:"avatarUrl"`
	SubscribersCount int64  `json:"subscribersCount"`
	IsSubscribed     bool   `json:"isSubscribed"`
}

// VideoDetail 视频详情
type VideoDetail struct {
	Video      *model.Video `json:"video"`
	Owner      *VideoOwner  `json:"owner"`
	LikesCount int64        `json:"likesCount"`
	IsLiked    bool         `json:"isLiked"`
}

// VideoDetail 每次调用播放量加一，登录用户记录观看历史
func (s *EngagementService) VideoDetail(ctx context.Context, actorId, videoId int64) (*VideoDetail, error) {
	if videoId == 0 {
		return nil, errno.ValidationErr.WithMessage("video id is required")
	}
	video, err := s.videos.FindVideo(ctx, videoId)
	if err != nil {
		return nil, errors.WithMessage(err, "find video failed")
	}
	if video == nil || (!video.IsPublished && video.UserId != actorId) {
		return nil, errno.NotFoundErr.WithMessage("video not found")
	}

	if err = s.videos.IncrViews(ctx, videoId, 1); err != nil {
		return nil, errors.WithMessage(err, "increase views failed")
	}
	video.Views++

	if actorId != constants.AnonymousUserId {
		if err = s.users.AppendWatchHistory(ctx, actorId, videoId); err != nil {
			hlog.CtxWarnf(ctx, "append watch history failed, user=%d video=%d: %v", actorId, videoId, err)
		}
	}

	owner, err := s.videoOwner(ctx, actorId, video.UserId)
	if err != nil {
		return nil, err
	}

	likeTarget := model.Target{Kind: model.EdgeVideoLike, Id: videoId}
	likes, err := s.edges.CountEdges(ctx, likeTarget)
	if err != nil {
		return nil, errors.WithMessage(err, "count likes failed")
	}
	liked, err := s.hasEdge(ctx, actorId, likeTarget)
	if err != nil {
		return nil, err
	}

	return &VideoDetail{
		Video:      video,
		Owner:      owner,
		LikesCount: likes,
		IsLiked:    liked,
	}, nil
}

func (s *EngagementService) videoOwner(ctx context.Context, actorId, ownerId int64) (*VideoOwner, error) {
	owner := &VideoOwner{UserId: ownerId}
	user, err := s.users.FindUser(ctx, ownerId)
	if err != nil {
		return nil, errors.WithMessage(err, "find owner failed")
	}
	if user != nil {
		owner.UserName = user.UserName
		owner.AvatarUrl = user.AvatarUrl
	}

	subTarget := model.Target{Kind: model.EdgeSubscription, Id: ownerId}
	if owner.SubscribersCount, err = s.edges.CountEdges(ctx, subTarget); err != nil {
		return nil, errors.WithMessage(err, "count subscribers failed")
	}
	if owner.IsSubscribed, err = s.hasEdge(ctx, actorId, subTarget); err != nil {
		return nil, err
	}
	return owner, nil
}

// hasEdge 匿名用户恒为 false
func (s *EngagementService) hasEdge(ctx context.Context, actorId int64, target model.Target) (bool, error) {
	if actorId == constants.AnonymousUserId {
		return false, nil
	}
	edge, err := s.edges.FindEdge(ctx, actorId, target)
	if err != nil {
		return false, errors.WithMessage(err, "find edge failed")
	}
	return edge != nil, nil
}
