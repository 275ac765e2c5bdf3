package service

import (
	"context"

	"github.com/pkg/errors"
	"videotube.com/cmd/model"
	"videotube.com/pkg/errno"
)

// WatchedVideo 观看历史中的一条
type WatchedVideo struct {
	Video *model.Video    `json:"video"`
	Owner *model.UserLite `json:"owner"`
}

// WatchHistory 按首次观看顺序返回，已删除的视频跳过
func (s *EngagementService) WatchHistory(ctx context.Context, actorId int64) ([]*WatchedVideo, error) {
	if actorId == 0 {
		return nil, errno.ValidationErr.WithMessage("actor id is required")
	}
	ids, err := s.users.WatchHistory(ctx, actorId)
	if err != nil {
		return nil, errors.WithMessage(err, "load watch history failed")
	}
	videos, err := s.videosById(ctx, ids)
	if err != nil {
		return nil, errors.WithMessage(err, "load watched videos failed")
	}
	ownerIds := make([]int64, 0, len(videos))
	for _, v := range videos {
		ownerIds = append(ownerIds, v.UserId)
	}
	owners, err := s.usersById(ctx, ownerIds)
	if err != nil {
		return nil, errors.WithMessage(err, "load owners failed")
	}

	list := make([]*WatchedVideo, 0, len(ids))
	for _, id := range ids {
		v, ok := videos[id]
		if !ok {
			continue
		}
		list = append(list, &WatchedVideo{Video: v, Owner: owners[v.UserId].Lite()})
	}
	return list, nil
}
