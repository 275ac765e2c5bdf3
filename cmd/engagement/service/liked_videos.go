package service

import (
	"context"

	"github.com/pkg/errors"
	"videotube.com/cmd/model"
	"videotube.com/pkg/errno"
)

// LikedVideo 用户点赞过的视频
type LikedVideo struct {
	Video   *model.Video    `json:"video"`
	Owner   *model.UserLite `json:"owner"`
	LikedAt int64           `json:"likedAt"`
}

// LikedVideos 按点赞时间倒序，已删除的视频跳过
func (s *EngagementService) LikedVideos(ctx context.Context, actorId int64, page Page) ([]*LikedVideo, error) {
	if actorId == 0 {
		return nil, errno.ValidationErr.WithMessage("actor id is required")
	}
	page = page.normalize()
	edges, err := s.edges.ListEdgesByActor(ctx, actorId, model.EdgeVideoLike, page.offset(), page.Limit)
	if err != nil {
		return nil, errors.WithMessage(err, "list liked videos failed")
	}

	videoIds := make([]int64, 0, len(edges))
	for _, e := range edges {
		videoIds = append(videoIds, e.TargetId)
	}
	videos, err := s.videosById(ctx, videoIds)
	if err != nil {
		return nil, errors.WithMessage(err, "load liked videos failed")
	}
	ownerIds := make([]int64, 0, len(videos))
	for _, v := range videos {
		ownerIds = append(ownerIds, v.UserId)
	}
	owners, err := s.usersById(ctx, ownerIds)
	if err != nil {
		return nil, errors.WithMessage(err, "load owners failed")
	}

	list := make([]*LikedVideo, 0, len(edges))
	for _, e := range edges {
		v, ok := videos[e.TargetId]
		if !ok {
			continue
		}
		list = append(list, &LikedVideo{Video: v, Owner: owners[v.UserId].Lite(), LikedAt: e.CreatedAt.Unix()})
	}
	return list, nil
}
