package service

import (
	"context"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"videotube.com/cmd/model"
	"videotube.com/pkg/errno"
)

const maxActivateAttempts = 3

// ToggleResult 切换后的状态，Active 为 true 时 Edge 一定非空
type ToggleResult struct {
	Active bool        `json:"active"`
	Edge   *model.Edge `json:"edge,omitempty"`
}

// Toggle 翻转 actor 与 target 之间的关系
// 并发下依赖唯一索引：创建冲突视为已生效，删除未命中视为已取消
func (s *EngagementService) Toggle(ctx context.Context, actorId int64, target model.Target) (*ToggleResult, error) {
	if actorId == 0 {
		return nil, errno.ValidationErr.WithMessage("actor id is required")
	}
	if !target.Kind.Valid() {
		return nil, errno.ValidationErr.WithMessage("unknown edge kind: " + string(target.Kind))
	}
	if target.Id == 0 {
		return nil, errno.ValidationErr.WithMessage("target id is required")
	}

	exists, err := s.targets.Exists(ctx, target)
	if err != nil {
		return nil, errors.WithMessage(err, "resolve target failed")
	}
	if !exists {
		return nil, errno.NotFoundErr.WithMessage(string(target.Kind) + " target not found")
	}
	if target.Kind == model.EdgeSubscription && target.Id == actorId {
		return nil, errno.InvalidOperationErr.WithMessage("cannot subscribe to your own channel")
	}

	edge, err := s.edges.FindEdge(ctx, actorId, target)
	if err != nil {
		return nil, errors.WithMessage(err, "find edge failed")
	}

	var result *ToggleResult
	if edge != nil {
		result, err = s.deactivate(ctx, edge)
	} else {
		result, err = s.activate(ctx, actorId, target)
	}
	if err != nil {
		return nil, err
	}

	hlog.CtxInfof(ctx, "toggle %s by user %d, active=%v", target, actorId, result.Active)
	s.publishEngagement(ctx, actorId, target, result.Active)
	return result, nil
}

func (s *EngagementService) deactivate(ctx context.Context, edge *model.Edge) (*ToggleResult, error) {
	err := s.edges.DeleteEdge(ctx, edge.Kind, edge.Id)
	if err != nil && !errno.IsKind(err, errno.NotFoundErr) {
		return nil, errors.WithMessage(err, "delete edge failed")
	}
	// 已被并发请求删除，结果同样是未生效
	return &ToggleResult{Active: false}, nil
}

// activate 冲突后重读，若冲突的边已被并发删除则重新创建
func (s *EngagementService) activate(ctx context.Context, actorId int64, target model.Target) (*ToggleResult, error) {
	for attempt := 0; attempt < maxActivateAttempts; attempt++ {
		edge, err := s.edges.CreateEdge(ctx, actorId, target)
		if err == nil {
			return &ToggleResult{Active: true, Edge: edge}, nil
		}
		if !errno.IsKind(err, errno.ConflictErr) {
			return nil, errors.WithMessage(err, "create edge failed")
		}
		existing, err := s.edges.FindEdge(ctx, actorId, target)
		if err != nil {
			return nil, errors.WithMessage(err, "re-read edge after conflict failed")
		}
		if existing != nil {
			return &ToggleResult{Active: true, Edge: existing}, nil
		}
	}
	return nil, errno.ConflictErr.WithMessage("relation is being changed concurrently, please retry")
}

func (s *EngagementService) ToggleVideoLike(ctx context.Context, actorId, videoId int64) (*ToggleResult, error) {
	return s.Toggle(ctx, actorId, model.Target{Kind: model.EdgeVideoLike, Id: videoId})
}

func (s *EngagementService) ToggleCommentLike(ctx context.Context, actorId, commentId int64) (*ToggleResult, error) {
	return s.Toggle(ctx, actorId, model.Target{Kind: model.EdgeCommentLike, Id: commentId})
}

func (s *EngagementService) ToggleTweetLike(ctx context.Context, actorId, tweetId int64) (*ToggleResult, error) {
	return s.Toggle(ctx, actorId, model.Target{Kind: model.EdgeTweetLike, Id: tweetId})
}

// ToggleSubscription 订阅/取消订阅频道
func (s *EngagementService) ToggleSubscription(ctx context.Context, subscriberId, channelId int64) (*ToggleResult, error) {
	return s.Toggle(ctx, subscriberId, model.Target{Kind: model.EdgeSubscription, Id: channelId})
}
