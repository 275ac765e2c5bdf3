package service

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/google/uuid"
	"videotube.com/cmd/model"
	"videotube.com/pkg/constants"
	"videotube.com/pkg/mq"
)

// EngagementService 点赞订阅、聚合视图与级联删除
type EngagementService struct {
	edges     EdgeStore
	targets   TargetResolver
	users     UserRepository
	videos    VideoRepository
	comments  CommentRepository
	playlists PlaylistRepository
	blobs     BlobStorage
	locker    Locker
	producer  mq.MessageProducer
	now       func() time.Time
}

func NewEngagementService(deps Dependencies) *EngagementService {
	return &EngagementService{
		edges:     deps.Edges,
		targets:   deps.Targets,
		users:     deps.Users,
		videos:    deps.Videos,
		comments:  deps.Comments,
		playlists: deps.Playlists,
		blobs:     deps.Blobs,
		locker:    deps.Locker,
		producer:  deps.Producer,
		now:       time.Now,
	}
}

// Page 分页参数，零值使用默认值
type Page struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

func (p Page) normalize() Page {
	if p.Page <= 0 {
		p.Page = constants.DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = constants.DefaultLimit
	}
	if p.Limit > constants.MaxLimit {
		p.Limit = constants.MaxLimit
	}
	return p
}

func (p Page) offset() int {
	return (p.Page - 1) * p.Limit
}

// usersById 批量加载用户，缺失的用户不出现在结果中
func (s *EngagementService) usersById(ctx context.Context, ids []int64) (map[int64]*model.User, error) {
	users, err := s.users.FindUsers(ctx, uniqueIds(ids))
	if err != nil {
		return nil, err
	}
	m := make(map[int64]*model.User, len(users))
	for _, u := range users {
		m[u.UserId] = u
	}
	return m, nil
}

func (s *EngagementService) videosById(ctx context.Context, ids []int64) (map[int64]*model.Video, error) {
	videos, err := s.videos.FindVideos(ctx, uniqueIds(ids))
	if err != nil {
		return nil, err
	}
	m := make(map[int64]*model.Video, len(videos))
	for _, v := range videos {
		m[v.VideoId] = v
	}
	return m, nil
}

func uniqueIds(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// publishEngagement 事件投递失败只记录日志
func (s *EngagementService) publishEngagement(ctx context.Context, actorId int64, target model.Target, active bool) {
	if s.producer == nil {
		return
	}
	routingKey := mq.RoutingKeyLikeToggled
	if target.Kind == model.EdgeSubscription {
		routingKey = mq.RoutingKeySubscriptionToggled
	}
	event := &mq.EngagementEvent{
		EventID:    uuid.NewString(),
		EventType:  string(target.Kind),
		ActorID:    actorId,
		TargetID:   target.Id,
		Active:     active,
		Timestamp:  s.now().Unix(),
		RoutingKey: routingKey,
	}
	if err := s.producer.PublishEngagementEvent(ctx, event); err != nil {
		hlog.CtxWarnf(ctx, "publish engagement event failed, target=%s actor=%d: %v", target, actorId, err)
	}
}
