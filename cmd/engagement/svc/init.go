package svc

import (
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"videotube.com/cmd/engagement/dal"
	"videotube.com/cmd/engagement/infras/redis"
	"videotube.com/cmd/engagement/service"
	"videotube.com/config"
	"videotube.com/pkg/mq"
	"videotube.com/pkg/oss"
)

var (
	Engagement *service.EngagementService
	producer   *mq.Producer
)

// InitEngagement 组装服务依赖，消息队列不可用时事件投递被跳过
func InitEngagement() {
	repos := dal.Init()
	client := redis.Load()

	storage, err := oss.InitMinio()
	if err != nil {
		hlog.Fatalf("init minio failed: %v", err)
	}
	blobs := oss.NewGuardedStorage(storage, oss.BreakerConfig{Name: "oss", MaxFailures: 5, Timeout: 30 * time.Second})

	deps := service.Dependencies{
		Edges:     repos.Edges,
		Targets:   repos.Targets,
		Users:     repos.Users,
		Videos:    repos.Videos,
		Comments:  repos.Comments,
		Playlists: repos.Playlists,
		Blobs:     blobs,
		Locker:    redis.NewVideoLocker(client, ParseDuration(config.ConfigInfo.Cascade.LockTTL, 0)),
	}

	if producer, err = mq.NewProducer(config.RabbitMqURL()); err != nil {
		hlog.Warnf("rabbitmq unavailable, engagement events disabled: %v", err)
	} else {
		deps.Producer = producer
	}

	Engagement = service.NewEngagementService(deps)
}

func Close() {
	if producer != nil {
		if err := producer.Close(); err != nil {
			hlog.Warnf("close rabbitmq producer failed: %v", err)
		}
	}
}

// ParseDuration 配置中的时长字符串，非法时使用默认值
func ParseDuration(s string, def time.Duration) time.Duration {
	if s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		hlog.Warnf("invalid duration %q, using %s", s, def)
		return def
	}
	return d
}

