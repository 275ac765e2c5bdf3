package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
	"videotube.com/pkg/constants"
	"videotube.com/pkg/errno"
)

// VideoLocker 视频级分布式锁，保证同一视频的级联删除不会并发执行
type VideoLocker struct {
	rs  *redsync.Redsync
	ttl time.Duration
}

func NewVideoLocker(client *redis.Client, ttl time.Duration) *VideoLocker {
	if ttl <= 0 {
		ttl = constants.CascadeLockTTL
	}
	return &VideoLocker{
		rs:  redsync.New(goredis.NewPool(client)),
		ttl: ttl,
	}
}

// Lock 获取锁，返回的函数用于释放
func (l *VideoLocker) Lock(ctx context.Context, videoId int64) (func(), error) {
	name := fmt.Sprintf("%s%d", constants.CascadeLockPrefix, videoId)
	mutex := l.rs.NewMutex(name,
		redsync.WithExpiry(l.ttl),
		redsync.WithTries(3),
		redsync.WithRetryDelay(100*time.Millisecond),
	)
	if err := mutex.LockContext(ctx); err != nil {
		return nil, errors.Wrapf(errno.ExternalServiceErr.WithMessage("video is being deleted, try again later"), "acquire lock %s: %v", name, err)
	}
	return func() {
		if ok, err := mutex.Unlock(); !ok || err != nil {
			hlog.CtxWarnf(ctx, "release lock %s failed: ok=%v err=%v", name, ok, err)
		}
	}, nil
}
