package oss

import (
	"context"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/pkg/errors"
	"github.com/sony/gobreaker/v2"
	"videotube.com/pkg/errno"
)

type objectStore interface {
	Upload(ctx context.Context, localFile string, kind ResourceKind) (*UploadResult, error)
	Release(ctx context.Context, objectURL string, kind ResourceKind) error
}

// BreakerConfig 熔断参数，零值使用默认
type BreakerConfig struct {
	Name        string
	MaxFailures uint32        // 连续失败多少次后熔断
	Timeout     time.Duration // 熔断后多久进入半开
}

// GuardedStorage 对象存储连续失败后熔断，避免级联删除时反复等待超时
type GuardedStorage struct {
	store objectStore
	cb    *gobreaker.CircuitBreaker[*UploadResult]
}

func NewGuardedStorage(store objectStore, cfg BreakerConfig) *GuardedStorage {
	if cfg.Name == "" {
		cfg.Name = "oss"
	}
	if cfg.MaxFailures == 0 {
		cfg.MaxFailures = 5
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	cb := gobreaker.NewCircuitBreaker[*UploadResult](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: 1, // 半开状态只放行一个试探请求
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= cfg.MaxFailures
		},
		// 参数错误是调用方的问题，不计入存储故障
		IsSuccessful: func(err error) bool {
			return err == nil || errno.IsKind(err, errno.ValidationErr)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			hlog.Warnf("circuit breaker %s: %s -> %s", name, from, to)
		},
	})
	return &GuardedStorage{store: store, cb: cb}
}

func (g *GuardedStorage) Upload(ctx context.Context, localFile string, kind ResourceKind) (*UploadResult, error) {
	res, err := g.cb.Execute(func() (*UploadResult, error) {
		return g.store.Upload(ctx, localFile, kind)
	})
	return res, translateOpen(err)
}

func (g *GuardedStorage) Release(ctx context.Context, objectURL string, kind ResourceKind) error {
	_, err := g.cb.Execute(func() (*UploadResult, error) {
		return nil, g.store.Release(ctx, objectURL, kind)
	})
	return translateOpen(err)
}

// State 当前熔断状态
func (g *GuardedStorage) State() gobreaker.State {
	return g.cb.State()
}

func translateOpen(err error) error {
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return errno.ExternalServiceErr.WithMessage("object storage temporarily unavailable")
	}
	return err
}
