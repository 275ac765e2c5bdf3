package constants

import "time"

const (
	DefaultPage  = 1
	DefaultLimit = 10
	MaxLimit     = 100

	// 匿名访问者
	AnonymousUserId = 0

	IdentityKey = "user_id"

	VideoBucketName   = "video"
	PictureBucketName = "picture"

	CascadeLockPrefix = "lock:video:delete:"
	CascadeLockTTL    = 30 * time.Second

	ToggleRateLimitPrefix = "ratelimit:toggle:"
	SentinelToggleRes     = "engagement_toggle"
)
