package mq

// 交换机与路由键
const (
	EngagementEventExchange = "engagement_events"
	CascadeRepairQueue      = "cascade_repair_queue"

	RoutingKeyLikeToggled         = "like.toggled"
	RoutingKeySubscriptionToggled = "subscription.toggled"
	RoutingKeyVideoDeleted        = "video.deleted"
)

// EngagementEvent 点赞/订阅切换事件
type EngagementEvent struct {
	EventID    string `json:"event_id"`
	EventType  string `json:"event_type"` // video_like, comment_like, tweet_like, subscription
	ActorID    int64  `json:"actor_id"`
	TargetID   int64  `json:"target_id"`
	Active     bool   `json:"active"`
	Timestamp  int64  `json:"timestamp"`
	RoutingKey string `json:"-"`
}

// VideoDeletedEvent 视频级联删除完成事件
type VideoDeletedEvent struct {
	EventID     string   `json:"event_id"`
	VideoID     int64    `json:"video_id"`
	OwnerID     int64    `json:"owner_id"`
	VideoURL    string   `json:"video_url"`
	CoverURL    string   `json:"cover_url"`
	FailedSteps []string `json:"failed_steps,omitempty"`
	Timestamp   int64    `json:"timestamp"`
}
