package model

import "time"

// Subscription 订阅关系，Subscriber 订阅了 Channel
type Subscription struct {
	SubscriptionId int64     `json:"subscription_id" gorm:"column:subscription_id;primaryKey;autoIncrement:false"`
	Subscriber     int64     `json:"subscriber" gorm:"column:subscriber;uniqueIndex:idx_subscriber_channel,priority:1"`
	Channel        int64     `json:"channel" gorm:"column:channel;uniqueIndex:idx_subscriber_channel,priority:2;index"`
	CreatedAt      time.Time `json:"created_at" gorm:"column:created_at"`
}

func (Subscription) TableName() string { return "subscriptions" }

func (s *Subscription) Edge() *Edge {
	return &Edge{
		Id:        s.SubscriptionId,
		ActorId:   s.Subscriber,
		Kind:      EdgeSubscription,
		TargetId:  s.Channel,
		CreatedAt: s.CreatedAt,
	}
}

func (l *Like) Edge() *Edge {
	kind := EdgeVideoLike
	switch l.TargetKind {
	case LikeTargetComment:
		kind = EdgeCommentLike
	case LikeTargetTweet:
		kind = EdgeTweetLike
	}
	return &Edge{
		Id:        l.LikeId,
		ActorId:   l.LikedBy,
		Kind:      kind,
		TargetId:  l.TargetId,
		CreatedAt: l.CreatedAt,
	}
}
