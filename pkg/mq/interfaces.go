package mq

import "context"

// MessageProducer 消息生产者接口
type MessageProducer interface {
	PublishEngagementEvent(ctx context.Context, event *EngagementEvent) error
	PublishVideoDeletedEvent(ctx context.Context, event *VideoDeletedEvent) error
}

// 确保Producer实现MessageProducer接口
var _ MessageProducer = (*Producer)(nil)

// VideoDeletedHandler 处理视频删除事件
type VideoDeletedHandler interface {
	HandleVideoDeleted(ctx context.Context, event *VideoDeletedEvent) error
}
