package mq

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/opentracing/opentracing-go"
	"github.com/opentracing/opentracing-go/ext"
	"github.com/rabbitmq/amqp091-go"
)

type Consumer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
}

func NewConsumer(rabbitmqURL string) (*Consumer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	// 设置QoS
	if err = ch.Qos(10, 0, false); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to set QoS: %w", err)
	}

	c := &Consumer{conn: conn, channel: ch}
	if err = declareTopology(ch); err != nil {
		c.Close()
		return nil, fmt.Errorf("failed to setup topology: %w", err)
	}
	return c, nil
}

// ConsumeVideoDeletedEvents 处理失败的消息只重新入队一次
func (c *Consumer) ConsumeVideoDeletedEvents(ctx context.Context, handler VideoDeletedHandler) error {
	msgs, err := c.channel.Consume(
		CascadeRepairQueue,
		"",    // consumer
		false, // auto-ack (设置为false，手动确认)
		false, // exclusive
		false, // no-local
		false, // no-wait
		nil,   // args
	)
	if err != nil {
		return fmt.Errorf("failed to register a consumer: %w", err)
	}

	go func() {
		for {
			select {
			case <-ctx.Done():
				hlog.Info("Video deleted consumer context cancelled")
				return
			case d, ok := <-msgs:
				if !ok {
					hlog.Info("Video deleted consumer channel closed")
					return
				}
				c.dispatch(ctx, d, handler)
			}
		}
	}()
	return nil
}

func (c *Consumer) dispatch(ctx context.Context, d amqp091.Delivery, handler VideoDeletedHandler) {
	event, err := DecodeVideoDeletedEvent(d.Body)
	if err != nil {
		hlog.Errorf("Failed to unmarshal video deleted event: %v", err)
		d.Nack(false, false) // 拒绝消息，不重新入队
		return
	}
	span, ctx := opentracing.StartSpanFromContext(ctx, "cascade_repair")
	defer span.Finish()
	span.SetTag("video_id", event.VideoID)
	span.SetTag("redelivered", d.Redelivered)

	if err = handler.HandleVideoDeleted(ctx, event); err != nil {
		ext.LogError(span, err)
		hlog.CtxErrorf(ctx, "Failed to handle video deleted event %s: %v", event.EventID, err)
		d.Nack(false, !d.Redelivered)
		return
	}
	d.Ack(false) // 确认消息
}

func DecodeVideoDeletedEvent(body []byte) (*VideoDeletedEvent, error) {
	var event VideoDeletedEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return nil, err
	}
	if event.VideoID == 0 {
		return nil, fmt.Errorf("video deleted event without video id")
	}
	return &event, nil
}

func (c *Consumer) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}
