package mq

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"github.com/rabbitmq/amqp091-go"
)

type Producer struct {
	conn    *amqp091.Connection
	channel *amqp091.Channel
	mu      sync.Mutex
}

func NewProducer(rabbitmqURL string) (*Producer, error) {
	conn, err := amqp091.Dial(rabbitmqURL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open a channel: %w", err)
	}

	producer := &Producer{
		conn:    conn,
		channel: ch,
	}

	if err := declareTopology(ch); err != nil {
		producer.Close()
		return nil, fmt.Errorf("failed to setup topology: %w", err)
	}

	return producer, nil
}

func (p *Producer) publish(ctx context.Context, routingKey string, v interface{}) error {
	body, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	return p.channel.PublishWithContext(
		ctx,
		EngagementEventExchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			Timestamp:    time.Now(),
			Body:         body,
		},
	)
}

func (p *Producer) PublishEngagementEvent(ctx context.Context, event *EngagementEvent) error {
	routingKey := event.RoutingKey
	if routingKey == "" {
		routingKey = RoutingKeyLikeToggled
	}
	if err := p.publish(ctx, routingKey, event); err != nil {
		return fmt.Errorf("failed to publish engagement event: %w", err)
	}
	hlog.CtxDebugf(ctx, "Published engagement event: %+v", event)
	return nil
}

func (p *Producer) PublishVideoDeletedEvent(ctx context.Context, event *VideoDeletedEvent) error {
	if err := p.publish(ctx, RoutingKeyVideoDeleted, event); err != nil {
		return fmt.Errorf("failed to publish video deleted event: %w", err)
	}
	hlog.CtxInfof(ctx, "Published video deleted event: %+v", event)
	return nil
}

func (p *Producer) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
