package mq

import (
	"fmt"

	"github.com/rabbitmq/amqp091-go"
)

type topologyChannel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp091.Table) error
}

// declareTopology 生产者与消费者都会声明，先启动的一方建好修复队列，
// 消费者上线前发布的删除事件也不会因为无队列可路由而丢失
func declareTopology(ch topologyChannel) error {
	err := ch.ExchangeDeclare(
		EngagementEventExchange,
		"topic",
		true,  // durable
		false, // auto-delete
		false, // internal
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare engagement event exchange: %w", err)
	}

	_, err = ch.QueueDeclare(
		CascadeRepairQueue,
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		return fmt.Errorf("failed to declare cascade repair queue: %w", err)
	}

	// 点赞与订阅事件没有常驻队列，需要的下游自行绑定
	if err = ch.QueueBind(CascadeRepairQueue, RoutingKeyVideoDeleted, EngagementEventExchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind cascade repair queue: %w", err)
	}
	return nil
}
