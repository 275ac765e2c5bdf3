package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/cloudwego/hertz/pkg/common/hlog"
	"videotube.com/cmd/engagement/svc"
	"videotube.com/config"
	"videotube.com/config/jaeger"
	"videotube.com/pkg/mq"
	"videotube.com/pkg/utils"
)

// 级联删除修复进程：消费视频删除事件，重试失败的步骤
func main() {
	// 初始化日志
	hlog.SetLevel(hlog.LevelInfo)

	// 初始化配置和依赖
	config.Init()
	closer := jaeger.Load("videotube-cascade-repair", config.ConfigInfo.Jaeger.Enable, config.ConfigInfo.Jaeger.AgentAddr)
	defer closer.Close()
	if err := utils.InitSnowflake(2, 1); err != nil {
		hlog.Fatalf("init snowflake failed: %v", err)
	}
	svc.InitEngagement()
	defer svc.Close()
	hlog.Info("Dependencies initialized successfully")

	consumer, err := mq.NewConsumer(config.RabbitMqURL())
	if err != nil {
		hlog.Fatalf("Failed to create consumer: %v", err)
	}
	defer consumer.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if err = consumer.ConsumeVideoDeletedEvents(ctx, svc.Engagement); err != nil {
		hlog.Fatalf("Failed to start video deleted consumer: %v", err)
	}
	hlog.Info("Cascade repair consumer started, waiting for messages...")

	// 等待中断信号
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	<-sigChan
	hlog.Info("Shutting down cascade repair consumer...")

	// 优雅关闭
	cancel()
	time.Sleep(2 * time.Second) // 给消费者一些时间来处理正在进行的消息

	hlog.Info("Cascade repair consumer stopped")
}
