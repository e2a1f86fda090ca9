package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/skybook/skybook/config"
	"github.com/skybook/skybook/internal/email"
	"github.com/skybook/skybook/internal/kafka"
	"github.com/skybook/skybook/internal/logger"
)

func main() {
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config.yaml"
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	zlog := logger.New()
	defer func() { _ = zlog.Sync() }()

	consumer := kafka.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.GroupID, cfg.Kafka.BookingEventsTopic, zlog)
	defer consumer.Close()

	sender := email.NewSender("noreply@skybook.local", zlog)

	zlog.Infow("worker started", "topic", cfg.Kafka.BookingEventsTopic, "group", cfg.Kafka.GroupID)
	if err := consumer.Consume(ctx, sender.Notify); err != nil && ctx.Err() == nil {
		zlog.Errorw("consumer stopped", "error", err)
	}
}
