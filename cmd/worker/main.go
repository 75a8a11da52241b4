package main

import (
	"os"

	_ "go.uber.org/automaxprocs"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"jahir-soochna/internal/core/config"
	"jahir-soochna/internal/core/logger"
	"jahir-soochna/internal/mailer"
	"jahir-soochna/internal/notify"
)

// 通知 worker：消费 objection:email 任务并通过 SMTP 投递
func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	ml := mailer.New(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.SMTP.FromName,
	})
	if !ml.IsConfigured() {
		log.Warn("smtp not configured, objection mails will be dropped")
	}

	concurrency := cfg.Notify.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	srv := asynq.NewServer(
		asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		},
		asynq.Config{
			Concurrency: concurrency,
			Queues:      map[string]int{"default": 1},
		},
	)

	log.Info("notification worker starting",
		zap.String("redis", cfg.Redis.Addr),
		zap.Int("concurrency", concurrency),
	)
	// Run 自带 SIGINT/SIGTERM 处理
	if err := srv.Run(notify.NewMux(ml, log)); err != nil {
		log.Fatal("notification worker FAILED", zap.Error(err))
	}
	log.Info("notification worker stopped gracefully")
}
