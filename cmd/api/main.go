package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "go.uber.org/automaxprocs"

	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"jahir-soochna/internal/core/auth"
	"jahir-soochna/internal/core/cache"
	"jahir-soochna/internal/core/config"
	"jahir-soochna/internal/core/database"
	"jahir-soochna/internal/core/logger"
	"jahir-soochna/internal/core/server"
	"jahir-soochna/internal/domain"
	"jahir-soochna/internal/filestore"
	"jahir-soochna/internal/mailer"
	"jahir-soochna/internal/notify"
	"jahir-soochna/internal/repo"
	"jahir-soochna/internal/service"
	"jahir-soochna/internal/transport/http/handler"
	"jahir-soochna/internal/transport/http/router"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load(os.Getenv("CONFIG_PATH"))
	log, cleanup := newLogger(cfg)
	defer cleanup()

	// 数据库（失败会直接 Fatal）
	db := mustOpenDB(cfg, log)
	log.Info("database connected", zap.String("driver", cfg.DB.Driver))

	if cfg.DB.AutoMigrate {
		if err := db.AutoMigrate(&domain.Account{}, &domain.Notice{}, &domain.Objection{}); err != nil {
			log.Fatal("automigrate failed", zap.Error(err))
		}
		log.Info("automigrate done")
	}

	// JWT
	jwter := &auth.JWTer{
		Secret: []byte(cfg.JWT.Secret),
		Issuer: cfg.JWT.Issuer,
		TTL:    time.Duration(cfg.JWT.AccessTokenTTLMin) * time.Minute,
	}

	// 上传目录
	files, err := filestore.New(cfg.Uploads.Dir)
	if err != nil {
		log.Fatal("filestore init", zap.Error(err))
	}

	// 异议通知：走队列（cmd/worker 消费）或进程内兜底
	ml := mailer.New(mailer.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
		From:     cfg.SMTP.From,
		FromName: cfg.SMTP.FromName,
	})
	var dispatcher notify.Dispatcher
	if cfg.Notify.QueueEnabled {
		dispatcher = notify.NewQueueDispatcher(asynq.RedisClientOpt{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		}, log)
		log.Info("objection notifications via queue", zap.String("redis", cfg.Redis.Addr))
	} else {
		dispatcher = notify.NewInlineDispatcher(ml, log)
	}

	// 依赖
	accounts := repo.NewAccountRepo(db)
	notices := repo.NewNoticeRepo(db)
	objections := repo.NewObjectionRepo(db)

	authSvc := service.NewAuthService(accounts, jwter, log)
	noticeSvc := service.NewNoticeService(notices, files, log)
	if cfg.Cache.CategoryTTLSec > 0 {
		noticeSvc.EnableCategoryCache(
			cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB),
			time.Duration(cfg.Cache.CategoryTTLSec)*time.Second,
		)
		log.Info("category counts cache enabled", zap.Int("ttl_sec", cfg.Cache.CategoryTTLSec))
	}
	objectionSvc := service.NewObjectionService(notices, objections, accounts, dispatcher, log)

	// 路由
	r := router.NewAPIEngine(log, jwter, router.Handlers{
		Auth:      handler.NewAuthHandler(authSvc),
		Notice:    handler.NewNoticeHandler(noticeSvc, files, log),
		Objection: handler.NewObjectionHandler(objectionSvc, log),
	}, files.Root())

	// HTTP Server
	addr := server.Addr(cfg.App.HTTP.Host, cfg.App.HTTP.Port)
	srv := server.BuildServer(
		addr, r,
		time.Duration(cfg.App.HTTP.ReadTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.WriteTimeoutSec)*time.Second,
		time.Duration(cfg.App.HTTP.IdleTimeoutSec)*time.Second,
	)

	// 启动日志
	host4human := cfg.App.HTTP.Host
	if host4human == "" || host4human == "0.0.0.0" {
		host4human = "127.0.0.1"
	}
	baseURL := "http://" + host4human + ":" + fmt.Sprint(cfg.App.HTTP.Port)
	log.Info("api starting",
		zap.String("addr", addr),
		zap.String("open", baseURL),
		zap.String("health", baseURL+"/health"),
		zap.String("notices", baseURL+"/api/notices"),
	)

	// 异步启动
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("api start FAILED", zap.Error(err))
		}
	}()
	log.Info("api started SUCCESS")

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = srv.Shutdown(ctx)
	log.Info("api stopped gracefully")
}

func newLogger(cfg *config.Config) (*zap.Logger, func()) {
	if cfg.Log.File.Enable {
		return logger.NewWithRotate(cfg.Log.Level, cfg.Log.JSON, logger.FileRotate{
			Enable:     true,
			Filename:   cfg.Log.File.Filename,
			MaxSizeMB:  cfg.Log.File.MaxSizeMB,
			MaxBackups: cfg.Log.File.MaxBackups,
			MaxAgeDays: cfg.Log.File.MaxAgeDays,
			Compress:   cfg.Log.File.Compress,
		})
	}
	return logger.New(cfg.Log.Level, cfg.Log.JSON)
}

func mustOpenDB(cfg *config.Config, l *zap.Logger) *gorm.DB {
	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		MaxOpenConns:       cfg.DB.MaxOpenConns,
		MaxIdleConns:       cfg.DB.MaxIdleConns,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		l.Fatal("db open", zap.Error(err))
	}
	return db
}
