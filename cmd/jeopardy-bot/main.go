package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/kapu/jeopardy-telegram-bot/internal/changelog"
	appcfg "github.com/kapu/jeopardy-telegram-bot/internal/config"
	"github.com/kapu/jeopardy-telegram-bot/internal/game"
	"github.com/kapu/jeopardy-telegram-bot/internal/msgcat"
	"github.com/kapu/jeopardy-telegram-bot/internal/obslog"
	"github.com/kapu/jeopardy-telegram-bot/internal/report"
	"github.com/kapu/jeopardy-telegram-bot/internal/score"
	"github.com/kapu/jeopardy-telegram-bot/internal/telegramfast"
	"github.com/kapu/jeopardy-telegram-bot/internal/trivia"
	"github.com/kapu/jeopardy-telegram-bot/internal/webhook"
)

func main() {
	cfg, err := appcfg.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}
	if err := obslog.InitFromEnv(); err != nil {
		log.Fatalf("logger init error: %v", err)
	}
	logger := obslog.L()
	defer func() { _ = logger.Sync() }()

	redisOpts := &redis.Options{}
	if cfg.RedisURL != "" {
		redisOpts, err = redis.ParseURL(cfg.RedisURL)
		if err != nil {
			logger.Fatal("redis url parse error", zap.Error(err))
		}
	}
	rdb := redis.NewClient(redisOpts)
	defer func() { _ = rdb.Close() }()

	catalog, err := msgcat.New()
	if err != nil {
		logger.Fatal("message catalog error", zap.Error(err))
	}

	tg := telegramfast.NewClient(cfg.TelegramAPIKey)
	questions := trivia.NewClient(cfg.JeopardyServer)
	scores := score.New(rdb, cfg.RedisNamespace)
	reporter := report.NewClient(cfg.GithubAPIKey, cfg.GithubUser, cfg.GithubRepo)
	record := changelog.NewRecord(cfg.ChangelogPath)

	manager := game.NewManager(cfg.BotName, catalog, questions, scores, reporter, record, logger)

	// A fresh identifier per process keeps the webhook path unguessable.
	path := "/" + uuid.NewString()
	server := webhook.NewServer(path, manager, tg, reporter, catalog, logger)

	regCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	err = tg.SetWebhook(regCtx, cfg.WebhookServer+path)
	cancel()
	if err != nil {
		logger.Fatal("webhook registration error", zap.Error(err))
	}
	logger.Info("webhook registered", zap.String("path", path), zap.String("addr", cfg.ListenAddr))

	httpServer := &fasthttp.Server{
		Handler:     server.Handler,
		ReadTimeout: 30 * time.Second,
	}
	go func() {
		if err := httpServer.ListenAndServe(cfg.ListenAddr); err != nil {
			logger.Fatal("http server error", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down")
	if err := httpServer.Shutdown(); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
}
