package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/oxydek/fin-stat/configs"
	"github.com/oxydek/fin-stat/internal/broker"
	"github.com/oxydek/fin-stat/internal/goals"
	"github.com/oxydek/fin-stat/internal/handlers"
	"github.com/oxydek/fin-stat/internal/interest"
	"github.com/oxydek/fin-stat/internal/ledger"
	"github.com/oxydek/fin-stat/internal/logger"
	"github.com/oxydek/fin-stat/internal/notify"
	"github.com/oxydek/fin-stat/internal/reminders"
	"github.com/oxydek/fin-stat/internal/repo"
	"github.com/oxydek/fin-stat/internal/routes"
	"github.com/oxydek/fin-stat/internal/seed"
	"github.com/oxydek/fin-stat/internal/store"
	"go.uber.org/zap"
)

func main() {
	logger.Init()
	defer logger.Log.Sync()

	configs.LoadConfig()
	store.NewDB()
	store.DBMigrate()

	db := repo.New(store.DB)
	seed.Run(db)

	cfg := configs.AppConfig

	var channels []notify.Channel
	var push *notify.WebPush
	if cfg.Push.VAPIDPublicKey != "" && cfg.Push.VAPIDPrivateKey != "" {
		push = notify.NewWebPush(db, cfg.Push.VAPIDPublicKey, cfg.Push.VAPIDPrivateKey, cfg.Push.Subscriber)
		channels = append(channels, push)
	}
	if cfg.Telegram.BotToken != "" && cfg.Telegram.ChatID != 0 {
		tg, err := notify.NewTelegram(cfg.Telegram.BotToken, cfg.Telegram.ChatID)
		if err != nil {
			logger.Log.Warn("telegram channel disabled", zap.Error(err))
		} else {
			channels = append(channels, tg)
		}
	}
	dispatcher := notify.NewDispatcher(channels...)

	brokerClient := broker.NewClient(cfg.Broker.BaseURL)
	syncer := broker.NewSyncer(db, brokerClient,
		time.Duration(cfg.Broker.SyncIntervalSec)*time.Second)
	scheduler := reminders.NewScheduler(db, dispatcher,
		time.Duration(cfg.Reminders.PollIntervalSec)*time.Second)

	h := &handlers.Handlers{
		Store:      db,
		Ledger:     ledger.NewService(db),
		Interest:   interest.NewEngine(db),
		Goals:      goals.NewService(db),
		Reminders:  reminders.NewService(db),
		Broker:     brokerClient,
		Syncer:     syncer,
		Dispatcher: dispatcher,
		Push:       push,
	}

	router := routes.NewRoutes(h)

	srv := &http.Server{
		Addr:         cfg.HTTP.Addr,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, cancel := context.WithCancel(context.Background())
	go scheduler.Run(ctx)
	go syncer.Run(ctx)

	go func() {
		logger.Log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	<-stop
	logger.Log.Info("shutting down server...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Log.Error("graceful shutdown failed", zap.Error(err))
	}

	sqlDB, err := store.DB.DB()
	if err != nil {
		logger.Log.Error("db close skipped, reason:", zap.Error(err))
	} else {
		sqlDB.Close()
		logger.Log.Info("db closed")
	}

	logger.Log.Info("server stopped")
}
