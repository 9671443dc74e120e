package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/codesmith/internal/config"
	"github.com/codesmith/internal/db"
	"github.com/codesmith/internal/handler"
	"github.com/codesmith/internal/logging"
	"github.com/codesmith/internal/media"
	"github.com/codesmith/internal/router"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	logger, err := logging.New(cfg.LogLevel, cfg.GinMode)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	// 初始化数据库
	gdb, err := db.Open(cfg)
	if err != nil {
		logger.Fatal("failed to initialize database", zap.String("type", cfg.DatabaseType), zap.Error(err))
	}

	if err := db.EnsureUser(gdb, cfg.SuperRootUserName, cfg.SuperRootPassword); err != nil {
		logger.Fatal("failed to ensure admin user", zap.Error(err))
	}

	if err := os.MkdirAll(cfg.MediaDir, 0o755); err != nil {
		logger.Fatal("failed to create media dir", zap.String("dir", cfg.MediaDir), zap.Error(err))
	}
	store := media.NewStore(cfg.MediaDir, cfg.MaxImageWidth)

	api := handler.NewAPI(gdb, store, cfg.MediaURL)
	r := router.SetupRouter(cfg, api, logger)

	srv := &http.Server{
		Addr:              cfg.ListenAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		logger.Info("listening", zap.String("addr", cfg.ListenAddr), zap.String("database", cfg.DatabaseType))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	<-stop

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("shutdown error", zap.Error(err))
	}
	if sqlDB, err := gdb.DB(); err == nil {
		_ = sqlDB.Close()
	}
	logger.Info("server stopped")
}
