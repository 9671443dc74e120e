package main

import (
	"flag"

	"github.com/codesmith/internal/config"
	"github.com/codesmith/internal/db"
	"github.com/codesmith/internal/logging"
	"go.uber.org/zap"
)

// 测试数据生成器
func main() {
	adminUser := flag.String("admin-user", "admin", "administrator username to create")
	adminPass := flag.String("admin-pass", "admin123", "administrator password")
	scheduled := flag.Int("scheduled", 2, "number of posts scheduled in the future")
	flag.Parse()

	cfg := config.Load()
	logger, err := logging.New(cfg.LogLevel, cfg.GinMode)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	// 初始化数据库
	gdb, err := db.Open(cfg)
	if err != nil {
		logger.Fatal("failed to open database", zap.Error(err))
	}

	if err := db.EnsureUser(gdb, *adminUser, *adminPass); err != nil {
		logger.Fatal("failed to create admin user", zap.Error(err))
	}

	s := seeder{db: gdb, logger: logger, scheduled: *scheduled}
	if err := s.run(); err != nil {
		logger.Fatal("seeding failed", zap.Error(err))
	}
	logger.Info("seed data ready", zap.String("admin", *adminUser))
}
