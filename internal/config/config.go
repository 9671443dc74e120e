package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	DatabaseTypeSQLite   = "sqlite"
	DatabaseTypePostgres = "pgsql"
)

// AppConfig 汇总运行服务所需的基础配置。
type AppConfig struct {
	ListenAddr         string
	Port               string
	DatabaseType       string
	DatabasePath       string
	DatabaseHost       string
	DatabasePort       int
	DatabaseUser       string
	DatabasePassword   string
	DatabaseName       string
	SessionSecret      string
	GinMode            string
	LogLevel           string
	MediaDir           string
	MediaURL           string
	CorsAllowedOrigins []string
	SuperRootUserName  string
	SuperRootPassword  string
	MaxImageWidth      int
	PublicRateLimit    int
}

// Load 从环境变量读取应用配置，并为缺失项提供安全的默认值。
// 若工作目录存在 .env 文件，会先将其中的键载入环境变量（已存在的变量不会被覆盖）。
func Load() AppConfig {
	_ = godotenv.Load()

	port := getEnv("PORT", "8080")

	cfg := AppConfig{
		ListenAddr:         getEnv("LISTEN_ADDR", fmt.Sprintf(":%s", port)),
		Port:               port,
		DatabaseType:       strings.ToLower(getEnv("DATABASE_TYPE", DatabaseTypeSQLite)),
		DatabasePath:       getEnv("DATABASE_PATH", "data/codesmith.db"),
		DatabaseHost:       getEnv("DATABASE_HOST", "localhost"),
		DatabasePort:       getEnvInt("DATABASE_PORT", 5432),
		DatabaseUser:       getEnv("DATABASE_USER", "postgres"),
		DatabasePassword:   getEnv("DATABASE_PASSWORD", "postgres"),
		DatabaseName:       getEnv("DATABASE_NAME", "backend"),
		SessionSecret:      getEnv("SESSION_SECRET", "codesmith-dev-secret"),
		GinMode:            getEnv("GIN_MODE", "release"),
		LogLevel:           strings.ToLower(getEnv("LOG_LEVEL", "info")),
		MediaDir:           getEnv("MEDIA_DIR", "media"),
		MediaURL:           normalizeMediaURL(getEnv("MEDIA_URL", "/media/")),
		CorsAllowedOrigins: splitCSV(getEnv("CORS_ALLOWED_ORIGINS", "http://127.0.0.1:5173")),
		SuperRootUserName:  getEnv("SUPER_ROOT_USER_NAME", ""),
		SuperRootPassword:  getEnv("SUPER_ROOT_PASSWORD", ""),
		MaxImageWidth:      getEnvInt("MAX_IMAGE_WIDTH", 1600),
		PublicRateLimit:    getEnvInt("PUBLIC_RATE_LIMIT", 10),
	}

	if cfg.DatabaseType != DatabaseTypePostgres {
		cfg.DatabaseType = DatabaseTypeSQLite
	}

	return cfg
}

// PostgresDSN 构造 gorm postgres 驱动使用的连接串。
func (c AppConfig) PostgresDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=disable",
		c.DatabaseHost, c.DatabasePort, c.DatabaseUser, c.DatabasePassword, c.DatabaseName,
	)
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getEnvInt(key string, fallback int) int {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value <= 0 {
		return fallback
	}
	return value
}

func splitCSV(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

func normalizeMediaURL(value string) string {
	if !strings.HasPrefix(value, "/") && !strings.Contains(value, "://") {
		value = "/" + value
	}
	if !strings.HasSuffix(value, "/") {
		value += "/"
	}
	return value
}
