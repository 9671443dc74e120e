package config

import "testing"

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{
		"PORT", "LISTEN_ADDR", "DATABASE_TYPE", "DATABASE_PATH", "MEDIA_URL",
		"CORS_ALLOWED_ORIGINS", "MAX_IMAGE_WIDTH", "LOG_LEVEL",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected listen addr :8080, got %q", cfg.ListenAddr)
	}
	if cfg.DatabaseType != DatabaseTypeSQLite {
		t.Fatalf("expected sqlite by default, got %q", cfg.DatabaseType)
	}
	if cfg.MediaURL != "/media/" {
		t.Fatalf("expected /media/, got %q", cfg.MediaURL)
	}
	if len(cfg.CorsAllowedOrigins) != 1 || cfg.CorsAllowedOrigins[0] != "http://127.0.0.1:5173" {
		t.Fatalf("unexpected cors origins %v", cfg.CorsAllowedOrigins)
	}
	if cfg.MaxImageWidth != 1600 {
		t.Fatalf("expected max image width 1600, got %d", cfg.MaxImageWidth)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("DATABASE_TYPE", "PGSQL")
	t.Setenv("DATABASE_PORT", "6543")
	t.Setenv("MEDIA_URL", "uploads")
	t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.dev , ,https://b.dev")
	t.Setenv("MAX_IMAGE_WIDTH", "not-a-number")

	cfg := Load()

	if cfg.ListenAddr != ":9000" {
		t.Fatalf("expected listen addr derived from port, got %q", cfg.ListenAddr)
	}
	if cfg.DatabaseType != DatabaseTypePostgres {
		t.Fatalf("expected pgsql, got %q", cfg.DatabaseType)
	}
	if cfg.DatabasePort != 6543 {
		t.Fatalf("expected port 6543, got %d", cfg.DatabasePort)
	}
	if cfg.MediaURL != "/uploads/" {
		t.Fatalf("expected normalized media url, got %q", cfg.MediaURL)
	}
	if len(cfg.CorsAllowedOrigins) != 2 {
		t.Fatalf("expected two origins, got %v", cfg.CorsAllowedOrigins)
	}
	if cfg.MaxImageWidth != 1600 {
		t.Fatalf("expected fallback width, got %d", cfg.MaxImageWidth)
	}
	if dsn := cfg.PostgresDSN(); dsn == "" {
		t.Fatalf("expected postgres dsn")
	}
}
