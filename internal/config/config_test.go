package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LISTEN_ADDR", "")
	t.Setenv("API_KEY", "")
	t.Setenv("REDIS_URL", "")
	t.Setenv("TELEGRAM_BOT_TOKEN", "")
	t.Setenv("PRICE_REFRESH_SECS", "")
	t.Setenv("SENTIMENT_REFRESH_SECS", "")

	cfg := Load()
	if cfg.ListenAddr != ":8080" {
		t.Fatalf("expected default listen addr, got %q", cfg.ListenAddr)
	}
	if cfg.PriceInterval != 30*time.Second {
		t.Fatalf("expected 30s price interval, got %v", cfg.PriceInterval)
	}
	if cfg.SentimentInterval != 5*time.Minute {
		t.Fatalf("expected 5m sentiment interval, got %v", cfg.SentimentInterval)
	}
	if cfg.APIKey != "" || cfg.RedisURL != "" || cfg.TelegramBotToken != "" {
		t.Fatalf("expected empty optional settings, got %+v", cfg)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("LISTEN_ADDR", ":9090")
	t.Setenv("API_KEY", "sekrit")
	t.Setenv("REDIS_URL", "redis://localhost:6379")
	t.Setenv("PRICE_REFRESH_SECS", "10")
	t.Setenv("SENTIMENT_REFRESH_SECS", "60")

	cfg := Load()
	if cfg.ListenAddr != ":9090" {
		t.Fatalf("expected :9090, got %q", cfg.ListenAddr)
	}
	if cfg.APIKey != "sekrit" {
		t.Fatalf("expected API key override, got %q", cfg.APIKey)
	}
	if cfg.PriceInterval != 10*time.Second {
		t.Fatalf("expected 10s price interval, got %v", cfg.PriceInterval)
	}
	if cfg.SentimentInterval != time.Minute {
		t.Fatalf("expected 1m sentiment interval, got %v", cfg.SentimentInterval)
	}
}

func TestLoadRejectsBadIntervals(t *testing.T) {
	t.Setenv("PRICE_REFRESH_SECS", "not-a-number")
	t.Setenv("SENTIMENT_REFRESH_SECS", "-5")

	cfg := Load()
	if cfg.PriceInterval != 30*time.Second {
		t.Fatalf("malformed interval must keep the default, got %v", cfg.PriceInterval)
	}
	if cfg.SentimentInterval != 5*time.Minute {
		t.Fatalf("negative interval must keep the default, got %v", cfg.SentimentInterval)
	}
}
