package config

import (
	"log"
	"os"
	"strconv"
	"time"
)

type Config struct {
	ListenAddr       string
	APIKey           string
	RedisURL         string
	TelegramBotToken string

	PriceInterval     time.Duration
	SentimentInterval time.Duration
}

func Load() *Config {
	cfg := &Config{
		APIKey:           os.Getenv("API_KEY"),
		RedisURL:         os.Getenv("REDIS_URL"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
	}

	cfg.ListenAddr = os.Getenv("LISTEN_ADDR")
	if cfg.ListenAddr == "" {
		cfg.ListenAddr = ":8080"
	}

	if cfg.TelegramBotToken == "" {
		log.Println("Warning: TELEGRAM_BOT_TOKEN not set, bot disabled")
	}
	if cfg.RedisURL == "" {
		log.Println("Warning: REDIS_URL not set, snapshot cache disabled")
	}

	cfg.PriceInterval = 30 * time.Second
	if v := os.Getenv("PRICE_REFRESH_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.PriceInterval = time.Duration(n) * time.Second
		}
	}

	cfg.SentimentInterval = 5 * time.Minute
	if v := os.Getenv("SENTIMENT_REFRESH_SECS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.SentimentInterval = time.Duration(n) * time.Second
		}
	}

	return cfg
}
