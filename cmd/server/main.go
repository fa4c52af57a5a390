package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"crypto-pulse/internal/bot"
	"crypto-pulse/internal/cache"
	"crypto-pulse/internal/config"
	"crypto-pulse/internal/handler"
	"crypto-pulse/internal/job"
	"crypto-pulse/internal/provider"
	"crypto-pulse/internal/sentiment"
	"crypto-pulse/internal/service"
	"crypto-pulse/internal/store"
	"crypto-pulse/pkg/tracing"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

func main() {
	godotenv.Load()

	cfg := config.Load()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	redisClient := cache.InitRedis(ctx, cfg.RedisURL)

	tp, tracer, err := tracing.InitTracer(ctx)
	if err != nil {
		log.Fatalf("failed to initialize tracer: %v", err)
	}
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("error shutting down tracer provider: %v", err)
		}
	}()

	snapshots := store.New()

	cgProvider := provider.NewCoinGeckoProvider(tracer)
	marketService := service.NewMarketService(tracer, cgProvider, snapshots, redisClient, nil)
	generator := sentiment.NewGenerator(nil)
	sentimentService := service.NewSentimentService(tracer, generator, snapshots, redisClient, nil)

	// Both jobs run once immediately, then on their own tickers.
	scheduler := job.NewScheduler(tracer)
	scheduler.Add("price-refresh", cfg.PriceInterval, marketService)
	scheduler.Add("sentiment-refresh", cfg.SentimentInterval, sentimentService)
	go scheduler.Start(ctx)

	bot.StartTelegramBot(cfg.TelegramBotToken, snapshots)

	h := handler.New(tracer, snapshots, marketService, sentimentService)

	r := gin.Default()
	r.Use(otelgin.Middleware("crypto-pulse"))
	h.RegisterRoutes(r, cfg.APIKey)

	srv := &http.Server{
		Addr:    cfg.ListenAddr,
		Handler: r,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("Shutting down server...")

	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	log.Println("Server exiting")
}
