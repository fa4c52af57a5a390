package handler

import (
	"crypto-pulse/internal/domain"
	"crypto-pulse/internal/service"
	"crypto-pulse/internal/store"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/trace"
)

// SnapshotReader is the store surface the transport layer consumes.
type SnapshotReader interface {
	Market() domain.MarketSnapshot
	Sentiment() domain.SentimentSnapshot
	Subscribe() *store.Subscription
	Unsubscribe(sub *store.Subscription)
}

type Handler struct {
	tracer           trace.Tracer
	snapshots        SnapshotReader
	marketService    *service.MarketService
	sentimentService *service.SentimentService
}

func New(tracer trace.Tracer, snapshots SnapshotReader, marketService *service.MarketService, sentimentService *service.SentimentService) *Handler {
	return &Handler{
		tracer:           tracer,
		snapshots:        snapshots,
		marketService:    marketService,
		sentimentService: sentimentService,
	}
}

// RegisterRoutes wires all HTTP endpoints. The /api group is protected by
// API-key auth when apiKey is non-empty.
func (h *Handler) RegisterRoutes(r *gin.Engine, apiKey string) {
	r.GET("/health", h.Health)
	r.GET("/ws", h.Stream)

	api := r.Group("/api", APIKeyAuth(apiKey))
	api.GET("/crypto/prices", h.GetPrices)
	api.GET("/crypto/history/:symbol", h.GetPriceHistory)
	api.GET("/sentiment/current", h.GetSentiment)
	api.GET("/sentiment/history/:symbol", h.GetSentimentHistory)
	api.GET("/sentiment/posts/:symbol", h.GetPosts)
}

// envelope matches the response shape the dashboard client expects.
func envelope(data any) gin.H {
	return gin.H{"success": true, "data": data}
}
