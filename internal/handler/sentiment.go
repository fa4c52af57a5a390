package handler

import (
	"net/http"
	"strconv"
	"strings"

	"crypto-pulse/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetSentiment returns the current sentiment snapshot for all tracked assets.
func (h *Handler) GetSentiment(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-sentiment")
	defer span.End()

	c.JSON(http.StatusOK, envelope(h.snapshots.Sentiment()))
}

// GetSentimentHistory returns a synthetic hourly sentiment series.
func (h *Handler) GetSentimentHistory(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-sentiment-history")
	defer span.End()

	symbol := strings.ToUpper(c.Param("symbol"))
	span.SetAttributes(attribute.String("symbol", symbol))

	if !domain.IsSupported(symbol) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "unsupported symbol: " + symbol,
			"supported_symbols": domain.SupportedSymbols,
		})
		return
	}

	hours := 24
	if v := c.Query("hours"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 168 {
			hours = n
		}
	}

	c.JSON(http.StatusOK, envelope(h.sentimentService.SentimentHistory(symbol, hours)))
}

// GetPosts returns a fresh sample of social posts for one asset.
func (h *Handler) GetPosts(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-posts")
	defer span.End()

	symbol := strings.ToUpper(c.Param("symbol"))
	span.SetAttributes(attribute.String("symbol", symbol))

	if !domain.IsSupported(symbol) {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":             "unsupported symbol: " + symbol,
			"supported_symbols": domain.SupportedSymbols,
		})
		return
	}

	limit := 10
	if v := c.Query("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 50 {
			limit = n
		}
	}

	c.JSON(http.StatusOK, envelope(h.sentimentService.SamplePosts(symbol, limit)))
}
