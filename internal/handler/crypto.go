package handler

import (
	"net/http"
	"strconv"
	"strings"

	"crypto-pulse/internal/domain"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
)

// GetPrices returns the current market snapshot for all tracked assets.
func (h *Handler) GetPrices(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-prices")
	defer span.End()

	c.JSON(http.StatusOK, envelope(h.snapshots.Market()))
}

// GetPriceHistory returns a synthetic daily price series for one asset.
func (h *Handler) GetPriceHistory(c *gin.Context) {
	_, span := h.tracer.Start(c.Request.Context(), "handler.get-price-history")
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

	days := 7
	if d := c.Query("days"); d != "" {
		if n, err := strconv.Atoi(d); err == nil && n > 0 && n <= 90 {
			days = n
		}
	}

	c.JSON(http.StatusOK, envelope(h.marketService.PriceHistory(symbol, days)))
}
