package service

import (
	"context"
	"errors"
	"math"
	"math/rand"
	"testing"

	"crypto-pulse/internal/domain"
	"crypto-pulse/internal/provider"

	"go.opentelemetry.io/otel/trace"
)

type stubQuoteProvider struct {
	quotes map[string]provider.CoinGeckoQuote
	err    error
	calls  int
}

func (s *stubQuoteProvider) FetchQuotes(ctx context.Context, ids []string) (map[string]provider.CoinGeckoQuote, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.quotes, nil
}

type stubSink struct {
	market    []domain.MarketSnapshot
	sentiment []domain.SentimentSnapshot
}

func (s *stubSink) ReplaceMarket(snapshot domain.MarketSnapshot) {
	s.market = append(s.market, snapshot)
}

func (s *stubSink) ReplaceSentiment(snapshot domain.SentimentSnapshot) {
	s.sentiment = append(s.sentiment, snapshot)
}

func testTracer() trace.Tracer {
	return trace.NewNoopTracerProvider().Tracer("test")
}

func TestMarketBuildMapsProviderResponse(t *testing.T) {
	quotes := &stubQuoteProvider{quotes: map[string]provider.CoinGeckoQuote{
		"bitcoin": {Price: 97000, Change24hPct: 2.34, MarketCap: 1.9e12, Volume24h: 4.5e10},
	}}
	svc := NewMarketService(testTracer(), quotes, &stubSink{}, nil, rand.New(rand.NewSource(1)))

	snapshot := svc.Build(context.Background())

	if len(snapshot) != len(domain.TrackedAssets) {
		t.Fatalf("expected %d records, got %d", len(domain.TrackedAssets), len(snapshot))
	}
	btc := snapshot["BTC"]
	if btc.Price != 97000 || btc.Change24hPct != 2.34 || btc.MarketCap != 1.9e12 || btc.Volume24h != 4.5e10 {
		t.Fatalf("unexpected BTC record: %+v", btc)
	}
	if btc.Name != "Bitcoin" || btc.ID != "bitcoin" {
		t.Fatalf("catalog fields not populated: %+v", btc)
	}

	// Assets missing from a partial response keep zeros, not synthetic data.
	eth := snapshot["ETH"]
	if eth.Price != 0 || eth.MarketCap != 0 {
		t.Fatalf("partial response must default to zero, got %+v", eth)
	}
}

func TestMarketBuildFallbackOnProviderError(t *testing.T) {
	quotes := &stubQuoteProvider{err: errors.New("provider down")}
	svc := NewMarketService(testTracer(), quotes, &stubSink{}, nil, rand.New(rand.NewSource(1)))

	snapshot := svc.Build(context.Background())

	if len(snapshot) != len(domain.TrackedAssets) {
		t.Fatalf("fallback must cover the full universe, got %d records", len(snapshot))
	}
	for _, asset := range domain.TrackedAssets {
		record, ok := snapshot[asset.Symbol]
		if !ok {
			t.Fatalf("missing fallback record for %s", asset.Symbol)
		}
		low, high := asset.BasePrice*0.95, asset.BasePrice*1.05
		if record.Price < low || record.Price > high {
			t.Fatalf("%s fallback price %f outside ±5%% of base %f", asset.Symbol, record.Price, asset.BasePrice)
		}
		if record.Change24hPct < -5 || record.Change24hPct > 5 {
			t.Fatalf("%s fallback change %f outside ±5", asset.Symbol, record.Change24hPct)
		}
		if record.MarketCap < 0 || record.Volume24h < 0 {
			t.Fatalf("%s fallback magnitudes must be non-negative: %+v", asset.Symbol, record)
		}
	}
}

func TestMarketRefreshPublishesToSink(t *testing.T) {
	sink := &stubSink{}
	quotes := &stubQuoteProvider{err: errors.New("provider down")}
	svc := NewMarketService(testTracer(), quotes, sink, nil, rand.New(rand.NewSource(1)))

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh must never error, got %v", err)
	}
	if len(sink.market) != 1 {
		t.Fatalf("expected 1 published snapshot, got %d", len(sink.market))
	}
}

func TestRoundPrice(t *testing.T) {
	if got := roundPrice(45000.0, 45000); got != 45000.00 {
		t.Fatalf("expected 45000.00, got %v", got)
	}
	if got := roundPrice(0.456789, 0.45); got != 0.4568 {
		t.Fatalf("sub-dollar assets keep 4 decimals, got %v", got)
	}
	if got := roundPrice(2512.3456, 2500); got != 2512.35 {
		t.Fatalf("dollar-plus assets keep 2 decimals, got %v", got)
	}
}

func TestPriceHistory(t *testing.T) {
	svc := NewMarketService(testTracer(), &stubQuoteProvider{}, &stubSink{}, nil, rand.New(rand.NewSource(1)))

	points := svc.PriceHistory("BTC", 7)
	if len(points) != 8 {
		t.Fatalf("expected 8 points for 7 days, got %d", len(points))
	}
	for i := 1; i < len(points); i++ {
		if !points[i].Timestamp.After(points[i-1].Timestamp) {
			t.Fatalf("history must be oldest-first, broken at %d", i)
		}
	}
	for _, p := range points {
		if math.Abs(p.Price-45000)/45000 > 0.05 {
			t.Fatalf("history price %f outside ±5%% of base", p.Price)
		}
	}

	if svc.PriceHistory("NOPE", 7) != nil {
		t.Fatal("unsupported symbol must return nil history")
	}
}
