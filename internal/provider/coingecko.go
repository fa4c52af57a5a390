package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"crypto-pulse/internal/domain"

	"go.opentelemetry.io/otel/trace"
)

const coingeckoBaseURL = "https://api.coingecko.com/api/v3"

// CoinGeckoQuote is one asset's row from the /simple/price endpoint.
// Optional fields the API omits come back as zero.
type CoinGeckoQuote struct {
	Price        float64
	Change24hPct float64
	MarketCap    float64
	Volume24h    float64
}

// CoinGeckoProvider fetches current market data from the CoinGecko free API.
type CoinGeckoProvider struct {
	client  *http.Client
	baseURL string
	tracer  trace.Tracer
	limiter *RateLimiter
}

// NewCoinGeckoProvider creates a provider with built-in rate limiting.
// Rate limited to 8 requests per minute (one token every 7.5 seconds).
func NewCoinGeckoProvider(tracer trace.Tracer) *CoinGeckoProvider {
	return &CoinGeckoProvider{
		client:  &http.Client{Timeout: 30 * time.Second},
		baseURL: coingeckoBaseURL,
		tracer:  tracer,
		limiter: NewRateLimiter(8, 7500*time.Millisecond),
	}
}

// FetchQuotes fetches price, 24h change, market cap, and 24h volume for the
// given CoinGecko ids in a single API call. The result is keyed by id.
func (p *CoinGeckoProvider) FetchQuotes(ctx context.Context, ids []string) (map[string]CoinGeckoQuote, error) {
	_, span := p.tracer.Start(ctx, "coingecko.fetch-quotes")
	defer span.End()

	url := fmt.Sprintf(
		"%s/simple/price?ids=%s&vs_currencies=usd&include_24hr_change=true&include_market_cap=true&include_24hr_vol=true",
		p.baseURL, strings.Join(ids, ","))

	body, err := p.doRequest(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("fetch quotes: %w", err)
	}

	// Response shape: {"bitcoin": {"usd": 97000, "usd_24h_change": 2.34,
	// "usd_market_cap": 1.9e12, "usd_24h_vol": 4.5e10}, ...}
	var raw map[string]map[string]float64
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("parse quotes: %w", err)
	}

	result := make(map[string]CoinGeckoQuote, len(raw))
	for id, data := range raw {
		result[id] = CoinGeckoQuote{
			Price:        data["usd"],
			Change24hPct: data["usd_24h_change"],
			MarketCap:    data["usd_market_cap"],
			Volume24h:    data["usd_24h_vol"],
		}
	}
	return result, nil
}

// TrackedIDs returns the CoinGecko ids of every tracked asset, in catalog order.
func TrackedIDs() []string {
	ids := make([]string, 0, len(domain.TrackedAssets))
	for _, asset := range domain.TrackedAssets {
		ids = append(ids, asset.ID)
	}
	return ids
}

func (p *CoinGeckoProvider) doRequest(ctx context.Context, url string) ([]byte, error) {
	if err := p.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("coingecko API error %d: %s", resp.StatusCode, string(body))
	}

	return io.ReadAll(resp.Body)
}
