package service

import (
	"context"
	"encoding/json"
	"log"
	"math"
	"math/rand"
	"sync"
	"time"

	"crypto-pulse/internal/domain"
	"crypto-pulse/internal/sentiment"

	"go.opentelemetry.io/otel/trace"
)

const (
	sentimentCacheTTL = 10 * time.Minute

	// corpusSize posts are generated and aggregated per asset; only the
	// recentPostLimit newest survive into the record.
	corpusSize      = 50
	recentPostLimit = 10
)

// PostGenerator is the social post source. The synthetic corpus generator
// stands behind the same interface a real social fetch would.
type PostGenerator interface {
	Generate(keyword string, count int) ([]domain.SocialPost, error)
}

// SentimentService builds the sentiment snapshot: per tracked asset it
// generates a post corpus, aggregates it, and keeps the newest posts.
// Like the market builder it never returns an error and always covers the
// full asset universe.
type SentimentService struct {
	tracer    trace.Tracer
	generator PostGenerator
	sink      SnapshotSink
	redis     RedisClient

	mu  sync.Mutex
	rng *rand.Rand
}

func NewSentimentService(tracer trace.Tracer, generator PostGenerator, sink SnapshotSink, redisClient RedisClient, rng *rand.Rand) *SentimentService {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &SentimentService{
		tracer:    tracer,
		generator: generator,
		sink:      sink,
		redis:     redisClient,
		rng:       rng,
	}
}

// Refresh builds a fresh sentiment snapshot and publishes it to the sink.
func (s *SentimentService) Refresh(ctx context.Context) error {
	ctx, span := s.tracer.Start(ctx, "sentiment-service.refresh")
	defer span.End()

	snapshot := s.Build(ctx)
	s.sink.ReplaceSentiment(snapshot)
	s.cacheSnapshot(ctx, snapshot)
	return nil
}

// Build assembles a sentiment record for every tracked asset. An asset
// whose corpus generation fails gets a zero-valued placeholder record
// rather than a missing key.
func (s *SentimentService) Build(ctx context.Context) domain.SentimentSnapshot {
	_, span := s.tracer.Start(ctx, "sentiment-service.build")
	defer span.End()

	now := time.Now().UTC()
	snapshot := make(domain.SentimentSnapshot, len(domain.TrackedAssets))
	for _, asset := range domain.TrackedAssets {
		posts, err := s.generator.Generate(asset.Name, corpusSize)
		if err != nil {
			log.Printf("post generation failed for %s, writing placeholder: %v", asset.Symbol, err)
			snapshot[asset.Symbol] = domain.SentimentRecord{
				Symbol:      asset.Symbol,
				UpdatedAt:   now,
				RecentPosts: []domain.SocialPost{},
			}
			continue
		}

		stats := sentiment.Aggregate(posts)
		recent := posts
		if len(recent) > recentPostLimit {
			recent = recent[:recentPostLimit]
		}
		snapshot[asset.Symbol] = domain.SentimentRecord{
			Symbol:      asset.Symbol,
			Overall:     stats.Overall,
			Positive:    stats.Positive,
			Negative:    stats.Negative,
			Neutral:     stats.Neutral,
			Volume:      stats.Volume,
			Trend:       stats.Trend,
			UpdatedAt:   now,
			RecentPosts: recent,
		}
	}
	return snapshot
}

// SamplePosts returns a fresh corpus sample for symbol, newest-first.
func (s *SentimentService) SamplePosts(symbol string, limit int) []domain.SocialPost {
	asset, ok := domain.AssetBySymbol[symbol]
	if !ok {
		return nil
	}
	posts, err := s.generator.Generate(asset.Name, limit)
	if err != nil {
		return []domain.SocialPost{}
	}
	return posts
}

// SentimentHistory synthesizes an hourly sentiment series for symbol. The
// series is illustrative; sentiment history is not retained across
// refreshes.
func (s *SentimentService) SentimentHistory(symbol string, hours int) []domain.SentimentPoint {
	if !domain.IsSupported(symbol) {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	points := make([]domain.SentimentPoint, 0, hours+1)
	for i := hours; i >= 0; i-- {
		points = append(points, domain.SentimentPoint{
			Timestamp: now.Add(-time.Duration(i) * time.Hour),
			Sentiment: math.Round((s.rng.Float64()*2-1)*1000) / 1000,
			Volume:    s.rng.Intn(1000) + 100,
			Positive:  s.rng.Intn(50) + 20,
			Negative:  s.rng.Intn(30) + 10,
			Neutral:   s.rng.Intn(40) + 30,
		})
	}
	return points
}

func (s *SentimentService) cacheSnapshot(ctx context.Context, snapshot domain.SentimentSnapshot) {
	if s.redis == nil {
		return
	}
	data, err := json.Marshal(snapshot)
	if err != nil {
		return
	}
	if err := s.redis.Set(ctx, "snapshot:sentiment", data, sentimentCacheTTL).Err(); err != nil {
		log.Printf("redis sentiment snapshot write error: %v", err)
	}
}
