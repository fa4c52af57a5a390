package domain

import "time"

// PriceRecord is the latest market data for one asset. Records are fully
// replaced on each refresh, never mutated in place.
type PriceRecord struct {
	ID           string    `json:"id"`
	Symbol       string    `json:"symbol"`
	Name         string    `json:"name"`
	Price        float64   `json:"price"`
	Change24hPct float64   `json:"change_24h_pct"`
	MarketCap    float64   `json:"market_cap"`
	Volume24h    float64   `json:"volume_24h"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Platform identifies which social network a post came from.
type Platform string

const (
	PlatformTwitter Platform = "twitter"
	PlatformReddit  Platform = "reddit"
)

// Engagement carries the interaction counters on a social post.
type Engagement struct {
	Likes   int `json:"likes"`
	Shares  int `json:"shares"`
	Replies int `json:"replies"`
}

// SocialPost is one scored social media post. Immutable once generated.
// Batches are ordered newest-first; the aggregator's trend computation
// depends on that ordering.
type SocialPost struct {
	ID         string     `json:"id"`
	Text       string     `json:"text"`
	Sentiment  float64    `json:"sentiment"`
	CreatedAt  time.Time  `json:"created_at"`
	Platform   Platform   `json:"platform"`
	Author     string     `json:"author"`
	Engagement Engagement `json:"engagement"`
}

// SentimentStats is the reduction of one post batch.
type SentimentStats struct {
	Overall  float64 `json:"overall"`
	Positive int     `json:"positive"`
	Negative int     `json:"negative"`
	Neutral  int     `json:"neutral"`
	Volume   int     `json:"volume"`
	Trend    float64 `json:"trend"`
}

// SentimentRecord is the aggregated sentiment state for one asset.
// RecentPosts holds at most the 10 newest posts of the batch it was built
// from; the rest of the batch is discarded after aggregation.
type SentimentRecord struct {
	Symbol      string       `json:"symbol"`
	Overall     float64      `json:"overall"`
	Positive    int          `json:"positive"`
	Negative    int          `json:"negative"`
	Neutral     int          `json:"neutral"`
	Volume      int          `json:"volume"`
	Trend       float64      `json:"trend"`
	UpdatedAt   time.Time    `json:"updated_at"`
	RecentPosts []SocialPost `json:"recent_posts"`
}

// MarketSnapshot maps every tracked symbol to its current price record.
type MarketSnapshot map[string]PriceRecord

// SentimentSnapshot maps every tracked symbol to its current sentiment record.
type SentimentSnapshot map[string]SentimentRecord

// PricePoint is one entry of a historical price series.
type PricePoint struct {
	Timestamp time.Time `json:"timestamp"`
	Price     float64   `json:"price"`
	Volume    float64   `json:"volume"`
}

// SentimentPoint is one entry of a historical sentiment series.
type SentimentPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Sentiment float64   `json:"sentiment"`
	Volume    int       `json:"volume"`
	Positive  int       `json:"positive"`
	Negative  int       `json:"negative"`
	Neutral   int       `json:"neutral"`
}
