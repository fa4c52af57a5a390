package sentiment

import (
	"fmt"
	"math/rand"
	"sort"
	"sync"
	"time"

	"crypto-pulse/internal/domain"
)

// templates are keyword-parameterized post fragments spanning bullish,
// bearish, and neutral framings.
var templates = []string{
	"%s is looking bullish today! 🚀 #crypto",
	"Just bought more %s, to the moon! 🌕",
	"%s dip incoming? Time to buy more 💎🙌",
	"Bearish on %s for now, waiting for better entry",
	"%s breaking resistance! This could be big 📈",
	"Not feeling confident about %s right now 📉",
	"%s has strong fundamentals, holding long term",
	"Taking profits on %s, been a good run",
	"%s news looking positive lately",
	"Market manipulation on %s? Something feels off",
	"%s whale activity detected 🐋",
	"DCA into %s every week, best strategy",
	"%s partnerships looking promising",
	"Regulation fears affecting %s price",
	"%s technical analysis shows support here",
	"Selling %s before it drops more",
	"%s community is amazing! 💪",
	"FUD around %s is getting ridiculous",
	"%s use cases are expanding rapidly",
	"Institutional adoption of %s growing",
}

// Generator produces synthetic social post batches for a keyword. Each post
// carries a lexical sentiment score normalized into [-1, 1]. Output is pure
// in everything but the injected RNG stream.
type Generator struct {
	mu  sync.Mutex
	rng *rand.Rand
	now func() time.Time
}

// NewGenerator creates a generator drawing from rng. Pass a seeded source
// for reproducible output in tests.
func NewGenerator(rng *rand.Rand) *Generator {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Generator{rng: rng, now: time.Now}
}

// Generate returns count posts for keyword, ordered newest-first. The
// aggregator's trend computation relies on that ordering. The error return
// belongs to the post-source contract; the synthetic generator never fails.
func (g *Generator) Generate(keyword string, count int) ([]domain.SocialPost, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	now := g.now()
	posts := make([]domain.SocialPost, 0, count)
	for i := 0; i < count; i++ {
		text := fmt.Sprintf(templates[g.rng.Intn(len(templates))], keyword)

		// Creation time somewhere in the trailing 24 hours
		age := time.Duration(g.rng.Float64() * float64(24*time.Hour))

		platform := domain.PlatformReddit
		if g.rng.Float64() > 0.5 {
			platform = domain.PlatformTwitter
		}

		posts = append(posts, domain.SocialPost{
			ID:        fmt.Sprintf("post_%d_%d", i, now.UnixMilli()),
			Text:      text,
			Sentiment: Normalize(Score(text)),
			CreatedAt: now.Add(-age),
			Platform:  platform,
			Author:    fmt.Sprintf("user%d", g.rng.Intn(10000)),
			Engagement: domain.Engagement{
				Likes:   g.rng.Intn(500),
				Shares:  g.rng.Intn(100),
				Replies: g.rng.Intn(50),
			},
		})
	}

	sort.SliceStable(posts, func(i, j int) bool {
		return posts[i].CreatedAt.After(posts[j].CreatedAt)
	})
	return posts, nil
}
