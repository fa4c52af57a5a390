package sentiment

import (
	"math"

	"crypto-pulse/internal/domain"
)

// Classification thresholds. Scores at exactly ±0.1 count as neutral.
const (
	positiveThreshold = 0.1
	negativeThreshold = -0.1
)

// Aggregate reduces a newest-first batch of scored posts into overall
// sentiment statistics. Trend compares the mean score of the newest third
// against the oldest third, by input position: re-deriving the split from
// timestamps would silently invert the sign if the ordering contract ever
// broke, so the input order is trusted as-is.
func Aggregate(posts []domain.SocialPost) domain.SentimentStats {
	stats := domain.SentimentStats{Volume: len(posts)}
	if len(posts) == 0 {
		return stats
	}

	total := 0.0
	for _, post := range posts {
		total += post.Sentiment
		switch {
		case post.Sentiment > positiveThreshold:
			stats.Positive++
		case post.Sentiment < negativeThreshold:
			stats.Negative++
		default:
			stats.Neutral++
		}
	}
	stats.Overall = round3(total / float64(len(posts)))

	n := len(posts)
	recent := posts[:n/3]
	older := posts[(n*2)/3:]
	stats.Trend = round3(meanScore(recent) - meanScore(older))

	return stats
}

func meanScore(posts []domain.SocialPost) float64 {
	if len(posts) == 0 {
		return 0
	}
	sum := 0.0
	for _, post := range posts {
		sum += post.Sentiment
	}
	return sum / float64(len(posts))
}

// round3 rounds to 3 decimal places for cross-process stability.
func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
