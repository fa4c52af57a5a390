package sentiment

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"crypto-pulse/internal/domain"
)

func seededGenerator(seed int64) *Generator {
	g := NewGenerator(rand.New(rand.NewSource(seed)))
	g.now = func() time.Time {
		return time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	}
	return g
}

func TestGenerateCount(t *testing.T) {
	g := seededGenerator(42)

	posts, err := g.Generate("Bitcoin", 50)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 50 {
		t.Fatalf("expected 50 posts, got %d", len(posts))
	}

	posts, err = g.Generate("Bitcoin", 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("expected empty batch, got %d", len(posts))
	}
}

func TestGenerateNewestFirst(t *testing.T) {
	g := seededGenerator(7)
	posts, _ := g.Generate("Ethereum", 50)

	for i := 1; i < len(posts); i++ {
		if posts[i].CreatedAt.After(posts[i-1].CreatedAt) {
			t.Fatalf("posts not ordered newest-first at index %d", i)
		}
	}
}

func TestGeneratePostFields(t *testing.T) {
	g := seededGenerator(13)
	now := g.now()
	posts, _ := g.Generate("Cardano", 50)

	for i, post := range posts {
		if !strings.Contains(post.Text, "Cardano") {
			t.Fatalf("post %d missing keyword: %q", i, post.Text)
		}
		if post.Sentiment < -1 || post.Sentiment > 1 {
			t.Fatalf("post %d sentiment out of range: %f", i, post.Sentiment)
		}
		if post.Platform != domain.PlatformTwitter && post.Platform != domain.PlatformReddit {
			t.Fatalf("post %d has unknown platform %q", i, post.Platform)
		}
		if post.CreatedAt.After(now) || post.CreatedAt.Before(now.Add(-24*time.Hour)) {
			t.Fatalf("post %d timestamp outside trailing 24h: %v", i, post.CreatedAt)
		}
		if post.Author == "" || post.ID == "" {
			t.Fatalf("post %d missing author or id", i)
		}
	}
}

func TestGenerateReproducibleWithSeed(t *testing.T) {
	a, _ := seededGenerator(99).Generate("Solana", 20)
	b, _ := seededGenerator(99).Generate("Solana", 20)

	for i := range a {
		if a[i].Text != b[i].Text || a[i].Sentiment != b[i].Sentiment || !a[i].CreatedAt.Equal(b[i].CreatedAt) {
			t.Fatalf("seeded generators diverged at index %d", i)
		}
	}
}

func TestGenerateScoresMatchLexicon(t *testing.T) {
	g := seededGenerator(3)
	posts, _ := g.Generate("Polkadot", 50)

	for _, post := range posts {
		if expected := Normalize(Score(post.Text)); post.Sentiment != expected {
			t.Fatalf("post score %f does not match lexicon score %f for %q", post.Sentiment, expected, post.Text)
		}
	}
}
