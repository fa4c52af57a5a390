package store

import (
	"testing"
	"time"

	"crypto-pulse/internal/domain"
)

func TestEmptySnapshotsOnStart(t *testing.T) {
	s := New()
	if s.Market() == nil || len(s.Market()) != 0 {
		t.Fatalf("expected empty market snapshot, got %v", s.Market())
	}
	if s.Sentiment() == nil || len(s.Sentiment()) != 0 {
		t.Fatalf("expected empty sentiment snapshot, got %v", s.Sentiment())
	}
}

func TestReplaceMarketVisibleToReaders(t *testing.T) {
	s := New()
	snapshot := domain.MarketSnapshot{"BTC": {Symbol: "BTC", Price: 45000}}
	s.ReplaceMarket(snapshot)

	got := s.Market()
	if got["BTC"].Price != 45000 {
		t.Fatalf("expected replaced snapshot, got %v", got)
	}
}

func TestSubscribeReceivesUpdates(t *testing.T) {
	s := New()
	sub := s.Subscribe()
	defer s.Unsubscribe(sub)

	s.ReplaceMarket(domain.MarketSnapshot{"BTC": {Symbol: "BTC"}})
	s.ReplaceSentiment(domain.SentimentSnapshot{"BTC": {Symbol: "BTC"}})

	first := receive(t, sub)
	if first.Kind != UpdateMarket || first.Market["BTC"].Symbol != "BTC" {
		t.Fatalf("unexpected first update: %+v", first)
	}
	second := receive(t, sub)
	if second.Kind != UpdateSentiment {
		t.Fatalf("unexpected second update: %+v", second)
	}
}

func TestUnsubscribeClosesChannel(t *testing.T) {
	s := New()
	sub := s.Subscribe()
	if s.SubscriberCount() != 1 {
		t.Fatalf("expected 1 subscriber, got %d", s.SubscriberCount())
	}

	s.Unsubscribe(sub)
	if s.SubscriberCount() != 0 {
		t.Fatalf("expected 0 subscribers, got %d", s.SubscriberCount())
	}
	if _, ok := <-sub.C; ok {
		t.Fatal("expected closed channel after unsubscribe")
	}

	// Idempotent
	s.Unsubscribe(sub)
}

func TestSlowSubscriberDoesNotBlockPublisher(t *testing.T) {
	s := New()
	sub := s.Subscribe()
	defer s.Unsubscribe(sub)

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < subscriberBuffer*3; i++ {
			s.ReplaceMarket(domain.MarketSnapshot{})
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publisher blocked on a slow subscriber")
	}

	// The subscriber missed updates but is still registered and readable.
	if s.SubscriberCount() != 1 {
		t.Fatalf("expected subscriber to remain registered, got %d", s.SubscriberCount())
	}
	receive(t, sub)
}

func TestLateJoinerReadsCurrentState(t *testing.T) {
	s := New()
	s.ReplaceMarket(domain.MarketSnapshot{"ETH": {Symbol: "ETH", Price: 2500}})

	sub := s.Subscribe()
	defer s.Unsubscribe(sub)

	// No replay on the channel; the current snapshot comes from a pull.
	select {
	case <-sub.C:
		t.Fatal("late joiner should not receive replayed updates")
	case <-time.After(20 * time.Millisecond):
	}
	if s.Market()["ETH"].Price != 2500 {
		t.Fatal("late joiner could not read current snapshot")
	}
}

func receive(t *testing.T, sub *Subscription) Update {
	t.Helper()
	select {
	case update := <-sub.C:
		return update
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for update")
		return Update{}
	}
}
