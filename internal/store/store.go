// Package store holds the process-wide current market and sentiment
// snapshots and fans out change events to subscribers. Snapshots are
// replaced wholesale via an atomic pointer swap, so readers never observe a
// partially updated snapshot; the builders are the only writers.
package store

import (
	"log"
	"sync"
	"sync/atomic"

	"crypto-pulse/internal/domain"
)

// UpdateKind discriminates the payload of an Update.
type UpdateKind string

const (
	UpdateMarket    UpdateKind = "cryptoUpdate"
	UpdateSentiment UpdateKind = "sentimentUpdate"
)

// Update is one snapshot-changed event. Exactly one of Market or Sentiment
// is set, according to Kind.
type Update struct {
	Kind      UpdateKind
	Market    domain.MarketSnapshot
	Sentiment domain.SentimentSnapshot
}

// Subscription receives future snapshot updates of both kinds. Late joiners
// should pull the current snapshots synchronously instead of waiting for
// the next refresh.
type Subscription struct {
	C chan Update
}

// subscriberBuffer bounds how many undelivered updates a slow subscriber
// may accumulate before further sends to it are dropped.
const subscriberBuffer = 16

// Store is the snapshot store plus subscriber registry.
type Store struct {
	market    atomic.Pointer[domain.MarketSnapshot]
	sentiment atomic.Pointer[domain.SentimentSnapshot]

	mu   sync.Mutex
	subs map[*Subscription]struct{}
}

func New() *Store {
	s := &Store{subs: make(map[*Subscription]struct{})}
	empty := domain.MarketSnapshot{}
	s.market.Store(&empty)
	emptySentiment := domain.SentimentSnapshot{}
	s.sentiment.Store(&emptySentiment)
	return s
}

// Market returns the current market snapshot. Empty until the first refresh
// completes.
func (s *Store) Market() domain.MarketSnapshot {
	return *s.market.Load()
}

// Sentiment returns the current sentiment snapshot.
func (s *Store) Sentiment() domain.SentimentSnapshot {
	return *s.sentiment.Load()
}

// ReplaceMarket swaps in a new market snapshot and publishes it.
func (s *Store) ReplaceMarket(snapshot domain.MarketSnapshot) {
	s.market.Store(&snapshot)
	s.publish(Update{Kind: UpdateMarket, Market: snapshot})
}

// ReplaceSentiment swaps in a new sentiment snapshot and publishes it.
func (s *Store) ReplaceSentiment(snapshot domain.SentimentSnapshot) {
	s.sentiment.Store(&snapshot)
	s.publish(Update{Kind: UpdateSentiment, Sentiment: snapshot})
}

// Subscribe registers a new subscriber. The caller must drain the channel
// and call Unsubscribe when done.
func (s *Store) Subscribe() *Subscription {
	sub := &Subscription{C: make(chan Update, subscriberBuffer)}
	s.mu.Lock()
	s.subs[sub] = struct{}{}
	s.mu.Unlock()
	return sub
}

// Unsubscribe removes sub from the registry and closes its channel.
func (s *Store) Unsubscribe(sub *Subscription) {
	s.mu.Lock()
	_, ok := s.subs[sub]
	delete(s.subs, sub)
	s.mu.Unlock()
	if ok {
		close(sub.C)
	}
}

// SubscriberCount reports the number of registered subscribers.
func (s *Store) SubscriberCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

// publish delivers the update to every subscriber with a non-blocking send.
// A subscriber whose buffer is full misses this update; it can recover by
// reading the current snapshot synchronously.
func (s *Store) publish(update Update) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dropped := 0
	for sub := range s.subs {
		select {
		case sub.C <- update:
		default:
			dropped++
		}
	}
	if dropped > 0 {
		log.Printf("store: dropped %s update for %d slow subscribers", update.Kind, dropped)
	}
}
