package ratecard

import (
	"sync"

	"courierhub/internal/core/domain/model/quote"
	"courierhub/internal/pkg/errs"
)

// Store is a thread-safe holder for the active rate cards. Cards are
// replaced wholesale on reload so in-flight requests keep pricing against
// the card they started with.
type Store struct {
	mu    sync.RWMutex
	cards map[storeKey]*RateCard
}

type storeKey struct {
	provider string
	mode     quote.ServiceMode
}

// NewStore creates an empty rate card store.
func NewStore() *Store {
	return &Store{
		cards: make(map[storeKey]*RateCard),
	}
}

// Replace swaps the full card set. Invalid cards are rejected and the
// previous set stays active.
func (s *Store) Replace(cards []*RateCard) error {
	next := make(map[storeKey]*RateCard, len(cards))
	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return err
		}
		next[storeKey{provider: card.Provider(), mode: card.Mode()}] = card
	}

	s.mu.Lock()
	s.cards = next
	s.mu.Unlock()
	return nil
}

// Get returns the active card for a provider and mode.
func (s *Store) Get(provider string, mode quote.ServiceMode) (*RateCard, error) {
	s.mu.RLock()
	card, ok := s.cards[storeKey{provider: provider, mode: mode}]
	s.mu.RUnlock()

	if !ok {
		return nil, errs.NewObjectNotFoundError("rate card", provider+"/"+mode.String())
	}
	return card, nil
}

// Len returns the number of active cards.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cards)
}
