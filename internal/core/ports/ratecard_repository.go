package ports

import (
	"context"

	"courierhub/internal/core/domain/model/ratecard"
)

// RateCardRepository loads provider rate cards from storage. Cards are
// read at startup and on hot reload; they are never written by the engine.
type RateCardRepository interface {
	// GetAll returns every configured rate card.
	GetAll(ctx context.Context) ([]*ratecard.RateCard, error)
}
