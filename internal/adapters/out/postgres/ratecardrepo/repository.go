package ratecardrepo

import (
	"context"

	"courierhub/internal/core/domain/model/ratecard"

	"gorm.io/gorm"
)

// GormRateCardRepository implements RateCardRepository using GORM.
// Rate cards are operator-managed reference data: the engine reads them at
// startup and on hot reload and never writes them, so the repository only
// exposes reads plus a Seed helper for fixtures and first-run setup.
type GormRateCardRepository struct {
	db *gorm.DB
}

// NewGormRateCardRepository creates a new GORM rate card repository.
func NewGormRateCardRepository(db *gorm.DB) *GormRateCardRepository {
	return &GormRateCardRepository{db: db}
}

// GetAll returns every configured rate card with its slabs in threshold order.
func (r *GormRateCardRepository) GetAll(ctx context.Context) ([]*ratecard.RateCard, error) {
	var dtos []RateCardDTO
	err := r.db.WithContext(ctx).
		Preload("Slabs", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	cards := make([]*ratecard.RateCard, 0, len(dtos))
	for _, dto := range dtos {
		card, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}

	return cards, nil
}

// Seed inserts cards that do not exist yet, keyed by provider and mode.
// Existing cards are left untouched so operator edits survive restarts.
func (r *GormRateCardRepository) Seed(ctx context.Context, cards []*ratecard.RateCard) error {
	for _, card := range cards {
		if err := card.Validate(); err != nil {
			return err
		}

		var count int64
		err := r.db.WithContext(ctx).Model(&RateCardDTO{}).
			Where("provider = ? AND mode = ?", card.Provider(), int(card.Mode())).
			Count(&count).Error
		if err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		dto := fromDomain(card)
		if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
			return err
		}
	}

	return nil
}
