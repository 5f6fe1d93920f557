package selectionrepo

import (
	"context"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"

	"gorm.io/gorm"
)

// GormSelectionRepository implements SelectionRepository using GORM.
type GormSelectionRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormSelectionRepository creates a new GORM carrier selection repository.
func NewGormSelectionRepository(db *gorm.DB, tracker aggregateTracker) *GormSelectionRepository {
	return &GormSelectionRepository{
		db:      db,
		tracker: tracker,
	}
}

// GetByOrder retrieves all carrier selections of an order, ordered by line and
// carrier for stable ledger reconstruction.
func (r *GormSelectionRepository) GetByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) ([]*carrier.Selection, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []SelectionDTO
	err := r.db.WithContext(ctx).
		Order("line_index, carrier_code").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	selections := make([]*carrier.Selection, 0, len(dtos))
	for _, dto := range dtos {
		selection, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		selections = append(selections, selection)
	}

	return selections, nil
}

// ReplaceForOrder persists selections as the complete selection set of the
// order. Existing selections absent from the list are deleted.
func (r *GormSelectionRepository) ReplaceForOrder(
	ctx context.Context,
	orderID kernel.UUID,
	selections []*carrier.Selection,
) error {
	if err := orderID.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)
	if err := db.Where("order_id = ?", orderID.Bytes()).Delete(&SelectionDTO{}).Error; err != nil {
		return err
	}

	for _, selection := range selections {
		if err := selection.Validate(); err != nil {
			return err
		}

		dto := fromDomain(orderID, selection)
		if err := db.Create(&dto).Error; err != nil {
			return err
		}
		r.tracker.TrackAggregate(selection.ID(), selection)
	}

	return nil
}
