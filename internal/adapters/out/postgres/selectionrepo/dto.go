// Package selectionrepo provides data transfer objects and mapping functions
// for carrier selection persistence. Selections are flat rows: one per order
// line and carrier, written as a set by the split ledger.
package selectionrepo

import (
	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// SelectionDTO represents the database structure for persisting carrier
// selections.
type SelectionDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID `gorm:"type:uuid;not null;index"`
	LineIndex   int       `gorm:"not null"`
	Quantity    int       `gorm:"type:int;not null"`
	CarrierCode string    `gorm:"type:varchar(64);not null"`
	Status      string    `gorm:"type:varchar(16);not null"`
}

// TableName specifies the database table name for carrier selection entities.
// Overrides GORM's default naming convention to use "carrier_selections".
func (SelectionDTO) TableName() string {
	return "carrier_selections"
}

// fromDomain converts a selection domain entity to its database representation.
func fromDomain(orderID kernel.UUID, selection *carrier.Selection) SelectionDTO {
	return SelectionDTO{
		ID:          selection.ID().Bytes(),
		OrderID:     orderID.Bytes(),
		LineIndex:   selection.LineIndex(),
		Quantity:    selection.Quantity(),
		CarrierCode: selection.CarrierCode(),
		Status:      selection.Status(),
	}
}

// toDomain converts a database DTO to a selection domain entity using
// RestoreSelection.
func toDomain(dto SelectionDTO) (*carrier.Selection, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	return carrier.RestoreSelection(id, dto.LineIndex, dto.Quantity, dto.CarrierCode, dto.Status)
}
