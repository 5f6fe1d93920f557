// Package orderrepo provides data transfer objects and mapping functions for order persistence.
// This package implements the repository pattern for the order domain aggregate, handling
// the conversion between domain entities and database representations.
package orderrepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Maps order domain entities to relational database tables with proper indexing
// for efficient lookup by external order number and fulfillment status.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Number      string    `gorm:"type:varchar(64);not null;uniqueIndex"`
	Status      int       `gorm:"type:int;not null;index"`
	CarrierCode string    `gorm:"type:varchar(64)"`
	RoyalBox    bool      `gorm:"not null"`
	Lines       []LineDTO `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for order entities.
// Overrides GORM's default naming convention to use "orders".
func (OrderDTO) TableName() string {
	return "orders"
}

// LineDTO represents the database structure for persisting order lines.
// Lines are immutable child rows of the order: the line set is written once at
// intake and only read afterwards. The role column carries the bundle role so
// that child lines can be excluded directly in read-side queries.
type LineDTO struct {
	OrderID     uuid.UUID `gorm:"type:uuid;primaryKey"`
	LineIndex   int       `gorm:"primaryKey"`
	SKU         string    `gorm:"type:varchar(64);not null"`
	ProductName string    `gorm:"type:varchar(255)"`
	Quantity    int       `gorm:"type:int;not null"`
	Role        string    `gorm:"type:varchar(16);not null"`
}

// TableName specifies the database table name for order line entities.
// Overrides GORM's default naming convention to use "order_lines".
func (LineDTO) TableName() string {
	return "order_lines"
}

// fromDomain converts an order domain aggregate to its database representation.
// Maps all order attributes including the per-line bundle roles.
func fromDomain(aggregate *order.Order) OrderDTO {
	orderID := aggregate.ID().Bytes()

	lines := make([]LineDTO, 0, len(aggregate.Lines()))
	for _, line := range aggregate.Lines() {
		lines = append(lines, LineDTO{
			OrderID:     orderID,
			LineIndex:   line.Index(),
			SKU:         line.SKU(),
			ProductName: line.ProductName(),
			Quantity:    line.Quantity(),
			Role:        aggregate.RoleOf(line.Index()).String(),
		})
	}

	return OrderDTO{
		ID:          orderID,
		Number:      aggregate.Number(),
		Status:      int(aggregate.Status()),
		CarrierCode: aggregate.CarrierCode(),
		RoyalBox:    aggregate.IsRoyalBox(),
		Lines:       lines,
	}
}

// toDomain converts a database DTO to an order domain aggregate.
// Reconstructs the complete aggregate including lines and roles using RestoreOrder.
func toDomain(dto OrderDTO) (*order.Order, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	lines := make([]order.Line, 0, len(dto.Lines))
	roles := make(map[int]order.Role, len(dto.Lines))
	for _, lineDto := range dto.Lines {
		line, lineErr := order.NewLine(lineDto.LineIndex, lineDto.SKU, lineDto.ProductName, lineDto.Quantity)
		if lineErr != nil {
			return nil, lineErr
		}
		lines = append(lines, line)

		role, roleErr := order.RoleFromString(lineDto.Role)
		if roleErr != nil {
			return nil, roleErr
		}
		roles[lineDto.LineIndex] = role
	}

	return order.RestoreOrder(id, dto.Number, lines, roles,
		order.Status(dto.Status), dto.CarrierCode, dto.RoyalBox)
}
