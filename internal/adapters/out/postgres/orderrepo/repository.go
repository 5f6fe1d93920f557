package orderrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ErrOrderNumberTaken is returned when intake hits the unique index on the
// order number.
var ErrOrderNumberTaken = errors.New("order number is already taken")

// uniqueViolation is the postgres error code for unique constraint violations.
const uniqueViolation = "23505"

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database, including its line rows.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
			return ErrOrderNumberTaken
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update saves an existing order to the database. Lines are immutable after
// intake, so only the order row itself is written.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).
		Where("id = ?", dto.ID).
		Select("Status", "CarrierCode", "RoyalBox").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).Preload("Lines").First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetByNumber retrieves an order by its external order number.
func (r *GormOrderRepository) GetByNumber(ctx context.Context, number string) (*order.Order, error) {
	if number == "" {
		return nil, errs.NewValueIsRequiredError("number is required")
	}

	var dto OrderDTO
	if err := r.db.WithContext(ctx).Preload("Lines").First(&dto, "number = ?", number).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", number)
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetAllInCarrierTransit retrieves all orders whose shipments are with a
// carrier: AwaitingPickup, InTransit, or OutForDelivery.
func (r *GormOrderRepository) GetAllInCarrierTransit(ctx context.Context) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).Preload("Lines").
		Find(&dtos, "status IN ?", []int{
			int(order.AwaitingPickup),
			int(order.InTransit),
			int(order.OutForDelivery),
		}).Error
	if err != nil {
		return nil, err
	}

	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}

	return orders, nil
}
