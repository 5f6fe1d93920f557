package packagerepo

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"

	"gorm.io/gorm"
)

// GormPackageRepository implements PackageRepository using GORM.
type GormPackageRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker defines the interface for tracking aggregates.
type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// NewGormPackageRepository creates a new GORM package repository.
func NewGormPackageRepository(db *gorm.DB, tracker aggregateTracker) *GormPackageRepository {
	return &GormPackageRepository{
		db:      db,
		tracker: tracker,
	}
}

// GetByOrder retrieves all packages of an order with their contents.
func (r *GormPackageRepository) GetByOrder(ctx context.Context, orderID kernel.UUID) ([]*packing.Package, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PackageDTO
	err := r.db.WithContext(ctx).Preload("Contents").
		Order("position").
		Find(&dtos, "order_id = ?", orderID.Bytes()).Error
	if err != nil {
		return nil, err
	}

	packages := make([]*packing.Package, 0, len(dtos))
	for _, dto := range dtos {
		pkg, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		packages = append(packages, pkg)
	}

	return packages, nil
}

// ReplaceForOrder persists packages as the complete package set of the order.
// Packages without an identifier are minted one; packages present in storage
// but absent from the list are deleted. Returns the persisted aggregates.
func (r *GormPackageRepository) ReplaceForOrder(
	ctx context.Context,
	orderID kernel.UUID,
	packages []*packing.Package,
) ([]*packing.Package, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	persisted := make([]*packing.Package, 0, len(packages))
	for _, pkg := range packages {
		if err := pkg.Validate(); err != nil {
			return nil, err
		}

		if pkg.ID() == nil {
			minted, err := mintID(pkg)
			if err != nil {
				return nil, err
			}
			persisted = append(persisted, minted)
			continue
		}
		persisted = append(persisted, pkg)
	}

	db := r.db.WithContext(ctx)

	// The whole set is rewritten: clearing first keeps the replace semantics
	// simple and runs inside the caller's transaction.
	packageIDs := db.Model(&PackageDTO{}).Select("id").Where("order_id = ?", orderID.Bytes())
	if err := db.Where("package_id IN (?)", packageIDs).Delete(&ContentDTO{}).Error; err != nil {
		return nil, err
	}
	if err := db.Where("order_id = ?", orderID.Bytes()).Delete(&PackageDTO{}).Error; err != nil {
		return nil, err
	}

	for position, pkg := range persisted {
		dto := fromDomain(orderID, pkg)
		dto.Position = position
		if err := db.Create(&dto).Error; err != nil {
			return nil, err
		}
		r.tracker.TrackAggregate(*pkg.ID(), pkg)
	}

	return persisted, nil
}

// Update persists changes to a single existing package, rewriting its contents.
func (r *GormPackageRepository) Update(
	ctx context.Context,
	orderID kernel.UUID,
	aggregate *packing.Package,
) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.ID() == nil {
		return packing.ErrPackageIsNotConstructed
	}

	dto := fromDomain(orderID, aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&PackageDTO{}).
		Where("id = ? AND order_id = ?", dto.ID, dto.OrderID).
		Select("CreatorID", "BoxType", "Length", "Width", "Height", "Unit",
			"WeightKg", "CarrierCode", "LabelCode", "LabelPDFURL").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	if err := db.Where("package_id = ?", dto.ID).Delete(&ContentDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Contents) > 0 {
		if err := db.Create(&dto.Contents).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(*aggregate.ID(), aggregate)
	return nil
}

// mintID rebuilds an unpersisted package as a persisted aggregate with a fresh
// identifier. The original draft is left untouched.
func mintID(pkg *packing.Package) (*packing.Package, error) {
	return packing.RestorePackage(
		kernel.NewUUID(),
		pkg.CreatorID(),
		pkg.BoxType(),
		pkg.InnerDimensions(),
		pkg.WeightKg(),
		pkg.CarrierCode(),
		pkg.Contents(),
	)
}
