// Package packagerepo provides data transfer objects and mapping functions for
// package persistence. This package implements the repository pattern for the
// package aggregate, handling the conversion between domain entities and
// database representations.
package packagerepo

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/packing"

	"github.com/google/uuid"
)

// PackageDTO represents the database structure for persisting package aggregates.
// Maps package domain entities to relational database tables with proper foreign
// key relationships to the owning order and the content rows. Position records
// the package's place in the order's package list so reads return packages in
// the order they were saved.
type PackageDTO struct {
	ID          uuid.UUID    `gorm:"type:uuid;primaryKey"`
	OrderID     uuid.UUID    `gorm:"type:uuid;not null;index"`
	Position    int          `gorm:"not null;default:0"`
	CreatorID   string       `gorm:"type:varchar(64);not null"`
	BoxType     string       `gorm:"type:varchar(64);not null"`
	Length      float64      `gorm:"not null"`
	Width       float64      `gorm:"not null"`
	Height      float64      `gorm:"not null"`
	Unit        string       `gorm:"type:varchar(8);not null"`
	WeightKg    float64      `gorm:"not null"`
	CarrierCode string       `gorm:"type:varchar(64)"`
	LabelCode   string       `gorm:"type:varchar(128)"`
	LabelPDFURL string       `gorm:"type:varchar(512)"`
	Contents    []ContentDTO `gorm:"foreignKey:PackageID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the database table name for package entities.
// Overrides GORM's default naming convention to use "packages".
func (PackageDTO) TableName() string {
	return "packages"
}

// ContentDTO represents the database structure for persisting package contents.
// One row per allocated order line, with an optional per-line carrier override.
type ContentDTO struct {
	PackageID   uuid.UUID `gorm:"type:uuid;primaryKey"`
	LineIndex   int       `gorm:"primaryKey"`
	SKU         string    `gorm:"type:varchar(64);not null"`
	Quantity    int       `gorm:"type:int;not null"`
	CarrierCode string    `gorm:"type:varchar(64)"`
}

// TableName specifies the database table name for package content entities.
// Overrides GORM's default naming convention to use "package_contents".
func (ContentDTO) TableName() string {
	return "package_contents"
}

// fromDomain converts a package domain aggregate to its database representation.
// The package must be persisted: its identifier is already minted.
func fromDomain(orderID kernel.UUID, aggregate *packing.Package) PackageDTO {
	packageID := aggregate.ID().Bytes()

	contents := make([]ContentDTO, 0, len(aggregate.Contents()))
	for _, content := range aggregate.Contents() {
		contents = append(contents, ContentDTO{
			PackageID:   packageID,
			LineIndex:   content.LineIndex(),
			SKU:         content.SKU(),
			Quantity:    content.Quantity(),
			CarrierCode: content.CarrierCode(),
		})
	}

	dims := aggregate.InnerDimensions()
	return PackageDTO{
		ID:          packageID,
		OrderID:     orderID.Bytes(),
		CreatorID:   aggregate.CreatorID(),
		BoxType:     aggregate.BoxType(),
		Length:      dims.Length(),
		Width:       dims.Width(),
		Height:      dims.Height(),
		Unit:        string(dims.Unit()),
		WeightKg:    aggregate.WeightKg(),
		CarrierCode: aggregate.CarrierCode(),
		LabelCode:   aggregate.LabelCode(),
		LabelPDFURL: aggregate.LabelPDFURL(),
		Contents:    contents,
	}
}

// toDomain converts a database DTO to a package domain aggregate.
// Reconstructs the complete aggregate including contents and any recorded
// label using RestorePackage.
func toDomain(dto PackageDTO) (*packing.Package, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	dims, err := kernel.NewDimensions(dto.Length, dto.Width, dto.Height, kernel.Unit(dto.Unit))
	if err != nil {
		return nil, err
	}

	contents := make([]packing.Content, 0, len(dto.Contents))
	for _, contentDto := range dto.Contents {
		content, contentErr := packing.NewContent(
			contentDto.LineIndex, contentDto.SKU, contentDto.Quantity, contentDto.CarrierCode)
		if contentErr != nil {
			return nil, contentErr
		}
		contents = append(contents, content)
	}

	aggregate, err := packing.RestorePackage(
		id, dto.CreatorID, dto.BoxType, dims, dto.WeightKg, dto.CarrierCode, contents)
	if err != nil {
		return nil, err
	}

	if dto.LabelCode != "" {
		if err = aggregate.RecordLabel(dto.LabelCode, dto.LabelPDFURL); err != nil {
			return nil, err
		}
	}

	return aggregate, nil
}
