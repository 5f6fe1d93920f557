package services

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/packing"
)

// PlanDefaults are the package attributes applied to every auto-planned
// package. Zero-valued fields are left unset on the draft.
type PlanDefaults struct {
	BoxType  string
	Dims     kernel.Dimensions
	WeightKg float64
}

// PackagePlanner is a domain service producing an auto-plan draft for the bulk
// builder: one unit per package, covering the remaining (unallocated) quantity
// of every packable line.
//
// The planner never mutates the authoritative package set; it returns a draft
// that callers feed through the draft merge to become authoritative.
type PackagePlanner struct{}

// NewPackagePlanner creates a new PackagePlanner instance.
func NewPackagePlanner() PackagePlanner {
	return PackagePlanner{}
}

// Preview builds the one-unit-per-package draft for creatorID over the
// remaining quantities of o's packable lines, given the current packages.
func (p PackagePlanner) Preview(
	o *order.Order,
	current []*packing.Package,
	creatorID string,
	defaults PlanDefaults,
) ([]*packing.Package, error) {
	// A scratch store keeps the draft subject to the same conservation
	// arithmetic as interactive edits.
	scratch, err := packing.NewStore(o, current)
	if err != nil {
		return nil, err
	}

	base := scratch.Len()
	for _, line := range o.PackableLines() {
		for scratch.Remaining(line.Index()) > 0 {
			index := scratch.Len()
			if _, err = scratch.AddEmptyPackage(creatorID); err != nil {
				return nil, err
			}

			if err = p.applyDefaults(scratch, index, creatorID, defaults); err != nil {
				return nil, err
			}

			added, addErr := scratch.AddLineToPackage(index, creatorID, line.Index(), 1)
			if addErr != nil {
				return nil, addErr
			}
			if added == 0 {
				break
			}
		}
	}

	return scratch.Packages()[base:], nil
}

func (p PackagePlanner) applyDefaults(
	scratch *packing.Store,
	index int,
	creatorID string,
	defaults PlanDefaults,
) error {
	if defaults.BoxType != "" {
		if err := scratch.SetBoxType(index, creatorID, defaults.BoxType); err != nil {
			return err
		}
	}
	if defaults.Dims.Validate() == nil {
		if err := scratch.SetInnerDimensions(index, creatorID, defaults.Dims); err != nil {
			return err
		}
	}
	if defaults.WeightKg > 0 {
		if err := scratch.SetWeight(index, creatorID, defaults.WeightKg); err != nil {
			return err
		}
	}
	return nil
}
