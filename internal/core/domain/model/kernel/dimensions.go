package kernel

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Unit is the measurement unit of a package dimension.
type Unit string

const (
	// UnitCentimeters measures dimensions in centimeters.
	UnitCentimeters Unit = "cm"
	// UnitInches measures dimensions in inches.
	UnitInches Unit = "in"
)

// ErrDimensionsAreNotConstructed is returned when attempting to use an improperly
// initialized Dimensions value. Dimensions must be created via NewDimensions.
var ErrDimensionsAreNotConstructed = errs.NewValueIsRequiredError(
	"dimensions must be created via NewDimensions constructor")

// Dimensions represents the validated inner dimensions of a shipping package.
// It is an immutable value object: every side must be strictly positive and the
// unit must be one of the supported measurement units. The zero value is invalid
// and fails Validate - use the constructor to create instances.
//
// Example:
//
//	dims, err := kernel.NewDimensions(40, 30, 20, kernel.UnitCentimeters)
//	if err != nil {
//	    // handle validation error
//	}
type Dimensions struct {
	length float64
	width  float64
	height float64
	unit   Unit

	guard guard.ConstructorGuard
}

// NewDimensions creates a validated Dimensions value object.
// All sides must be greater than zero and the unit must be a supported unit.
// Validation errors for all invalid fields are aggregated into a single error.
func NewDimensions(length, width, height float64, unit Unit) (Dimensions, error) {
	if err := joinDimensionErrors(length, width, height, unit); err != nil {
		return Dimensions{}, err
	}

	return Dimensions{
		length: length,
		width:  width,
		height: height,
		unit:   unit,
		guard:  guard.NewConstructorGuard(),
	}, nil
}

// Length returns the package length.
func (d Dimensions) Length() float64 {
	return d.length
}

// Width returns the package width.
func (d Dimensions) Width() float64 {
	return d.width
}

// Height returns the package height.
func (d Dimensions) Height() float64 {
	return d.height
}

// Unit returns the measurement unit of all three sides.
func (d Dimensions) Unit() Unit {
	return d.unit
}

// Volume returns length * width * height in cubic units.
func (d Dimensions) Volume() float64 {
	return d.length * d.width * d.height
}

// IsEqual compares two Dimensions values field by field.
func (d Dimensions) IsEqual(other Dimensions) bool {
	return d.length == other.length &&
		d.width == other.width &&
		d.height == other.height &&
		d.unit == other.unit
}

// String returns a human-readable "LxWxH unit" representation.
func (d Dimensions) String() string {
	return fmt.Sprintf("%gx%gx%g %s", d.length, d.width, d.height, d.unit)
}

// Validate checks that the Dimensions value was created via NewDimensions.
func (d Dimensions) Validate() error {
	return d.guard.Validate(ErrDimensionsAreNotConstructed)
}

// Validate checks that the unit is one of the supported measurement units.
func (u Unit) Validate() error {
	switch u {
	case UnitCentimeters, UnitInches:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause(
			"unit is invalid",
			fmt.Errorf("%q is not a supported dimension unit", string(u)),
		)
	}
}

func joinDimensionErrors(length, width, height float64, unit Unit) error {
	var errList []error
	for _, side := range []struct {
		name  string
		value float64
	}{
		{"length", length},
		{"width", width},
		{"height", height},
	} {
		if side.value <= 0 {
			errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
				side.name+" is invalid",
				fmt.Errorf("%g is not greater than 0", side.value),
			))
		}
	}

	if err := unit.Validate(); err != nil {
		errList = append(errList, err)
	}

	return errors.Join(errList...)
}
