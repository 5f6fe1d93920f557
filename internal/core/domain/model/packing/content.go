package packing

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrContentIsNotConstructed is returned when a Content instance was not created
// through the NewContent factory function.
var ErrContentIsNotConstructed = errors.New("Content must be created via NewContent constructor")

// Content represents a quantity of one order line allocated into a package.
// It is a value object: a row always carries a quantity of at least one - a
// zero-quantity allocation is removed from the package, never stored.
type Content struct { //nolint:recvcheck //pointer receivers used only during construction
	lineIndex   int
	sku         string
	quantity    int
	carrierCode string

	guard guard.ConstructorGuard
}

// NewContent creates a validated content row.
// The line index must be non-negative, the SKU non-empty, and the quantity at
// least one. The carrier code is optional and only used by carrier-split flows.
func NewContent(lineIndex int, sku string, quantity int, carrierCode string) (Content, error) {
	content := Content{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		content.setLineIndex(lineIndex),
		content.setSKU(sku),
		content.setQuantity(quantity),
	); err != nil {
		return Content{}, err
	}

	content.carrierCode = carrierCode
	return content, nil
}

// Validate ensures the Content was created through NewContent.
func (c Content) Validate() error {
	return c.guard.Validate(ErrContentIsNotConstructed)
}

// LineIndex returns the stable index of the allocated order line.
func (c Content) LineIndex() int {
	return c.lineIndex
}

// SKU returns the stock keeping unit of the allocated line.
func (c Content) SKU() string {
	return c.sku
}

// Quantity returns the allocated quantity (always >= 1).
func (c Content) Quantity() int {
	return c.quantity
}

// CarrierCode returns the per-content carrier assignment, or "" if none.
func (c Content) CarrierCode() string {
	return c.carrierCode
}

// withQuantity returns a copy of the row carrying quantity. The caller must
// ensure quantity >= 1; zero rows are removed by the package, not stored.
func (c Content) withQuantity(quantity int) Content {
	c.quantity = quantity
	return c
}

func (c *Content) setLineIndex(lineIndex int) error {
	if lineIndex < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"lineIndex is invalid",
			fmt.Errorf("%d is not a valid line index", lineIndex),
		)
	}
	c.lineIndex = lineIndex
	return nil
}

func (c *Content) setSKU(sku string) error {
	if sku == "" {
		return errs.NewValueIsRequiredError("sku is required")
	}
	c.sku = sku
	return nil
}

func (c *Content) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is less than 1", quantity),
		)
	}
	c.quantity = quantity
	return nil
}
