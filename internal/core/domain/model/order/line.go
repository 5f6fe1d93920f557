package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// ErrLineIsNotConstructed is returned when a Line instance was not created
// through the NewLine factory function.
var ErrLineIsNotConstructed = errors.New("Line must be created via NewLine constructor")

// Line represents one ordered item. It is an immutable value object whose
// stable identity is its index within the order - not the SKU, since a SKU may
// repeat across bundle roles.
type Line struct { //nolint:recvcheck //pointer receivers used only during construction
	index       int
	sku         string
	productName string
	quantity    int

	guard guard.ConstructorGuard
}

// NewLine creates a validated order line.
// The index must be non-negative, the SKU non-empty, and the quantity positive.
// The product name is display-only and may be empty.
func NewLine(index int, sku, productName string, quantity int) (Line, error) {
	line := Line{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		line.setIndex(index),
		line.setSKU(sku),
		line.setQuantity(quantity),
	); err != nil {
		return Line{}, err
	}

	line.productName = productName
	return line, nil
}

// Validate ensures the Line was created through NewLine.
func (l Line) Validate() error {
	return l.guard.Validate(ErrLineIsNotConstructed)
}

// Index returns the stable line identity within its order.
func (l Line) Index() int {
	return l.index
}

// SKU returns the stock keeping unit of the ordered product.
func (l Line) SKU() string {
	return l.sku
}

// ProductName returns the display name of the ordered product.
func (l Line) ProductName() string {
	return l.productName
}

// Quantity returns the ordered quantity.
func (l Line) Quantity() int {
	return l.quantity
}

func (l *Line) setIndex(index int) error {
	if index < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"index is invalid",
			fmt.Errorf("%d is not a valid line index", index),
		)
	}
	l.index = index
	return nil
}

func (l *Line) setSKU(sku string) error {
	if sku == "" {
		return errs.NewValueIsRequiredError("sku is required")
	}
	l.sku = sku
	return nil
}

func (l *Line) setQuantity(quantity int) error {
	if quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", quantity),
		)
	}
	l.quantity = quantity
	return nil
}
