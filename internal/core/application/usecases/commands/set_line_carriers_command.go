package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/carrier"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrSetLineCarriersCommandIsNotConstructed = errors.New(
	"SetLineCarriersCommand must be created via NewSetLineCarriersCommand constructor",
)

// SetLineCarriersCommand represents a request to split an order's lines across
// carriers: a batch of per-line claims applied under merge or replace mode.
// Once any selection exists, the order is in split mode and the classic
// whole-order label path closes.
type SetLineCarriersCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	claims      []carrier.LineClaim
	mode        carrier.Mode

	guard guard.ConstructorGuard
}

// NewSetLineCarriersCommand creates a command to apply per-line carrier claims.
// Claim quantities and carrier codes are validated by the domain ledger when
// the command is handled; the constructor validates shape only.
func NewSetLineCarriersCommand(
	orderNumber string,
	claims []carrier.LineClaim,
	mode carrier.Mode,
) (SetLineCarriersCommand, error) {
	cmd := SetLineCarriersCommand{
		claims: claims,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setMode(mode),
	); err != nil {
		return SetLineCarriersCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SetLineCarriersCommand) Validate() error {
	return c.guard.Validate(ErrSetLineCarriersCommandIsNotConstructed)
}

// OrderNumber returns the external number of the order.
func (c SetLineCarriersCommand) OrderNumber() string {
	return c.orderNumber
}

// Claims returns the per-line carrier claims to apply.
func (c SetLineCarriersCommand) Claims() []carrier.LineClaim {
	return c.claims
}

// Mode returns how the claims combine with existing selections.
func (c SetLineCarriersCommand) Mode() carrier.Mode {
	return c.mode
}

func (c *SetLineCarriersCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber is required")
	}
	c.orderNumber = orderNumber
	return nil
}

func (c *SetLineCarriersCommand) setMode(mode carrier.Mode) error {
	if err := mode.Validate(); err != nil {
		return err
	}
	c.mode = mode
	return nil
}
