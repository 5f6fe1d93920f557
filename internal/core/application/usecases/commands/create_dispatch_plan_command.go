package commands

import (
	"errors"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateDispatchPlanCommandIsNotConstructed = errors.New(
	"CreateDispatchPlanCommand must be created via NewCreateDispatchPlanCommand constructor",
)

// CreateDispatchPlanCommand represents a request to group an order's pending
// carrier selections into a dispatch plan. In preview mode the plan is computed
// but nothing changes state; otherwise the grouped selections move to
// processing.
type CreateDispatchPlanCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	preview     bool

	guard guard.ConstructorGuard
}

// NewCreateDispatchPlanCommand creates a command to build a dispatch plan.
func NewCreateDispatchPlanCommand(orderNumber string, preview bool) (CreateDispatchPlanCommand, error) {
	cmd := CreateDispatchPlanCommand{
		preview: preview,
		guard:   guard.NewConstructorGuard(),
	}

	if err := cmd.setOrderNumber(orderNumber); err != nil {
		return CreateDispatchPlanCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateDispatchPlanCommand) Validate() error {
	return c.guard.Validate(ErrCreateDispatchPlanCommandIsNotConstructed)
}

// OrderNumber returns the external number of the order.
func (c CreateDispatchPlanCommand) OrderNumber() string {
	return c.orderNumber
}

// Preview reports whether the plan is computed without state changes.
func (c CreateDispatchPlanCommand) Preview() bool {
	return c.preview
}

func (c *CreateDispatchPlanCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber is required")
	}
	c.orderNumber = orderNumber
	return nil
}
