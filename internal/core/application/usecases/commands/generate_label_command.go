package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGenerateLabelCommandIsNotConstructed = errors.New(
	"GenerateLabelCommand must be created via NewGenerateLabelCommand constructor",
)

// GenerateLabelCommand represents a request to issue a shipping label for one
// package through the classic whole-order path.
//
// Example:
//
//	cmd, err := NewGenerateLabelCommand("ORD-1001", packageID, "user-42")
//	if err != nil {
//	    return fmt.Errorf("invalid request: %w", err)
//	}
//
//	label, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return fmt.Errorf("label generation failed: %w", err)
//	}
//	fmt.Printf("label %s at %s", label.Code, label.PDFURL)
type GenerateLabelCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	packageID   kernel.UUID
	actorID     string

	guard guard.ConstructorGuard
}

// NewGenerateLabelCommand creates a command to issue a label for one package.
func NewGenerateLabelCommand(
	orderNumber string,
	packageID kernel.UUID,
	actorID string,
) (GenerateLabelCommand, error) {
	cmd := GenerateLabelCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setPackageID(packageID),
		cmd.setActorID(actorID),
	); err != nil {
		return GenerateLabelCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateLabelCommand) Validate() error {
	return c.guard.Validate(ErrGenerateLabelCommandIsNotConstructed)
}

// OrderNumber returns the external number of the order.
func (c GenerateLabelCommand) OrderNumber() string {
	return c.orderNumber
}

// PackageID returns the identifier of the package to label.
func (c GenerateLabelCommand) PackageID() kernel.UUID {
	return c.packageID
}

// ActorID returns the acting user.
func (c GenerateLabelCommand) ActorID() string {
	return c.actorID
}

func (c *GenerateLabelCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber is required")
	}
	c.orderNumber = orderNumber
	return nil
}

func (c *GenerateLabelCommand) setPackageID(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}
	c.packageID = packageID
	return nil
}

func (c *GenerateLabelCommand) setActorID(actorID string) error {
	if actorID == "" {
		return errs.NewValueIsRequiredError("actorID is required")
	}
	c.actorID = actorID
	return nil
}
