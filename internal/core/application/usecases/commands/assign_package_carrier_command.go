package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignPackageCarrierCommandIsNotConstructed = errors.New(
	"AssignPackageCarrierCommand must be created via NewAssignPackageCarrierCommand constructor",
)

// AssignPackageCarrierCommand represents a request to book a carrier for one
// persisted package. Fails with packing.ErrPackageLocked when the package is
// owned by another user.
type AssignPackageCarrierCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	packageID   kernel.UUID
	carrierCode string
	actorID     string

	guard guard.ConstructorGuard
}

// NewAssignPackageCarrierCommand creates a command to book a package carrier.
func NewAssignPackageCarrierCommand(
	orderNumber string,
	packageID kernel.UUID,
	carrierCode, actorID string,
) (AssignPackageCarrierCommand, error) {
	cmd := AssignPackageCarrierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setPackageID(packageID),
		cmd.setCarrierCode(carrierCode),
		cmd.setActorID(actorID),
	); err != nil {
		return AssignPackageCarrierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignPackageCarrierCommand) Validate() error {
	return c.guard.Validate(ErrAssignPackageCarrierCommandIsNotConstructed)
}

// OrderNumber returns the external number of the order.
func (c AssignPackageCarrierCommand) OrderNumber() string {
	return c.orderNumber
}

// PackageID returns the identifier of the package to book.
func (c AssignPackageCarrierCommand) PackageID() kernel.UUID {
	return c.packageID
}

// CarrierCode returns the carrier to book.
func (c AssignPackageCarrierCommand) CarrierCode() string {
	return c.carrierCode
}

// ActorID returns the acting user.
func (c AssignPackageCarrierCommand) ActorID() string {
	return c.actorID
}

func (c *AssignPackageCarrierCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber is required")
	}
	c.orderNumber = orderNumber
	return nil
}

func (c *AssignPackageCarrierCommand) setPackageID(packageID kernel.UUID) error {
	if err := packageID.Validate(); err != nil {
		return err
	}
	c.packageID = packageID
	return nil
}

func (c *AssignPackageCarrierCommand) setCarrierCode(carrierCode string) error {
	if carrierCode == "" {
		return errs.NewValueIsRequiredError("carrierCode is required")
	}
	c.carrierCode = carrierCode
	return nil
}

func (c *AssignPackageCarrierCommand) setActorID(actorID string) error {
	if actorID == "" {
		return errs.NewValueIsRequiredError("actorID is required")
	}
	c.actorID = actorID
	return nil
}
