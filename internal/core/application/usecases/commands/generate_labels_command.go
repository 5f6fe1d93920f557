package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrGenerateLabelsCommandIsNotConstructed = errors.New(
	"GenerateLabelsCommand must be created via NewGenerateLabelsCommand constructor",
)

// Bulk label outcomes per package.
const (
	// BulkLabelGenerated marks a package whose label was issued in this run.
	BulkLabelGenerated = "generated"
	// BulkLabelSkipped marks a package left untouched (already labeled, or no
	// carrier available).
	BulkLabelSkipped = "skipped"
	// BulkLabelFailed marks a package whose issuance was attempted and failed.
	BulkLabelFailed = "error"
)

// BulkLabelResult is the outcome of one package in a bulk label run.
type BulkLabelResult struct {
	PackageID kernel.UUID
	Outcome   string
	Label     ports.Label
	Reason    string
}

// GenerateLabelsCommand represents a request to issue labels for every package
// of an order in one run. With regenerate set, packages that already carry a
// label are re-issued; otherwise they are skipped.
type GenerateLabelsCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	actorID     string
	regenerate  bool

	guard guard.ConstructorGuard
}

// NewGenerateLabelsCommand creates a command for a bulk label run.
func NewGenerateLabelsCommand(orderNumber, actorID string, regenerate bool) (GenerateLabelsCommand, error) {
	cmd := GenerateLabelsCommand{
		regenerate: regenerate,
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setActorID(actorID),
	); err != nil {
		return GenerateLabelsCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c GenerateLabelsCommand) Validate() error {
	return c.guard.Validate(ErrGenerateLabelsCommandIsNotConstructed)
}

// OrderNumber returns the external number of the order.
func (c GenerateLabelsCommand) OrderNumber() string {
	return c.orderNumber
}

// ActorID returns the acting user.
func (c GenerateLabelsCommand) ActorID() string {
	return c.actorID
}

// Regenerate reports whether already-labeled packages are re-issued.
func (c GenerateLabelsCommand) Regenerate() bool {
	return c.regenerate
}

func (c *GenerateLabelsCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber is required")
	}
	c.orderNumber = orderNumber
	return nil
}

func (c *GenerateLabelsCommand) setActorID(actorID string) error {
	if actorID == "" {
		return errs.NewValueIsRequiredError("actorID is required")
	}
	c.actorID = actorID
	return nil
}
