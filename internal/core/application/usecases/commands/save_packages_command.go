package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrSavePackagesCommandIsNotConstructed = errors.New(
	"SavePackagesCommand must be created via NewSavePackagesCommand constructor",
)

// SavePackagesCommand represents a request to save a user's package draft as the
// order's authoritative package set. The draft is a full replacement list as
// composed in the bulk builder; reconciliation with packages locked by other
// users happens in the domain merge.
//
// Example:
//
//	cmd, err := NewSavePackagesCommand("ORD-1001", "user-42", draft)
//	if err != nil {
//	    return fmt.Errorf("invalid draft: %w", err)
//	}
//
//	handler := NewSavePackagesCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to save packages: %w", err)
//	}
type SavePackagesCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	actorID     string
	draft       []*packing.Package

	guard guard.ConstructorGuard
}

// NewSavePackagesCommand creates a command to save a package draft.
// Validates that the order number and acting user are present and that every
// draft package was created through a domain constructor.
func NewSavePackagesCommand(
	orderNumber, actorID string,
	draft []*packing.Package,
) (SavePackagesCommand, error) {
	cmd := SavePackagesCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setActorID(actorID),
		cmd.setDraft(draft),
	); err != nil {
		return SavePackagesCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SavePackagesCommand) Validate() error {
	return c.guard.Validate(ErrSavePackagesCommandIsNotConstructed)
}

// OrderNumber returns the external number of the order being packed.
func (c SavePackagesCommand) OrderNumber() string {
	return c.orderNumber
}

// ActorID returns the user saving the draft.
func (c SavePackagesCommand) ActorID() string {
	return c.actorID
}

// Draft returns the replacement package list.
func (c SavePackagesCommand) Draft() []*packing.Package {
	return c.draft
}

func (c *SavePackagesCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber is required")
	}
	c.orderNumber = orderNumber
	return nil
}

func (c *SavePackagesCommand) setActorID(actorID string) error {
	if actorID == "" {
		return errs.NewValueIsRequiredError("actorID is required")
	}
	c.actorID = actorID
	return nil
}

func (c *SavePackagesCommand) setDraft(draft []*packing.Package) error {
	for _, p := range draft {
		if err := p.Validate(); err != nil {
			return err
		}
	}
	c.draft = draft
	return nil
}
