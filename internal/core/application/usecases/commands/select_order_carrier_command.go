package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrSelectOrderCarrierCommandIsNotConstructed = errors.New(
	"SelectOrderCarrierCommand must be created via NewSelectOrderCarrierCommand constructor",
)

// SelectScope determines which packages a whole-order carrier selection is
// stamped onto.
type SelectScope int

const (
	// SelectScopeUnknown represents an invalid or undefined scope.
	SelectScopeUnknown SelectScope = iota

	// SelectScopeAll stamps every editable package and sets the order-level
	// carrier.
	SelectScopeAll

	// SelectScopeMissingOnly stamps only editable packages without a carrier
	// and leaves the order-level carrier untouched.
	SelectScopeMissingOnly
)

// SelectScopeFromString parses a selection scope from its wire representation.
func SelectScopeFromString(s string) (SelectScope, error) {
	switch s {
	case "all":
		return SelectScopeAll, nil
	case "missing-only":
		return SelectScopeMissingOnly, nil
	default:
		return SelectScopeUnknown, errs.NewValueIsInvalidErrorWithCause(
			"scope is invalid",
			fmt.Errorf("%q is not a valid selection scope", s),
		)
	}
}

// Validate checks if the scope value is one of the defined scopes.
func (s SelectScope) Validate() error {
	if s != SelectScopeAll && s != SelectScopeMissingOnly {
		return errs.NewValueIsInvalidErrorWithCause(
			"scope is invalid",
			fmt.Errorf("%d is not a valid selection scope", s),
		)
	}
	return nil
}

// SelectOrderCarrierCommand represents a request to select one carrier for the
// whole order and stamp it onto its packages. Packages locked by other users
// are skipped rather than failing the command: carrier selection is a
// whole-order action, not an edit of someone else's package.
type SelectOrderCarrierCommand struct { //nolint:recvcheck //using for validation
	orderNumber string
	carrierCode string
	actorID     string
	scope       SelectScope

	guard guard.ConstructorGuard
}

// NewSelectOrderCarrierCommand creates a command to select a whole-order carrier.
func NewSelectOrderCarrierCommand(
	orderNumber, carrierCode, actorID string,
	scope SelectScope,
) (SelectOrderCarrierCommand, error) {
	cmd := SelectOrderCarrierCommand{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setOrderNumber(orderNumber),
		cmd.setCarrierCode(carrierCode),
		cmd.setActorID(actorID),
		cmd.setScope(scope),
	); err != nil {
		return SelectOrderCarrierCommand{}, err
	}

	return cmd, nil
}

// Validate ensures the command was created through the constructor.
func (c SelectOrderCarrierCommand) Validate() error {
	return c.guard.Validate(ErrSelectOrderCarrierCommandIsNotConstructed)
}

// OrderNumber returns the external number of the order.
func (c SelectOrderCarrierCommand) OrderNumber() string {
	return c.orderNumber
}

// CarrierCode returns the selected carrier.
func (c SelectOrderCarrierCommand) CarrierCode() string {
	return c.carrierCode
}

// ActorID returns the acting user.
func (c SelectOrderCarrierCommand) ActorID() string {
	return c.actorID
}

// Scope returns which packages the carrier is stamped onto.
func (c SelectOrderCarrierCommand) Scope() SelectScope {
	return c.scope
}

func (c *SelectOrderCarrierCommand) setOrderNumber(orderNumber string) error {
	if orderNumber == "" {
		return errs.NewValueIsRequiredError("orderNumber is required")
	}
	c.orderNumber = orderNumber
	return nil
}

func (c *SelectOrderCarrierCommand) setCarrierCode(carrierCode string) error {
	if carrierCode == "" {
		return errs.NewValueIsRequiredError("carrierCode is required")
	}
	c.carrierCode = carrierCode
	return nil
}

func (c *SelectOrderCarrierCommand) setActorID(actorID string) error {
	if actorID == "" {
		return errs.NewValueIsRequiredError("actorID is required")
	}
	c.actorID = actorID
	return nil
}

func (c *SelectOrderCarrierCommand) setScope(scope SelectScope) error {
	if err := scope.Validate(); err != nil {
		return err
	}
	c.scope = scope
	return nil
}
