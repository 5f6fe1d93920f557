package commands

import (
	"errors"

	"fulfillment/internal/pkg/guard"
)

var ErrRefreshTrackingCommandIsNotConstructed = errors.New(
	"RefreshTrackingCommand must be created via NewRefreshTrackingCommand constructor",
)

// RefreshTrackingCommand represents a request to advance in-flight order
// statuses from the carrier's reported tracking states. Issued periodically by
// the tracking refresh job.
type RefreshTrackingCommand struct {
	guard guard.ConstructorGuard
}

// NewRefreshTrackingCommand creates a command to refresh tracking states.
// This is a parameterless command covering every order in carrier transit.
func NewRefreshTrackingCommand() RefreshTrackingCommand {
	return RefreshTrackingCommand{guard: guard.NewConstructorGuard()}
}

// Validate ensures the command was created through the constructor.
func (c RefreshTrackingCommand) Validate() error {
	return c.guard.Validate(ErrRefreshTrackingCommandIsNotConstructed)
}
