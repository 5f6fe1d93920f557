package order

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created
	// through the NewOrder or RestoreOrder factory functions.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder or RestoreOrder constructor")

	// ErrDuplicateLineIndex is returned when two lines of the same order share an index.
	ErrDuplicateLineIndex = errors.New("order lines must have unique indexes")
)

// Order is the aggregate root for an order entering the fulfillment workflow.
// It carries the immutable line items with their bundle roles, the fulfillment
// status state machine, the optional whole-order carrier assignment, and the
// royal-box priority flag.
//
// Invariants:
//   - Lines and roles never change once the order is created (bundle expansion
//     happens upstream; the role table is a frozen side table).
//   - Line indexes are unique; a line missing from the role table is standalone.
//   - Status transitions follow the Status state machine.
//
// Packages and carrier selections live outside this aggregate - they reference
// lines by index and are reconciled against the ordered quantities by the
// packing.Store and carrier.Ledger respectively.
type Order struct {
	// id is the internal unique identifier of the order
	id kernel.UUID

	// number is the opaque external order number used across all interfaces
	number string

	// lines are the ordered items, identified by stable index
	lines []Line

	// roles is the frozen bundle-role side table keyed by line index
	roles map[int]Role

	// status is the current state in the fulfillment lifecycle
	status Status

	// carrierCode is the whole-order carrier assignment ("" if unassigned)
	carrierCode string

	// royalBox marks the priority class that bypasses the label status gate
	royalBox bool

	guard guard.ConstructorGuard
}

// NewOrder creates a new Order in Pending status.
//
// Parameters:
//   - id: internal unique identifier (must be a valid UUID)
//   - number: external order number (must not be empty)
//   - lines: ordered items (at least one, unique indexes, each built via NewLine)
//   - roles: bundle-role table keyed by line index; missing entries default to
//     RoleStandalone, entries for unknown indexes are rejected
func NewOrder(id kernel.UUID, number string, lines []Line, roles map[int]Role) (*Order, error) {
	o := &Order{
		status: Pending,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setLines(lines),
	); err != nil {
		return nil, err
	}

	if err := o.setRoles(roles); err != nil {
		return nil, err
	}

	return o, nil
}

// RestoreOrder reconstructs an Order from persistence, including its status,
// whole-order carrier, and royal-box flag. The restored aggregate behaves
// identically to one created through normal domain operations.
func RestoreOrder(
	id kernel.UUID,
	number string,
	lines []Line,
	roles map[int]Role,
	status Status,
	carrierCode string,
	royalBox bool,
) (*Order, error) {
	o := &Order{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setNumber(number),
		o.setLines(lines),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	if err := o.setRoles(roles); err != nil {
		return nil, err
	}

	o.status = status
	o.carrierCode = carrierCode
	o.royalBox = royalBox
	return o, nil
}

// Validate ensures the Order was created through a constructor.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by their unique identifiers.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

// ID returns the order's internal unique identifier.
func (o *Order) ID() kernel.UUID {
	return o.id
}

// Number returns the opaque external order number.
func (o *Order) Number() string {
	return o.number
}

// Lines returns a copy of all order lines, including bundle children.
func (o *Order) Lines() []Line {
	lines := make([]Line, len(o.lines))
	copy(lines, o.lines)
	return lines
}

// PackableLines returns the lines addressable by packing and carrier claims:
// standalone and bundle-parent lines. Child lines are excluded by construction.
func (o *Order) PackableLines() []Line {
	lines := make([]Line, 0, len(o.lines))
	for _, line := range o.lines {
		if o.RoleOf(line.Index()).IsPackable() {
			lines = append(lines, line)
		}
	}
	return lines
}

// LineByIndex looks up a line by its stable index.
func (o *Order) LineByIndex(index int) (Line, bool) {
	for _, line := range o.lines {
		if line.Index() == index {
			return line, true
		}
	}
	return Line{}, false
}

// RoleOf returns the bundle role of the line at index.
// Lines absent from the role table are standalone.
func (o *Order) RoleOf(index int) Role {
	if role, ok := o.roles[index]; ok {
		return role
	}
	return RoleStandalone
}

// Status returns the current fulfillment status.
func (o *Order) Status() Status {
	return o.status
}

// CarrierCode returns the whole-order carrier assignment, or "" if unassigned.
func (o *Order) CarrierCode() string {
	return o.carrierCode
}

// IsRoyalBox reports whether the order belongs to the priority class that
// bypasses the label generation status gate.
func (o *Order) IsRoyalBox() bool {
	return o.royalBox
}

// AssignCarrier sets the whole-order carrier.
// The code must not be empty; reassignment is allowed.
func (o *Order) AssignCarrier(carrierCode string) error {
	if carrierCode == "" {
		return errs.NewValueIsRequiredError("carrierCode is required")
	}
	o.carrierCode = carrierCode
	return nil
}

// ChangeStatus transitions the order to next, enforcing the state machine.
func (o *Order) ChangeStatus(next Status) error {
	newStatus, err := o.status.TransitionTo(next)
	if err != nil {
		return err
	}
	o.status = newStatus
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setNumber(number string) error {
	if number == "" {
		return errs.NewValueIsRequiredError("number is required")
	}
	o.number = number
	return nil
}

func (o *Order) setLines(lines []Line) error {
	if len(lines) == 0 {
		return errs.NewValueIsRequiredError("lines are required")
	}

	seen := make(map[int]struct{}, len(lines))
	for _, line := range lines {
		if err := line.Validate(); err != nil {
			return err
		}
		if _, ok := seen[line.Index()]; ok {
			return fmt.Errorf("%w: index %d", ErrDuplicateLineIndex, line.Index())
		}
		seen[line.Index()] = struct{}{}
	}

	o.lines = make([]Line, len(lines))
	copy(o.lines, lines)
	return nil
}

func (o *Order) setRoles(roles map[int]Role) error {
	o.roles = make(map[int]Role, len(roles))
	for index, role := range roles {
		if err := role.Validate(); err != nil {
			return err
		}
		if _, ok := o.LineByIndex(index); !ok {
			return errs.NewObjectNotFoundError("lineIndex", index)
		}
		o.roles[index] = role
	}
	return nil
}
