package carrier

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

// Selection lifecycle states.
const (
	// SelectionStatusPending marks a selection awaiting dispatch.
	SelectionStatusPending = "pending"
	// SelectionStatusProcessing marks a selection grouped into a dispatch plan.
	SelectionStatusProcessing = "processing"
)

// ErrSelectionIsNotConstructed is returned when a Selection instance was not
// created through the NewSelection or RestoreSelection factory functions.
var ErrSelectionIsNotConstructed = errors.New(
	"Selection must be created via NewSelection or RestoreSelection constructor")

// Selection assigns a quantity of one order line to a specific carrier,
// independently of how the line is divided across packages. Selections carry
// their own remaining-quantity accounting in the Ledger.
type Selection struct {
	id          kernel.UUID
	lineIndex   int
	quantity    int
	carrierCode string
	status      string

	guard guard.ConstructorGuard
}

// NewSelection creates a pending selection with a freshly minted id.
func NewSelection(lineIndex, quantity int, carrierCode string) (*Selection, error) {
	return RestoreSelection(kernel.NewUUID(), lineIndex, quantity, carrierCode, SelectionStatusPending)
}

// RestoreSelection reconstructs a selection from persistence.
func RestoreSelection(id kernel.UUID, lineIndex, quantity int, carrierCode, status string) (*Selection, error) {
	s := &Selection{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		s.setID(id),
		s.setLineIndex(lineIndex),
		s.setQuantity(quantity),
		s.setCarrierCode(carrierCode),
		s.setStatus(status),
	); err != nil {
		return nil, err
	}

	return s, nil
}

// Validate ensures the Selection was created through a constructor.
func (s *Selection) Validate() error {
	if s == nil {
		return ErrSelectionIsNotConstructed
	}
	return s.guard.Validate(ErrSelectionIsNotConstructed)
}

// ID returns the selection's unique identifier.
func (s *Selection) ID() kernel.UUID {
	return s.id
}

// LineIndex returns the stable index of the claimed order line.
func (s *Selection) LineIndex() int {
	return s.lineIndex
}

// Quantity returns the claimed quantity (always >= 1).
func (s *Selection) Quantity() int {
	return s.quantity
}

// CarrierCode returns the carrier this quantity is assigned to.
func (s *Selection) CarrierCode() string {
	return s.carrierCode
}

// Status returns the selection lifecycle state.
func (s *Selection) Status() string {
	return s.status
}

// MarkProcessing moves the selection into the processing state, used when a
// dispatch plan claims it.
func (s *Selection) MarkProcessing() {
	s.status = SelectionStatusProcessing
}

// grow increases the claimed quantity by delta (merge-mode combination).
func (s *Selection) grow(delta int) {
	s.quantity += delta
}

func (s *Selection) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	s.id = id
	return nil
}

func (s *Selection) setLineIndex(lineIndex int) error {
	if lineIndex < 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"lineIndex is invalid",
			fmt.Errorf("%d is not a valid line index", lineIndex),
		)
	}
	s.lineIndex = lineIndex
	return nil
}

func (s *Selection) setQuantity(quantity int) error {
	if quantity < 1 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is less than 1", quantity),
		)
	}
	s.quantity = quantity
	return nil
}

func (s *Selection) setCarrierCode(carrierCode string) error {
	if carrierCode == "" {
		return errs.NewValueIsRequiredError("carrierCode is required")
	}
	s.carrierCode = carrierCode
	return nil
}

func (s *Selection) setStatus(status string) error {
	if status != SelectionStatusPending && status != SelectionStatusProcessing {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%q is not a valid selection status", status),
		)
	}
	s.status = status
	return nil
}
