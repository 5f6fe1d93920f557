package carrier

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// ErrLineIsNotClaimable is returned when a carrier claim targets a bundle-child
// line. Child lines are excluded from the claim surface by construction.
var ErrLineIsNotClaimable = errors.New("line is not addressable for carrier claims")

// Mode selects how SetLineCarriers combines incoming claims with the existing
// selection set.
type Mode int

const (
	// ModeUnknown represents an invalid or undefined mode.
	ModeUnknown Mode = iota

	// ModeMerge adds incoming claims to the existing selections, combining
	// rows with the same line and carrier, subject to the remaining-quantity
	// invariant.
	ModeMerge

	// ModeReplace discards all prior selections for the order first.
	ModeReplace
)

// ModeFromString parses a merge mode from its wire representation.
func ModeFromString(s string) (Mode, error) {
	switch s {
	case "merge":
		return ModeMerge, nil
	case "replace":
		return ModeReplace, nil
	default:
		return ModeUnknown, errs.NewValueIsInvalidErrorWithCause(
			"mode is invalid",
			fmt.Errorf("%q is not a valid merge mode", s),
		)
	}
}

// String returns the wire representation of the mode.
func (m Mode) String() string {
	switch m {
	case ModeMerge:
		return "merge"
	case ModeReplace:
		return "replace"
	default:
		return "unknown"
	}
}

// Validate checks if the Mode value is one of the defined modes.
func (m Mode) Validate() error {
	if m != ModeMerge && m != ModeReplace {
		return errs.NewValueIsInvalidErrorWithCause(
			"mode is invalid",
			fmt.Errorf("%d is not a valid merge mode", m),
		)
	}
	return nil
}

// LineClaim is one incoming carrier claim: a quantity of one line for one carrier.
type LineClaim struct {
	LineIndex   int
	Quantity    int
	CarrierCode string
}

// Ledger holds the carrier selections of one order and enforces their
// remaining-quantity accounting. It mirrors the packing allocation ledger but
// sources totals from selections instead of packages: the two surfaces claim
// the same ordered quantities independently.
//
// Invariant: for every line L, the sum of selection quantities for L never
// exceeds the ordered quantity of L. Merge-mode additions clamp to what
// remains; existing selections are never silently overwritten unless the mode
// is replace.
type Ledger struct {
	order      *order.Order
	selections []*Selection
}

// NewLedger creates a Ledger for the given order over its current selections.
func NewLedger(o *order.Order, selections []*Selection) (*Ledger, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	for _, s := range selections {
		if err := s.Validate(); err != nil {
			return nil, err
		}
	}

	return &Ledger{
		order:      o,
		selections: append([]*Selection(nil), selections...),
	}, nil
}

// Order returns the order this ledger belongs to.
func (l *Ledger) Order() *order.Order {
	return l.order
}

// Selections returns the current selection set.
// The slice is a copy; the selections themselves are shared.
func (l *Ledger) Selections() []*Selection {
	return append([]*Selection(nil), l.selections...)
}

// HasSelections reports whether any per-line carrier selection exists.
// The label generation gate uses this for split-mode exclusivity.
func (l *Ledger) HasSelections() bool {
	return len(l.selections) > 0
}

// ClaimedBy returns the total claimed quantity of one line across all selections.
func (l *Ledger) ClaimedBy(lineIndex int) int {
	total := 0
	for _, s := range l.selections {
		if s.LineIndex() == lineIndex {
			total += s.Quantity()
		}
	}
	return total
}

// RemainingForLine returns the unclaimed quantity of one line:
// max(0, ordered - claimed). Unknown lines have remaining 0.
func (l *Ledger) RemainingForLine(lineIndex int) int {
	line, ok := l.order.LineByIndex(lineIndex)
	if !ok {
		return 0
	}

	remaining := line.Quantity() - l.ClaimedBy(lineIndex)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SetLineCarriers applies a batch of claims under the given mode and returns
// the resulting selection set.
//
// ModeReplace discards all prior selections first. In both modes each claim is
// clamped to the line's remaining quantity; a claim matching an existing
// selection's line and carrier is combined into that row instead of creating a
// duplicate. Claims that clamp to zero are dropped.
func (l *Ledger) SetLineCarriers(claims []LineClaim, mode Mode) ([]*Selection, error) {
	if err := mode.Validate(); err != nil {
		return nil, err
	}

	if mode == ModeReplace {
		l.selections = nil
	}

	for _, claim := range claims {
		if err := l.applyClaim(claim); err != nil {
			return nil, err
		}
	}

	return l.Selections(), nil
}

func (l *Ledger) applyClaim(claim LineClaim) error {
	if claim.CarrierCode == "" {
		return errs.NewValueIsRequiredError("carrierCode is required")
	}
	if claim.Quantity <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"quantity is invalid",
			fmt.Errorf("%d is not greater than 0", claim.Quantity),
		)
	}

	if _, ok := l.order.LineByIndex(claim.LineIndex); !ok {
		return errs.NewObjectNotFoundError("lineIndex", claim.LineIndex)
	}
	if !l.order.RoleOf(claim.LineIndex).IsPackable() {
		return fmt.Errorf("%w: line %d has role %s",
			ErrLineIsNotClaimable, claim.LineIndex, l.order.RoleOf(claim.LineIndex))
	}

	applied := claim.Quantity
	if remaining := l.RemainingForLine(claim.LineIndex); applied > remaining {
		applied = remaining
	}
	if applied == 0 {
		return nil
	}

	for _, s := range l.selections {
		if s.LineIndex() == claim.LineIndex && s.CarrierCode() == claim.CarrierCode {
			s.grow(applied)
			return nil
		}
	}

	selection, err := NewSelection(claim.LineIndex, applied, claim.CarrierCode)
	if err != nil {
		return err
	}
	l.selections = append(l.selections, selection)
	return nil
}
