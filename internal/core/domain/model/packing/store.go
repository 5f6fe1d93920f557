package packing

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

// ErrLineIsNotPackable is returned when an allocation targets a bundle-child
// line. Child lines are excluded from the packing surface by construction.
var ErrLineIsNotPackable = errors.New("line is not addressable for packing")

// Store holds the set of packages for one order and implements every packing
// operation over them: the allocation ledger, the ownership-filtered mutations,
// and the draft merge reconciliation.
//
// The allocation ledger is a pure derived view: allocated and remaining
// quantities are recomputed from the current package slice on every call and
// never cached, so the ledger cannot drift from the packages.
//
// Conservation invariant: for every line L, the sum of contents[L].quantity
// across all packages never exceeds the ordered quantity of L. All quantity
// mutations clamp rather than reject, so no invalid state is representable.
type Store struct {
	order    *order.Order
	packages []*Package
}

// NewStore creates a Store for the given order over the current package set.
func NewStore(o *order.Order, packages []*Package) (*Store, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	for _, p := range packages {
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}

	return &Store{
		order:    o,
		packages: append([]*Package(nil), packages...),
	}, nil
}

// Order returns the order this store belongs to.
func (s *Store) Order() *order.Order {
	return s.order
}

// Packages returns the current package list.
// The slice is a copy; the packages themselves are shared.
func (s *Store) Packages() []*Package {
	return append([]*Package(nil), s.packages...)
}

// Len returns the number of packages.
func (s *Store) Len() int {
	return len(s.packages)
}

// Allocated computes the total allocated quantity per line index by summing
// content rows across all packages.
func (s *Store) Allocated() map[int]int {
	allocated := make(map[int]int)
	for _, p := range s.packages {
		for _, content := range p.Contents() {
			allocated[content.LineIndex()] += content.Quantity()
		}
	}
	return allocated
}

// AllocatedTo returns the total allocated quantity of one line.
func (s *Store) AllocatedTo(lineIndex int) int {
	total := 0
	for _, p := range s.packages {
		total += p.QuantityOf(lineIndex)
	}
	return total
}

// Remaining returns the unallocated quantity of one line:
// max(0, ordered - allocated). Unknown lines have remaining 0.
func (s *Store) Remaining(lineIndex int) int {
	line, ok := s.order.LineByIndex(lineIndex)
	if !ok {
		return 0
	}

	remaining := line.Quantity() - s.AllocatedTo(lineIndex)
	if remaining < 0 {
		return 0
	}
	return remaining
}

// TotalWeight sums the gross weight of all packages.
func (s *Store) TotalWeight() float64 {
	total := 0.0
	for _, p := range s.packages {
		total += p.WeightKg()
	}
	return total
}

// AddEmptyPackage appends a new, unpersisted package stamped with its creator.
func (s *Store) AddEmptyPackage(creatorID string) (*Package, error) {
	p, err := NewPackage(creatorID)
	if err != nil {
		return nil, err
	}

	s.packages = append(s.packages, p)
	return p, nil
}

// DuplicatePackage deep-copies the package at index. The duplicate is created
// without the original's id and owned by the acting user, so it is unlocked
// even when the original belongs to someone else.
func (s *Store) DuplicatePackage(index int, actorID string) (*Package, error) {
	original, err := s.packageAt(index)
	if err != nil {
		return nil, err
	}

	duplicate, err := original.CloneAsNew(actorID)
	if err != nil {
		return nil, err
	}

	// The copy starts from the global remaining so the duplicate cannot break
	// conservation: each row is clamped against what is still unallocated.
	for _, content := range duplicate.Contents() {
		remaining := s.Remaining(content.LineIndex())
		if content.Quantity() > remaining {
			if applyErr := duplicate.applyContentQuantity(
				content.LineIndex(), content.SKU(), remaining,
			); applyErr != nil {
				return nil, applyErr
			}
		}
	}

	s.packages = append(s.packages, duplicate)
	return duplicate, nil
}

// RemovePackage deletes the package at index.
// Fails with ErrPackageLocked when the package is owned by another user.
func (s *Store) RemovePackage(index int, actorID string) error {
	p, err := s.packageAt(index)
	if err != nil {
		return err
	}
	if !p.CanEdit(actorID) {
		return ErrPackageLocked
	}

	s.packages = append(s.packages[:index], s.packages[index+1:]...)
	return nil
}

// SetBoxType changes the box type of the package at index.
func (s *Store) SetBoxType(index int, actorID, boxType string) error {
	p, err := s.packageAt(index)
	if err != nil {
		return err
	}
	return p.SetBoxType(actorID, boxType)
}

// SetWeight changes the gross weight of the package at index.
func (s *Store) SetWeight(index int, actorID string, weightKg float64) error {
	p, err := s.packageAt(index)
	if err != nil {
		return err
	}
	return p.SetWeight(actorID, weightKg)
}

// SetInnerDimensions changes the inner dimensions of the package at index.
func (s *Store) SetInnerDimensions(index int, actorID string, dims kernel.Dimensions) error {
	p, err := s.packageAt(index)
	if err != nil {
		return err
	}
	return p.SetInnerDimensions(actorID, dims)
}

// SetCarrier books a carrier for the package at index.
func (s *Store) SetCarrier(index int, actorID, carrierCode string) error {
	p, err := s.packageAt(index)
	if err != nil {
		return err
	}
	return p.AssignCarrier(actorID, carrierCode)
}

// SetContentQuantity sets the allocation of lineIndex inside the package at
// pkgIndex to desiredQty, clamped to what conservation permits:
//
//	available = ordered - (globally allocated - currently in this package)
//	applied   = clamp(desiredQty, 0, available)
//
// An applied quantity of zero removes the content row. The applied quantity is
// returned so callers can observe when a request was clamped.
func (s *Store) SetContentQuantity(pkgIndex int, actorID string, lineIndex, desiredQty int) (int, error) {
	p, err := s.packageAt(pkgIndex)
	if err != nil {
		return 0, err
	}
	if !p.CanEdit(actorID) {
		return 0, ErrPackageLocked
	}

	line, err := s.packableLine(lineIndex)
	if err != nil {
		return 0, err
	}

	available := line.Quantity() - (s.AllocatedTo(lineIndex) - p.QuantityOf(lineIndex))
	applied := desiredQty
	if applied < 0 {
		applied = 0
	}
	if applied > available {
		applied = available
	}

	if err = p.applyContentQuantity(lineIndex, line.SKU(), applied); err != nil {
		return 0, err
	}
	return applied, nil
}

// AddLineToPackage adds up to the global remaining quantity of lineIndex into
// the package at pkgIndex, merging into an existing content row when present.
// The added quantity is returned; zero means the line is fully allocated.
func (s *Store) AddLineToPackage(pkgIndex int, actorID string, lineIndex, requestedQty int) (int, error) {
	p, err := s.packageAt(pkgIndex)
	if err != nil {
		return 0, err
	}
	if !p.CanEdit(actorID) {
		return 0, ErrPackageLocked
	}
	if requestedQty <= 0 {
		return 0, errs.NewValueIsInvalidErrorWithCause(
			"requestedQty is invalid",
			fmt.Errorf("%d is not greater than 0", requestedQty),
		)
	}

	line, err := s.packableLine(lineIndex)
	if err != nil {
		return 0, err
	}

	added := requestedQty
	if remaining := s.Remaining(lineIndex); added > remaining {
		added = remaining
	}
	if added == 0 {
		return 0, nil
	}

	if err = p.applyContentQuantity(lineIndex, line.SKU(), p.QuantityOf(lineIndex)+added); err != nil {
		return 0, err
	}
	return added, nil
}

// MergeDraft reconciles a full replacement draft (for example from a bulk
// builder) with the authoritative package list:
//
//  1. Current packages owned by other users (persisted, creator != actor) are
//     locked: a draft entry carrying a locked id is discarded and the original
//     substituted unchanged.
//  2. Draft entries without an id are stamped with the acting user as creator.
//  3. Locked packages absent from the draft are re-appended: a draft cannot
//     delete another user's package.
//  4. Draft entries matching a persisted package take that package's recorded
//     label state: labels are issued by fulfillment, never edited through a
//     draft, so a resubmission without label fields cannot erase one.
//
// The resulting list becomes the authoritative package set. Draft packages are
// cloned, so the caller's draft is never mutated and can be resubmitted after
// a failure. Content rows of editable draft packages are clamped so the merge
// result always satisfies the conservation invariant. The operation is
// idempotent: merging the same draft twice yields the same state as once.
func (s *Store) MergeDraft(draft []*Package, actorID string) error {
	if actorID == "" {
		return errs.NewValueIsRequiredError("actorID is required")
	}
	for _, d := range draft {
		if err := d.Validate(); err != nil {
			return err
		}
	}

	current := make(map[string]*Package, len(s.packages))
	locked := make(map[string]*Package)
	for _, p := range s.packages {
		if p.ID() == nil {
			continue
		}
		current[p.ID().String()] = p
		if !p.CanEdit(actorID) {
			locked[p.ID().String()] = p
		}
	}

	merged := make([]*Package, 0, len(draft))
	substituted := make(map[string]bool, len(locked))
	for _, d := range draft {
		if d.ID() != nil {
			if original, ok := locked[d.ID().String()]; ok {
				if !substituted[d.ID().String()] {
					merged = append(merged, original)
					substituted[d.ID().String()] = true
				}
				continue
			}
		}

		clone := d.Clone()
		if clone.ID() == nil {
			clone.stampCreator(actorID)
		} else if original, ok := current[clone.ID().String()]; ok {
			clone.labelCode = original.labelCode
			clone.labelPDFURL = original.labelPDFURL
		}
		merged = append(merged, clone)
	}

	for _, p := range s.packages {
		if p.ID() == nil || p.CanEdit(actorID) {
			continue
		}
		if !substituted[p.ID().String()] {
			merged = append(merged, p)
		}
	}

	s.packages = merged
	s.normalizeAllocations(actorID)
	return nil
}

// normalizeAllocations clamps editable content rows so the package set
// satisfies conservation. Locked packages are authoritative and counted first;
// editable rows absorb the clamping in list order. Rows for child-role or
// unknown lines are dropped entirely.
func (s *Store) normalizeAllocations(actorID string) {
	allocated := make(map[int]int)
	for _, p := range s.packages {
		if p.CanEdit(actorID) {
			continue
		}
		for _, content := range p.Contents() {
			allocated[content.LineIndex()] += content.Quantity()
		}
	}

	for _, p := range s.packages {
		if !p.CanEdit(actorID) {
			continue
		}
		for _, content := range p.Contents() {
			lineIndex := content.LineIndex()
			line, err := s.packableLine(lineIndex)
			if err != nil {
				_ = p.applyContentQuantity(lineIndex, content.SKU(), 0)
				continue
			}

			available := line.Quantity() - allocated[lineIndex]
			if available < 0 {
				available = 0
			}

			quantity := content.Quantity()
			if quantity > available {
				quantity = available
			}

			_ = p.applyContentQuantity(lineIndex, line.SKU(), quantity)
			allocated[lineIndex] += quantity
		}
	}
}

func (s *Store) packageAt(index int) (*Package, error) {
	if index < 0 || index >= len(s.packages) {
		return nil, errs.NewObjectNotFoundError("packageIndex", index)
	}
	return s.packages[index], nil
}

// packableLine resolves a line index to an addressable line.
// Unknown indexes fail with ObjectNotFoundError; child-role lines fail with
// ErrLineIsNotPackable.
func (s *Store) packableLine(lineIndex int) (order.Line, error) {
	line, ok := s.order.LineByIndex(lineIndex)
	if !ok {
		return order.Line{}, errs.NewObjectNotFoundError("lineIndex", lineIndex)
	}
	if !s.order.RoleOf(lineIndex).IsPackable() {
		return order.Line{}, fmt.Errorf("%w: line %d has role %s",
			ErrLineIsNotPackable, lineIndex, s.order.RoleOf(lineIndex))
	}
	return line, nil
}
