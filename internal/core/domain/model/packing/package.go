package packing

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var (
	// ErrPackageIsNotConstructed is returned when a Package instance was not
	// created through the NewPackage or RestorePackage factory functions.
	ErrPackageIsNotConstructed = errors.New("Package must be created via NewPackage or RestorePackage constructor")

	// ErrPackageLocked is returned when a mutation is attempted on a persisted
	// package by a user other than its creator. Ownership is the only
	// access-control mechanism for packages; there is no field-level locking.
	ErrPackageLocked = errors.New("package is locked by another user")
)

// Package represents one physical shipping container holding quantities of one
// or more order lines.
//
// Ownership: a package without an id has not been persisted yet and is editable
// by whoever is composing it. Once persisted (id present), the package is
// exclusively owned by its creator for editing purposes; every mutating method
// consults CanEdit and fails with ErrPackageLocked for any other user.
type Package struct {
	// id is nil while the package is new/unpersisted
	id *kernel.UUID

	// creatorID identifies the user who composed the package
	creatorID string

	// boxType names the physical box used ("" until chosen)
	boxType string

	// dims are the validated inner dimensions of the box
	dims kernel.Dimensions

	// weightKg is the gross weight of the packed box
	weightKg float64

	// carrierCode is the carrier booked for this package ("" if unassigned)
	carrierCode string

	// contents are the per-line allocations; rows always carry quantity >= 1
	contents []Content

	// labelCode and labelPDFURL record the last issued shipping label
	labelCode   string
	labelPDFURL string

	guard guard.ConstructorGuard
}

// NewPackage creates a new, unpersisted package with empty contents,
// stamped with its creator.
func NewPackage(creatorID string) (*Package, error) {
	if creatorID == "" {
		return nil, errs.NewValueIsRequiredError("creatorID is required")
	}

	return &Package{
		creatorID: creatorID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// NewDraftPackage creates a new, unpersisted package carrying a full set of
// attributes and contents, as composed in the bulk builder. Draft packages
// have no identifier until saved; the draft merge stamps the acting user as
// creator.
func NewDraftPackage(
	creatorID string,
	boxType string,
	dims kernel.Dimensions,
	weightKg float64,
	carrierCode string,
	contents []Content,
) (*Package, error) {
	if creatorID == "" {
		return nil, errs.NewValueIsRequiredError("creatorID is required")
	}
	for _, content := range contents {
		if err := content.Validate(); err != nil {
			return nil, err
		}
	}

	return &Package{
		creatorID:   creatorID,
		boxType:     boxType,
		dims:        dims,
		weightKg:    weightKg,
		carrierCode: carrierCode,
		contents:    append([]Content(nil), contents...),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

// RestorePackage reconstructs a persisted package from storage.
// The id must be valid: restored packages are by definition persisted, so they
// are subject to ownership locking.
func RestorePackage(
	id kernel.UUID,
	creatorID string,
	boxType string,
	dims kernel.Dimensions,
	weightKg float64,
	carrierCode string,
	contents []Content,
) (*Package, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	if creatorID == "" {
		return nil, errs.NewValueIsRequiredError("creatorID is required")
	}
	for _, content := range contents {
		if err := content.Validate(); err != nil {
			return nil, err
		}
	}

	p := &Package{
		id:          &id,
		creatorID:   creatorID,
		boxType:     boxType,
		dims:        dims,
		weightKg:    weightKg,
		carrierCode: carrierCode,
		contents:    append([]Content(nil), contents...),
		guard:       guard.NewConstructorGuard(),
	}
	return p, nil
}

// Validate ensures the Package was created through a constructor.
func (p *Package) Validate() error {
	if p == nil {
		return ErrPackageIsNotConstructed
	}
	return p.guard.Validate(ErrPackageIsNotConstructed)
}

// ID returns the persisted identifier, or nil for a new package.
func (p *Package) ID() *kernel.UUID {
	return p.id
}

// CreatorID returns the user who composed the package.
func (p *Package) CreatorID() string {
	return p.creatorID
}

// BoxType returns the chosen box type, or "" if not chosen yet.
func (p *Package) BoxType() string {
	return p.boxType
}

// InnerDimensions returns the inner dimensions of the box.
// The zero value indicates dimensions were not set yet.
func (p *Package) InnerDimensions() kernel.Dimensions {
	return p.dims
}

// WeightKg returns the gross weight of the packed box in kilograms.
func (p *Package) WeightKg() float64 {
	return p.weightKg
}

// CarrierCode returns the carrier booked for this package, or "" if unassigned.
func (p *Package) CarrierCode() string {
	return p.carrierCode
}

// Contents returns a copy of the per-line allocations.
func (p *Package) Contents() []Content {
	return append([]Content(nil), p.contents...)
}

// QuantityOf returns the quantity of line lineIndex allocated into this
// package, or 0 when the line is not present.
func (p *Package) QuantityOf(lineIndex int) int {
	for _, content := range p.contents {
		if content.LineIndex() == lineIndex {
			return content.Quantity()
		}
	}
	return 0
}

// LabelCode returns the tracking code of the issued label, or "" when no label
// has been issued for this package yet.
func (p *Package) LabelCode() string {
	return p.labelCode
}

// LabelPDFURL returns the printable document URL of the issued label.
func (p *Package) LabelPDFURL() string {
	return p.labelPDFURL
}

// HasLabel reports whether a shipping label has been issued for this package.
func (p *Package) HasLabel() bool {
	return p.labelCode != ""
}

// RecordLabel stores the carrier's label issuance result on the package.
// Issuing is a fulfillment action, not a composition edit, so it is not subject
// to the ownership lock. Re-recording overwrites the previous label.
func (p *Package) RecordLabel(code, pdfURL string) error {
	if code == "" {
		return errs.NewValueIsRequiredError("code is required")
	}
	if pdfURL == "" {
		return errs.NewValueIsRequiredError("pdfURL is required")
	}
	p.labelCode = code
	p.labelPDFURL = pdfURL
	return nil
}

// CanEdit is the single ownership capability check for packages.
// A package without an id is always editable by its composer; a persisted
// package is editable only by its creator.
func (p *Package) CanEdit(actorID string) bool {
	if p.id == nil {
		return true
	}
	return p.creatorID == actorID
}

// Clone returns a deep copy of the package, including its id.
func (p *Package) Clone() *Package {
	clone := *p
	if p.id != nil {
		id := *p.id
		clone.id = &id
	}
	clone.contents = append([]Content(nil), p.contents...)
	return &clone
}

// CloneAsNew returns a deep copy without the original's id, owned by actorID.
// The copy is unpersisted and therefore unlocked regardless of the original's
// ownership.
func (p *Package) CloneAsNew(actorID string) (*Package, error) {
	if actorID == "" {
		return nil, errs.NewValueIsRequiredError("actorID is required")
	}

	clone := p.Clone()
	clone.id = nil
	clone.creatorID = actorID
	// a copy is a new physical box, its label does not carry over
	clone.labelCode = ""
	clone.labelPDFURL = ""
	return clone, nil
}

// SetBoxType changes the box type. Fails with ErrPackageLocked when the acting
// user does not own a persisted package.
func (p *Package) SetBoxType(actorID, boxType string) error {
	if !p.CanEdit(actorID) {
		return ErrPackageLocked
	}
	if boxType == "" {
		return errs.NewValueIsRequiredError("boxType is required")
	}
	p.boxType = boxType
	return nil
}

// SetWeight changes the gross weight. Same lock check as SetBoxType.
func (p *Package) SetWeight(actorID string, weightKg float64) error {
	if !p.CanEdit(actorID) {
		return ErrPackageLocked
	}
	if weightKg <= 0 {
		return errs.NewValueIsInvalidErrorWithCause(
			"weightKg is invalid",
			fmt.Errorf("%g is not greater than 0", weightKg),
		)
	}
	p.weightKg = weightKg
	return nil
}

// SetInnerDimensions changes the inner dimensions. Same lock check as SetBoxType.
func (p *Package) SetInnerDimensions(actorID string, dims kernel.Dimensions) error {
	if !p.CanEdit(actorID) {
		return ErrPackageLocked
	}
	if err := dims.Validate(); err != nil {
		return err
	}
	p.dims = dims
	return nil
}

// AssignCarrier books a carrier for this package. Same lock check as SetBoxType.
func (p *Package) AssignCarrier(actorID, carrierCode string) error {
	if !p.CanEdit(actorID) {
		return ErrPackageLocked
	}
	if carrierCode == "" {
		return errs.NewValueIsRequiredError("carrierCode is required")
	}
	p.carrierCode = carrierCode
	return nil
}

// ValidateForSave checks that the package is complete enough to persist:
// box type chosen, valid dimensions, positive weight, and non-empty contents.
func (p *Package) ValidateForSave() error {
	var errList []error

	if p.boxType == "" {
		errList = append(errList, errs.NewValueIsRequiredError("boxType is required"))
	}
	if err := p.dims.Validate(); err != nil {
		errList = append(errList, err)
	}
	if p.weightKg <= 0 {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"weightKg is invalid",
			fmt.Errorf("%g is not greater than 0", p.weightKg),
		))
	}
	if len(p.contents) == 0 {
		errList = append(errList, errs.NewValueIsRequiredError("contents are required"))
	}

	return errors.Join(errList...)
}

// applyContentQuantity sets the allocation of lineIndex to quantity.
// A quantity of zero removes the row. Conservation arithmetic and lock checks
// are the Store's responsibility; this method only maintains row shape.
func (p *Package) applyContentQuantity(lineIndex int, sku string, quantity int) error {
	for i, content := range p.contents {
		if content.LineIndex() != lineIndex {
			continue
		}
		if quantity == 0 {
			p.contents = append(p.contents[:i], p.contents[i+1:]...)
			return nil
		}
		p.contents[i] = content.withQuantity(quantity)
		return nil
	}

	if quantity == 0 {
		return nil
	}

	content, err := NewContent(lineIndex, sku, quantity, "")
	if err != nil {
		return err
	}
	p.contents = append(p.contents, content)
	return nil
}

// stampCreator rewrites the creator of an unpersisted package.
// Used by the draft merge to attribute id-less draft packages to the actor.
func (p *Package) stampCreator(actorID string) {
	p.creatorID = actorID
}
