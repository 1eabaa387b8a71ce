package part

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode/utf8"

	"shopfloor/internal/pkg/errs"
	"shopfloor/internal/pkg/guard"
)

// MaxNameLength caps part type and material names in characters. Both names are
// printed into the packing code, which has to fit a single QR symbol.
const MaxNameLength = 200

// ErrDescriptorIsNotConstructed is returned for a zero-value Descriptor.
var ErrDescriptorIsNotConstructed = errors.New("Descriptor must be created via NewDescriptor constructor")

// Descriptor names what a part is: its part type, its material and, when known,
// its total weight in kilograms. Part types and materials are lookup entities
// owned elsewhere; the part keeps their names.
type Descriptor struct {
	partTypeName string
	materialName string
	weightKg     *float64
	guard        guard.ConstructorGuard
}

// NewDescriptor validates and builds a Descriptor. weightKg may be nil.
//
// Example:
//
//	w := 12.5
//	d, err := part.NewDescriptor("Side panel", "Steel 2mm", &w)
func NewDescriptor(partTypeName, materialName string, weightKg *float64) (Descriptor, error) {
	d := Descriptor{guard: guard.NewConstructorGuard()}

	if err := errors.Join(
		d.setPartTypeName(partTypeName),
		d.setMaterialName(materialName),
		d.setWeight(weightKg),
	); err != nil {
		return Descriptor{}, err
	}
	return d, nil
}

// Validate ensures the descriptor was built by NewDescriptor.
func (d Descriptor) Validate() error {
	return d.guard.Validate(ErrDescriptorIsNotConstructed)
}

// PartTypeName returns the part type name.
func (d Descriptor) PartTypeName() string {
	return d.partTypeName
}

// MaterialName returns the material name.
func (d Descriptor) MaterialName() string {
	return d.materialName
}

// WeightKg returns the weight, or nil when unknown.
func (d Descriptor) WeightKg() *float64 {
	if d.weightKg == nil {
		return nil
	}
	w := *d.weightKg
	return &w
}

func (d *Descriptor) setPartTypeName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("partTypeName")
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return errs.NewValueIsOutOfRangeError("partTypeName length", n, 1, MaxNameLength)
	}
	d.partTypeName = name
	return nil
}

func (d *Descriptor) setMaterialName(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return errs.NewValueIsRequiredError("materialName")
	}
	if n := utf8.RuneCountInString(name); n > MaxNameLength {
		return errs.NewValueIsOutOfRangeError("materialName length", n, 1, MaxNameLength)
	}
	d.materialName = name
	return nil
}

func (d *Descriptor) setWeight(weightKg *float64) error {
	if weightKg == nil {
		return nil
	}
	w := *weightKg
	if math.IsNaN(w) || math.IsInf(w, 0) || w <= 0 {
		return errs.NewValueIsInvalidErrorWithCause("weightKg", fmt.Errorf("%v is not a positive weight", w))
	}
	d.weightKg = &w
	return nil
}
