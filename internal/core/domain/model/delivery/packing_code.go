// Package delivery holds the packing-code payload that travels with a packed part
// and is scanned on site to confirm delivery.
//
// The payload is a block of "Key: value" lines:
//
//	Part ID: 6f1c...
//	Project ID: 42
//	CustomPart: Bracket A
//	Material: S275
//	Weight: 12.5
//	Client: ACME North
//
// Only Part ID and Project ID are load-bearing when scanning; the other lines are
// informative for the people handling the package.
package delivery

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"shopfloor/internal/core/domain/model/kernel"
	"shopfloor/internal/core/domain/model/part"
	"shopfloor/internal/pkg/errs"
	"shopfloor/internal/pkg/guard"
)

const (
	keyPartID    = "Part ID"
	keyProjectID = "Project ID"
	keyPartType  = "CustomPart"
	keyMaterial  = "Material"
	keyWeight    = "Weight"
	keyClient    = "Client"

	noWeight = "N/A"
)

// ErrPackingCodeIsNotConstructed is returned when a PackingCode bypassed its constructors.
var ErrPackingCodeIsNotConstructed = errors.New("PackingCode must be created via NewPackingCode or ParsePackingCode")

// PackingCode is the decoded content of a packing QR code.
type PackingCode struct {
	partID       kernel.UUID
	projectID    int64
	partTypeName string
	materialName string
	weightKg     *float64
	clientAlias  string
	guard        guard.ConstructorGuard
}

// NewPackingCode builds the code for p. clientAlias is the owning project's alias.
func NewPackingCode(p *part.Part, clientAlias string) (PackingCode, error) {
	if err := p.Validate(); err != nil {
		return PackingCode{}, err
	}
	d := p.Descriptor()
	return PackingCode{
		partID:       p.ID(),
		projectID:    p.ProjectID(),
		partTypeName: flatten(d.PartTypeName()),
		materialName: flatten(d.MaterialName()),
		weightKg:     d.WeightKg(),
		clientAlias:  flatten(clientAlias),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the code was properly constructed.
func (c PackingCode) Validate() error {
	return c.guard.Validate(ErrPackingCodeIsNotConstructed)
}

func (c PackingCode) PartID() kernel.UUID  { return c.partID }
func (c PackingCode) ProjectID() int64     { return c.projectID }
func (c PackingCode) PartTypeName() string { return c.partTypeName }
func (c PackingCode) MaterialName() string { return c.materialName }
func (c PackingCode) ClientAlias() string  { return c.clientAlias }

// WeightKg returns a copy of the weight, or nil when unknown.
func (c PackingCode) WeightKg() *float64 {
	if c.weightKg == nil {
		return nil
	}
	w := *c.weightKg
	return &w
}

// FileName is the name under which the rendered image is stored.
func (c PackingCode) FileName() string {
	return FileNameFor(c.partID)
}

// FileNameFor returns the image file name of the packing code of partID.
func FileNameFor(partID kernel.UUID) string {
	return partID.String() + "_packing_qr.png"
}

// Encode renders the payload text.
func (c PackingCode) Encode() string {
	weight := noWeight
	if c.weightKg != nil {
		weight = strconv.FormatFloat(*c.weightKg, 'f', -1, 64)
	}

	lines := []string{
		keyPartID + ": " + c.partID.String(),
		keyProjectID + ": " + strconv.FormatInt(c.projectID, 10),
		keyPartType + ": " + c.partTypeName,
		keyMaterial + ": " + c.materialName,
		keyWeight + ": " + weight,
		keyClient + ": " + c.clientAlias,
	}
	return strings.Join(lines, "\n")
}

// ParsePackingCode decodes a scanned payload. Unknown keys are ignored; a line
// that is not "Key: value", a repeated key, or a missing or malformed Part ID or
// Project ID yields an InvalidPayloadError.
func ParsePackingCode(payload string) (PackingCode, error) {
	payload = strings.ReplaceAll(payload, "\r\n", "\n")
	if strings.TrimSpace(payload) == "" {
		return PackingCode{}, errs.NewInvalidPayloadError("payload is empty")
	}

	fields := make(map[string]string)
	for i, line := range strings.Split(payload, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		key, value, found := strings.Cut(line, ": ")
		if !found {
			return PackingCode{}, errs.NewInvalidPayloadError(fmt.Sprintf("line %d is not a key/value pair", i+1))
		}
		key = strings.TrimSpace(key)
		if _, dup := fields[key]; dup {
			return PackingCode{}, errs.NewInvalidPayloadError(fmt.Sprintf("key %q repeated", key))
		}
		fields[key] = strings.TrimSpace(value)
	}

	c := PackingCode{guard: guard.NewConstructorGuard()}

	rawPartID, ok := fields[keyPartID]
	if !ok {
		return PackingCode{}, errs.NewInvalidPayloadError("part id is missing")
	}
	partID, err := kernel.UUIDFromString(rawPartID)
	if err != nil {
		return PackingCode{}, errs.NewInvalidPayloadErrorWithCause("part id is malformed", err)
	}
	c.partID = partID

	rawProjectID, ok := fields[keyProjectID]
	if !ok {
		return PackingCode{}, errs.NewInvalidPayloadError("project id is missing")
	}
	projectID, err := strconv.ParseInt(rawProjectID, 10, 64)
	if err != nil || projectID <= 0 {
		return PackingCode{}, errs.NewInvalidPayloadErrorWithCause("project id is malformed", err)
	}
	c.projectID = projectID

	c.partTypeName = fields[keyPartType]
	c.materialName = fields[keyMaterial]
	c.clientAlias = fields[keyClient]

	if raw, ok := fields[keyWeight]; ok && raw != "" && !strings.EqualFold(raw, noWeight) {
		w, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(w) || math.IsInf(w, 0) {
			return PackingCode{}, errs.NewInvalidPayloadErrorWithCause("weight is malformed", err)
		}
		c.weightKg = &w
	}

	return c, nil
}

func flatten(s string) string {
	s = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
	return strings.TrimSpace(s)
}
