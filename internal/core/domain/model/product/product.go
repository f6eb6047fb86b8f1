// Package product holds ProductTemplate, the per-SKU production metadata that
// enriches order line items and drives auto-advancement.
package product

import (
	"errors"
	"fmt"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// PersonalizationType tells how much buyer input a product needs before design.
type PersonalizationType int

const (
	PersonalizationUnknown PersonalizationType = iota

	// PersonalizationNone products need no buyer input.
	PersonalizationNone

	// PersonalizationNotes products need a free-text note from the buyer.
	PersonalizationNotes

	// PersonalizationFull products need a designer to build the artwork.
	PersonalizationFull
)

func getPersonalizationStrings() map[PersonalizationType]string {
	return map[PersonalizationType]string{
		PersonalizationUnknown: "unknown",
		PersonalizationNone:    "none",
		PersonalizationNotes:   "notes",
		PersonalizationFull:    "full",
	}
}

func ParsePersonalizationType(s string) (PersonalizationType, error) {
	for p, str := range getPersonalizationStrings() {
		if p != PersonalizationUnknown && str == s {
			return p, nil
		}
	}
	return PersonalizationUnknown, errs.NewValueIsInvalidErrorWithCause(
		"personalization_type",
		fmt.Errorf("%q is not one of none, notes, full", s),
	)
}

func (p PersonalizationType) String() string {
	if str, ok := getPersonalizationStrings()[p]; ok {
		return str
	}
	return "unknown"
}

func (p PersonalizationType) Validate() error {
	if p < PersonalizationNone || p > PersonalizationFull {
		return errs.NewValueIsInvalidErrorWithCause("personalization_type", fmt.Errorf("%d is not valid", p))
	}
	return nil
}

// Dimensions are the default package measurements of a product, in inches
// and ounces. Nil fields are unconfigured.
type Dimensions struct {
	Length *float64
	Width  *float64
	Height *float64
	Weight *float64
}

// Template is the product configuration keyed by SKU.
type Template struct {
	sku                 string
	name                string
	category            string
	personalizationType PersonalizationType
	dimensions          Dimensions
	canvaTemplateURL    *string
	slaBusinessDays     int
	isActive            bool
}

// Params groups the attributes of a template for NewTemplate.
type Params struct {
	SKU                 string
	Name                string
	Category            string
	PersonalizationType PersonalizationType
	Dimensions          Dimensions
	CanvaTemplateURL    *string
	SLABusinessDays     int
	IsActive            bool
}

// NewTemplate validates and builds a template.
func NewTemplate(p Params) (*Template, error) {
	t := &Template{
		category:         p.Category,
		dimensions:       p.Dimensions,
		canvaTemplateURL: p.CanvaTemplateURL,
		isActive:         p.IsActive,
	}

	if err := errors.Join(
		t.setSKU(p.SKU),
		t.setName(p.Name),
		t.setPersonalizationType(p.PersonalizationType),
		t.setSLABusinessDays(p.SLABusinessDays),
		validateDimensions(p.Dimensions),
	); err != nil {
		return nil, err
	}

	return t, nil
}

func (t *Template) SKU() string                              { return t.sku }
func (t *Template) Name() string                             { return t.name }
func (t *Template) Category() string                         { return t.category }
func (t *Template) PersonalizationType() PersonalizationType { return t.personalizationType }
func (t *Template) Dimensions() Dimensions                   { return t.dimensions }
func (t *Template) CanvaTemplateURL() *string                { return t.canvaTemplateURL }
func (t *Template) SLABusinessDays() int                     { return t.slaBusinessDays }
func (t *Template) IsActive() bool                           { return t.isActive }

func (t *Template) setSKU(sku string) error {
	if strings.TrimSpace(sku) == "" {
		return errs.NewValueIsRequiredError("sku")
	}
	t.sku = sku
	return nil
}

func (t *Template) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return errs.NewValueIsRequiredError("name")
	}
	t.name = name
	return nil
}

func (t *Template) setPersonalizationType(p PersonalizationType) error {
	if err := p.Validate(); err != nil {
		return err
	}
	t.personalizationType = p
	return nil
}

func (t *Template) setSLABusinessDays(days int) error {
	if days < 0 || days > 365 {
		return errs.NewValueIsOutOfRangeError("sla_business_days", days, 0, 365)
	}
	t.slaBusinessDays = days
	return nil
}

func validateDimensions(d Dimensions) error {
	for name, v := range map[string]*float64{
		"length": d.Length,
		"width":  d.Width,
		"height": d.Height,
		"weight": d.Weight,
	} {
		if v != nil && *v < 0 {
			return errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("%v is negative", *v))
		}
	}
	return nil
}
