package services

import (
	"strings"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
)

// SkipReason explains why an order stays in pending_enrichment.
type SkipReason string

const (
	SkipNone                 SkipReason = ""
	SkipNoLineItems          SkipReason = "no line items"
	SkipMissingSKU           SkipReason = "line item without sku"
	SkipUnconfiguredSKU      SkipReason = "no product template for sku"
	SkipFullPersonalization  SkipReason = "product needs full personalization"
	SkipMissingPersonalNotes SkipReason = "personalization notes not provided"
	SkipNotPending           SkipReason = "order is not pending enrichment"
)

const notRequestedMarker = "not requested"

// AutoAdvancePolicy decides whether a pending_enrichment order can skip
// manual review and go straight to the design queue.
//
// Every line item must reference a configured template. Orders whose
// templates all need no personalization are promoted. When a template needs
// notes, the order is promoted only once at least one personalization value
// is filled in and is not a "not requested" placeholder. Full
// personalization always needs an operator.
type AutoAdvancePolicy struct{}

func NewAutoAdvancePolicy() AutoAdvancePolicy {
	return AutoAdvancePolicy{}
}

// Decide returns SkipNone when the order should be promoted.
func (p AutoAdvancePolicy) Decide(o *order.Order, templates map[string]*product.Template) SkipReason {
	if o.Status() != order.PendingEnrichment {
		return SkipNotPending
	}

	items := o.Detail().LineItems
	if len(items) == 0 {
		return SkipNoLineItems
	}

	needsNotes := false
	for _, li := range items {
		if strings.TrimSpace(li.SKU) == "" {
			return SkipMissingSKU
		}
		tpl, ok := templates[li.SKU]
		if !ok || tpl == nil {
			return SkipUnconfiguredSKU
		}
		switch tpl.PersonalizationType() {
		case product.PersonalizationNone:
		case product.PersonalizationNotes:
			needsNotes = true
		default:
			return SkipFullPersonalization
		}
	}

	if needsNotes && !HasProvidedPersonalization(items) {
		return SkipMissingPersonalNotes
	}
	return SkipNone
}

// HasProvidedPersonalization reports whether any variation value is
// non-empty and not a "not requested" placeholder, ignoring case.
func HasProvidedPersonalization(items []order.LineItem) bool {
	f := newFolder()
	for _, li := range items {
		for _, v := range li.Variations {
			value := strings.TrimSpace(v.Value)
			if value != "" && !f.contains(value, notRequestedMarker) {
				return true
			}
		}
	}
	return false
}
