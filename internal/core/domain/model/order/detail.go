package order

import (
	"fmt"
	"slices"
	"strings"

	"fulfillment/internal/pkg/errs"
)

// Variation is one buyer-supplied personalization entry of a line item,
// e.g. {Name: "Personalization", Value: "John & Mary"}.
type Variation struct {
	Name  string
	Value string
}

// LineItem is one purchased product of an order.
//
// Variations is nil when the marketplace did not send personalization data
// at all and an empty, non-nil slice when it sent an empty list.
type LineItem struct {
	ID         string
	SKU        string
	Quantity   int
	Title      string
	Variations []Variation
}

// HasVariations reports whether personalization data was supplied.
func (li LineItem) HasVariations() bool {
	return li.Variations != nil
}

func (li LineItem) clone() LineItem {
	li.Variations = slices.Clone(li.Variations)
	return li
}

// Detail is the marketplace payload of an order.
type Detail struct {
	LineItems []LineItem
}

// SKUs returns the distinct non-empty SKUs of the detail in first-seen order.
func (d Detail) SKUs() []string {
	seen := make(map[string]struct{}, len(d.LineItems))
	skus := make([]string, 0, len(d.LineItems))
	for _, li := range d.LineItems {
		if li.SKU == "" {
			continue
		}
		if _, ok := seen[li.SKU]; ok {
			continue
		}
		seen[li.SKU] = struct{}{}
		skus = append(skus, li.SKU)
	}
	return skus
}

func (d Detail) lineItem(id string) (LineItem, bool) {
	for _, li := range d.LineItems {
		if li.ID == id {
			return li, true
		}
	}
	return LineItem{}, false
}

func (d Detail) clone() Detail {
	if d.LineItems == nil {
		return Detail{}
	}
	items := make([]LineItem, len(d.LineItems))
	for i, li := range d.LineItems {
		items[i] = li.clone()
	}
	return Detail{LineItems: items}
}

func (d Detail) validate() error {
	for i, li := range d.LineItems {
		if strings.TrimSpace(li.ID) == "" {
			return errs.NewValueIsRequiredError("line item id")
		}
		if li.Quantity < 0 {
			return errs.NewValueIsInvalidErrorWithCause("quantity", fmt.Errorf("%d is negative", li.Quantity))
		}
		for _, other := range d.LineItems[:i] {
			if other.ID == li.ID {
				return errs.NewValueIsInvalidError("duplicate line item id " + li.ID)
			}
		}
	}
	return nil
}

// DesignFile is a print-ready file produced for one line item and stored in
// blob storage under Path.
type DesignFile struct {
	LineItemID string
	Path       string
	URL        string
}

// Customer identifies the buyer.
type Customer struct {
	Name  string
	Email string
}

// ShippingAddress is the destination of the parcel.
type ShippingAddress struct {
	Name       string
	Line1      string
	Line2      string
	City       string
	State      string
	PostalCode string
	Country    string
}
