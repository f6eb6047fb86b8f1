package services

import (
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
)

// LineItemMetadata is the template data attached to one line item. Every
// field is nil when the SKU has no template.
type LineItemMetadata struct {
	Matched             bool
	ProductName         *string
	PersonalizationType *string
	Length              *float64
	Width               *float64
	Height              *float64
	Weight              *float64
	CanvaTemplateURL    *string
	SLABusinessDays     *int
}

// EnrichedLineItem pairs a line item with its metadata.
type EnrichedLineItem struct {
	order.LineItem
	Metadata LineItemMetadata
}

// EnrichedOrder is a read-only view of an order with enriched line items.
// The line items are copies; the underlying order is not modified.
type EnrichedOrder struct {
	Order     *order.Order
	LineItems []EnrichedLineItem
}

// EnrichmentJoiner joins orders with product templates by exact SKU.
type EnrichmentJoiner struct{}

func NewEnrichmentJoiner() EnrichmentJoiner {
	return EnrichmentJoiner{}
}

// DistinctSKUs collects every non-empty SKU across all orders, first-seen
// order, so a single batched lookup can serve the whole page.
func (EnrichmentJoiner) DistinctSKUs(orders []*order.Order) []string {
	seen := make(map[string]struct{})
	skus := make([]string, 0)
	for _, o := range orders {
		for _, sku := range o.Detail().SKUs() {
			if _, ok := seen[sku]; ok {
				continue
			}
			seen[sku] = struct{}{}
			skus = append(skus, sku)
		}
	}
	return skus
}

// Join never fails: unmatched SKUs yield empty metadata.
func (EnrichmentJoiner) Join(orders []*order.Order, templates map[string]*product.Template) []EnrichedOrder {
	result := make([]EnrichedOrder, 0, len(orders))
	for _, o := range orders {
		items := o.Detail().LineItems
		enriched := make([]EnrichedLineItem, len(items))
		for i, li := range items {
			enriched[i] = EnrichedLineItem{LineItem: li, Metadata: metadataFor(templates[li.SKU])}
		}
		result = append(result, EnrichedOrder{Order: o, LineItems: enriched})
	}
	return result
}

func metadataFor(tpl *product.Template) LineItemMetadata {
	if tpl == nil {
		return LineItemMetadata{}
	}

	name := tpl.Name()
	personalization := tpl.PersonalizationType().String()
	sla := tpl.SLABusinessDays()
	dims := tpl.Dimensions()

	return LineItemMetadata{
		Matched:             true,
		ProductName:         &name,
		PersonalizationType: &personalization,
		Length:              dims.Length,
		Width:               dims.Width,
		Height:              dims.Height,
		Weight:              dims.Weight,
		CanvaTemplateURL:    tpl.CanvaTemplateURL(),
		SLABusinessDays:     &sla,
	}
}

// IndexBySKU builds the SKU -> template map used by Join and AutoAdvancePolicy.
func IndexBySKU(templates []*product.Template) map[string]*product.Template {
	index := make(map[string]*product.Template, len(templates))
	for _, tpl := range templates {
		index[tpl.SKU()] = tpl
	}
	return index
}
