package queries

import (
	"time"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"
)

// OrderView is the JSON read model of an order. Line item metadata is null
// unless the order went through enrichment and the SKU has a template.
type OrderView struct {
	ID                  string           `json:"id"`
	OrderNumber         string           `json:"order_number"`
	StoreID             string           `json:"store_id"`
	CustomerName        string           `json:"customer_name"`
	CustomerEmail       string           `json:"customer_email"`
	ShippingAddress     AddressView      `json:"shipping_address"`
	Status              string           `json:"status"`
	NeedsDesignRevision bool             `json:"needs_design_revision"`
	DesignRevisionNotes *string          `json:"design_revision_notes"`
	ReviewReason        *string          `json:"review_reason"`
	LineItems           []LineItemView   `json:"line_items"`
	DesignFiles         []DesignFileView `json:"design_files"`
	TrackingNumber      *string          `json:"tracking_number"`
	LabelURL            *string          `json:"label_url"`
	OrderDate           time.Time        `json:"order_date"`
	ProductionStartedAt *time.Time       `json:"production_started_at"`
	LoadedForShipmentAt *time.Time       `json:"loaded_for_shipment_at"`
}

type AddressView struct {
	Name       string `json:"name"`
	Line1      string `json:"line1"`
	Line2      string `json:"line2"`
	City       string `json:"city"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
}

// LineItemView keeps Variations nil when the marketplace sent none, so the
// key is omitted rather than rendered as an empty list.
type LineItemView struct {
	ID                  string           `json:"transaction_id"`
	SKU                 string           `json:"sku"`
	Quantity            int              `json:"quantity"`
	Title               string           `json:"title"`
	Variations          *[]VariationView `json:"variations,omitempty"`
	ProductName         *string          `json:"product_name"`
	PersonalizationType *string          `json:"personalization_type"`
	Length              *float64         `json:"length"`
	Width               *float64         `json:"width"`
	Height              *float64         `json:"height"`
	Weight              *float64         `json:"weight"`
	CanvaTemplateURL    *string          `json:"canva_template_url"`
	SLABusinessDays     *int             `json:"sla_business_days"`
}

type VariationView struct {
	Name  string `json:"formatted_name"`
	Value string `json:"formatted_value"`
}

type DesignFileView struct {
	LineItemID string `json:"line_item_id"`
	Path       string `json:"path"`
	URL        string `json:"url"`
}

// NewOrderView renders an order without template metadata.
func NewOrderView(o *order.Order) OrderView {
	items := o.Detail().LineItems
	enriched := make([]services.EnrichedLineItem, len(items))
	for i, li := range items {
		enriched[i] = services.EnrichedLineItem{LineItem: li}
	}
	return newEnrichedOrderView(services.EnrichedOrder{Order: o, LineItems: enriched})
}

func newEnrichedOrderView(e services.EnrichedOrder) OrderView {
	o := e.Order
	customer := o.Customer()
	a := o.ShippingAddress()

	items := make([]LineItemView, len(e.LineItems))
	for i, li := range e.LineItems {
		view := LineItemView{
			ID:                  li.ID,
			SKU:                 li.SKU,
			Quantity:            li.Quantity,
			Title:               li.Title,
			ProductName:         li.Metadata.ProductName,
			PersonalizationType: li.Metadata.PersonalizationType,
			Length:              li.Metadata.Length,
			Width:               li.Metadata.Width,
			Height:              li.Metadata.Height,
			Weight:              li.Metadata.Weight,
			CanvaTemplateURL:    li.Metadata.CanvaTemplateURL,
			SLABusinessDays:     li.Metadata.SLABusinessDays,
		}
		if li.HasVariations() {
			variations := make([]VariationView, len(li.Variations))
			for j, v := range li.Variations {
				variations[j] = VariationView{Name: v.Name, Value: v.Value}
			}
			view.Variations = &variations
		}
		items[i] = view
	}

	files := make([]DesignFileView, 0)
	for _, f := range o.DesignFiles() {
		files = append(files, DesignFileView{LineItemID: f.LineItemID, Path: f.Path, URL: f.URL})
	}

	return OrderView{
		ID:            o.ID().String(),
		OrderNumber:   o.OrderNumber(),
		StoreID:       o.StoreID().String(),
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		ShippingAddress: AddressView{
			Name: a.Name, Line1: a.Line1, Line2: a.Line2, City: a.City,
			State: a.State, PostalCode: a.PostalCode, Country: a.Country,
		},
		Status:              o.Status().String(),
		NeedsDesignRevision: o.NeedsDesignRevision(),
		DesignRevisionNotes: o.DesignRevisionNotes(),
		ReviewReason:        o.ReviewReason(),
		LineItems:           items,
		DesignFiles:         files,
		TrackingNumber:      o.TrackingNumber(),
		LabelURL:            o.LabelURL(),
		OrderDate:           o.OrderDate(),
		ProductionStartedAt: o.ProductionStartedAt(),
		LoadedForShipmentAt: o.LoadedForShipmentAt(),
	}
}
