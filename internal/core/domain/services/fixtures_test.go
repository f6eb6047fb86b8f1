package services_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"

	"github.com/stretchr/testify/require"
)

var day0 = time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

type orderFixture struct {
	number   string
	status   order.Status
	revision bool
	daysAgo  int
	customer order.Customer
	items    []order.LineItem
}

func buildOrder(t *testing.T, f orderFixture) *order.Order {
	t.Helper()

	status := f.status
	if status == order.Unknown {
		status = order.PendingEnrichment
	}
	if f.revision {
		status = order.ReadyForDesign
	}

	o, err := order.RestoreOrder(order.Snapshot{
		ID:                  kernel.NewUUID(),
		OrderNumber:         f.number,
		StoreID:             kernel.NewUUID(),
		Customer:            f.customer,
		Status:              status,
		NeedsDesignRevision: f.revision,
		Detail:              order.Detail{LineItems: f.items},
		OrderDate:           day0.AddDate(0, 0, -f.daysAgo),
	})
	require.NoError(t, err)
	return o
}

func item(id, sku string, variations ...order.Variation) order.LineItem {
	return order.LineItem{ID: id, SKU: sku, Quantity: 1, Title: "Item " + sku, Variations: variations}
}

func template(t *testing.T, sku string, p product.PersonalizationType) *product.Template {
	t.Helper()

	weight := 10.5
	tpl, err := product.NewTemplate(product.Params{
		SKU:                 sku,
		Name:                "Template " + sku,
		PersonalizationType: p,
		Dimensions:          product.Dimensions{Weight: &weight},
		SLABusinessDays:     2,
		IsActive:            true,
	})
	require.NoError(t, err)
	return tpl
}

func numbers(orders []*order.Order) []string {
	result := make([]string, len(orders))
	for i, o := range orders {
		result[i] = o.OrderNumber()
	}
	return result
}
