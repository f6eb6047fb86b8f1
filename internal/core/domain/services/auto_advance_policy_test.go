package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/product"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
)

func TestAutoAdvancePolicy_Decide(t *testing.T) {
	policy := services.NewAutoAdvancePolicy()
	templates := services.IndexBySKU([]*product.Template{
		template(t, "PLAIN", product.PersonalizationNone),
		template(t, "NOTES", product.PersonalizationNotes),
		template(t, "FULL", product.PersonalizationFull),
	})

	personalization := func(v string) order.Variation {
		return order.Variation{Name: "Personalization", Value: v}
	}

	testCases := []struct {
		name string
		spec orderFixture
		want services.SkipReason
	}{
		{
			name: "none is always promoted",
			spec: orderFixture{items: []order.LineItem{item("1", "PLAIN")}},
			want: services.SkipNone,
		},
		{
			name: "none is promoted even with placeholder personalization",
			spec: orderFixture{items: []order.LineItem{item("1", "PLAIN", personalization("Not requested on this item"))}},
			want: services.SkipNone,
		},
		{
			name: "notes with a real value is promoted",
			spec: orderFixture{items: []order.LineItem{item("1", "NOTES", personalization("John"))}},
			want: services.SkipNone,
		},
		{
			name: "notes with not requested placeholder is skipped",
			spec: orderFixture{items: []order.LineItem{item("1", "NOTES", personalization("Not requested on this item"))}},
			want: services.SkipMissingPersonalNotes,
		},
		{
			name: "placeholder match ignores case",
			spec: orderFixture{items: []order.LineItem{item("1", "NOTES", personalization("NOT REQUESTED"))}},
			want: services.SkipMissingPersonalNotes,
		},
		{
			name: "notes with blank value is skipped",
			spec: orderFixture{items: []order.LineItem{item("1", "NOTES", personalization("   "))}},
			want: services.SkipMissingPersonalNotes,
		},
		{
			name: "notes with absent variations is skipped",
			spec: orderFixture{items: []order.LineItem{item("1", "NOTES")}},
			want: services.SkipMissingPersonalNotes,
		},
		{
			name: "one real value anywhere in the order is enough",
			spec: orderFixture{items: []order.LineItem{
				item("1", "NOTES", personalization("not requested")),
				item("2", "PLAIN", personalization("Grace")),
			}},
			want: services.SkipNone,
		},
		{
			name: "full personalization is skipped",
			spec: orderFixture{items: []order.LineItem{item("1", "PLAIN"), item("2", "FULL")}},
			want: services.SkipFullPersonalization,
		},
		{
			name: "unconfigured sku is skipped",
			spec: orderFixture{items: []order.LineItem{item("1", "PLAIN"), item("2", "UNKNOWN")}},
			want: services.SkipUnconfiguredSKU,
		},
		{
			name: "missing sku is skipped",
			spec: orderFixture{items: []order.LineItem{item("1", "")}},
			want: services.SkipMissingSKU,
		},
		{
			name: "order without line items is skipped",
			spec: orderFixture{},
			want: services.SkipNoLineItems,
		},
		{
			name: "orders outside pending_enrichment are skipped",
			spec: orderFixture{status: order.NeedsReview, items: []order.LineItem{item("1", "PLAIN")}},
			want: services.SkipNotPending,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			o := buildOrder(t, tc.spec)
			assert.Equal(t, tc.want, policy.Decide(o, templates))
		})
	}
}
