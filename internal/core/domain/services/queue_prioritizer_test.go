package services_test

import (
	"testing"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/services"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueuePrioritizer_Prioritize(t *testing.T) {
	q := services.NewQueuePrioritizer()

	t.Run("priority orders come first, each partition newest first", func(t *testing.T) {
		orders := []*order.Order{
			buildOrder(t, orderFixture{number: "1", status: order.ReadyForDesign, daysAgo: 1}),
			buildOrder(t, orderFixture{number: "2", revision: true, daysAgo: 2}),
			buildOrder(t, orderFixture{number: "3", status: order.DesignComplete, daysAgo: 3}),
			buildOrder(t, orderFixture{number: "4", revision: true, daysAgo: 0}),
			buildOrder(t, orderFixture{number: "5", status: order.ReadyForDesign, daysAgo: 5}),
		}

		res := q.Prioritize(orders, services.RevisionFirst, "", services.Page{Limit: 50})

		assert.Equal(t, []string{"4", "2", "1", "3", "5"}, numbers(res.Orders))
		assert.Equal(t, 5, res.Total)
		assertPartitioned(t, res.Orders, services.RevisionFirst)
	})

	t.Run("repairs unordered input and keeps ties stable", func(t *testing.T) {
		orders := []*order.Order{
			buildOrder(t, orderFixture{number: "old", daysAgo: 9}),
			buildOrder(t, orderFixture{number: "tie-a", daysAgo: 1}),
			buildOrder(t, orderFixture{number: "tie-b", daysAgo: 1}),
		}

		res := q.Prioritize(orders, nil, "", services.Page{})

		assert.Equal(t, []string{"tie-a", "tie-b", "old"}, numbers(res.Orders))
	})

	t.Run("consecutive pages cover the filtered set exactly once", func(t *testing.T) {
		var orders []*order.Order
		for i := range 23 {
			status := order.InTransit
			if i%4 == 0 {
				status = order.NeedsReview
			}
			orders = append(orders, buildOrder(t, orderFixture{number: string(rune('A' + i)), status: status, daysAgo: i % 7}))
		}

		full := q.Prioritize(orders, services.NeedsReviewFirst, "", services.Page{})
		seen := make([]string, 0, len(orders))
		for offset := 0; offset < full.Total; offset += 5 {
			page := q.Prioritize(orders, services.NeedsReviewFirst, "", services.Page{Offset: offset, Limit: 5})
			assert.Equal(t, full.Total, page.Total)
			seen = append(seen, numbers(page.Orders)...)
		}

		assert.Equal(t, numbers(full.Orders), seen)
	})

	t.Run("offset past the end yields an empty page with the total", func(t *testing.T) {
		orders := []*order.Order{buildOrder(t, orderFixture{number: "1"})}

		res := q.Prioritize(orders, nil, "", services.Page{Offset: 10, Limit: 5})

		assert.Empty(t, res.Orders)
		assert.Equal(t, 1, res.Total)
	})

	t.Run("total counts the searched set, not the page", func(t *testing.T) {
		orders := []*order.Order{
			buildOrder(t, orderFixture{number: "1", customer: order.Customer{Name: "Alice"}}),
			buildOrder(t, orderFixture{number: "2", customer: order.Customer{Name: "Bob"}}),
			buildOrder(t, orderFixture{number: "3", customer: order.Customer{Name: "alicia"}}),
		}

		res := q.Prioritize(orders, nil, "ALI", services.Page{Limit: 1})

		assert.Equal(t, 2, res.Total)
		require.Len(t, res.Orders, 1)
	})
}

func TestMatchesSearch(t *testing.T) {
	o := buildOrder(t, orderFixture{
		number:   "ETSY-3141",
		customer: order.Customer{Name: "Jürgen Weiß", Email: "jw@example.de"},
		items: []order.LineItem{
			item("tx-1", "MUG-11OZ-WHT", order.Variation{Name: "Engraving", Value: "Happy Birthday Oma"}),
		},
	})

	testCases := []struct {
		term  string
		match bool
	}{
		{"etsy-31", true},
		{"JÜRGEN", true},
		{"weiss", true},
		{"@EXAMPLE.DE", true},
		{"mug-11oz", true},
		{"item mug", true},
		{"engraving", true},
		{"birthday oma", true},
		{"  oma  ", true},
		{"tumbler", false},
	}

	for _, tc := range testCases {
		t.Run(tc.term, func(t *testing.T) {
			assert.Equal(t, tc.match, services.MatchesSearch(o, tc.term))
		})
	}
}

func assertPartitioned(t *testing.T, orders []*order.Order, priority services.Priority) {
	t.Helper()

	seenNonPriority := false
	for i, o := range orders {
		if !priority(o) {
			seenNonPriority = true
		} else {
			assert.False(t, seenNonPriority, "priority order %s after non-priority order", o.OrderNumber())
		}
		if i > 0 && priority(orders[i-1]) == priority(o) {
			assert.False(t, o.OrderDate().After(orders[i-1].OrderDate()), "order_date increases at %d", i)
		}
	}
}
