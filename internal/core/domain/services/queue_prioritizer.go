package services

import (
	"slices"
	"strings"

	"fulfillment/internal/core/domain/model/order"
)

// Priority selects the orders a workstation must see first.
type Priority func(o *order.Order) bool

var (
	// NoPriority keeps the plain order_date ordering.
	NoPriority Priority = func(*order.Order) bool { return false }

	// NeedsReviewFirst is the priority of the general order list.
	NeedsReviewFirst Priority = func(o *order.Order) bool { return o.Status() == order.NeedsReview }

	// RevisionFirst is the priority of the design queue.
	RevisionFirst Priority = func(o *order.Order) bool { return o.NeedsDesignRevision() }
)

// Page is a validated offset/limit pair.
type Page struct {
	Offset int
	Limit  int
}

// QueueResult is one page of a queue plus the size of the whole filtered queue.
type QueueResult struct {
	Orders []*order.Order
	Total  int
}

// QueuePrioritizer turns the orders of a status filter into a workstation
// worklist: search, then priority partition, then pagination. It is pure;
// fetching the status-filtered orders is the caller's job.
type QueuePrioritizer struct{}

func NewQueuePrioritizer() QueuePrioritizer {
	return QueuePrioritizer{}
}

// Prioritize applies, in this order:
//  1. the free-text search (blank search keeps everything),
//  2. a stable partition putting priority orders first, each partition
//     sorted by order_date descending with ties kept in input order,
//  3. offset and limit.
//
// Pagination comes last so consecutive pages never skip or repeat an order.
func (q QueuePrioritizer) Prioritize(orders []*order.Order, priority Priority, search string, page Page) QueueResult {
	if priority == nil {
		priority = NoPriority
	}

	filtered := q.Search(orders, search)

	type ranked struct {
		o        *order.Order
		priority bool
	}
	items := make([]ranked, len(filtered))
	for i, o := range filtered {
		items[i] = ranked{o: o, priority: priority(o)}
	}

	slices.SortStableFunc(items, func(a, b ranked) int {
		if a.priority != b.priority {
			if a.priority {
				return -1
			}
			return 1
		}
		return b.o.OrderDate().Compare(a.o.OrderDate())
	})

	total := len(items)
	start := min(max(page.Offset, 0), total)
	end := total
	if page.Limit > 0 {
		end = min(start+page.Limit, total)
	}

	result := make([]*order.Order, 0, end-start)
	for _, it := range items[start:end] {
		result = append(result, it.o)
	}

	return QueueResult{Orders: result, Total: total}
}

// Search keeps the orders matching term; see MatchesSearch.
func (q QueuePrioritizer) Search(orders []*order.Order, term string) []*order.Order {
	term = strings.TrimSpace(term)
	if term == "" {
		return slices.Clone(orders)
	}

	f := newFolder()
	needle := f.fold(term)

	result := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if matches(f, o, needle) {
			result = append(result, o)
		}
	}
	return result
}

// MatchesSearch reports whether term occurs, ignoring case, in the order
// number, customer name or email, or in any line item's SKU, title or
// personalization name or value.
func MatchesSearch(o *order.Order, term string) bool {
	f := newFolder()
	return matches(f, o, f.fold(strings.TrimSpace(term)))
}

func matches(f *folder, o *order.Order, needle string) bool {
	customer := o.Customer()
	for _, field := range []string{o.OrderNumber(), customer.Name, customer.Email} {
		if f.contains(field, needle) {
			return true
		}
	}

	for _, li := range o.Detail().LineItems {
		if f.contains(li.SKU, needle) || f.contains(li.Title, needle) {
			return true
		}
		for _, v := range li.Variations {
			if f.contains(v.Name, needle) || f.contains(v.Value, needle) {
				return true
			}
		}
	}
	return false
}
