package metrics

import (
	"context"
	"net/http"

	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type Registry struct {
	reg *prometheus.Registry

	HTTPRequests        *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	StatusChanges      *prometheus.CounterVec
	AutoAdvanceResults *prometheus.CounterVec
	DocumentsAssembled prometheus.Counter
}

func NewRegistry() *Registry {
	r := prometheus.NewRegistry()

	httpRequests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_http_requests_total",
	}, []string{"method", "route", "code"})
	httpDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "fulfillment_http_request_duration_seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})
	statusChanges := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_order_status_changes_total",
	}, []string{"to"})
	autoAdvance := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "fulfillment_auto_advance_orders_total",
	}, []string{"result"})
	documents := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "fulfillment_production_documents_total",
	})

	r.MustRegister(httpRequests, httpDuration, statusChanges, autoAdvance, documents)
	return &Registry{
		reg:                 r,
		HTTPRequests:        httpRequests,
		HTTPRequestDuration: httpDuration,
		StatusChanges:       statusChanges,
		AutoAdvanceResults:  autoAdvance,
		DocumentsAssembled:  documents,
	}
}

func (r *Registry) Handler() http.Handler { return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{}) }

// CountStatusChanges wraps an event publisher and counts every committed
// status change by target status. next may be nil.
func (r *Registry) CountStatusChanges(next ports.OrderEventPublisher) ports.OrderEventPublisher {
	return &countingPublisher{next: next, counter: r.StatusChanges}
}

type countingPublisher struct {
	next    ports.OrderEventPublisher
	counter *prometheus.CounterVec
}

func (p *countingPublisher) PublishStatusChanged(ctx context.Context, events []order.StatusChangedEvent) error {
	for _, e := range events {
		p.counter.WithLabelValues(e.To.String()).Inc()
	}
	if p.next == nil {
		return nil
	}
	return p.next.PublishStatusChanged(ctx, events)
}

// RecordAutoAdvance adds the outcome of one auto-advance batch.
func (r *Registry) RecordAutoAdvance(promoted, skipped, failed int) {
	r.AutoAdvanceResults.WithLabelValues("promoted").Add(float64(promoted))
	r.AutoAdvanceResults.WithLabelValues("skipped").Add(float64(skipped))
	r.AutoAdvanceResults.WithLabelValues("failed").Add(float64(failed))
}
