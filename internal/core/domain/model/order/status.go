package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status is the lifecycle state of an order. It is a closed set: values
// arriving from the API or the database are parsed and validated against it.
//
// Forward path:
//
//	pending_enrichment ─┬─> ready_for_design ──> design_complete ──> in_production
//	                    └─> needs_review ─────┘        ^   │
//	                                                   │   │ (revision)
//	                     ready_for_design <────────────────┘
//
//	in_production ──> labels_generated ──> loaded_for_shipment ──> pending_fulfillment
//	              ──> in_transit ──> delivered
//
// Any non-terminal status may re-enter needs_review.
type Status int

const (
	// Unknown is the zero value and never valid.
	Unknown Status = iota

	// PendingEnrichment is the status of freshly imported orders.
	PendingEnrichment

	// NeedsReview holds orders whose upstream data is ambiguous; the order
	// carries a review reason while in this status.
	NeedsReview

	// ReadyForDesign orders wait in the design queue.
	ReadyForDesign

	// DesignComplete orders have print-ready design files.
	DesignComplete

	// InProduction orders are being manufactured.
	InProduction

	// LabelsGenerated orders have a shipping label.
	LabelsGenerated

	// LoadedForShipment orders are packed; a label url is mandatory.
	LoadedForShipment

	// PendingFulfillment orders wait for the marketplace to acknowledge shipment.
	PendingFulfillment

	// InTransit orders are with the carrier.
	InTransit

	// Delivered is terminal.
	Delivered
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		Unknown:            "unknown",
		PendingEnrichment:  "pending_enrichment",
		NeedsReview:        "needs_review",
		ReadyForDesign:     "ready_for_design",
		DesignComplete:     "design_complete",
		InProduction:       "in_production",
		LabelsGenerated:    "labels_generated",
		LoadedForShipment:  "loaded_for_shipment",
		PendingFulfillment: "pending_fulfillment",
		InTransit:          "in_transit",
		Delivered:          "delivered",
	}
}

// getTransitions is the workflow transition table. NeedsReview is reachable
// from every non-terminal status and is added by CanTransitionTo.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // Delivered is terminal, Unknown is invalid
	return map[Status][]Status{
		PendingEnrichment:  {ReadyForDesign},
		NeedsReview:        {ReadyForDesign},
		ReadyForDesign:     {DesignComplete},
		DesignComplete:     {InProduction, ReadyForDesign},
		InProduction:       {LabelsGenerated, InProduction, ReadyForDesign},
		LabelsGenerated:    {LoadedForShipment},
		LoadedForShipment:  {PendingFulfillment},
		PendingFulfillment: {InTransit, InProduction, ReadyForDesign},
		InTransit:          {Delivered},
	}
}

// Statuses lists every valid status in lifecycle order.
func Statuses() []Status {
	return []Status{
		PendingEnrichment,
		NeedsReview,
		ReadyForDesign,
		DesignComplete,
		InProduction,
		LabelsGenerated,
		LoadedForShipment,
		PendingFulfillment,
		InTransit,
		Delivered,
	}
}

// ParseStatus converts a wire value such as "ready_for_design" into a Status.
// Values outside the enumerated set are rejected with ValueIsInvalidError.
//
// Example:
//
//	status, err := order.ParseStatus(body.Status)
//	if err != nil {
//	    return err // 400
//	}
func ParseStatus(s string) (Status, error) {
	for status, str := range getStatusStrings() {
		if status != Unknown && str == s {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that s is one of the enumerated statuses.
func (s Status) Validate() error {
	if s <= Unknown || s > Delivered {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status.
func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no workflow transition leaves s.
func (s Status) IsTerminal() bool {
	return s == Delivered
}

// CanTransitionTo reports whether the workflow allows s -> target.
//
// Valid transitions:
//   - any non-terminal status -> NeedsReview
//   - every edge of the workflow table, e.g. DesignComplete -> InProduction
//   - InProduction -> InProduction (production restart)
//
// Invalid transitions:
//   - Delivered -> anything (terminal)
//   - Unknown or out-of-range statuses, on either side
//   - skips such as PendingEnrichment -> InProduction
//
// Returns:
//   - true when the edge exists
//   - false otherwise; the caller decides which error to report
//
// Order.SetStatus, the operator override, does not consult it.
//
// Example:
//
//	if !o.Status().CanTransitionTo(order.InProduction) {
//	    // keep the order in its queue
//	}
func (s Status) CanTransitionTo(target Status) bool {
	if s.Validate() != nil || target.Validate() != nil || s.IsTerminal() {
		return false
	}
	if target == NeedsReview {
		return true
	}
	for _, next := range getTransitions()[s] {
		if next == target {
			return true
		}
	}
	return false
}

// ValidateStartProduction checks that production may (re)start from s.
//
// Valid transitions:
//   - DesignComplete -> InProduction
//   - InProduction -> InProduction (restart, the start time is re-stamped)
//   - PendingFulfillment -> InProduction (reprint)
//
// Invalid transitions:
//   - ReadyForDesign -> InProduction (design files are not ready)
//   - Delivered -> InProduction (terminal)
//
// Returns:
//   - nil when Order.StartProduction may proceed
//   - ValueIsInvalidError naming s otherwise
//
// Example:
//
//	if err := o.Status().ValidateStartProduction(); err != nil {
//	    return err // 400
//	}
func (s Status) ValidateStartProduction() error {
	if !s.CanTransitionTo(InProduction) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to start production", s.String()),
		)
	}
	return nil
}

// ValidateRequestRevision checks that a design revision may be requested from s.
//
// Valid transitions:
//   - DesignComplete -> ReadyForDesign
//   - InProduction -> ReadyForDesign
//   - PendingFulfillment -> ReadyForDesign
//
// Invalid transitions:
//   - ReadyForDesign -> ReadyForDesign (already in the design queue)
//   - LabelsGenerated or later shipping statuses -> ReadyForDesign
//
// Returns:
//   - nil when Order.RequestRevision may proceed
//   - ValueIsInvalidError naming s otherwise
func (s Status) ValidateRequestRevision() error {
	if s != DesignComplete && s != InProduction && s != PendingFulfillment {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to request a design revision", s.String()),
		)
	}
	return nil
}
