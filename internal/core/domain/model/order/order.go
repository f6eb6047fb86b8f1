package order

import (
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order was not created
	// through NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// ErrLabelIsRequired is returned when an order without a shipping label
	// is moved to loaded_for_shipment.
	ErrLabelIsRequired = errs.NewValueIsRequiredErrorWithCause(
		"label_url",
		errors.New("an order cannot be loaded for shipment without a shipping label"),
	)
)

// Order is the aggregate root of the fulfillment pipeline. It owns the
// status state machine and the workstation flags derived from it.
//
// Invariants:
//   - needsDesignRevision implies status ReadyForDesign
//   - status LoadedForShipment implies a non-nil labelURL
//   - reviewReason is only set while status is NeedsReview
//
// Concurrent mutations of the same order are last-write-wins; the aggregate
// carries no version token.
type Order struct {
	id          kernel.UUID
	orderNumber string
	storeID     kernel.UUID
	customer    Customer
	address     ShippingAddress

	status              Status
	needsDesignRevision bool
	designRevisionNotes *string
	reviewReason        *string

	detail      Detail
	designFiles []DesignFile

	trackingNumber *string
	labelURL       *string

	orderDate           time.Time
	productionStartedAt *time.Time
	loadedForShipmentAt *time.Time

	events        []StatusChangedEvent
	isConstructed bool
}

// NewOrder creates an order in PendingEnrichment, the way the marketplace
// importer hands it over.
//
// Example:
//
//	o, err := order.NewOrder(
//	    kernel.NewUUID(), "1001", storeID,
//	    order.Customer{Name: "Jane Roe", Email: "jane@example.com"},
//	    order.ShippingAddress{Country: "US"},
//	    order.Detail{LineItems: []order.LineItem{{ID: "tx-1", SKU: "MUG-11OZ", Quantity: 1}}},
//	    placedAt,
//	)
func NewOrder(
	id kernel.UUID,
	orderNumber string,
	storeID kernel.UUID,
	customer Customer,
	address ShippingAddress,
	detail Detail,
	orderDate time.Time,
) (*Order, error) {
	o := &Order{
		customer:      customer,
		address:       address,
		status:        PendingEnrichment,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setStoreID(storeID),
		o.setDetail(detail),
		o.setOrderDate(orderDate),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// Snapshot carries the persisted state of an order into RestoreOrder.
type Snapshot struct {
	ID                  kernel.UUID
	OrderNumber         string
	StoreID             kernel.UUID
	Customer            Customer
	ShippingAddress     ShippingAddress
	Status              Status
	NeedsDesignRevision bool
	DesignRevisionNotes *string
	ReviewReason        *string
	Detail              Detail
	DesignFiles         []DesignFile
	TrackingNumber      *string
	LabelURL            *string
	OrderDate           time.Time
	ProductionStartedAt *time.Time
	LoadedForShipmentAt *time.Time
}

// RestoreOrder rebuilds an order from persistence and re-checks its invariants.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		customer:            s.Customer,
		address:             s.ShippingAddress,
		needsDesignRevision: s.NeedsDesignRevision,
		designRevisionNotes: s.DesignRevisionNotes,
		reviewReason:        s.ReviewReason,
		designFiles:         slices.Clone(s.DesignFiles),
		trackingNumber:      s.TrackingNumber,
		labelURL:            s.LabelURL,
		productionStartedAt: s.ProductionStartedAt,
		loadedForShipmentAt: s.LoadedForShipmentAt,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setOrderNumber(s.OrderNumber),
		o.setStoreID(s.StoreID),
		o.setDetail(s.Detail),
		o.setOrderDate(s.OrderDate),
		o.setStatus(s.Status),
	); err != nil {
		return nil, err
	}

	if err := o.checkInvariants(); err != nil {
		return nil, err
	}

	return o, nil
}

// Validate ensures the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                  { return o.id }
func (o *Order) OrderNumber() string              { return o.orderNumber }
func (o *Order) StoreID() kernel.UUID             { return o.storeID }
func (o *Order) Customer() Customer               { return o.customer }
func (o *Order) ShippingAddress() ShippingAddress { return o.address }
func (o *Order) Status() Status                   { return o.status }
func (o *Order) NeedsDesignRevision() bool        { return o.needsDesignRevision }
func (o *Order) DesignRevisionNotes() *string     { return o.designRevisionNotes }
func (o *Order) ReviewReason() *string            { return o.reviewReason }
func (o *Order) TrackingNumber() *string          { return o.trackingNumber }
func (o *Order) LabelURL() *string                { return o.labelURL }
func (o *Order) OrderDate() time.Time             { return o.orderDate }
func (o *Order) ProductionStartedAt() *time.Time  { return o.productionStartedAt }
func (o *Order) LoadedForShipmentAt() *time.Time  { return o.loadedForShipmentAt }

// Detail returns a copy of the marketplace payload.
func (o *Order) Detail() Detail {
	return o.detail.clone()
}

// DesignFiles returns a copy of the attached design files.
func (o *Order) DesignFiles() []DesignFile {
	return slices.Clone(o.designFiles)
}

// DesignFileFor returns the design file produced for the given line item.
func (o *Order) DesignFileFor(lineItemID string) (DesignFile, bool) {
	for _, f := range o.designFiles {
		if f.LineItemID == lineItemID {
			return f, true
		}
	}
	return DesignFile{}, false
}

// SetStatus is the operator override: any enumerated status is accepted.
//
// Moving to NeedsReview stores reason (blank reasons are stored as nil); any
// other target clears the review reason. Leaving ReadyForDesign clears the
// revision flag. LoadedForShipment requires a shipping label and stamps
// loadedForShipmentAt.
//
// Valid transitions:
//   - any status -> any enumerated status, including moves backwards
//   - X -> X, which records no event
//
// Invalid transitions:
//   - any status -> LoadedForShipment without an attached label
//   - any status -> Unknown
//
// Returns:
//   - nil on success
//   - ErrLabelIsRequired or ValueIsInvalidError otherwise
//
// Example:
//
//	reason := "address could not be verified"
//	if err := o.SetStatus(order.NeedsReview, &reason, clock.Now()); err != nil {
//	    return err
//	}
func (o *Order) SetStatus(target Status, reason *string, now time.Time) error {
	if err := target.Validate(); err != nil {
		return err
	}

	if target == LoadedForShipment {
		if o.labelURL == nil {
			return ErrLabelIsRequired
		}
		if o.status != LoadedForShipment {
			at := now.UTC()
			o.loadedForShipmentAt = &at
		}
	}

	if target == NeedsReview {
		o.reviewReason = normalize(reason)
	} else {
		o.reviewReason = nil
	}

	if target != ReadyForDesign {
		o.needsDesignRevision = false
	}

	o.changeStatus(target, now)
	return nil
}

// StartProduction moves the order to InProduction, stamps the start time and
// clears any pending design revision.
//
// Valid transitions:
//   - DesignComplete -> InProduction
//   - InProduction -> InProduction (restart)
//   - PendingFulfillment -> InProduction
//
// Invalid transitions:
//   - PendingEnrichment, NeedsReview or ReadyForDesign -> InProduction
//   - Delivered -> InProduction (terminal)
//
// Returns:
//   - nil on success; revision notes and review reason are cleared
//   - ValueIsInvalidError when the current status does not allow it
//
// Example:
//
//	if err := o.StartProduction(clock.Now()); err != nil {
//	    return err
//	}
func (o *Order) StartProduction(now time.Time) error {
	if err := o.status.ValidateStartProduction(); err != nil {
		return err
	}

	at := now.UTC()
	o.productionStartedAt = &at
	o.needsDesignRevision = false
	o.designRevisionNotes = nil
	o.reviewReason = nil
	o.changeStatus(InProduction, now)
	return nil
}

// RequestRevision sends the order back to the design queue flagged for
// revision with the operator's notes.
//
// Valid transitions:
//   - DesignComplete, InProduction or PendingFulfillment -> ReadyForDesign
//
// Invalid transitions:
//   - ReadyForDesign -> ReadyForDesign
//   - LabelsGenerated, LoadedForShipment, InTransit or Delivered -> ReadyForDesign
//
// Returns:
//   - nil on success; the production start time is cleared
//   - ValueIsInvalidError when the current status does not allow it
//   - ValueIsRequiredError when notes are blank
//
// Example:
//
//	if err := o.RequestRevision("logo is blurry", clock.Now()); err != nil {
//	    return err
//	}
//	// o.NeedsDesignRevision() == true
func (o *Order) RequestRevision(notes string, now time.Time) error {
	if err := o.status.ValidateRequestRevision(); err != nil {
		return err
	}

	n := normalize(&notes)
	if n == nil {
		return errs.NewValueIsRequiredError("revision_notes")
	}

	o.needsDesignRevision = true
	o.designRevisionNotes = n
	o.productionStartedAt = nil
	o.reviewReason = nil
	o.changeStatus(ReadyForDesign, now)
	return nil
}

// PromoteToDesign moves an enriched order into the design queue.
//
// Valid transitions:
//   - PendingEnrichment -> ReadyForDesign
//
// Invalid transitions:
//   - every other status, including NeedsReview; reviewed orders are
//     released by an operator through SetStatus
//
// Returns:
//   - nil on success, with a StatusChangedEvent recorded
//   - ValueIsInvalidError otherwise
//
// This method is used by the auto-advance pass.
func (o *Order) PromoteToDesign(now time.Time) error {
	if o.status != PendingEnrichment {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to promote to design", o.status.String()),
		)
	}

	o.changeStatus(ReadyForDesign, now)
	return nil
}

// AttachLabel records the shipping label produced by the label renderer.
// The status is not changed, so it may be called in any status; attaching
// again replaces the earlier label. A label url is what later allows
// SetStatus(LoadedForShipment).
//
// Returns:
//   - nil on success; a blank tracking number is stored as nil
//   - ValueIsRequiredError when labelURL is blank
//
// Example:
//
//	if err := o.AttachLabel("1Z999AA10123456784", "labels/1001.pdf"); err != nil {
//	    return err
//	}
//	err := o.SetStatus(order.LoadedForShipment, nil, clock.Now()) // now allowed
func (o *Order) AttachLabel(trackingNumber, labelURL string) error {
	url := normalize(&labelURL)
	if url == nil {
		return errs.NewValueIsRequiredError("label_url")
	}

	o.labelURL = url
	o.trackingNumber = normalize(&trackingNumber)
	return nil
}

// AttachDesignFile records the design file for one of the order's line items,
// replacing an earlier file for the same line item.
//
// Returns:
//   - ObjectNotFoundError when the line item is not part of the order
//   - ValueIsRequiredError when the path is blank
func (o *Order) AttachDesignFile(f DesignFile) error {
	if _, ok := o.detail.lineItem(f.LineItemID); !ok {
		return errs.NewObjectNotFoundError("line item", f.LineItemID)
	}
	if strings.TrimSpace(f.Path) == "" {
		return errs.NewValueIsRequiredError("design file path")
	}

	for i := range o.designFiles {
		if o.designFiles[i].LineItemID == f.LineItemID {
			o.designFiles[i] = f
			return nil
		}
	}
	o.designFiles = append(o.designFiles, f)
	return nil
}

// DomainEvents returns the status changes recorded since the last clear.
func (o *Order) DomainEvents() []StatusChangedEvent {
	return slices.Clone(o.events)
}

func (o *Order) ClearDomainEvents() {
	o.events = nil
}

func (o *Order) changeStatus(target Status, now time.Time) {
	if o.status != target {
		o.events = append(o.events, StatusChangedEvent{
			OrderID:    o.id,
			StoreID:    o.storeID,
			From:       o.status,
			To:         target,
			OccurredAt: now.UTC(),
		})
	}
	o.status = target
}

func (o *Order) checkInvariants() error {
	if o.needsDesignRevision && o.status != ReadyForDesign {
		return errs.NewValueIsInvalidErrorWithCause(
			"needs_design_revision",
			fmt.Errorf("revision flag set while status is %s", o.status),
		)
	}
	if o.status == LoadedForShipment && o.labelURL == nil {
		return ErrLabelIsRequired
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(orderNumber string) error {
	if strings.TrimSpace(orderNumber) == "" {
		return errs.NewValueIsRequiredError("order_number")
	}
	o.orderNumber = orderNumber
	return nil
}

func (o *Order) setStoreID(storeID kernel.UUID) error {
	if err := storeID.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("store_id", err)
	}
	o.storeID = storeID
	return nil
}

func (o *Order) setDetail(detail Detail) error {
	if err := detail.validate(); err != nil {
		return err
	}
	o.detail = detail.clone()
	return nil
}

func (o *Order) setOrderDate(orderDate time.Time) error {
	if orderDate.IsZero() {
		return errs.NewValueIsRequiredError("order_date")
	}
	o.orderDate = orderDate.UTC()
	return nil
}

func (o *Order) setStatus(status Status) error {
	if err := status.Validate(); err != nil {
		return err
	}
	o.status = status
	return nil
}

func normalize(s *string) *string {
	if s == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*s)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
