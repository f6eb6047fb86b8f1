// Package order provides the Order aggregate of the fulfillment pipeline.
//
// The package includes:
//   - Order: identity, customer, marketplace detail, design files, label and
//     lifecycle timestamps, with the operations that move it through the workflow
//   - Status: the closed status enumeration with its transition table
//   - Detail, LineItem, Variation: the marketplace payload, with absent
//     personalization represented by a nil Variations slice
//   - StatusChangedEvent: recorded on every status change
//
// Key business rules:
//   - Imported orders start in pending_enrichment
//   - A design revision flag is only ever set while the order is ready_for_design
//   - An order is only loaded for shipment once a shipping label is attached
//   - The review reason lives exactly as long as the needs_review status
package order
