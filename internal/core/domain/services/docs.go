// Package services provides the pure domain services of the fulfillment
// pipeline, the parts of the business policy that span many orders or need
// product templates next to orders.
//
// The package includes:
//   - QueuePrioritizer: search, priority partition and pagination of a workstation queue
//   - AutoAdvancePolicy: whether a pending_enrichment order can go to the design queue
//   - EnrichmentJoiner: attaches product template metadata to line items by SKU
//
// None of the services perform I/O; use cases fetch the inputs and persist
// the outcome.
package services
