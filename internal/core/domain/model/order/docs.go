// Package order provides the Order aggregate at the center of the fulfillment pipeline:
// the priced, persisted record of a checkout and its lifecycle.
//
// The package includes:
//   - Order: The aggregate root holding line items, money, payment, assignment and status
//   - Status and Event: The lifecycle state machine and the inputs it accepts
//   - Item: A priced line item frozen at checkout
//   - Assignment: The delivery agent bound to an order and the contact snapshot shown to customers
//
// Key business rules:
//   - Total equals the sum of line totals plus the delivery fee, within one cent
//   - Status moves pending -> confirmed -> preparing -> ready -> out_for_delivery -> delivered
//   - Any non-terminal order may be cancelled; delivered and cancelled accept nothing
//   - An order may be assigned to at most one delivery agent, and only while ready
//   - Every successful mutation increments the version used for conditional writes
package order
