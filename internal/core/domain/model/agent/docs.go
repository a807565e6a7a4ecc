// Package agent provides the DeliveryAgent aggregate: the directory record of a person who
// picks orders up from restaurants and brings them to customers.
//
// The package includes:
//   - DeliveryAgent: identity, contact details, availability, rating and delivery count
//
// Key business rules:
//   - Agents must have a valid identifier and a non-empty name
//   - Rating lies in [0, 5]; total deliveries is never negative
//   - Only available agents may see or claim unclaimed orders
package agent
