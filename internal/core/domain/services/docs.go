// Package services holds domain services: logic that spans several aggregates and does not
// belong to any one of them.
//
// The package includes:
//   - CartRevalidator: prices a client cart against the catalog and collects every problem
//   - OrderPolicy: the single role permission table consulted by every order read and transition
//   - OrderDispatcher: picks the delivery agent a ready order is pushed to
//
// Services are stateless and never touch storage; application handlers load the aggregates
// and persist the results.
package services
