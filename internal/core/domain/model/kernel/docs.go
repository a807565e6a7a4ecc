// Package kernel holds the value objects shared by every aggregate of the marketplace:
// identifiers (UUID) and money helpers built on shopspring/decimal.
package kernel
