// Package catalog holds the authoritative restaurant and menu-item records the cart revalidator
// prices against. The core never writes them; restaurant and menu administration live outside
// the fulfillment pipeline.
package catalog
