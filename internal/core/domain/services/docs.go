// Package services provides stateless domain services whose logic spans
// several aggregates or configuration values.
//
// The package includes:
//   - PriceCalculator: computes an order price from pricing configuration
//   - RefundPlanner: selects the payments of an order that still need reversal
package services
