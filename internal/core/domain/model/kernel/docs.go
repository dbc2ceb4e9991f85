// Package kernel holds the shared value objects of the paperdesk domain.
//
// The package includes:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - Money: fixed-point monetary amount wrapping github.com/shopspring/decimal
//
// Both are immutable and safe for concurrent use. Their zero values are
// detectable: a zero UUID fails Validate, and a zero Money is 0.00.
package kernel
