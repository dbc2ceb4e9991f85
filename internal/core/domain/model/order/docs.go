// Package order provides the Order aggregate of the paperdesk marketplace and
// its status state machine.
//
// The package includes:
//   - Order: the aggregate root holding price, status and writer assignment
//   - Status: the closed set of lifecycle states with a pure transition table
//   - HistoryEntry: one immutable row of the per-order status log
//   - StatusChanged: the domain event recorded by every transition
//
// Key business rules:
//   - Orders start in WAITING_FOR_PAYMENT with a positive price
//   - Every transition is validated against the table and yields one HistoryEntry
//   - APPROVAL and CANCELLED are final; only their self-loop is allowed
//   - The price changes only through an explicit override before payment
//
// Persistence, locking and the side effects of a transition (such as payment
// reversal on cancellation) belong to the application layer.
package order
