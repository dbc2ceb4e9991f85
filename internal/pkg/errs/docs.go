// Package errs provides the stable error kinds of the paperdesk core.
//
// Every kind follows the same pattern:
//   - a sentinel error variable (e.g., ErrInsufficientFunds) usable with errors.Is
//   - a struct type carrying the details, usable with errors.As
//   - constructor functions with and without cause
//   - Error() for the human-readable message and Unwrap() returning the sentinel
//
// Domain kinds surfaced to callers:
//   - InvalidTransitionError: a status change not permitted from the current status
//   - InsufficientFundsError: a wallet debit larger than the balance
//   - ObjectNotFoundError: a referenced order, rate, preset or user is missing
//   - ExternalConfirmationError: a gateway confirmation or refund is absent or malformed
//
// Validation kinds (ValueIsRequiredError, ValueIsInvalidError,
// ValueIsOutOfRangeError) guard constructors, and VersionIsInvalidError reports
// an optimistic concurrency conflict.
package errs
