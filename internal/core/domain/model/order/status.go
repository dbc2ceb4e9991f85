package order

import (
	"fmt"
	"strings"

	"paperdesk/internal/pkg/errs"
)

// Status represents the lifecycle state of a paper order.
// It is a closed set of variants with a pure transition lookup; every variant
// also carries a display label and colour.
//
// State transitions (a self-loop is always allowed):
//
//	WAITING_FOR_PAYMENT -> WRITER_PENDING | CANCELLED
//	WRITER_PENDING      -> IN_PROGRESS | CANCELLED
//	IN_PROGRESS         -> REVIEW | CANCELLED
//	REVIEW              -> APPROVAL | IN_REVISION | CANCELLED
//	IN_REVISION         -> REVIEW | CANCELLED
//
// APPROVAL and CANCELLED only loop onto themselves.
type Status int

const (
	// Unknown catches uninitialized Status values. It is never persisted.
	Unknown Status = iota

	// WaitingForPayment is the initial status; the price is fixed and the
	// order waits for settlement.
	WaitingForPayment

	// WriterPending means the order is paid and waits for a writer.
	WriterPending

	// InProgress means a writer works on the paper.
	InProgress

	// Review means the paper was delivered and the client reviews it.
	Review

	// Approval is the accepted final state.
	Approval

	// InRevision means the client asked for changes after review.
	InRevision

	// Cancelled is the final state of an abandoned order. Payments are
	// reversed on the way in.
	Cancelled
)

type statusInfo struct {
	code  string
	label string
	color string
}

func getStatusInfo() map[Status]statusInfo {
	//nolint:exhaustive // Unknown is intentionally excluded as it's invalid
	return map[Status]statusInfo{
		WaitingForPayment: {code: "WAITING_FOR_PAYMENT", label: "Waiting for payment", color: "warning"},
		WriterPending:     {code: "WRITER_PENDING", label: "Writer pending", color: "info"},
		InProgress:        {code: "IN_PROGRESS", label: "In progress", color: "primary"},
		Review:            {code: "REVIEW", label: "Review", color: "secondary"},
		Approval:          {code: "APPROVAL", label: "Approved", color: "success"},
		InRevision:        {code: "IN_REVISION", label: "In revision", color: "dark"},
		Cancelled:         {code: "CANCELLED", label: "Cancelled", color: "danger"},
	}
}

// getTransitions lists the targets reachable from each status, excluding the
// self-loop which CanTransition allows for every valid status.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // Unknown has no transitions
	return map[Status][]Status{
		WaitingForPayment: {WriterPending, Cancelled},
		WriterPending:     {InProgress, Cancelled},
		InProgress:        {Review, Cancelled},
		Review:            {Approval, InRevision, Cancelled},
		Approval:          {},
		Cancelled:         {},
		InRevision:        {Review, Cancelled},
	}
}

// AllStatuses returns every valid status in lifecycle order.
func AllStatuses() []Status {
	return []Status{WaitingForPayment, WriterPending, InProgress, Review, Approval, InRevision, Cancelled}
}

// ParseStatus converts a code such as "IN_REVISION" back to a Status.
// Matching is case-insensitive.
func ParseStatus(code string) (Status, error) {
	normalized := strings.ToUpper(strings.TrimSpace(code))
	for status, info := range getStatusInfo() {
		if info.code == normalized {
			return status, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a valid status", code))
}

// Validate returns a ValueIsInvalidError for Unknown and out-of-range values,
// e.g. a corrupted column read back from the database.
func (s Status) Validate() error {
	if _, ok := getStatusInfo()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire code of the status, "UNKNOWN" for invalid values.
func (s Status) String() string {
	if info, ok := getStatusInfo()[s]; ok {
		return info.code
	}
	return "UNKNOWN"
}

// Label returns the human-readable name shown to clients and admins.
func (s Status) Label() string {
	if info, ok := getStatusInfo()[s]; ok {
		return info.label
	}
	return "Unknown"
}

// Color returns the badge colour used by admin screens.
func (s Status) Color() string {
	if info, ok := getStatusInfo()[s]; ok {
		return info.color
	}
	return "light"
}

// IsFinal reports whether the status only allows its self-loop.
func (s Status) IsFinal() bool {
	return s == Approval || s == Cancelled
}

// CanTransitionTo reports whether the order may move from s to target.
func (s Status) CanTransitionTo(target Status) bool {
	return CanTransition(s, target)
}

// CanTransition is the pure transition lookup. Both statuses must be valid;
// the self-loop is allowed for every valid status.
func CanTransition(from, to Status) bool {
	if from.Validate() != nil || to.Validate() != nil {
		return false
	}
	if from == to {
		return true
	}
	for _, allowed := range getTransitions()[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// ValidateTransition returns an InvalidTransitionError naming both statuses
// when CanTransition is false.
func ValidateTransition(from, to Status) error {
	if !CanTransition(from, to) {
		return errs.NewInvalidTransitionError(from, to)
	}
	return nil
}
