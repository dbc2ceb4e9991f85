package payment

import (
	"errors"
	"fmt"
	"maps"
	"regexp"
	"time"

	"paperdesk/internal/core/domain/model/events"
	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/pkg/errs"
)

var ErrPaymentIsNotConstructed = errors.New("Payment must be created via NewPayment constructor")

// Metadata keys written on refund records.
const (
	MetaRefundOf        = "refund_of"
	MetaGatewayRefundID = "gateway_refund_id"
	MetaOrigin          = "origin"
)

// MaxExternalIDLength bounds external transaction identifiers.
const MaxExternalIDLength = 128

var externalIDPattern = regexp.MustCompile(`^[A-Za-z0-9._:-]+$`)

type Method string

const (
	MethodWallet Method = "wallet"
	MethodPaypal Method = "paypal"
	MethodHybrid Method = "hybrid"
)

func (m Method) Validate() error {
	switch m {
	case MethodWallet, MethodPaypal, MethodHybrid:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("method", fmt.Errorf("%q is not a payment method", string(m)))
	}
}

type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
	StatusRefunded  Status = "refunded"
	StatusCancelled Status = "cancelled"
)

func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed, StatusRefunded, StatusCancelled:
		return nil
	default:
		return errs.NewValueIsInvalidErrorWithCause("status", fmt.Errorf("%q is not a payment status", string(s)))
	}
}

// Origin tells where the money of a payment came from and therefore where a
// refund has to send it back.
type Origin string

const (
	OriginWallet  Origin = "wallet"
	OriginGateway Origin = "gateway"
)

// ValidateExternalTransactionID checks the structure of a gateway
// confirmation id. It does not contact the gateway.
func ValidateExternalTransactionID(id string) error {
	switch {
	case id == "":
		return errs.NewExternalConfirmationErrorWithCause(id, errs.NewValueIsRequiredError("externalTxnId"))
	case len(id) > MaxExternalIDLength:
		return errs.NewExternalConfirmationErrorWithCause(
			id[:MaxExternalIDLength],
			errs.NewValueIsOutOfRangeError("externalTxnId length", len(id), 1, MaxExternalIDLength),
		)
	case !externalIDPattern.MatchString(id):
		return errs.NewExternalConfirmationErrorWithCause(
			id,
			errs.NewValueIsInvalidErrorWithCause("externalTxnId", errors.New("allowed characters are A-Z a-z 0-9 . _ : -")),
		)
	}
	return nil
}

// Payment is a settlement record for an order. It references the order and
// the payer but owns neither.
type Payment struct {
	id            kernel.UUID
	orderID       kernel.UUID
	payerID       kernel.UUID
	amount        kernel.Money
	method        Method
	externalTxnID *string
	status        Status
	metadata      map[string]string
	createdAt     time.Time

	events.Recorder
	isConstructed bool
}

// NewPayment creates a completed payment. A non-nil externalTxnID marks it as
// gateway-origin and must pass ValidateExternalTransactionID.
//
// Parameters:
//   - orderID: the order being paid
//   - payerID: the client who pays
//   - amount: a positive amount
//   - method: how the amount was collected
//   - externalTxnID: gateway confirmation, nil for wallet payments
//   - now: creation time, stored in UTC
//
// Returns:
//   - *Payment: a completed payment carrying a Recorded event
//   - error: a validation error naming the invalid argument
//
// Example:
//
//	ref := "PAYID-7K2"
//	p, err := payment.NewPayment(orderID, clientID, price, payment.MethodPaypal, &ref, time.Now())
//	if err != nil {
//	    return err
//	}
//	// p.Metadata()[payment.MetaOrigin] == "gateway"
func NewPayment(
	orderID, payerID kernel.UUID,
	amount kernel.Money,
	method Method,
	externalTxnID *string,
	now time.Time,
) (*Payment, error) {
	if err := errors.Join(
		orderID.Validate(),
		payerID.Validate(),
		amount.ValidatePositive("amount"),
		method.Validate(),
	); err != nil {
		return nil, err
	}
	if externalTxnID != nil {
		if err := ValidateExternalTransactionID(*externalTxnID); err != nil {
			return nil, err
		}
	}

	p := &Payment{
		id:            kernel.NewUUID(),
		orderID:       orderID,
		payerID:       payerID,
		amount:        amount,
		method:        method,
		externalTxnID: copyString(externalTxnID),
		status:        StatusCompleted,
		metadata:      map[string]string{MetaOrigin: string(originOf(externalTxnID))},
		createdAt:     now.UTC(),
		isConstructed: true,
	}
	p.record()

	return p, nil
}

// NewRefundRecord documents the reversal of original. gatewayRefundID is the
// reference returned by the gateway, empty for wallet-origin refunds.
func NewRefundRecord(original *Payment, gatewayRefundID string, now time.Time) (*Payment, error) {
	if err := original.Validate(); err != nil {
		return nil, err
	}
	if original.IsRefund() {
		return nil, errs.NewValueIsInvalidErrorWithCause("payment", errors.New("a refund record cannot be refunded"))
	}

	meta := map[string]string{
		MetaRefundOf: original.ID().String(),
		MetaOrigin:   string(original.Origin()),
	}
	if gatewayRefundID != "" {
		meta[MetaGatewayRefundID] = gatewayRefundID
	}

	p := &Payment{
		id:            kernel.NewUUID(),
		orderID:       original.orderID,
		payerID:       original.payerID,
		amount:        original.amount,
		method:        original.method,
		status:        StatusRefunded,
		metadata:      meta,
		createdAt:     now.UTC(),
		isConstructed: true,
	}
	p.record()

	return p, nil
}

// RestorePayment rebuilds a payment read from persistence.
func RestorePayment(
	id, orderID, payerID kernel.UUID,
	amount kernel.Money,
	method Method,
	externalTxnID *string,
	status Status,
	metadata map[string]string,
	createdAt time.Time,
) (*Payment, error) {
	if err := errors.Join(
		id.Validate(),
		orderID.Validate(),
		payerID.Validate(),
		amount.ValidatePositive("amount"),
		method.Validate(),
		status.Validate(),
	); err != nil {
		return nil, err
	}

	meta := make(map[string]string, len(metadata))
	maps.Copy(meta, metadata)

	return &Payment{
		id:            id,
		orderID:       orderID,
		payerID:       payerID,
		amount:        amount,
		method:        method,
		externalTxnID: copyString(externalTxnID),
		status:        status,
		metadata:      meta,
		createdAt:     createdAt,
		isConstructed: true,
	}, nil
}

func (p *Payment) Validate() error {
	if p == nil || !p.isConstructed {
		return ErrPaymentIsNotConstructed
	}
	return nil
}

func (p *Payment) ID() kernel.UUID {
	return p.id
}

func (p *Payment) OrderID() kernel.UUID {
	return p.orderID
}

func (p *Payment) PayerID() kernel.UUID {
	return p.payerID
}

func (p *Payment) Amount() kernel.Money {
	return p.amount
}

func (p *Payment) Method() Method {
	return p.method
}

func (p *Payment) ExternalTxnID() *string {
	return copyString(p.externalTxnID)
}

func (p *Payment) Status() Status {
	return p.status
}

func (p *Payment) CreatedAt() time.Time {
	return p.createdAt
}

// Metadata returns a copy of the key/value annotations.
func (p *Payment) Metadata() map[string]string {
	out := make(map[string]string, len(p.metadata))
	maps.Copy(out, p.metadata)
	return out
}

// Origin reports whether the money came from the wallet or the gateway.
// Refund records carry the origin of the payment they reverse.
func (p *Payment) Origin() Origin {
	if o, ok := p.metadata[MetaOrigin]; ok && (o == string(OriginWallet) || o == string(OriginGateway)) {
		return Origin(o)
	}
	return originOf(p.externalTxnID)
}

// IsRefund reports whether the record documents a reversal.
func (p *Payment) IsRefund() bool {
	_, ok := p.metadata[MetaRefundOf]
	return ok || p.status == StatusRefunded
}

// RefundOf returns the id of the reversed payment for refund records.
func (p *Payment) RefundOf() (kernel.UUID, bool) {
	raw, ok := p.metadata[MetaRefundOf]
	if !ok {
		return kernel.UUID{}, false
	}
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, false
	}
	return id, true
}

func (p *Payment) record() {
	p.Record(Recorded{
		PaymentID: p.id,
		OrderID:   p.orderID,
		PayerID:   p.payerID,
		Amount:    p.amount,
		Method:    p.method,
		Status:    p.status,
		Origin:    p.Origin(),
		At:        p.createdAt,
	})
}

func originOf(externalTxnID *string) Origin {
	if externalTxnID != nil {
		return OriginGateway
	}
	return OriginWallet
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}
