package http

import (
	"time"

	"paperdesk/internal/core/application/usecases/commands"
	"paperdesk/internal/core/application/usecases/queries"
	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/order"
	"paperdesk/internal/core/domain/model/wallet"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Wire types mirror the schemas of openapi.yaml.

type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

type PriceSelection struct {
	AcademicLevelID uuid.UUID `json:"academic_level_id"`
	ServiceTypeID   uuid.UUID `json:"service_type_id"`
	DeadlineTypeID  uuid.UUID `json:"deadline_type_id"`
	LanguageID      uuid.UUID `json:"language_id"`
	Pages           int       `json:"pages"`
}

type NewOrder struct {
	PriceSelection
	ClientID *uuid.UUID `json:"client_id,omitempty"`
	Words    int        `json:"words,omitempty"`
}

type Estimate struct {
	Amount string `json:"amount"`
	Pages  int    `json:"pages"`
}

type Order struct {
	ID        uuid.UUID  `json:"id"`
	ClientID  uuid.UUID  `json:"client_id"`
	WriterID  *uuid.UUID `json:"writer_id"`
	Status    string     `json:"status"`
	Price     string     `json:"price"`
	Pages     int        `json:"pages"`
	Words     int        `json:"words"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

type HistoryEntry struct {
	ID        uuid.UUID  `json:"id"`
	From      *string    `json:"from,omitempty"`
	To        string     `json:"to"`
	ActorID   *uuid.UUID `json:"actor_id"`
	Note      string     `json:"note"`
	CreatedAt time.Time  `json:"created_at"`
}

type Transition struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

type BulkTransition struct {
	Transition
	OrderIDs []uuid.UUID `json:"order_ids"`
}

type BulkOutcome struct {
	OrderID uuid.UUID `json:"order_id"`
	Status  string    `json:"status,omitempty"`
	Error   *Error    `json:"error,omitempty"`
}

type CancelRequest struct {
	Reason string `json:"reason"`
}

type PaymentRequest struct {
	Method        string  `json:"method"`
	WalletAmount  *string `json:"wallet_amount,omitempty"`
	ExternalTxnID string  `json:"external_txn_id,omitempty"`
}

type AssignWriterRequest struct {
	WriterID uuid.UUID `json:"writer_id"`
}

type OverridePriceRequest struct {
	Price  string `json:"price"`
	Reason string `json:"reason"`
}

type Balance struct {
	UserID  uuid.UUID `json:"user_id"`
	Balance string    `json:"balance"`
}

type WalletEntry struct {
	ID          uuid.UUID  `json:"id"`
	Kind        string     `json:"kind"`
	Amount      string     `json:"amount"`
	Description string     `json:"description"`
	OrderID     *uuid.UUID `json:"order_id"`
	Method      string     `json:"method"`
	Status      string     `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
}

type CreditRequest struct {
	Amount      string     `json:"amount"`
	Description string     `json:"description"`
	Method      string     `json:"method"`
	OrderID     *uuid.UUID `json:"order_id,omitempty"`
}

type DebitRequest struct {
	Amount      string     `json:"amount"`
	Description string     `json:"description"`
	OrderID     *uuid.UUID `json:"order_id,omitempty"`
}

type TopUpRequest struct {
	Amount        string `json:"amount"`
	ExternalTxnID string `json:"external_txn_id"`
}

type ReconcileRequest struct {
	Repair bool `json:"repair"`
}

type Mismatch struct {
	WalletID uuid.UUID `json:"wallet_id"`
	UserID   uuid.UUID `json:"user_id"`
	Cached   string    `json:"cached"`
	Ledger   string    `json:"ledger"`
	Repaired bool      `json:"repaired"`
}

type ReconcileReport struct {
	Checked    int         `json:"checked"`
	Mismatches []Mismatch  `json:"mismatches"`
	Failed     []uuid.UUID `json:"failed"`
}

func optionalGoogleID(id *kernel.UUID) *uuid.UUID {
	if id == nil {
		return nil
	}
	return lo.ToPtr(id.Bytes())
}

func optionalKernelID(id *uuid.UUID) (*kernel.UUID, error) {
	if id == nil {
		return nil, nil
	}
	converted, err := kernel.UUIDFromGoogle(*id)
	if err != nil {
		return nil, err
	}
	return &converted, nil
}

func toOrder(o *order.Order) Order {
	d := o.Details()
	return Order{
		ID:        o.ID().Bytes(),
		ClientID:  d.ClientID.Bytes(),
		WriterID:  optionalGoogleID(o.WriterID()),
		Status:    o.Status().String(),
		Price:     o.Price().String(),
		Pages:     d.Pages,
		Words:     d.Words,
		CreatedAt: o.CreatedAt(),
		UpdatedAt: o.UpdatedAt(),
	}
}

func toListedOrder(item queries.ListOrdersQueryResponse) Order {
	return Order{
		ID:        item.ID.Bytes(),
		ClientID:  item.ClientID.Bytes(),
		WriterID:  optionalGoogleID(item.WriterID),
		Status:    item.Status.String(),
		Price:     item.Price.String(),
		Pages:     item.Pages,
		Words:     item.Words,
		CreatedAt: item.CreatedAt,
		UpdatedAt: item.UpdatedAt,
	}
}

func toHistoryEntry(item queries.GetOrderHistoryQueryResponse) HistoryEntry {
	entry := HistoryEntry{
		ID:        item.ID.Bytes(),
		To:        item.To.String(),
		ActorID:   optionalGoogleID(item.ActorID),
		Note:      item.Note,
		CreatedAt: item.CreatedAt,
	}
	if item.From != nil {
		entry.From = lo.ToPtr(item.From.String())
	}
	return entry
}

func toWalletEntry(t wallet.Transaction) WalletEntry {
	return WalletEntry{
		ID:          t.ID().Bytes(),
		Kind:        string(t.Kind()),
		Amount:      t.Amount().String(),
		Description: t.Description(),
		OrderID:     optionalGoogleID(t.OrderID()),
		Method:      string(t.Method()),
		Status:      string(t.Status()),
		CreatedAt:   t.CreatedAt(),
	}
}

func toListedWalletEntry(item queries.ListWalletTransactionsQueryResponse) WalletEntry {
	return WalletEntry{
		ID:          item.ID.Bytes(),
		Kind:        string(item.Kind),
		Amount:      item.Amount.String(),
		Description: item.Description,
		OrderID:     optionalGoogleID(item.OrderID),
		Method:      string(item.Method),
		Status:      string(item.Status),
		CreatedAt:   item.CreatedAt,
	}
}

func toBulkOutcome(outcome commands.BulkTransitionOutcome) BulkOutcome {
	result := BulkOutcome{OrderID: outcome.OrderID.Bytes()}
	if outcome.Err != nil {
		result.Error = lo.ToPtr(toError(outcome.Err))
		return result
	}
	result.Status = outcome.Status.String()
	return result
}

func toReconcileReport(report commands.ReconcileReport) ReconcileReport {
	return ReconcileReport{
		Checked: report.Checked,
		Mismatches: lo.Map(report.Mismatches, func(m commands.WalletMismatch, _ int) Mismatch {
			return Mismatch{
				WalletID: m.WalletID.Bytes(),
				UserID:   m.UserID.Bytes(),
				Cached:   m.Cached.String(),
				Ledger:   m.Ledger.String(),
				Repaired: m.Repaired,
			}
		}),
		Failed: lo.Map(lo.Keys(report.Failed), func(id kernel.UUID, _ int) uuid.UUID {
			return id.Bytes()
		}),
	}
}
