package paymentrepo

import (
	"context"

	"paperdesk/internal/adapters/out/postgres/extref"
	"paperdesk/internal/adapters/out/postgres/pgerr"
	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/payment"
	"paperdesk/internal/pkg/errs"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormPaymentRepository implements ports.PaymentRepository.
type GormPaymentRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormPaymentRepository(db *gorm.DB, tracker aggregateTracker) *GormPaymentRepository {
	return &GormPaymentRepository{db: db, tracker: tracker}
}

// Add inserts payments in one statement. An external transaction id already
// used by another payment or by a wallet top-up fails the whole batch with an
// *errs.ExternalConfirmationError.
func (r *GormPaymentRepository) Add(ctx context.Context, payments ...*payment.Payment) error {
	if len(payments) == 0 {
		return nil
	}

	dtos := make([]PaymentDTO, 0, len(payments))
	for _, p := range payments {
		if err := p.Validate(); err != nil {
			return err
		}
		dtos = append(dtos, fromDomain(p))
	}

	db := r.db.WithContext(ctx)
	refs := lo.FilterMap(payments, func(p *payment.Payment, _ int) (string, bool) {
		return lo.FromPtr(p.ExternalTxnID()), p.ExternalTxnID() != nil
	})
	if err := extref.Claim(db, extref.LedgerTable, refs...); err != nil {
		return err
	}

	if err := db.Create(&dtos).Error; err != nil {
		if pgerr.IsUniqueViolation(err, ExternalTxnIndex) {
			return errs.NewExternalConfirmationErrorWithCause(externalRef(payments), err)
		}
		return err
	}

	for _, p := range payments {
		r.tracker.TrackAggregate(p.ID(), p)
	}
	return nil
}

// ListByOrder returns every record of the order, oldest first.
func (r *GormPaymentRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*payment.Payment, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}

	var dtos []PaymentDTO
	if err := r.db.WithContext(ctx).
		Where("order_id = ?", orderID.Bytes()).
		Order("created_at, seq").
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	payments := make([]*payment.Payment, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		payments = append(payments, p)
	}
	return payments, nil
}

func externalRef(payments []*payment.Payment) string {
	for _, p := range payments {
		if ref := p.ExternalTxnID(); ref != nil {
			return *ref
		}
	}
	return ""
}
