package walletrepo

import (
	"context"
	"errors"
	"time"

	"paperdesk/internal/adapters/out/postgres/extref"
	"paperdesk/internal/adapters/out/postgres/pgerr"
	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/wallet"
	"paperdesk/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormWalletRepository implements ports.WalletRepository. Every read locks the
// wallet row, so check-then-append sequences of concurrent transactions on
// the same wallet serialize.
type GormWalletRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormWalletRepository(db *gorm.DB, tracker aggregateTracker) *GormWalletRepository {
	return &GormWalletRepository{db: db, tracker: tracker}
}

// GetForUpdate creates the wallet of userID on first use.
func (r *GormWalletRepository) GetForUpdate(ctx context.Context, userID kernel.UUID) (*wallet.Wallet, error) {
	if err := userID.Validate(); err != nil {
		return nil, err
	}

	db := r.db.WithContext(ctx)
	now := time.Now().UTC()

	created := WalletDTO{
		ID:        kernel.NewUUID().Bytes(),
		UserID:    userID.Bytes(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_id"}},
		DoNothing: true,
	}).Create(&created).Error; err != nil {
		return nil, err
	}

	return r.lockAndLoad(db, "user_id = ?", userID.Bytes(), userID)
}

func (r *GormWalletRepository) GetByIDForUpdate(ctx context.Context, walletID kernel.UUID) (*wallet.Wallet, error) {
	if err := walletID.Validate(); err != nil {
		return nil, err
	}

	return r.lockAndLoad(r.db.WithContext(ctx), "id = ?", walletID.Bytes(), walletID)
}

func (r *GormWalletRepository) lockAndLoad(db *gorm.DB, where string, arg uuid.UUID, ref kernel.UUID) (*wallet.Wallet, error) {
	var dto WalletDTO
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).Where(where, arg).First(&dto).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return nil, errs.NewObjectNotFoundError("wallet", ref)
	case pgerr.IsRetryable(err):
		return nil, errs.NewVersionIsInvalidErrorWithCause("wallet", err)
	case err != nil:
		return nil, err
	}

	entries, err := r.entries(db, dto.ID)
	if err != nil {
		return nil, err
	}

	id, err := kernel.UUIDFromGoogle(dto.ID)
	if err != nil {
		return nil, err
	}
	userID, err := kernel.UUIDFromGoogle(dto.UserID)
	if err != nil {
		return nil, err
	}

	return wallet.RestoreWallet(id, userID, wallet.Balance(entries), kernel.MoneyFromDecimal(dto.Balance))
}

func (r *GormWalletRepository) entries(db *gorm.DB, walletID uuid.UUID) ([]wallet.Transaction, error) {
	var dtos []TransactionDTO
	if err := db.Where("wallet_id = ?", walletID).Order("created_at, seq").Find(&dtos).Error; err != nil {
		return nil, err
	}

	entries := make([]wallet.Transaction, 0, len(dtos))
	for _, dto := range dtos {
		entry, err := transactionToDomain(dto)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	return entries, nil
}

func (r *GormWalletRepository) ListIDs(ctx context.Context) ([]kernel.UUID, error) {
	var raw []uuid.UUID
	if err := r.db.WithContext(ctx).Model(&WalletDTO{}).Order("created_at, id").Pluck("id", &raw).Error; err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, value := range raw {
		id, err := kernel.UUIDFromGoogle(value)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// Save appends the wallet's pending entries and refreshes the cached balance
// column. The wallet must have been read with one of the locking getters in
// the same transaction. A gateway confirmation already recorded on a ledger
// entry or a payment fails with an *errs.ExternalConfirmationError.
func (r *GormWalletRepository) Save(ctx context.Context, w *wallet.Wallet) error {
	if err := w.Validate(); err != nil {
		return err
	}

	db := r.db.WithContext(ctx)

	if pending := w.PendingEntries(); len(pending) > 0 {
		dtos := lo.Map(pending, func(t wallet.Transaction, _ int) TransactionDTO {
			return transactionFromDomain(t)
		})
		refs := lo.FilterMap(dtos, func(dto TransactionDTO, _ int) (string, bool) {
			return lo.FromPtr(dto.ExternalTxnID), dto.ExternalTxnID != nil
		})
		if err := extref.Claim(db, extref.PaymentsTable, refs...); err != nil {
			return err
		}
		if err := db.Create(&dtos).Error; err != nil {
			if pgerr.IsUniqueViolation(err, ExternalTxnIndex) {
				return errs.NewExternalConfirmationErrorWithCause(lo.FirstOr(refs, ""), err)
			}
			return err
		}
	}

	result := db.Model(&WalletDTO{}).
		Where("id = ?", w.ID().Bytes()).
		Updates(map[string]any{
			"balance":    w.Balance().Decimal(),
			"updated_at": time.Now().UTC(),
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("wallet", w.ID())
	}

	w.MarkSaved()
	r.tracker.TrackAggregate(w.ID(), w)
	return nil
}
