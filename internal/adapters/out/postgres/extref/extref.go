// Package extref keeps gateway confirmation ids single-use across the
// payments table and the wallet ledger.
//
// Each table has its own unique index on external_txn_id. Claim covers the
// other direction: it takes a transaction-scoped advisory lock per id, so
// concurrent writers of the same id serialize, and then looks the id up in
// the other table.
package extref

import (
	"errors"
	"slices"

	"paperdesk/internal/pkg/errs"

	"github.com/samber/lo"
	"gorm.io/gorm"
)

const (
	PaymentsTable = "payments"
	LedgerTable   = "wallet_transactions"
)

// ErrAlreadyUsed is the cause of the error Claim returns for a taken id.
var ErrAlreadyUsed = errors.New("gateway confirmation was already used")

// Claim locks ids until the surrounding transaction ends and returns an
// *errs.ExternalConfirmationError when one of them is already stored in
// otherTable.
func Claim(db *gorm.DB, otherTable string, ids ...string) error {
	ids = lo.Uniq(lo.Compact(ids))
	if len(ids) == 0 {
		return nil
	}
	slices.Sort(ids)

	for _, id := range ids {
		if err := db.Exec("SELECT pg_advisory_xact_lock(hashtextextended(?, 0))", id).Error; err != nil {
			return err
		}
	}

	var taken []string
	if err := db.Table(otherTable).
		Where("external_txn_id IN ?", ids).
		Limit(1).
		Pluck("external_txn_id", &taken).Error; err != nil {
		return err
	}
	if len(taken) > 0 {
		return errs.NewExternalConfirmationErrorWithCause(taken[0], ErrAlreadyUsed)
	}
	return nil
}
