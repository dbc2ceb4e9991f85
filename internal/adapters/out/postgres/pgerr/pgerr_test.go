package pgerr_test

import (
	"errors"
	"fmt"
	"testing"

	"paperdesk/internal/adapters/out/postgres/pgerr"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestIsUniqueViolation(t *testing.T) {
	pgxErr := &pgconn.PgError{Code: "23505", ConstraintName: "idx_payments_external_txn_id"}
	pqErr := &pq.Error{Code: "23505", Constraint: "idx_payments_external_txn_id"}

	tests := []struct {
		name     string
		err      error
		index    string
		expected bool
	}{
		{"pgx any index", pgxErr, "", true},
		{"pgx matching index", fmt.Errorf("insert: %w", pgxErr), "idx_payments_external_txn_id", true},
		{"pgx other index", pgxErr, "idx_wallets_user_id", false},
		{"pq matching index", pqErr, "idx_payments_external_txn_id", true},
		{"pq other code", &pq.Error{Code: "23503"}, "", false},
		{"plain error", errors.New("boom"), "", false},
		{"nil", nil, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, pgerr.IsUniqueViolation(tt.err, tt.index))
		})
	}
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, pgerr.IsRetryable(&pgconn.PgError{Code: "40001"}))
	assert.True(t, pgerr.IsRetryable(&pq.Error{Code: "40P01"}))
	assert.False(t, pgerr.IsRetryable(&pgconn.PgError{Code: "23505"}))
	assert.False(t, pgerr.IsRetryable(errors.New("boom")))
}
