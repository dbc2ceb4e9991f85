package jobs

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"paperdesk/internal/core/application/usecases/commands"
	"paperdesk/internal/core/domain/model/kernel"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockWalletReconciler struct{ mock.Mock }

func (m *MockWalletReconciler) Handle(ctx context.Context, cmd commands.ReconcileWalletsCommand) (commands.ReconcileReport, error) {
	args := m.Called(ctx, cmd)
	return args.Get(0).(commands.ReconcileReport), args.Error(1)
}

func newBufferedLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return slog.New(slog.NewJSONHandler(buf, nil)), buf
}

func TestWalletReconciliationJob_DefaultSchedule(t *testing.T) {
	logger, _ := newBufferedLogger()

	job := NewWalletReconciliationJob(new(MockWalletReconciler), "", logger)

	assert.Equal(t, DefaultReconcileSchedule, job.schedule)
}

func TestWalletReconciliationJob_StartRejectsInvalidSchedule(t *testing.T) {
	logger, _ := newBufferedLogger()
	job := NewWalletReconciliationJob(new(MockWalletReconciler), "every now and then", logger)

	err := job.Start()

	assert.Error(t, err)
}

func TestWalletReconciliationJob_StartAndStop(t *testing.T) {
	logger, buf := newBufferedLogger()
	job := NewWalletReconciliationJob(new(MockWalletReconciler), "@every 1h", logger)

	require.NoError(t, job.Start())
	job.Stop()

	assert.Contains(t, buf.String(), "Wallet reconciliation job started")
	assert.Contains(t, buf.String(), "Wallet reconciliation job stopped")
}

func TestWalletReconciliationJob_RunRepairsAndLogsMismatches(t *testing.T) {
	ctx := context.Background()
	logger, buf := newBufferedLogger()
	reconciler := new(MockWalletReconciler)
	walletID := kernel.NewUUID()
	failedID := kernel.NewUUID()

	reconciler.On("Handle", ctx, mock.MatchedBy(func(cmd commands.ReconcileWalletsCommand) bool {
		return cmd.Repair()
	})).Return(commands.ReconcileReport{
		Checked: 3,
		Mismatches: []commands.WalletMismatch{{
			WalletID: walletID,
			UserID:   kernel.NewUUID(),
			Cached:   kernel.MustMoney("99.00"),
			Ledger:   kernel.MustMoney("15.00"),
			Repaired: true,
		}},
		Failed: map[kernel.UUID]error{failedID: errors.New("lock timeout")},
	}, nil).Once()

	NewWalletReconciliationJob(reconciler, "", logger).Run(ctx)

	reconciler.AssertExpectations(t)
	out := buf.String()
	assert.Contains(t, out, "Wallet balance mismatch")
	assert.Contains(t, out, walletID.String())
	assert.Contains(t, out, `"cached":"99.00"`)
	assert.Contains(t, out, failedID.String())
	assert.Contains(t, out, `"checked":3`)
}

func TestWalletReconciliationJob_RunLogsHandlerError(t *testing.T) {
	ctx := context.Background()
	logger, buf := newBufferedLogger()
	reconciler := new(MockWalletReconciler)
	reconciler.On("Handle", ctx, mock.Anything).
		Return(commands.ReconcileReport{}, errors.New("database is down")).Once()

	NewWalletReconciliationJob(reconciler, "", logger).Run(ctx)

	reconciler.AssertExpectations(t)
	assert.Contains(t, buf.String(), "Wallet reconciliation failed")
	assert.NotContains(t, buf.String(), "Wallet reconciliation finished")
}

func TestJobManager_StartAllWrapsErrors(t *testing.T) {
	logger, _ := newBufferedLogger()
	manager := NewJobManager(new(MockWalletReconciler), "not a cron expression", logger)

	err := manager.StartAll()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to start wallet reconciliation job")
}
