package jobs

import (
	"fmt"
	"log/slog"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	walletReconciliationJob *WalletReconciliationJob
}

// NewJobManager creates a job manager. reconcileSchedule may be empty to use
// DefaultReconcileSchedule.
func NewJobManager(
	reconciler WalletReconciler,
	reconcileSchedule string,
	logger *slog.Logger,
) *JobManager {
	return &JobManager{
		walletReconciliationJob: NewWalletReconciliationJob(reconciler, reconcileSchedule, logger),
	}
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if err := jm.walletReconciliationJob.Start(); err != nil {
		return fmt.Errorf("failed to start wallet reconciliation job: %w", err)
	}
	return nil
}

// StopAll stops all scheduled jobs gracefully.
func (jm *JobManager) StopAll() {
	jm.walletReconciliationJob.Stop()
}
