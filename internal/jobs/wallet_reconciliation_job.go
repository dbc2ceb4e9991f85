package jobs

import (
	"context"
	"log/slog"

	"paperdesk/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultReconcileSchedule runs the reconciliation every five minutes.
const DefaultReconcileSchedule = "*/5 * * * *"

// WalletReconciler is satisfied by commands.ReconcileWalletsCommandHandler.
type WalletReconciler interface {
	Handle(ctx context.Context, cmd commands.ReconcileWalletsCommand) (commands.ReconcileReport, error)
}

// WalletReconciliationJob compares every cached wallet balance with its
// ledger on a cron schedule and repairs the cache.
type WalletReconciliationJob struct {
	handler  WalletReconciler
	schedule string
	cron     *cron.Cron
	logger   *slog.Logger
}

// NewWalletReconciliationJob uses DefaultReconcileSchedule when schedule is
// empty. The schedule is a standard five-field cron expression or a descriptor
// such as "@every 1m".
func NewWalletReconciliationJob(handler WalletReconciler, schedule string, logger *slog.Logger) *WalletReconciliationJob {
	if schedule == "" {
		schedule = DefaultReconcileSchedule
	}
	return &WalletReconciliationJob{
		handler:  handler,
		schedule: schedule,
		cron:     cron.New(),
		logger:   logger.With("component", "wallet_reconciliation_job"),
	}
}

// Start registers the job and starts the scheduler. An invalid schedule is
// returned as an error.
func (j *WalletReconciliationJob) Start() error {
	_, err := j.cron.AddFunc(j.schedule, func() {
		j.Run(context.Background())
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(context.Background(), "Wallet reconciliation job started", "schedule", j.schedule)
	return nil
}

// Run performs one reconciliation pass.
func (j *WalletReconciliationJob) Run(ctx context.Context) {
	report, err := j.handler.Handle(ctx, commands.NewReconcileWalletsCommand(true))
	if err != nil {
		j.logger.ErrorContext(ctx, "Wallet reconciliation failed", "error", err)
		return
	}

	for _, m := range report.Mismatches {
		j.logger.WarnContext(ctx, "Wallet balance mismatch",
			"wallet_id", m.WalletID.String(),
			"user_id", m.UserID.String(),
			"cached", m.Cached.String(),
			"ledger", m.Ledger.String(),
			"repaired", m.Repaired,
		)
	}
	for id, failure := range report.Failed {
		j.logger.ErrorContext(ctx, "Wallet reconciliation failed for wallet", "wallet_id", id.String(), "error", failure)
	}

	j.logger.InfoContext(ctx, "Wallet reconciliation finished",
		"checked", report.Checked,
		"mismatches", len(report.Mismatches),
		"failed", len(report.Failed),
	)
}

// Stop stops the scheduler and waits for a running pass to finish.
func (j *WalletReconciliationJob) Stop() {
	<-j.cron.Stop().Done()
	j.logger.InfoContext(context.Background(), "Wallet reconciliation job stopped")
}
