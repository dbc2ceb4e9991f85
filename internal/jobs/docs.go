// Package jobs provides scheduled background tasks built on
// github.com/robfig/cron/v3.
//
// # Available Jobs
//
// WalletReconciliationJob recomputes each wallet's balance from its ledger,
// logs every wallet whose cached balance column disagrees and rewrites the
// cache. It runs on RECONCILE_CRON, every five minutes by default.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(reconcileHandler, cfg.ReconcileCron, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Error Handling
//
// A failed pass is logged and retried on the next tick. Failures of single
// wallets are logged individually and do not stop the pass.
package jobs
