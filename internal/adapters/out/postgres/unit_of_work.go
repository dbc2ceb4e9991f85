// Package postgres provides the GORM unit of work shared by all repositories.
//
// A unit of work owns one transaction. Repositories obtained from it after
// Begin run inside that transaction; repositories obtained before Begin run
// directly on the pool. Aggregates added or saved through the repositories
// are tracked, and once Commit succeeds their recorded domain events are
// handed to the EventPublisher. A rolled back unit of work publishes nothing.
//
// Usage:
//
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() { _ = uow.Rollback(ctx) }()
//
//	o, err := uow.OrderRepository().GetForUpdate(ctx, orderID)
//	if err != nil {
//	    return err
//	}
//	// ... mutate and save
//
//	return uow.Commit(ctx)
//
// Each goroutine needs its own unit of work.
package postgres

import (
	"context"
	"log/slog"

	"paperdesk/internal/adapters/out/postgres/orderrepo"
	"paperdesk/internal/adapters/out/postgres/paymentrepo"
	"paperdesk/internal/adapters/out/postgres/pgerr"
	"paperdesk/internal/adapters/out/postgres/pricingrepo"
	"paperdesk/internal/adapters/out/postgres/walletrepo"
	"paperdesk/internal/core/domain/model/events"
	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/ports"
	"paperdesk/internal/pkg/errs"

	"gorm.io/gorm"
)

type trackedAggregate struct {
	ID        kernel.UUID
	Aggregate any
}

// GormUnitOfWorkFactory creates UnitOfWork instances on one connection pool.
type GormUnitOfWorkFactory struct {
	db        *gorm.DB
	publisher ports.EventPublisher
	logger    *slog.Logger
}

// NewGormUnitOfWorkFactory returns a factory whose units of work publish
// committed events to publisher. A nil publisher drops events.
func NewGormUnitOfWorkFactory(db *gorm.DB, publisher ports.EventPublisher, logger *slog.Logger) *GormUnitOfWorkFactory {
	if logger == nil {
		logger = slog.Default()
	}
	return &GormUnitOfWorkFactory{
		db:        db,
		publisher: publisher,
		logger:    logger.With("component", "unit_of_work"),
	}
}

func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:        f.db,
		publisher: f.publisher,
		logger:    f.logger,
	}
}

// GormUnitOfWork implements ports.UnitOfWork.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	publisher         ports.EventPublisher
	logger            *slog.Logger
	trackedAggregates []trackedAggregate
}

// Begin starts the transaction. Calling it again while a transaction is open
// is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	uow.trackedAggregates = nil
	return nil
}

// Commit ends the transaction and publishes the events of every tracked
// aggregate. Serialization failures and deadlocks are reported as
// *errs.VersionIsInvalidError so callers can retry. Publishing is best
// effort: failures are logged and never undo the commit.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.trackedAggregates = nil
		if pgerr.IsRetryable(err) {
			return errs.NewVersionIsInvalidErrorWithCause("transaction", err)
		}
		return err
	}

	uow.publish(ctx)
	return nil
}

// Rollback discards the transaction and everything tracked in it.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	uow.trackedAggregates = nil
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	return err
}

func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) StatusHistoryRepository() ports.StatusHistoryRepository {
	return orderrepo.NewGormHistoryRepository(uow.conn())
}

func (uow *GormUnitOfWork) WalletRepository() ports.WalletRepository {
	return walletrepo.NewGormWalletRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) PaymentRepository() ports.PaymentRepository {
	return paymentrepo.NewGormPaymentRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) PricingRepository() ports.PricingRepository {
	return pricingrepo.NewGormPricingRepository(uow.conn())
}

// TrackAggregate is called by repositories for every aggregate they wrote.
func (uow *GormUnitOfWork) TrackAggregate(id kernel.UUID, aggregate any) {
	uow.trackedAggregates = append(uow.trackedAggregates, trackedAggregate{
		ID:        id,
		Aggregate: aggregate,
	})
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

func (uow *GormUnitOfWork) publish(ctx context.Context) {
	tracked := uow.trackedAggregates
	uow.trackedAggregates = nil

	var pending []events.Event
	for _, t := range tracked {
		if source, ok := t.Aggregate.(events.Source); ok {
			pending = append(pending, source.PullEvents()...)
		}
	}
	if len(pending) == 0 || uow.publisher == nil {
		return
	}

	if err := uow.publisher.Publish(ctx, pending...); err != nil {
		uow.logger.ErrorContext(ctx, "publish committed events", "count", len(pending), "error", err)
	}
}

// Migrate creates or updates every table the repositories use.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&orderrepo.OrderDTO{},
		&orderrepo.HistoryDTO{},
		&walletrepo.WalletDTO{},
		&walletrepo.TransactionDTO{},
		&paymentrepo.PaymentDTO{},
		&pricingrepo.AcademicLevelDTO{},
		&pricingrepo.ServiceTypeDTO{},
		&pricingrepo.DeadlineTypeDTO{},
		&pricingrepo.LanguageDTO{},
		&pricingrepo.RateDTO{},
		&pricingrepo.PresetDTO{},
	)
}
