package commands_test

import (
	"context"
	"testing"
	"time"

	"paperdesk/internal/core/application/usecases/commands"
	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/order"
	"paperdesk/internal/core/domain/model/payment"
	"paperdesk/internal/core/domain/model/pricing"
	"paperdesk/internal/core/domain/model/wallet"
	"paperdesk/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

func (m *MockOrderRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*order.Order), args.Error(1)
}

type MockStatusHistoryRepository struct{ mock.Mock }

func (m *MockStatusHistoryRepository) Add(ctx context.Context, entries ...order.HistoryEntry) error {
	args := m.Called(ctx, entries)
	return args.Error(0)
}

func (m *MockStatusHistoryRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]order.HistoryEntry, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]order.HistoryEntry), args.Error(1)
}

type MockWalletRepository struct{ mock.Mock }

func (m *MockWalletRepository) GetForUpdate(ctx context.Context, userID kernel.UUID) (*wallet.Wallet, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepository) GetByIDForUpdate(ctx context.Context, walletID kernel.UUID) (*wallet.Wallet, error) {
	args := m.Called(ctx, walletID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*wallet.Wallet), args.Error(1)
}

func (m *MockWalletRepository) ListIDs(ctx context.Context) ([]kernel.UUID, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]kernel.UUID), args.Error(1)
}

func (m *MockWalletRepository) Save(ctx context.Context, w *wallet.Wallet) error {
	args := m.Called(ctx, w)
	return args.Error(0)
}

type MockPaymentRepository struct{ mock.Mock }

func (m *MockPaymentRepository) Add(ctx context.Context, payments ...*payment.Payment) error {
	args := m.Called(ctx, payments)
	return args.Error(0)
}

func (m *MockPaymentRepository) ListByOrder(ctx context.Context, orderID kernel.UUID) ([]*payment.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*payment.Payment), args.Error(1)
}

type MockPricingRepository struct{ mock.Mock }

func (m *MockPricingRepository) GetAcademicLevel(ctx context.Context, id kernel.UUID) (pricing.AcademicLevel, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(pricing.AcademicLevel), args.Error(1)
}

func (m *MockPricingRepository) GetServiceType(ctx context.Context, id kernel.UUID) (pricing.ServiceType, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(pricing.ServiceType), args.Error(1)
}

func (m *MockPricingRepository) GetDeadlineType(ctx context.Context, id kernel.UUID) (pricing.DeadlineType, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(pricing.DeadlineType), args.Error(1)
}

func (m *MockPricingRepository) GetLanguage(ctx context.Context, id kernel.UUID) (pricing.Language, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(pricing.Language), args.Error(1)
}

func (m *MockPricingRepository) FindPreset(
	ctx context.Context, levelID, serviceID, deadlineID kernel.UUID,
) (*pricing.Preset, error) {
	args := m.Called(ctx, levelID, serviceID, deadlineID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*pricing.Preset), args.Error(1)
}

func (m *MockPricingRepository) ListRates(ctx context.Context) ([]pricing.RateRow, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]pricing.RateRow), args.Error(1)
}

type MockRefundGateway struct{ mock.Mock }

func (m *MockRefundGateway) Refund(ctx context.Context, req ports.RefundRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

// MockUoW satisfies UoW, OrderUoW and WalletUoW.
type MockUoW struct{ mock.Mock }

func (m *MockUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

func (m *MockUoW) StatusHistoryRepository() ports.StatusHistoryRepository {
	args := m.Called()
	return args.Get(0).(ports.StatusHistoryRepository)
}

func (m *MockUoW) WalletRepository() ports.WalletRepository {
	args := m.Called()
	return args.Get(0).(ports.WalletRepository)
}

func (m *MockUoW) PaymentRepository() ports.PaymentRepository {
	args := m.Called()
	return args.Get(0).(ports.PaymentRepository)
}

func (m *MockUoW) PricingRepository() ports.PricingRepository {
	args := m.Called()
	return args.Get(0).(ports.PricingRepository)
}

type MockUoWFactory struct{ mock.Mock }

func (m *MockUoWFactory) Create() commands.UoW {
	args := m.Called()
	return args.Get(0).(commands.UoW)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockWalletUoWFactory struct{ mock.Mock }

func (m *MockWalletUoWFactory) Create() commands.WalletUoW {
	args := m.Called()
	return args.Get(0).(commands.WalletUoW)
}

// repos bundles the mocks behind one MockUoW. Repository getters may be
// called any number of times.
type repos struct {
	uow      *MockUoW
	orders   *MockOrderRepository
	history  *MockStatusHistoryRepository
	wallets  *MockWalletRepository
	payments *MockPaymentRepository
	pricing  *MockPricingRepository
}

func newRepos() repos {
	r := repos{
		uow:      new(MockUoW),
		orders:   new(MockOrderRepository),
		history:  new(MockStatusHistoryRepository),
		wallets:  new(MockWalletRepository),
		payments: new(MockPaymentRepository),
		pricing:  new(MockPricingRepository),
	}
	r.uow.On("OrderRepository").Return(r.orders).Maybe()
	r.uow.On("StatusHistoryRepository").Return(r.history).Maybe()
	r.uow.On("WalletRepository").Return(r.wallets).Maybe()
	r.uow.On("PaymentRepository").Return(r.payments).Maybe()
	r.uow.On("PricingRepository").Return(r.pricing).Maybe()
	return r
}

func (r repos) assertExpectations(t *testing.T) {
	t.Helper()
	r.uow.AssertExpectations(t)
	r.orders.AssertExpectations(t)
	r.history.AssertExpectations(t)
	r.wallets.AssertExpectations(t)
	r.payments.AssertExpectations(t)
	r.pricing.AssertExpectations(t)
}

func (r repos) factory() *MockUoWFactory {
	f := new(MockUoWFactory)
	f.On("Create").Return(r.uow)
	return f
}

var testNow = time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC)

func newDetails() order.Details {
	return order.Details{
		ClientID:        kernel.NewUUID(),
		AcademicLevelID: kernel.NewUUID(),
		ServiceTypeID:   kernel.NewUUID(),
		DeadlineTypeID:  kernel.NewUUID(),
		LanguageID:      kernel.NewUUID(),
		Pages:           2,
		Words:           550,
	}
}

// restoreOrder builds a persisted order in status with the given price.
func restoreOrder(t *testing.T, status order.Status, price string) *order.Order {
	t.Helper()
	o, err := order.RestoreOrder(kernel.NewUUID(), newDetails(), nil, kernel.MustMoney(price), status, 1, testNow, testNow)
	require.NoError(t, err)
	return o
}

func restoreWallet(t *testing.T, userID kernel.UUID, balance string) *wallet.Wallet {
	t.Helper()
	w, err := wallet.RestoreWallet(kernel.NewUUID(), userID, kernel.MustMoney(balance), kernel.MustMoney(balance))
	require.NoError(t, err)
	return w
}

func paymentsMatching(n int, check func(p *payment.Payment) bool) any {
	return mock.MatchedBy(func(ps []*payment.Payment) bool {
		if len(ps) != n {
			return false
		}
		for _, p := range ps {
			if !check(p) {
				return false
			}
		}
		return true
	})
}

func historyTo(target order.Status) any {
	return mock.MatchedBy(func(entries []order.HistoryEntry) bool {
		return len(entries) == 1 && entries[0].To() == target
	})
}
