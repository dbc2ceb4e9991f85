package orderrepo_test

import (
	"context"
	"testing"
	"time"

	"paperdesk/internal/adapters/out/postgres/orderrepo"
	"paperdesk/internal/adapters/out/postgres/pgtest"
	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/order"
	"paperdesk/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type OrderRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	db         *gorm.DB
	repository *orderrepo.GormOrderRepository
	history    *orderrepo.GormHistoryRepository
	tracker    *MockAggregateTracker
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg
	suite.db = pg.DB
}

func (suite *OrderRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())

	suite.tracker = new(MockAggregateTracker)
	suite.repository = orderrepo.NewGormOrderRepository(suite.db, suite.tracker)
	suite.history = orderrepo.NewGormHistoryRepository(suite.db)
}

func (suite *OrderRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_ThenGet_RoundTrip() {
	ctx := context.Background()
	o, _ := suite.newOrder("123.45")

	suite.tracker.On("TrackAggregate", o.ID(), o).Once()

	suite.Require().NoError(suite.repository.Add(ctx, o))

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.True(got.ID().IsEqual(o.ID()))
	suite.Equal(o.Details(), got.Details())
	suite.Equal("123.45", got.Price().String())
	suite.Equal(order.WaitingForPayment, got.Status())
	suite.Equal(1, got.Version())
	suite.Nil(got.WriterID())
	suite.tracker.AssertExpectations(suite.T())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestAdd_NotConstructedOrder_Fails() {
	err := suite.repository.Add(context.Background(), &order.Order{})

	suite.Require().ErrorIs(err, order.ErrOrderIsNotConstructed)
	suite.assertOrderCount(0)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGet_Missing_ReturnsNotFound() {
	_, err := suite.repository.Get(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_BumpsVersion() {
	ctx := context.Background()
	o := suite.storedOrder()

	_, err := o.TransitionTo(order.WriterPending, nil, "paid", time.Now())
	suite.Require().NoError(err)

	suite.tracker.On("TrackAggregate", o.ID(), o).Once()
	suite.Require().NoError(suite.repository.Update(ctx, o))
	suite.Equal(2, o.Version())

	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.WriterPending, got.Status())
	suite.Equal(2, got.Version())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_StaleVersion_ReturnsVersionConflict() {
	ctx := context.Background()
	o := suite.storedOrder()

	first, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	second, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)

	_, err = first.TransitionTo(order.WriterPending, nil, "", time.Now())
	suite.Require().NoError(err)
	suite.tracker.On("TrackAggregate", first.ID(), first).Once()
	suite.Require().NoError(suite.repository.Update(ctx, first))

	_, err = second.TransitionTo(order.Cancelled, nil, "", time.Now())
	suite.Require().NoError(err)
	err = suite.repository.Update(ctx, second)

	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
	got, err := suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.WriterPending, got.Status())
}

func (suite *OrderRepositoryIntegrationTestSuite) TestUpdate_Missing_ReturnsNotFound() {
	o, _ := suite.newOrder("10.00")

	err := suite.repository.Update(context.Background(), o)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestGetForUpdate_HoldsRowLock() {
	ctx := context.Background()
	o := suite.storedOrder()

	holder := suite.db.Begin()
	defer holder.Rollback()
	_, err := orderrepo.NewGormOrderRepository(holder, suite.tracker).GetForUpdate(ctx, o.ID())
	suite.Require().NoError(err)

	waiter := suite.db.Begin()
	defer waiter.Rollback()
	suite.Require().NoError(waiter.Exec("SET LOCAL lock_timeout = '200ms'").Error)

	_, err = orderrepo.NewGormOrderRepository(waiter, suite.tracker).GetForUpdate(ctx, o.ID())
	suite.Require().Error(err)

	// a plain read is not blocked
	_, err = suite.repository.Get(ctx, o.ID())
	suite.Require().NoError(err)
}

func (suite *OrderRepositoryIntegrationTestSuite) TestHistory_ListByOrder_Chronological() {
	ctx := context.Background()
	o, created := suite.newOrder("50.00")
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Maybe()
	suite.Require().NoError(suite.repository.Add(ctx, o))

	actor := kernel.NewUUID()
	now := time.Now()
	paid, err := o.TransitionTo(order.WriterPending, &actor, "paid", now)
	suite.Require().NoError(err)
	loop, err := o.TransitionTo(order.WriterPending, &actor, "nudge", now)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.history.Add(ctx, created, paid, loop))

	entries, err := suite.history.ListByOrder(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Require().Len(entries, 3)

	suite.Nil(entries[0].From())
	suite.Equal(order.WaitingForPayment, entries[0].To())
	suite.Equal(order.WaitingForPayment, *entries[1].From())
	suite.Equal(order.WriterPending, entries[1].To())
	suite.Equal("nudge", entries[2].Note())
	suite.Equal(order.WriterPending, *entries[2].From())
	suite.True(entries[2].ActorID().IsEqual(actor))
}

func (suite *OrderRepositoryIntegrationTestSuite) TestHistory_ListByOrder_Empty() {
	entries, err := suite.history.ListByOrder(context.Background(), kernel.NewUUID())

	suite.Require().NoError(err)
	suite.Empty(entries)
}

func (suite *OrderRepositoryIntegrationTestSuite) newOrder(price string) (*order.Order, order.HistoryEntry) {
	client := kernel.NewUUID()
	o, entry, err := order.NewOrder(kernel.NewUUID(), order.Details{
		ClientID:        client,
		AcademicLevelID: kernel.NewUUID(),
		ServiceTypeID:   kernel.NewUUID(),
		DeadlineTypeID:  kernel.NewUUID(),
		LanguageID:      kernel.NewUUID(),
		Pages:           2,
		Words:           550,
	}, kernel.MustMoney(price), &client, time.Now())
	suite.Require().NoError(err)
	return o, entry
}

func (suite *OrderRepositoryIntegrationTestSuite) storedOrder() *order.Order {
	o, _ := suite.newOrder("100.00")
	suite.Require().NoError(orderrepo.NewGormOrderRepository(suite.db, nopTracker{}).Add(context.Background(), o))
	return o
}

func (suite *OrderRepositoryIntegrationTestSuite) assertOrderCount(expected int64) {
	var count int64
	suite.Require().NoError(suite.db.Model(&orderrepo.OrderDTO{}).Count(&count).Error)
	suite.Equal(expected, count)
}

type nopTracker struct{}

func (nopTracker) TrackAggregate(kernel.UUID, any) {}

func TestOrderRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(OrderRepositoryIntegrationTestSuite))
}
