package commands_test

import (
	"errors"
	"testing"

	"paperdesk/internal/core/application/usecases/commands"
	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/order"
	"paperdesk/internal/core/domain/model/pricing"
	"paperdesk/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// expectCatalog stubs the pricing configuration for details: undergraduate
// tier, 24h deadline, no preset, a 10% language surcharge.
func expectCatalog(r repos, details order.Details) {
	r.pricing.On("GetAcademicLevel", mock.Anything, details.AcademicLevelID).
		Return(pricing.AcademicLevel{ID: details.AcademicLevelID, Name: "Undergraduate", Tier: pricing.TierUnderGraduate}, nil).Once()
	r.pricing.On("GetServiceType", mock.Anything, details.ServiceTypeID).
		Return(pricing.ServiceType{ID: details.ServiceTypeID, Name: "Editing", AdjustmentKind: pricing.AdjustmentPercent, AdjustmentValue: decimal.Zero}, nil).Once()
	r.pricing.On("GetDeadlineType", mock.Anything, details.DeadlineTypeID).
		Return(pricing.DeadlineType{ID: details.DeadlineTypeID, Name: "24 hours", Hours: 24}, nil).Once()
	r.pricing.On("GetLanguage", mock.Anything, details.LanguageID).
		Return(pricing.Language{ID: details.LanguageID, Name: "German", SurchargePercent: decimal.NewFromInt(10)}, nil).Once()
	r.pricing.On("FindPreset", mock.Anything, details.AcademicLevelID, details.ServiceTypeID, details.DeadlineTypeID).
		Return(nil, nil).Once()
	r.pricing.On("ListRates", mock.Anything).Return([]pricing.RateRow{{
		ID:            kernel.NewUUID(),
		Hours:         24,
		HighSchool:    kernel.MustMoney("12.00"),
		UnderGraduate: kernel.MustMoney("15.00"),
		Masters:       kernel.MustMoney("18.00"),
		PhD:           kernel.MustMoney("22.00"),
	}}, nil).Once()
}

func TestCreateOrderCommandHandler_Handle_Success(t *testing.T) {
	ctx := t.Context()
	details := newDetails()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), details, &details.ClientID)
	require.NoError(t, err)

	r := newRepos()
	expectCatalog(r, details)
	mock.InOrder(
		r.uow.On("Begin", mock.Anything).Return(nil).Once(),
		r.orders.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		r.history.On("Add", mock.Anything, historyTo(order.WaitingForPayment)).Return(nil).Once(),
		r.uow.On("Commit", mock.Anything).Return(nil).Once(),
		r.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	o, err := commands.NewCreateOrderCommandHandler(r.factory()).Handle(ctx, cmd)

	require.NoError(t, err)
	// 15.00 * 2 pages * 1.10
	assert.Equal(t, "33.00", o.Price().String())
	assert.Equal(t, order.WaitingForPayment, o.Status())
	assert.Equal(t, 1, o.Version())
	r.assertExpectations(t)
}

func TestCreateOrderCommandHandler_Handle_ValidationError(t *testing.T) {
	factory := new(MockUoWFactory)

	_, err := commands.NewCreateOrderCommandHandler(factory).Handle(t.Context(), commands.CreateOrderCommand{})

	require.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	factory.AssertNotCalled(t, "Create")
}

func TestCreateOrderCommandHandler_Handle_BeginError(t *testing.T) {
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), newDetails(), nil)
	require.NoError(t, err)

	r := newRepos()
	r.uow.On("Begin", mock.Anything).Return(errors.New("begin error")).Once()

	_, err = commands.NewCreateOrderCommandHandler(r.factory()).Handle(t.Context(), cmd)

	require.EqualError(t, err, "begin error")
	r.uow.AssertNotCalled(t, "Rollback", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_UnknownConfiguration(t *testing.T) {
	details := newDetails()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), details, nil)
	require.NoError(t, err)

	r := newRepos()
	mock.InOrder(
		r.uow.On("Begin", mock.Anything).Return(nil).Once(),
		r.pricing.On("GetAcademicLevel", mock.Anything, details.AcademicLevelID).
			Return(pricing.AcademicLevel{}, errs.NewObjectNotFoundError("academic level", details.AcademicLevelID)).Once(),
		r.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	_, err = commands.NewCreateOrderCommandHandler(r.factory()).Handle(t.Context(), cmd)

	require.ErrorIs(t, err, errs.ErrObjectNotFound)
	r.orders.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	r.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_AddError(t *testing.T) {
	details := newDetails()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), details, nil)
	require.NoError(t, err)

	r := newRepos()
	expectCatalog(r, details)
	mock.InOrder(
		r.uow.On("Begin", mock.Anything).Return(nil).Once(),
		r.orders.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(errors.New("add error")).Once(),
		r.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	_, err = commands.NewCreateOrderCommandHandler(r.factory()).Handle(t.Context(), cmd)

	require.Error(t, err)
	r.history.AssertNotCalled(t, "Add", mock.Anything, mock.Anything)
	r.uow.AssertNotCalled(t, "Commit", mock.Anything)
}

func TestCreateOrderCommandHandler_Handle_CommitError(t *testing.T) {
	details := newDetails()
	cmd, err := commands.NewCreateOrderCommand(kernel.NewUUID(), details, nil)
	require.NoError(t, err)

	r := newRepos()
	expectCatalog(r, details)
	mock.InOrder(
		r.uow.On("Begin", mock.Anything).Return(nil).Once(),
		r.orders.On("Add", mock.Anything, mock.AnythingOfType("*order.Order")).Return(nil).Once(),
		r.history.On("Add", mock.Anything, mock.Anything).Return(nil).Once(),
		r.uow.On("Commit", mock.Anything).Return(errors.New("commit error")).Once(),
		r.uow.On("Rollback", mock.Anything).Return(nil).Once(),
	)

	_, err = commands.NewCreateOrderCommandHandler(r.factory()).Handle(t.Context(), cmd)

	require.EqualError(t, err, "commit error")
	r.assertExpectations(t)
}
