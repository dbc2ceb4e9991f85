package pricingrepo_test

import (
	"context"
	"testing"

	"paperdesk/internal/adapters/out/postgres/pgtest"
	"paperdesk/internal/adapters/out/postgres/pricingrepo"
	"paperdesk/internal/core/domain/model/kernel"
	"paperdesk/internal/core/domain/model/pricing"
	"paperdesk/internal/core/domain/services"
	"paperdesk/internal/pkg/errs"

	"github.com/stretchr/testify/suite"
)

var (
	phdID       = mustID("0d7a1c52-3c1e-4f43-9a55-6f0b7d1a1004")
	mastersID   = mustID("0d7a1c52-3c1e-4f43-9a55-6f0b7d1a1003")
	writingID   = mustID("5b2e8f10-7a4d-4c1b-8e33-2a9c4d2b2001")
	sixHoursID  = mustID("9e41b7c3-2f6a-4d8e-b1a2-7c5d3e4f3001")
	threeDaysID = mustID("9e41b7c3-2f6a-4d8e-b1a2-7c5d3e4f3003")
	germanID    = mustID("c3f9a2d4-8b1e-4a6c-9d7f-1e2b3c4d4002")
)

func mustID(s string) kernel.UUID {
	id, err := kernel.UUIDFromString(s)
	if err != nil {
		panic(err)
	}
	return id
}

type PricingRepositoryIntegrationTestSuite struct {
	suite.Suite
	pg         *pgtest.Database
	catalog    pricingrepo.Catalog
	repository *pricingrepo.GormPricingRepository
}

func (suite *PricingRepositoryIntegrationTestSuite) SetupSuite() {
	pg, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.pg = pg

	suite.catalog, err = pricingrepo.LoadCatalog("../../../../../configs/pricing.yaml")
	suite.Require().NoError(err)
}

func (suite *PricingRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.pg.Truncate())
	suite.Require().NoError(pricingrepo.Seed(context.Background(), suite.pg.DB, suite.catalog))
	suite.repository = pricingrepo.NewGormPricingRepository(suite.pg.DB)
}

func (suite *PricingRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.pg.Terminate(context.Background()))
}

func (suite *PricingRepositoryIntegrationTestSuite) TestGetters() {
	ctx := context.Background()

	level, err := suite.repository.GetAcademicLevel(ctx, phdID)
	suite.Require().NoError(err)
	suite.Equal(pricing.TierPhD, level.Tier)

	service, err := suite.repository.GetServiceType(ctx, writingID)
	suite.Require().NoError(err)
	suite.Equal(pricing.AdjustmentPercent, service.AdjustmentKind)

	deadline, err := suite.repository.GetDeadlineType(ctx, threeDaysID)
	suite.Require().NoError(err)
	suite.Equal(72, deadline.Hours)

	language, err := suite.repository.GetLanguage(ctx, germanID)
	suite.Require().NoError(err)
	suite.Equal("15", language.SurchargePercent.String())
}

func (suite *PricingRepositoryIntegrationTestSuite) TestGetters_Missing_ReturnNotFound() {
	ctx := context.Background()
	missing := kernel.NewUUID()

	_, err := suite.repository.GetAcademicLevel(ctx, missing)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = suite.repository.GetServiceType(ctx, missing)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = suite.repository.GetDeadlineType(ctx, missing)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
	_, err = suite.repository.GetLanguage(ctx, missing)
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *PricingRepositoryIntegrationTestSuite) TestFindPreset() {
	ctx := context.Background()

	preset, err := suite.repository.FindPreset(ctx, phdID, writingID, sixHoursID)
	suite.Require().NoError(err)
	suite.Require().NotNil(preset)
	suite.Equal("40.00", preset.BasePricePerPage.String())

	none, err := suite.repository.FindPreset(ctx, mastersID, writingID, sixHoursID)
	suite.Require().NoError(err)
	suite.Nil(none)
}

func (suite *PricingRepositoryIntegrationTestSuite) TestListRates_OrderedByBucket() {
	rates, err := suite.repository.ListRates(context.Background())

	suite.Require().NoError(err)
	suite.Require().Len(rates, 5)
	for i := 1; i < len(rates); i++ {
		suite.Less(rates[i-1].Hours, rates[i].Hours)
	}
}

func (suite *PricingRepositoryIntegrationTestSuite) TestQuote_AgainstSeededCatalog() {
	ctx := context.Background()
	calc := services.NewPriceCalculator()

	// masters, 72h bucket 18.50 * 4 pages = 74.00, german +15% = 85.10
	price, err := calc.Quote(ctx, suite.repository, services.PriceSelection{
		AcademicLevelID: mastersID,
		ServiceTypeID:   writingID,
		DeadlineTypeID:  threeDaysID,
		LanguageID:      germanID,
		Pages:           4,
	})
	suite.Require().NoError(err)
	suite.Equal("85.10", price.String())

	// phd writing in 6h hits the preset: 40.00 * 1.25 * 2 = 100.00, german +15% = 115.00
	price, err = calc.Quote(ctx, suite.repository, services.PriceSelection{
		AcademicLevelID: phdID,
		ServiceTypeID:   writingID,
		DeadlineTypeID:  sixHoursID,
		LanguageID:      germanID,
		Pages:           2,
	})
	suite.Require().NoError(err)
	suite.Equal("115.00", price.String())
}

func (suite *PricingRepositoryIntegrationTestSuite) TestSeed_IsIdempotentUpsert() {
	ctx := context.Background()
	changed := suite.catalog
	changed.DeadlineTypes = append([]pricingrepo.DeadlineTypeDTO(nil), suite.catalog.DeadlineTypes...)
	changed.DeadlineTypes[2].Hours = 96

	suite.Require().NoError(pricingrepo.Seed(ctx, suite.pg.DB, changed))

	deadline, err := suite.repository.GetDeadlineType(ctx, threeDaysID)
	suite.Require().NoError(err)
	suite.Equal(96, deadline.Hours)

	var count int64
	suite.Require().NoError(suite.pg.DB.Model(&pricingrepo.DeadlineTypeDTO{}).Count(&count).Error)
	suite.Equal(int64(len(suite.catalog.DeadlineTypes)), count)
}

func TestPricingRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(PricingRepositoryIntegrationTestSuite))
}
