// internal/services/pricing_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/dzboutik/dzboutik-backend/internal/models"
)

type PricingServiceTestSuite struct {
	suite.Suite
	db      *gorm.DB
	pricing *PricingService
}

func (suite *PricingServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())
	suite.pricing = NewPricingService(suite.db)
}

func (suite *PricingServiceTestSuite) createWilaya(name string, home, desk float64) {
	wilaya := &models.Wilaya{
		Name:           name,
		ShippingPrices: models.JSONB{"home": home, "desk": desk},
		Active:         true,
	}
	suite.Require().NoError(suite.db.Create(wilaya).Error)
}

func (suite *PricingServiceTestSuite) TestProductOrderTotal() {
	suite.createWilaya("Alger", 1200, 600)

	product := &models.Product{Name: "Tee", Price: 500}
	order := &models.Order{
		Wilaya:       "Alger",
		DeliveryType: models.DeliveryTypeHome,
		Products: []models.OrderProduct{
			{Quantity: 2, Product: product},
		},
	}

	total, err := suite.pricing.OrderTotal(order)
	suite.NoError(err)
	suite.Equal(2200.0, total) // 2*500 + 1200
}

func (suite *PricingServiceTestSuite) TestPackOrderTotalWithDiscount() {
	suite.createWilaya("Oran", 1000, 800)

	pack := &models.Pack{Name: "Bundle", Price: 3000}
	order := &models.Order{
		Wilaya:        "Oran",
		DeliveryType:  models.DeliveryTypeDesk,
		IsPack:        true,
		DiscountValue: 300,
		Packs: []models.OrderPack{
			{Quantity: 1, Pack: pack},
		},
	}

	total, err := suite.pricing.OrderTotal(order)
	suite.NoError(err)
	suite.Equal(3500.0, total) // 3000 + 800 - 300
}

func (suite *PricingServiceTestSuite) TestPackCompositionDoesNotFeedTotal() {
	suite.createWilaya("Oran", 1000, 800)

	// The enumerated products inside the pack carry their own prices, but
	// only the bundle price counts.
	pack := &models.Pack{Name: "Bundle", Price: 3000}
	order := &models.Order{
		Wilaya:       "Oran",
		DeliveryType: models.DeliveryTypeDesk,
		IsPack:       true,
		Packs: []models.OrderPack{
			{
				Quantity: 2,
				Pack:     pack,
				Products: []models.OrderPackProduct{
					{Quantity: 4, Product: &models.Product{Name: "Inner", Price: 9999}},
				},
			},
		},
	}

	suite.Equal(3000.0, Subtotal(order))
}

func (suite *PricingServiceTestSuite) TestTotalIsDeterministic() {
	suite.createWilaya("Alger", 1200, 600)

	order := &models.Order{
		Wilaya:       "Alger",
		DeliveryType: models.DeliveryTypeHome,
		Products: []models.OrderProduct{
			{Quantity: 3, Product: &models.Product{Name: "Tee", Price: 750}},
		},
	}

	first, err := suite.pricing.OrderTotal(order)
	suite.NoError(err)
	second, err := suite.pricing.OrderTotal(order)
	suite.NoError(err)
	suite.Equal(first, second)
}

func (suite *PricingServiceTestSuite) TestTotalReflectsCurrentPrice() {
	suite.createWilaya("Alger", 1200, 600)

	product := &models.Product{Name: "Tee", Price: 500}
	order := &models.Order{
		Wilaya:       "Alger",
		DeliveryType: models.DeliveryTypeHome,
		Products: []models.OrderProduct{
			{Quantity: 2, Product: product},
		},
	}

	before, err := suite.pricing.OrderTotal(order)
	suite.NoError(err)
	suite.Equal(2200.0, before)

	// A later price change shifts historical totals.
	product.Price = 600
	after, err := suite.pricing.OrderTotal(order)
	suite.NoError(err)
	suite.Equal(2400.0, after)
}

func (suite *PricingServiceTestSuite) TestMissingWilayaShipsFree() {
	order := &models.Order{
		Wilaya:       "Nowhere",
		DeliveryType: models.DeliveryTypeHome,
		Products: []models.OrderProduct{
			{Quantity: 1, Product: &models.Product{Name: "Tee", Price: 500}},
		},
	}

	total, err := suite.pricing.OrderTotal(order)
	suite.NoError(err)
	suite.Equal(500.0, total)
}

func (suite *PricingServiceTestSuite) TestOversizedDiscountGoesNegative() {
	order := &models.Order{
		DiscountValue: 1000,
		Products: []models.OrderProduct{
			{Quantity: 1, Product: &models.Product{Name: "Tee", Price: 400}},
		},
	}

	total, err := suite.pricing.OrderTotal(order)
	suite.NoError(err)
	suite.Equal(-600.0, total)
}

func (suite *PricingServiceTestSuite) TestShippingPriceForUnknownDeliveryType() {
	wilaya := &models.Wilaya{
		Name:           "Blida",
		ShippingPrices: models.JSONB{"home": 900.0},
	}
	suite.Equal(0.0, wilaya.ShippingPriceFor(models.DeliveryTypeDesk))
	suite.Equal(900.0, wilaya.ShippingPriceFor(models.DeliveryTypeHome))
}

func TestPricingServiceSuite(t *testing.T) {
	suite.Run(t, new(PricingServiceTestSuite))
}
