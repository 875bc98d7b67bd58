// internal/services/order_service_test.go
package services

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/dzboutik/dzboutik-backend/internal/models"
)

type OrderServiceTestSuite struct {
	suite.Suite
	db     *gorm.DB
	orders *OrderService
}

func (suite *OrderServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())

	inventory := NewInventoryService(suite.db)
	pricing := NewPricingService(suite.db)
	promo := NewPromoService(suite.db)
	suite.orders = NewOrderService(suite.db, inventory, pricing, promo)

	wilaya := &models.Wilaya{
		Name:           "Alger",
		ShippingPrices: models.JSONB{"home": 1200.0, "desk": 600.0},
		Active:         true,
	}
	suite.Require().NoError(suite.db.Create(wilaya).Error)
}

func (suite *OrderServiceTestSuite) createProduct(name string, price float64, quantity int) *models.Product {
	product := &models.Product{Name: name, Price: price, Quantity: quantity}
	suite.Require().NoError(suite.db.Create(product).Error)
	return product
}

func (suite *OrderServiceTestSuite) createVariant(productID uuid.UUID, attrs map[string]string, stock int) *models.Variant {
	variant := &models.Variant{ProductID: productID, Attributes: models.AttributeMap(attrs), Stock: stock}
	suite.Require().NoError(suite.db.Create(variant).Error)
	return variant
}

func (suite *OrderServiceTestSuite) createPack(name string, price float64, productID uuid.UUID, qty int) *models.Pack {
	pack := &models.Pack{Name: name, Price: price}
	suite.Require().NoError(suite.db.Create(pack).Error)
	suite.Require().NoError(suite.db.Create(&models.PackProduct{PackID: pack.ID, ProductID: productID, Quantity: qty}).Error)
	return pack
}

func (suite *OrderServiceTestSuite) baseRequest() *CreateOrderRequest {
	return &CreateOrderRequest{
		Name:         "Amine B",
		Phone:        "0550123456",
		Wilaya:       "Alger",
		City:         "Alger Centre",
		DeliveryType: models.DeliveryTypeHome,
	}
}

func (suite *OrderServiceTestSuite) productQuantity(id uuid.UUID) int {
	var product models.Product
	suite.Require().NoError(suite.db.First(&product, id).Error)
	return product.Quantity
}

func (suite *OrderServiceTestSuite) TestCreateProductOrder() {
	product := suite.createProduct("Tee", 500, 10)

	req := suite.baseRequest()
	req.Products = []OrderLineInput{{ProductID: product.ID, Quantity: 2}}

	order, err := suite.orders.CreateOrder(req)
	suite.Require().NoError(err)

	suite.Equal(models.OrderStatusPending, order.Status)
	suite.Equal(2200.0, order.Total) // 2*500 + 1200 shipping
	suite.Equal(8, suite.productQuantity(product.ID))
}

func (suite *OrderServiceTestSuite) TestCreateOrderRollsBackOnInsufficientStock() {
	ok := suite.createProduct("Tee", 500, 10)
	scarce := suite.createProduct("Cap", 300, 1)

	req := suite.baseRequest()
	req.Products = []OrderLineInput{
		{ProductID: ok.ID, Quantity: 2},
		{ProductID: scarce.ID, Quantity: 5},
	}

	_, err := suite.orders.CreateOrder(req)
	suite.ErrorIs(err, ErrInsufficientStock)

	// Nothing was written: no order, no stock movement on either product.
	var orderCount int64
	suite.db.Model(&models.Order{}).Count(&orderCount)
	suite.Equal(int64(0), orderCount)
	suite.Equal(10, suite.productQuantity(ok.ID))
	suite.Equal(1, suite.productQuantity(scarce.ID))
}

func (suite *OrderServiceTestSuite) TestCreateOrderWithVariant() {
	product := suite.createProduct("Shirt", 900, 0)
	variant := suite.createVariant(product.ID, map[string]string{"color": "red", "size": "M"}, 4)

	req := suite.baseRequest()
	req.Products = []OrderLineInput{{
		ProductID:  product.ID,
		Quantity:   3,
		Attributes: map[string]string{"color": "red", "size": "M"},
	}}

	order, err := suite.orders.CreateOrder(req)
	suite.Require().NoError(err)

	var reloaded models.Variant
	suite.Require().NoError(suite.db.First(&reloaded, variant.ID).Error)
	suite.Equal(1, reloaded.Stock)

	// The per-attribute stock summary rides along on reads.
	suite.Require().Len(order.Products, 1)
	suite.Equal(1, order.Products[0].ProductAttr["color"]["red"])
}

func (suite *OrderServiceTestSuite) TestCreateOrderVariantMismatch() {
	product := suite.createProduct("Shirt", 900, 0)
	suite.createVariant(product.ID, map[string]string{"color": "red", "size": "M"}, 4)

	req := suite.baseRequest()
	req.Products = []OrderLineInput{{
		ProductID:  product.ID,
		Quantity:   1,
		Attributes: map[string]string{"color": "red"},
	}}

	_, err := suite.orders.CreateOrder(req)
	suite.ErrorIs(err, ErrVariantNotFound)
}

func (suite *OrderServiceTestSuite) TestCreatePackOrderMultipliesStock() {
	inner := suite.createProduct("Inner", 100, 20)
	pack := suite.createPack("Bundle", 3000, inner.ID, 3)

	req := suite.baseRequest()
	req.IsPack = true
	req.Packs = []OrderPackInput{{
		PackID:   pack.ID,
		Quantity: 2,
		Products: []OrderLineInput{{ProductID: inner.ID, Quantity: 3}},
	}}

	order, err := suite.orders.CreateOrder(req)
	suite.Require().NoError(err)

	// 2 packs x 3 units each.
	suite.Equal(14, suite.productQuantity(inner.ID))

	// The bundle price is authoritative; pack quantity does not multiply it.
	suite.Equal(4200.0, order.Total) // 3000 + 1200 shipping
}

func (suite *OrderServiceTestSuite) TestCancelPackOrderRestoresMultipliedStock() {
	inner := suite.createProduct("Inner", 100, 20)
	pack := suite.createPack("Bundle", 3000, inner.ID, 3)

	req := suite.baseRequest()
	req.IsPack = true
	req.Packs = []OrderPackInput{{
		PackID:   pack.ID,
		Quantity: 2,
		Products: []OrderLineInput{{ProductID: inner.ID, Quantity: 3}},
	}}

	order, err := suite.orders.CreateOrder(req)
	suite.Require().NoError(err)
	suite.Equal(14, suite.productQuantity(inner.ID))

	// The credit multiplies pack quantity by per-product quantity, mirroring
	// the decrement: 2 packs x 3 units come back.
	canceled, err := suite.orders.CancelOrder(order.ID)
	suite.Require().NoError(err)
	suite.Equal(models.OrderStatusCanceled, canceled.Status)
	suite.Equal(20, suite.productQuantity(inner.ID))

	// Never a second credit.
	_, err = suite.orders.CancelOrder(order.ID)
	suite.NoError(err)
	suite.Equal(20, suite.productQuantity(inner.ID))
}

func (suite *OrderServiceTestSuite) TestUpdateOrderRejectsMismatchedShape() {
	product := suite.createProduct("Tee", 500, 10)
	pack := suite.createPack("Bundle", 3000, product.ID, 1)

	req := suite.baseRequest()
	req.Products = []OrderLineInput{{ProductID: product.ID, Quantity: 1}}
	plain, err := suite.orders.CreateOrder(req)
	suite.Require().NoError(err)

	req = suite.baseRequest()
	req.IsPack = true
	req.Packs = []OrderPackInput{{PackID: pack.ID, Quantity: 1, Products: []OrderLineInput{{ProductID: product.ID, Quantity: 1}}}}
	packed, err := suite.orders.CreateOrder(req)
	suite.Require().NoError(err)

	// A pack replacement on a plain order is rejected, not dropped.
	packs := []OrderPackInput{{PackID: pack.ID, Quantity: 1, Products: []OrderLineInput{{ProductID: product.ID, Quantity: 1}}}}
	_, err = suite.orders.UpdateOrder(plain.ID, &UpdateOrderRequest{Packs: &packs})
	suite.Error(err)

	// And a plain-product replacement on a pack order likewise.
	lines := []OrderLineInput{{ProductID: product.ID, Quantity: 1}}
	_, err = suite.orders.UpdateOrder(packed.ID, &UpdateOrderRequest{Products: &lines})
	suite.Error(err)

	// Both orders keep their original composition.
	reloaded, err := suite.orders.GetOrder(plain.ID)
	suite.Require().NoError(err)
	suite.Len(reloaded.Products, 1)
	suite.Empty(reloaded.Packs)

	reloaded, err = suite.orders.GetOrder(packed.ID)
	suite.Require().NoError(err)
	suite.Len(reloaded.Packs, 1)
	suite.Empty(reloaded.Products)
}

func (suite *OrderServiceTestSuite) TestCreateOrderShapeExclusivity() {
	product := suite.createProduct("Tee", 500, 10)
	pack := suite.createPack("Bundle", 3000, product.ID, 1)

	// is_pack without packs
	req := suite.baseRequest()
	req.IsPack = true
	req.Products = []OrderLineInput{{ProductID: product.ID, Quantity: 1}}
	_, err := suite.orders.CreateOrder(req)
	suite.Error(err)

	// plain order carrying packs
	req = suite.baseRequest()
	req.Packs = []OrderPackInput{{PackID: pack.ID, Quantity: 1, Products: []OrderLineInput{{ProductID: product.ID, Quantity: 1}}}}
	_, err = suite.orders.CreateOrder(req)
	suite.Error(err)
}

func (suite *OrderServiceTestSuite) TestPromoDiscountDerivedServerSide() {
	product := suite.createProduct("Tee", 500, 10)

	now := time.Now()
	promo := &models.PromoCode{
		Code:       "TEN",
		Discount:   10,
		Type:       models.DiscountTypePercentage,
		ValidFrom:  now.Add(-time.Hour),
		ValidUntil: now.Add(time.Hour),
		Active:     true,
	}
	suite.Require().NoError(suite.db.Create(promo).Error)

	code := "TEN"
	req := suite.baseRequest()
	req.PromoCode = &code
	req.Products = []OrderLineInput{{ProductID: product.ID, Quantity: 2}}

	order, err := suite.orders.CreateOrder(req)
	suite.Require().NoError(err)

	// 10% of the 1000 subtotal, resolved at creation.
	suite.Equal(100.0, order.DiscountValue)
	suite.Equal(2100.0, order.Total) // 1000 + 1200 - 100
}

func (suite *OrderServiceTestSuite) TestInvalidPromoRejectsOrder() {
	product := suite.createProduct("Tee", 500, 10)

	code := "GHOST"
	req := suite.baseRequest()
	req.PromoCode = &code
	req.Products = []OrderLineInput{{ProductID: product.ID, Quantity: 1}}

	_, err := suite.orders.CreateOrder(req)
	suite.ErrorIs(err, ErrNotFound)
	suite.Equal(10, suite.productQuantity(product.ID))
}

func (suite *OrderServiceTestSuite) TestCancelRestoresStockOnce() {
	product := suite.createProduct("Tee", 500, 10)

	req := suite.baseRequest()
	req.Products = []OrderLineInput{{ProductID: product.ID, Quantity: 4}}
	order, err := suite.orders.CreateOrder(req)
	suite.Require().NoError(err)
	suite.Equal(6, suite.productQuantity(product.ID))

	canceled, err := suite.orders.CancelOrder(order.ID)
	suite.Require().NoError(err)
	suite.Equal(models.OrderStatusCanceled, canceled.Status)
	suite.Equal(10, suite.productQuantity(product.ID))

	// Re-canceling is a silent no-op and never a second credit.
	_, err = suite.orders.CancelOrder(order.ID)
	suite.NoError(err)
	suite.Equal(10, suite.productQuantity(product.ID))
}

func (suite *OrderServiceTestSuite) TestCanceledOrderCannotBeRevived() {
	product := suite.createProduct("Tee", 500, 10)

	req := suite.baseRequest()
	req.Products = []OrderLineInput{{ProductID: product.ID, Quantity: 1}}
	order, err := suite.orders.CreateOrder(req)
	suite.Require().NoError(err)

	_, err = suite.orders.CancelOrder(order.ID)
	suite.Require().NoError(err)

	confirmed := models.OrderStatusConfirmed
	_, err = suite.orders.UpdateOrder(order.ID, &UpdateOrderRequest{Status: &confirmed})
	suite.ErrorIs(err, ErrStateConflict)
}

func (suite *OrderServiceTestSuite) TestLineReplacementDoesNotTouchStock() {
	original := suite.createProduct("Tee", 500, 10)
	replacement := suite.createProduct("Cap", 300, 10)

	req := suite.baseRequest()
	req.Products = []OrderLineInput{{ProductID: original.ID, Quantity: 2}}
	order, err := suite.orders.CreateOrder(req)
	suite.Require().NoError(err)
	suite.Equal(8, suite.productQuantity(original.ID))

	newLines := []OrderLineInput{{ProductID: replacement.ID, Quantity: 5}}
	updated, err := suite.orders.UpdateOrder(order.ID, &UpdateOrderRequest{Products: &newLines})
	suite.Require().NoError(err)

	// Composition replaced wholesale...
	suite.Require().Len(updated.Products, 1)
	suite.Equal(replacement.ID, updated.Products[0].ProductID)
	suite.Equal(5, updated.Products[0].Quantity)

	// ...with no stock movement on either side.
	suite.Equal(8, suite.productQuantity(original.ID))
	suite.Equal(10, suite.productQuantity(replacement.ID))

	// The total follows the new composition.
	suite.Equal(2700.0, updated.Total) // 5*300 + 1200
}

func (suite *OrderServiceTestSuite) TestCancelAfterReplacementRestoresCurrentLines() {
	original := suite.createProduct("Tee", 500, 10)
	replacement := suite.createProduct("Cap", 300, 10)

	req := suite.baseRequest()
	req.Products = []OrderLineInput{{ProductID: original.ID, Quantity: 2}}
	order, err := suite.orders.CreateOrder(req)
	suite.Require().NoError(err)

	newLines := []OrderLineInput{{ProductID: replacement.ID, Quantity: 5}}
	_, err = suite.orders.UpdateOrder(order.ID, &UpdateOrderRequest{Products: &newLines})
	suite.Require().NoError(err)

	_, err = suite.orders.CancelOrder(order.ID)
	suite.Require().NoError(err)

	// The credit follows the lines as stored at cancel time.
	suite.Equal(8, suite.productQuantity(original.ID))
	suite.Equal(15, suite.productQuantity(replacement.ID))
}

func (suite *OrderServiceTestSuite) TestUpdateOrderSparseFields() {
	product := suite.createProduct("Tee", 500, 10)

	req := suite.baseRequest()
	req.Products = []OrderLineInput{{ProductID: product.ID, Quantity: 1}}
	order, err := suite.orders.CreateOrder(req)
	suite.Require().NoError(err)

	city := "Hydra"
	confirmed := models.OrderStatusConfirmed
	updated, err := suite.orders.UpdateOrder(order.ID, &UpdateOrderRequest{
		City:   &city,
		Status: &confirmed,
	})
	suite.Require().NoError(err)

	suite.Equal("Hydra", updated.City)
	suite.Equal(models.OrderStatusConfirmed, updated.Status)
	// Untouched fields survive.
	suite.Equal("Amine B", updated.CustomerName)
	suite.Equal("Alger", updated.Wilaya)
}

func (suite *OrderServiceTestSuite) TestGetOrders() {
	product := suite.createProduct("Tee", 500, 10)

	for i := 0; i < 3; i++ {
		req := suite.baseRequest()
		req.Products = []OrderLineInput{{ProductID: product.ID, Quantity: 1}}
		_, err := suite.orders.CreateOrder(req)
		suite.Require().NoError(err)
	}

	params := defaultPaginationParams()
	orders, total, err := suite.orders.GetOrders(params, nil)
	suite.Require().NoError(err)
	suite.Equal(int64(3), total)
	suite.Len(orders, 3)
	for _, order := range orders {
		suite.Equal(1700.0, order.Total) // 500 + 1200
	}

	pending := models.OrderStatusPending
	_, total, err = suite.orders.GetOrders(params, &pending)
	suite.Require().NoError(err)
	suite.Equal(int64(3), total)
}

func (suite *OrderServiceTestSuite) TestDeleteOrder() {
	product := suite.createProduct("Tee", 500, 10)

	req := suite.baseRequest()
	req.Products = []OrderLineInput{{ProductID: product.ID, Quantity: 1}}
	order, err := suite.orders.CreateOrder(req)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.orders.DeleteOrder(order.ID))

	_, err = suite.orders.GetOrder(order.ID)
	suite.ErrorIs(err, ErrNotFound)
}

func TestOrderServiceSuite(t *testing.T) {
	suite.Run(t, new(OrderServiceTestSuite))
}
