// internal/services/admin_service_test.go
package services

import (
	"testing"

	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"

	"github.com/dzboutik/dzboutik-backend/internal/models"
)

type AdminServiceTestSuite struct {
	suite.Suite
	db     *gorm.DB
	admin  *AdminService
	orders *OrderService
}

func (suite *AdminServiceTestSuite) SetupTest() {
	suite.db = newTestDB(suite.T())

	pricing := NewPricingService(suite.db)
	inventory := NewInventoryService(suite.db)
	promo := NewPromoService(suite.db)
	suite.orders = NewOrderService(suite.db, inventory, pricing, promo)
	suite.admin = NewAdminService(suite.db, pricing)

	wilaya := &models.Wilaya{
		Name:           "Alger",
		ShippingPrices: models.JSONB{"home": 1200.0, "desk": 600.0},
		Active:         true,
	}
	suite.Require().NoError(suite.db.Create(wilaya).Error)
}

func (suite *AdminServiceTestSuite) placeOrder(product *models.Product, qty int) *models.Order {
	order, err := suite.orders.CreateOrder(&CreateOrderRequest{
		Name:         "Amine B",
		Phone:        "0550123456",
		Wilaya:       "Alger",
		City:         "Alger Centre",
		DeliveryType: models.DeliveryTypeHome,
		Products:     []OrderLineInput{{ProductID: product.ID, Quantity: qty}},
	})
	suite.Require().NoError(err)
	return order
}

func (suite *AdminServiceTestSuite) TestDashboardStats() {
	product := &models.Product{Name: "Tee", Price: 500, Quantity: 100}
	suite.Require().NoError(suite.db.Create(product).Error)

	first := suite.placeOrder(product, 2)
	suite.placeOrder(product, 1)

	completed := models.OrderStatusCompleted
	_, err := suite.orders.UpdateOrder(first.ID, &UpdateOrderRequest{Status: &completed})
	suite.Require().NoError(err)

	stats, err := suite.admin.GetDashboardStats()
	suite.Require().NoError(err)

	suite.Equal(int64(2), stats.TotalOrders)
	suite.Equal(int64(1), stats.OrdersByStatus["completed"])
	suite.Equal(int64(1), stats.OrdersByStatus["pending"])
	suite.Equal(int64(2), stats.OrdersThisMonth)

	// Only completed orders count as revenue: 2*500 + 1200 shipping.
	suite.Equal(2200.0, stats.TotalRevenue)
	suite.Equal(2200.0, stats.MonthlyRevenue)

	suite.Equal(int64(1), stats.TotalProducts)
	suite.Require().NotEmpty(stats.TopProducts)
	suite.Equal(product.ID, stats.TopProducts[0].ProductID)
	suite.Equal(int64(3), stats.TopProducts[0].Ordered)
}

func (suite *AdminServiceTestSuite) TestDashboardLowStock() {
	low := &models.Product{Name: "Rare", Price: 900, Quantity: 2}
	plenty := &models.Product{Name: "Common", Price: 100, Quantity: 50}
	suite.Require().NoError(suite.db.Create(low).Error)
	suite.Require().NoError(suite.db.Create(plenty).Error)

	stats, err := suite.admin.GetDashboardStats()
	suite.Require().NoError(err)

	suite.Require().Len(stats.LowStockProducts, 1)
	suite.Equal(low.ID, stats.LowStockProducts[0].ProductID)
	suite.Equal(2, stats.LowStockProducts[0].Quantity)
}

func (suite *AdminServiceTestSuite) TestCreateUserDuplicateEmail() {
	_, err := suite.admin.CreateUser(&CreateUserRequest{
		Username: "first",
		Email:    "staff@example.com",
		Password: "Secret123!",
		Role:     models.UserRoleEditor,
	})
	suite.Require().NoError(err)

	_, err = suite.admin.CreateUser(&CreateUserRequest{
		Username: "second",
		Email:    "staff@example.com",
		Password: "Secret123!",
		Role:     models.UserRoleEditor,
	})
	suite.ErrorIs(err, ErrDuplicate)
}

func (suite *AdminServiceTestSuite) TestCannotDeleteLastSuperAdmin() {
	super, err := suite.admin.CreateUser(&CreateUserRequest{
		Username: "boss",
		Email:    "boss@example.com",
		Password: "Secret123!",
		Role:     models.UserRoleSuper,
	})
	suite.Require().NoError(err)

	err = suite.admin.DeleteUser(super.ID)
	suite.ErrorIs(err, ErrStateConflict)

	// With a second super admin in place the deletion goes through.
	_, err = suite.admin.CreateUser(&CreateUserRequest{
		Username: "boss2",
		Email:    "boss2@example.com",
		Password: "Secret123!",
		Role:     models.UserRoleSuper,
	})
	suite.Require().NoError(err)

	suite.NoError(suite.admin.DeleteUser(super.ID))
}

func (suite *AdminServiceTestSuite) TestUpdateUserRole() {
	user, err := suite.admin.CreateUser(&CreateUserRequest{
		Username: "staff",
		Email:    "staff@example.com",
		Password: "Secret123!",
		Role:     models.UserRoleEditor,
	})
	suite.Require().NoError(err)

	role := models.UserRoleSubSuper
	updated, err := suite.admin.UpdateUser(user.ID, &UpdateUserRequest{Role: &role})
	suite.Require().NoError(err)
	suite.Equal(models.UserRoleSubSuper, updated.Role)
}

func TestAdminServiceSuite(t *testing.T) {
	suite.Run(t, new(AdminServiceTestSuite))
}
