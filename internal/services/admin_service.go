// internal/services/admin_service.go
package services

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dzboutik/dzboutik-backend/internal/models"
	"github.com/dzboutik/dzboutik-backend/internal/utils"
)

// AdminService backs the dashboard and account management. Revenue figures
// go through the pricing service so the dashboard and the order screens can
// never disagree on a total.
type AdminService struct {
	db      *gorm.DB
	pricing *PricingService
}

func NewAdminService(db *gorm.DB, pricing *PricingService) *AdminService {
	return &AdminService{db: db, pricing: pricing}
}

type DashboardStats struct {
	TotalOrders      int64            `json:"total_orders"`
	OrdersByStatus   map[string]int64 `json:"orders_by_status"`
	OrdersThisMonth  int64            `json:"orders_this_month"`
	OrderGrowth      float64          `json:"order_growth"`
	TotalRevenue     float64          `json:"total_revenue"`
	MonthlyRevenue   float64          `json:"monthly_revenue"`
	TotalProducts    int64            `json:"total_products"`
	TotalPacks       int64            `json:"total_packs"`
	LowStockProducts []LowStockEntry  `json:"low_stock_products"`
	TopProducts      []TopProductRow  `json:"top_products"`
	PromoUsage       []PromoUsageRow  `json:"promo_usage"`
	PendingContacts  int64            `json:"pending_contacts"`
}

type LowStockEntry struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Quantity  int       `json:"quantity"`
}

type TopProductRow struct {
	ProductID uuid.UUID `json:"product_id"`
	Name      string    `json:"name"`
	Ordered   int64     `json:"ordered"`
}

type PromoUsageRow struct {
	Code  string `json:"code"`
	Count int64  `json:"count"`
}

const lowStockThreshold = 5

// GetDashboardStats assembles the back-office landing page numbers.
func (s *AdminService) GetDashboardStats() (*DashboardStats, error) {
	stats := &DashboardStats{OrdersByStatus: make(map[string]int64)}
	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	s.db.Model(&models.Order{}).Count(&stats.TotalOrders)

	for _, status := range []models.OrderStatus{
		models.OrderStatusPending,
		models.OrderStatusConfirmed,
		models.OrderStatusCompleted,
		models.OrderStatusCanceled,
	} {
		var count int64
		s.db.Model(&models.Order{}).Where("status = ?", status).Count(&count)
		stats.OrdersByStatus[string(status)] = count
	}

	s.db.Model(&models.Order{}).Where("created_at >= ?", monthStart).Count(&stats.OrdersThisMonth)

	var lastMonthOrders int64
	s.db.Model(&models.Order{}).
		Where("created_at >= ? AND created_at < ?", lastMonthStart, monthStart).
		Count(&lastMonthOrders)
	if lastMonthOrders > 0 {
		stats.OrderGrowth = float64(stats.OrdersThisMonth-lastMonthOrders) / float64(lastMonthOrders) * 100
	}

	totalRevenue, err := s.revenueSince(time.Time{})
	if err != nil {
		return nil, err
	}
	stats.TotalRevenue = totalRevenue

	monthlyRevenue, err := s.revenueSince(monthStart)
	if err != nil {
		return nil, err
	}
	stats.MonthlyRevenue = monthlyRevenue

	s.db.Model(&models.Product{}).Count(&stats.TotalProducts)
	s.db.Model(&models.Pack{}).Count(&stats.TotalPacks)
	s.db.Model(&models.ContactMessage{}).Where("handled = ?", false).Count(&stats.PendingContacts)

	if err := s.db.Model(&models.Product{}).
		Select("id AS product_id, name, quantity").
		Where("quantity <= ?", lowStockThreshold).
		Where("NOT EXISTS (SELECT 1 FROM variants WHERE variants.product_id = products.id AND variants.deleted_at IS NULL)").
		Order("quantity ASC").
		Limit(10).
		Scan(&stats.LowStockProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to load low stock products: %w", err)
	}

	if err := s.db.Model(&models.OrderProduct{}).
		Select("order_products.product_id, products.name, SUM(order_products.quantity) AS ordered").
		Joins("JOIN products ON products.id = order_products.product_id").
		Group("order_products.product_id, products.name").
		Order("ordered DESC").
		Limit(10).
		Scan(&stats.TopProducts).Error; err != nil {
		return nil, fmt.Errorf("failed to load top products: %w", err)
	}

	if err := s.db.Model(&models.Order{}).
		Select("promo_code AS code, COUNT(*) AS count").
		Where("promo_code IS NOT NULL").
		Group("promo_code").
		Order("count DESC").
		Limit(10).
		Scan(&stats.PromoUsage).Error; err != nil {
		return nil, fmt.Errorf("failed to load promo usage: %w", err)
	}

	return stats, nil
}

// revenueSince totals completed orders created at or after the cutoff. Totals
// are computed, not stored, so this walks the aggregates through the same
// pricing path reads use.
func (s *AdminService) revenueSince(cutoff time.Time) (float64, error) {
	query := s.db.Model(&models.Order{}).Where("status = ?", models.OrderStatusCompleted)
	if !cutoff.IsZero() {
		query = query.Where("created_at >= ?", cutoff)
	}

	var orders []models.Order
	if err := query.
		Preload("Products.Product").
		Preload("Packs.Pack").
		Find(&orders).Error; err != nil {
		return 0, fmt.Errorf("failed to load completed orders: %w", err)
	}

	var revenue float64
	for i := range orders {
		total, err := s.pricing.OrderTotal(&orders[i])
		if err != nil {
			return 0, err
		}
		revenue += total
	}
	return revenue, nil
}

// Account management.

type CreateUserRequest struct {
	Username string          `json:"username" validate:"required,username"`
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,strong_password"`
	Role     models.UserRole `json:"role" validate:"required,oneof=super sub-super editor"`
}

type UpdateUserRequest struct {
	Username *string          `json:"username,omitempty" validate:"omitempty,username"`
	Email    *string          `json:"email,omitempty" validate:"omitempty,email"`
	Password *string          `json:"password,omitempty" validate:"omitempty,strong_password"`
	Role     *models.UserRole `json:"role,omitempty" validate:"omitempty,oneof=super sub-super editor"`
	Active   *bool            `json:"active,omitempty"`
}

func (s *AdminService) GetUsers(params utils.PaginationParams) ([]models.User, int64, error) {
	query := s.db.Model(&models.User{})

	if params.Search != "" {
		term := "%" + params.Search + "%"
		query = query.Where("username LIKE ? OR email LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count users: %w", err)
	}

	allowedSortFields := []string{"created_at", "username", "email", "role"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var users []models.User
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch users: %w", err)
	}

	return users, total, nil
}

func (s *AdminService) CreateUser(req *CreateUserRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var existing models.User
	if err := s.db.Where("email = ? OR username = ?", req.Email, req.Username).First(&existing).Error; err == nil {
		return nil, fmt.Errorf("%w: user with this email or username", ErrDuplicate)
	}

	user := &models.User{
		Username: req.Username,
		Email:    req.Email,
		Role:     req.Role,
		Active:   true,
	}
	if err := user.SetPassword(req.Password); err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *AdminService) UpdateUser(id uuid.UUID, req *UpdateUserRequest) (*models.User, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return nil, fmt.Errorf("%w: user %s", ErrNotFound, id)
	}

	updates := make(map[string]interface{})
	if req.Username != nil {
		updates["username"] = *req.Username
	}
	if req.Email != nil {
		updates["email"] = *req.Email
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.Active != nil {
		updates["active"] = *req.Active
	}
	if req.Password != nil {
		if err := user.SetPassword(*req.Password); err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		updates["password_hash"] = user.PasswordHash
	}

	if len(updates) > 0 {
		if err := s.db.Model(&user).Updates(updates).Error; err != nil {
			return nil, fmt.Errorf("failed to update user: %w", err)
		}
	}
	return &user, nil
}

// DeleteUser removes an account. The last active super admin cannot be
// deleted; that would lock everyone out of the back office.
func (s *AdminService) DeleteUser(id uuid.UUID) error {
	var user models.User
	if err := s.db.First(&user, id).Error; err != nil {
		return fmt.Errorf("%w: user %s", ErrNotFound, id)
	}

	if user.Role == models.UserRoleSuper {
		var supers int64
		if err := s.db.Model(&models.User{}).
			Where("role = ? AND active = ? AND id <> ?", models.UserRoleSuper, true, id).
			Count(&supers).Error; err != nil {
			return fmt.Errorf("failed to count super admins: %w", err)
		}
		if supers == 0 {
			return fmt.Errorf("%w: cannot delete the last super admin", ErrStateConflict)
		}
	}

	if err := s.db.Delete(&user).Error; err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
