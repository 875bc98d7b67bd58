// internal/services/order_service.go
package services

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/dzboutik/dzboutik-backend/internal/models"
	"github.com/dzboutik/dzboutik-backend/internal/utils"
)

// OrderService translates between the flat relational rows and the nested
// order aggregate, and drives the stock movements tied to the order
// lifecycle. Every multi-row mutation runs inside one transaction: either
// the order, its line items and the stock deltas all land, or none do.
type OrderService struct {
	db        *gorm.DB
	inventory *InventoryService
	pricing   *PricingService
	promo     *PromoService
}

func NewOrderService(db *gorm.DB, inventory *InventoryService, pricing *PricingService, promo *PromoService) *OrderService {
	return &OrderService{
		db:        db,
		inventory: inventory,
		pricing:   pricing,
		promo:     promo,
	}
}

// OrderLineInput is a single product line: quantity plus the attribute
// selection identifying a variant (empty for variant-less products).
type OrderLineInput struct {
	ProductID  uuid.UUID         `json:"product_id" validate:"required"`
	Quantity   int               `json:"quantity" validate:"required,min=1"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// OrderPackInput is a pack entry: the pack, how many of it, and the
// enumerated per-product composition that drives stock movements.
type OrderPackInput struct {
	PackID   uuid.UUID        `json:"pack_id" validate:"required"`
	Quantity int              `json:"quantity" validate:"required,min=1"`
	Products []OrderLineInput `json:"products" validate:"required,min=1,dive"`
}

// CreateOrderRequest carries exactly one of Products or Packs, gated by
// IsPack. A promo code, when present, is re-validated server-side and
// resolved into the stored discount value; any client-asserted discount is
// ignored.
type CreateOrderRequest struct {
	Name         string              `json:"name" validate:"required,min=2,max=255"`
	Phone        string              `json:"phone" validate:"required,phone_dz"`
	Wilaya       string              `json:"wilaya" validate:"required"`
	City         string              `json:"city" validate:"required"`
	Address      string              `json:"address,omitempty"`
	Remarks      string              `json:"remarks,omitempty"`
	DeliveryType models.DeliveryType `json:"delivery_type" validate:"required,oneof=home desk"`
	PromoCode    *string             `json:"promo_code,omitempty"`
	IsPack       bool                `json:"is_pack"`
	Products     []OrderLineInput    `json:"products,omitempty" validate:"omitempty,dive"`
	Packs        []OrderPackInput    `json:"packs,omitempty" validate:"omitempty,dive"`
}

// UpdateOrderRequest is a sparse top-level patch plus an optional full
// line-item replacement. Replacing line items never re-runs stock
// decrements; only the cancel transition moves stock.
type UpdateOrderRequest struct {
	Name         *string              `json:"name,omitempty"`
	Phone        *string              `json:"phone,omitempty" validate:"omitempty,phone_dz"`
	Wilaya       *string              `json:"wilaya,omitempty"`
	City         *string              `json:"city,omitempty"`
	Address      *string              `json:"address,omitempty"`
	Remarks      *string              `json:"remarks,omitempty"`
	DeliveryType *models.DeliveryType `json:"delivery_type,omitempty" validate:"omitempty,oneof=home desk"`
	Status       *models.OrderStatus  `json:"order_status,omitempty" validate:"omitempty,oneof=pending confirmed completed canceled"`
	Products     *[]OrderLineInput    `json:"products,omitempty"`
	Packs        *[]OrderPackInput    `json:"packs,omitempty"`
}

func (s *OrderService) CreateOrder(req *CreateOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	// Exactly one line-item shape, gated by is_pack.
	if req.IsPack {
		if len(req.Packs) == 0 || len(req.Products) > 0 {
			return nil, errors.New("pack order must carry packs and no plain products")
		}
	} else {
		if len(req.Products) == 0 || len(req.Packs) > 0 {
			return nil, errors.New("order must carry products and no packs")
		}
	}

	order := &models.Order{
		CustomerName: req.Name,
		Phone:        req.Phone,
		Wilaya:       req.Wilaya,
		City:         req.City,
		Address:      req.Address,
		Remarks:      req.Remarks,
		DeliveryType: req.DeliveryType,
		Status:       models.OrderStatusPending,
		IsPack:       req.IsPack,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		subtotal, err := s.subtotalFor(tx, req)
		if err != nil {
			return err
		}

		// Resolve the promo code server-side; the stored discount value is
		// derived here, never taken from the client.
		if req.PromoCode != nil && *req.PromoCode != "" {
			discount, err := s.promo.ResolveDiscount(*req.PromoCode, subtotal)
			if err != nil {
				return err
			}
			order.PromoCode = req.PromoCode
			order.DiscountValue = discount
		}

		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}

		if req.IsPack {
			return s.createPackLines(tx, order, req.Packs)
		}
		return s.createProductLines(tx, order, req.Products)
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(order.ID)
}

func (s *OrderService) createProductLines(tx *gorm.DB, order *models.Order, lines []OrderLineInput) error {
	for _, line := range lines {
		row := models.OrderProduct{
			OrderID:    order.ID,
			ProductID:  line.ProductID,
			Quantity:   line.Quantity,
			Attributes: models.AttributeMap(line.Attributes),
		}
		if err := tx.Create(&row).Error; err != nil {
			return fmt.Errorf("failed to create order line: %w", err)
		}
		if err := s.inventory.DecrementStock(tx, line.ProductID, line.Attributes, line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

func (s *OrderService) createPackLines(tx *gorm.DB, order *models.Order, packs []OrderPackInput) error {
	for _, pack := range packs {
		entry := models.OrderPack{
			OrderID:  order.ID,
			PackID:   pack.PackID,
			Quantity: pack.Quantity,
		}
		if err := tx.Create(&entry).Error; err != nil {
			return fmt.Errorf("failed to create order pack: %w", err)
		}

		for _, line := range pack.Products {
			row := models.OrderPackProduct{
				OrderPackID: entry.ID,
				ProductID:   line.ProductID,
				Quantity:    line.Quantity,
				Attributes:  models.AttributeMap(line.Attributes),
			}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("failed to create order pack line: %w", err)
			}
			// Pack quantity and per-product quantity multiply.
			if err := s.inventory.DecrementStock(tx, line.ProductID, line.Attributes, pack.Quantity*line.Quantity); err != nil {
				return err
			}
		}
	}
	return nil
}

// subtotalFor prices the request the same way reads will: current product
// prices for plain orders, the stored bundle price for pack orders. Used to
// resolve percentage promo codes at creation time.
func (s *OrderService) subtotalFor(tx *gorm.DB, req *CreateOrderRequest) (float64, error) {
	if req.IsPack {
		var subtotal float64
		for _, entry := range req.Packs {
			var pack models.Pack
			if err := tx.First(&pack, entry.PackID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return 0, fmt.Errorf("%w: pack %s", ErrNotFound, entry.PackID)
				}
				return 0, fmt.Errorf("database error: %w", err)
			}
			subtotal += pack.Price
		}
		return subtotal, nil
	}

	var subtotal float64
	for _, line := range req.Products {
		var product models.Product
		if err := tx.First(&product, line.ProductID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return 0, fmt.Errorf("%w: product %s", ErrNotFound, line.ProductID)
			}
			return 0, fmt.Errorf("database error: %w", err)
		}
		subtotal += product.Price * float64(line.Quantity)
	}
	return subtotal, nil
}

// UpdateOrder applies a sparse field patch and, when provided, replaces the
// order's line items wholesale. Setting the status to canceled restores
// stock for the line items as they exist before any replacement, exactly
// once; a canceled order never leaves that state.
func (s *OrderService) UpdateOrder(id uuid.UUID, req *UpdateOrderRequest) (*models.Order, error) {
	if err := utils.ValidateStruct(req); err != nil {
		return nil, fmt.Errorf("validation failed: %w", err)
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.loadAggregate(tx, id)
		if err != nil {
			return err
		}

		// A replacement must match the order's shape; the wrong collection is
		// rejected, not silently dropped.
		if order.IsPack && req.Products != nil {
			return errors.New("pack order carries packs, not plain products")
		}
		if !order.IsPack && req.Packs != nil {
			return errors.New("order carries products, not packs")
		}

		if req.Status != nil {
			switch {
			case order.IsCanceled() && *req.Status != models.OrderStatusCanceled:
				// Canceled is terminal; reviving would desynchronize stock.
				return fmt.Errorf("%w: order %s is canceled", ErrStateConflict, id)
			case order.IsCanceled() && *req.Status == models.OrderStatusCanceled:
				// Re-canceling is a no-op, never a second stock credit.
			case *req.Status == models.OrderStatusCanceled:
				if err := s.restoreStock(tx, order); err != nil {
					return err
				}
			}
		}

		updates := make(map[string]interface{})
		if req.Name != nil {
			updates["customer_name"] = *req.Name
		}
		if req.Phone != nil {
			updates["phone"] = *req.Phone
		}
		if req.Wilaya != nil {
			updates["wilaya"] = *req.Wilaya
		}
		if req.City != nil {
			updates["city"] = *req.City
		}
		if req.Address != nil {
			updates["address"] = *req.Address
		}
		if req.Remarks != nil {
			updates["remarks"] = *req.Remarks
		}
		if req.DeliveryType != nil {
			updates["delivery_type"] = *req.DeliveryType
		}
		if req.Status != nil {
			updates["status"] = *req.Status
		}

		if len(updates) > 0 {
			if err := tx.Model(&models.Order{}).Where("id = ?", id).Updates(updates).Error; err != nil {
				return fmt.Errorf("failed to update order: %w", err)
			}
		}

		// Full line-item replacement. The new composition is stored verbatim
		// and does not adjust stock; only cancellation moves stock.
		if req.Products != nil {
			if err := tx.Where("order_id = ?", id).Delete(&models.OrderProduct{}).Error; err != nil {
				return fmt.Errorf("failed to clear order lines: %w", err)
			}
			for _, line := range *req.Products {
				row := models.OrderProduct{
					OrderID:    id,
					ProductID:  line.ProductID,
					Quantity:   line.Quantity,
					Attributes: models.AttributeMap(line.Attributes),
				}
				if err := tx.Create(&row).Error; err != nil {
					return fmt.Errorf("failed to create order line: %w", err)
				}
			}
		}

		if req.Packs != nil {
			packIDs := make([]uuid.UUID, 0, len(order.Packs))
			for _, entry := range order.Packs {
				packIDs = append(packIDs, entry.ID)
			}
			if len(packIDs) > 0 {
				if err := tx.Where("order_pack_id IN ?", packIDs).Delete(&models.OrderPackProduct{}).Error; err != nil {
					return fmt.Errorf("failed to clear order pack lines: %w", err)
				}
			}
			if err := tx.Where("order_id = ?", id).Delete(&models.OrderPack{}).Error; err != nil {
				return fmt.Errorf("failed to clear order packs: %w", err)
			}
			for _, pack := range *req.Packs {
				entry := models.OrderPack{
					OrderID:  id,
					PackID:   pack.PackID,
					Quantity: pack.Quantity,
				}
				if err := tx.Create(&entry).Error; err != nil {
					return fmt.Errorf("failed to create order pack: %w", err)
				}
				for _, line := range pack.Products {
					row := models.OrderPackProduct{
						OrderPackID: entry.ID,
						ProductID:   line.ProductID,
						Quantity:    line.Quantity,
						Attributes:  models.AttributeMap(line.Attributes),
					}
					if err := tx.Create(&row).Error; err != nil {
						return fmt.Errorf("failed to create order pack line: %w", err)
					}
				}
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.GetOrder(id)
}

// restoreStock credits back every line item of the pre-update aggregate.
func (s *OrderService) restoreStock(tx *gorm.DB, order *models.Order) error {
	if order.IsPack {
		for _, entry := range order.Packs {
			for _, line := range entry.Products {
				qty := entry.Quantity * line.Quantity
				if err := s.inventory.IncrementStock(tx, line.ProductID, line.Attributes, qty); err != nil {
					return err
				}
			}
		}
		return nil
	}

	for _, line := range order.Products {
		if err := s.inventory.IncrementStock(tx, line.ProductID, line.Attributes, line.Quantity); err != nil {
			return err
		}
	}
	return nil
}

// CancelOrder is the one-way transition into the canceled state.
func (s *OrderService) CancelOrder(id uuid.UUID) (*models.Order, error) {
	canceled := models.OrderStatusCanceled
	return s.UpdateOrder(id, &UpdateOrderRequest{Status: &canceled})
}

func (s *OrderService) GetOrder(id uuid.UUID) (*models.Order, error) {
	order, err := s.loadAggregate(s.db, id)
	if err != nil {
		return nil, err
	}

	s.decorate(order)

	total, err := s.pricing.OrderTotal(order)
	if err != nil {
		return nil, err
	}
	order.Total = total

	return order, nil
}

// GetOrders returns the full order book with line items resolved in bulk
// and the total computed per order through the same pricing path the detail
// read uses.
func (s *OrderService) GetOrders(params utils.PaginationParams, status *models.OrderStatus) ([]models.Order, int64, error) {
	query := s.db.Model(&models.Order{})

	if status != nil {
		query = query.Where("status = ?", *status)
	}
	if params.Search != "" {
		term := "%" + params.Search + "%"
		query = query.Where("customer_name LIKE ? OR phone LIKE ?", term, term)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	allowedSortFields := []string{"created_at", "updated_at", "status", "wilaya"}
	query = utils.ApplySort(query, params, allowedSortFields)
	query = utils.ApplyPagination(query, params)

	var orders []models.Order
	if err := query.
		Preload("Products.Product.Variants").
		Preload("Packs.Pack").
		Preload("Packs.Products.Product.Variants").
		Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to fetch orders: %w", err)
	}

	for i := range orders {
		s.decorate(&orders[i])
		orderTotal, err := s.pricing.OrderTotal(&orders[i])
		if err != nil {
			return nil, 0, err
		}
		orders[i].Total = orderTotal
	}

	return orders, total, nil
}

// DeleteOrder removes the order and its line items.
func (s *OrderService) DeleteOrder(id uuid.UUID) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		order, err := s.loadAggregate(tx, id)
		if err != nil {
			return err
		}

		if order.IsPack {
			packIDs := make([]uuid.UUID, 0, len(order.Packs))
			for _, entry := range order.Packs {
				packIDs = append(packIDs, entry.ID)
			}
			if len(packIDs) > 0 {
				if err := tx.Where("order_pack_id IN ?", packIDs).Delete(&models.OrderPackProduct{}).Error; err != nil {
					return fmt.Errorf("failed to delete order pack lines: %w", err)
				}
			}
			if err := tx.Where("order_id = ?", id).Delete(&models.OrderPack{}).Error; err != nil {
				return fmt.Errorf("failed to delete order packs: %w", err)
			}
		} else {
			if err := tx.Where("order_id = ?", id).Delete(&models.OrderProduct{}).Error; err != nil {
				return fmt.Errorf("failed to delete order lines: %w", err)
			}
		}

		if err := tx.Delete(&models.Order{}, id).Error; err != nil {
			return fmt.Errorf("failed to delete order: %w", err)
		}
		return nil
	})
}

func (s *OrderService) loadAggregate(tx *gorm.DB, id uuid.UUID) (*models.Order, error) {
	var order models.Order
	if err := tx.
		Preload("Products.Product.Variants").
		Preload("Packs.Pack").
		Preload("Packs.Products.Product.Variants").
		First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: order %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("database error: %w", err)
	}
	return &order, nil
}

// decorate attaches the per-attribute stock summary to each line item.
func (s *OrderService) decorate(order *models.Order) {
	for i := range order.Products {
		if p := order.Products[i].Product; p != nil {
			order.Products[i].ProductAttr = p.AttributeStock()
		}
	}
	for i := range order.Packs {
		for j := range order.Packs[i].Products {
			if p := order.Packs[i].Products[j].Product; p != nil {
				order.Packs[i].Products[j].ProductAttr = p.AttributeStock()
			}
		}
	}
}
