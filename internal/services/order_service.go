// internal/services/order_service.go
package services

import (
	"errors"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/soutech/shop-backend/internal/database"
	"github.com/soutech/shop-backend/internal/models"
	"github.com/soutech/shop-backend/internal/utils"
)

// OrderService is the order ledger. After creation only the status and the
// provider ids of an order change.
type OrderService struct {
	db *gorm.DB
}

type OrderLine struct {
	ProductID uint `json:"product_id"`
	Quantity  int  `json:"quantity"`
}

type Customer struct {
	Name  string
	Email string
}

func NewOrderService(db *gorm.DB) *OrderService {
	return &OrderService{db: db}
}

// CreateWithItems writes the order and a snapshot of every line in one
// transaction. Nothing is stored if any line is invalid.
func (s *OrderService) CreateWithItems(customer Customer, lines []OrderLine) (*models.Order, error) {
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	order := &models.Order{
		Status:        models.OrderStatusCreated,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
	}

	err := database.WithTransaction(s.db, func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return internalError("failed to create order", err)
		}

		total := decimal.Zero
		for _, line := range lines {
			item, lineTotal, err := buildOrderItem(tx, line)
			if err != nil {
				return err
			}
			item.OrderID = order.ID
			if err := tx.Create(item).Error; err != nil {
				return internalError("failed to create order item", err)
			}
			order.Items = append(order.Items, *item)
			total = total.Add(lineTotal)
		}

		order.TotalAmount = total.Round(2).InexactFloat64()
		if err := tx.Model(order).Update("total_amount", order.TotalAmount).Error; err != nil {
			return internalError("failed to update order total", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return order, nil
}

// buildOrderItem prices a line at the product's current price rounded to
// cents.
func buildOrderItem(tx *gorm.DB, line OrderLine) (*models.OrderItem, decimal.Decimal, error) {
	var product models.Product
	if err := tx.First(&product, line.ProductID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, decimal.Zero, NewError(KindInvalidItem, "product not found or inactive", err)
		}
		return nil, decimal.Zero, internalError("database error", err)
	}
	if !product.Active {
		return nil, decimal.Zero, NewError(KindInvalidItem, "product not found or inactive", nil)
	}
	if line.Quantity < 1 {
		return nil, decimal.Zero, ErrInvalidQuantity
	}

	unit := decimal.NewFromFloat(product.Price).Round(2)
	if unit.IsNegative() {
		return nil, decimal.Zero, NewError(KindInvalidItem, "invalid product price", nil)
	}

	item := &models.OrderItem{
		ProductID: product.ID,
		Name:      product.Name,
		SKU:       product.SKU,
		UnitPrice: unit.InexactFloat64(),
		Quantity:  line.Quantity,
	}
	return item, unit.Mul(decimal.NewFromInt(int64(line.Quantity))), nil
}

func (s *OrderService) SetPreference(orderID uint, preferenceID string) error {
	err := s.db.Model(&models.Order{}).
		Where("id = ?", orderID).
		Update("mp_preference_id", preferenceID).Error
	if err != nil {
		return internalError("failed to store preference id", err)
	}
	return nil
}

// ApplyPaymentStatus overwrites status and payment id. An empty status keeps
// the current one. Applying the same values twice is a no-op.
func (s *OrderService) ApplyPaymentStatus(orderID uint, status, paymentID string) (*models.Order, error) {
	var order models.Order
	if err := s.db.First(&order, orderID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(KindNotFound, "order not found", err)
		}
		return nil, internalError("database error", err)
	}

	if status != "" {
		order.Status = models.OrderStatus(status)
	}
	order.MPPaymentID = paymentID

	err := s.db.Model(&order).Updates(map[string]interface{}{
		"status":        order.Status,
		"mp_payment_id": order.MPPaymentID,
	}).Error
	if err != nil {
		return nil, internalError("failed to update order", err)
	}
	return &order, nil
}

func (s *OrderService) ListForCustomer(email string) ([]models.Order, error) {
	orders := make([]models.Order, 0)
	err := s.db.Preload("Items").
		Where("customer_email = ?", models.NormalizeEmail(email)).
		Order("created_at DESC, id DESC").
		Find(&orders).Error
	if err != nil {
		return nil, internalError("failed to list orders", err)
	}
	return orders, nil
}

func (s *OrderService) ListAll(params *utils.PaginationParams) ([]models.Order, int64, error) {
	var total int64
	if err := s.db.Model(&models.Order{}).Count(&total).Error; err != nil {
		return nil, 0, internalError("failed to count orders", err)
	}

	query := s.db.Preload("Items").Order("created_at DESC, id DESC")
	if params != nil {
		query = utils.ApplyPagination(query, *params)
	}

	orders := make([]models.Order, 0)
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, internalError("failed to list orders", err)
	}
	return orders, total, nil
}

func (s *OrderService) GetOrder(id uint) (*models.Order, error) {
	var order models.Order
	if err := s.db.Preload("Items").First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewError(KindNotFound, "order not found", err)
		}
		return nil, internalError("database error", err)
	}
	return &order, nil
}

// DeleteOrder removes the order together with its items.
func (s *OrderService) DeleteOrder(id uint) error {
	return database.WithTransaction(s.db, func(tx *gorm.DB) error {
		result := tx.Delete(&models.Order{}, id)
		if result.Error != nil {
			return internalError("failed to delete order", result.Error)
		}
		if result.RowsAffected == 0 {
			return NewError(KindNotFound, "order not found", nil)
		}
		if err := tx.Where("order_id = ?", id).Delete(&models.OrderItem{}).Error; err != nil {
			return internalError("failed to delete order items", err)
		}
		return nil
	})
}
