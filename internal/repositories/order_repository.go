package repositories

import (
	"errors"
	"time"

	"daycare_backend/internal/models"

	"gorm.io/gorm"
)

var ErrOrderNotFound = errors.New("payment order not found")

type OrderRepository interface {
	Create(db *gorm.DB, order *models.Order) error
	FindByOrderID(db *gorm.DB, orderID string) (*models.Order, error)
	FindByPayer(db *gorm.DB, payerEmail string) ([]models.Order, error)
	FindByChild(db *gorm.DB, childID string) ([]models.Order, error)
	FindAll(db *gorm.DB, status models.OrderStatus, from, to time.Time) ([]models.Order, error)
	MarkPaid(db *gorm.DB, orderID, statusCode string, paidAt time.Time) (bool, error)
	MarkFailed(db *gorm.DB, orderID, statusCode string) (bool, error)
}

type orderRepository struct{}

func NewOrderRepository() OrderRepository {
	return &orderRepository{}
}

func (r *orderRepository) Create(db *gorm.DB, order *models.Order) error {
	return db.Create(order).Error
}

func (r *orderRepository) FindByOrderID(db *gorm.DB, orderID string) (*models.Order, error) {
	var order models.Order
	err := db.Where("order_id = ?", orderID).First(&order).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) FindByPayer(db *gorm.DB, payerEmail string) ([]models.Order, error) {
	var orders []models.Order
	err := db.Where("payer_email = ?", payerEmail).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) FindByChild(db *gorm.DB, childID string) ([]models.Order, error) {
	var orders []models.Order
	err := db.Where("child_id = ?", childID).
		Order("created_at DESC").
		Find(&orders).Error
	return orders, err
}

func (r *orderRepository) FindAll(db *gorm.DB, status models.OrderStatus, from, to time.Time) ([]models.Order, error) {
	q := db.Model(&models.Order{}).Where("created_at BETWEEN ? AND ?", from, to)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var orders []models.Order
	err := q.Order("created_at DESC").Find(&orders).Error
	return orders, err
}

// MarkPaid transitions the order to paid, but only out of pending.
// Webhook delivery is at-least-once; the conditional write makes a
// duplicate or stale callback a no-op instead of a second mutation.
// Returns whether a row actually transitioned.
func (r *orderRepository) MarkPaid(db *gorm.DB, orderID, statusCode string, paidAt time.Time) (bool, error) {
	result := db.Model(&models.Order{}).
		Where("order_id = ? AND status = ?", orderID, models.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":      models.OrderStatusPaid,
			"status_code": statusCode,
			"paid_at":     paidAt,
		})
	return result.RowsAffected > 0, result.Error
}

// MarkFailed transitions the order to failed, only out of pending, so a
// late failure callback can never downgrade an already-paid order.
func (r *orderRepository) MarkFailed(db *gorm.DB, orderID, statusCode string) (bool, error) {
	result := db.Model(&models.Order{}).
		Where("order_id = ? AND status = ?", orderID, models.OrderStatusPending).
		Updates(map[string]interface{}{
			"status":      models.OrderStatusFailed,
			"status_code": statusCode,
		})
	return result.RowsAffected > 0, result.Error
}
