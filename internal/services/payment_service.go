package services

import (
	"fmt"
	"time"

	"daycare_backend/internal/dto"
	"daycare_backend/internal/logger"
	"daycare_backend/internal/models"
	"daycare_backend/internal/repositories"
	"daycare_backend/internal/services/payment"
	"daycare_backend/pkg/apperrors"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type PaymentService interface {
	CreateOrder(db *gorm.DB, parentID string, req *dto.CreateOrderRequest) (*dto.CheckoutResponse, error)

	// ProcessNotification handles the gateway's at-least-once callback.
	// A tampered or failed payload is a business outcome, not an error;
	// the returned error is non-nil only on persistence failure, in which
	// case the caller must not acknowledge so the gateway redelivers.
	ProcessNotification(db *gorm.DB, n *dto.GatewayNotification) error

	GetOrderStatus(db *gorm.DB, orderID string) (*dto.OrderStatusResponse, error)
	GetHistoryByPayer(db *gorm.DB, payerEmail string) ([]dto.OrderStatusResponse, error)
	GetHistoryByChild(db *gorm.DB, childID string) ([]dto.OrderStatusResponse, error)
	ListOrders(db *gorm.DB, status models.OrderStatus, from, to time.Time) ([]models.Order, error)
}

type paymentService struct {
	gateway          *payment.GatewayService
	orderRepo        repositories.OrderRepository
	planRepo         repositories.PlanRepository
	childRepo        repositories.ChildRepository
	notificationRepo repositories.NotificationRepository
}

func NewPaymentService(
	gateway *payment.GatewayService,
	orderRepo repositories.OrderRepository,
	planRepo repositories.PlanRepository,
	childRepo repositories.ChildRepository,
	notificationRepo repositories.NotificationRepository,
) PaymentService {
	return &paymentService{
		gateway:          gateway,
		orderRepo:        orderRepo,
		planRepo:         planRepo,
		childRepo:        childRepo,
		notificationRepo: notificationRepo,
	}
}

func (s *paymentService) CreateOrder(db *gorm.DB, parentID string, req *dto.CreateOrderRequest) (*dto.CheckoutResponse, error) {
	var amount decimal.Decimal

	if req.PlanID != "" {
		plan, err := s.planRepo.FindPlanByID(db, req.PlanID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrPlanNotFound) {
				return nil, apperrors.ErrPlanNotFound
			}
			return nil, err
		}
		if !plan.IsActive {
			return nil, apperrors.ErrPlanInactive
		}
		amount = plan.MonthlyFee
	} else {
		amount = decimal.NewFromFloat(req.Amount)
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, apperrors.ErrInvalidPaymentAmount
	}

	// The checksum is computed over the formatted string; the stored
	// amount is the same normalized value.
	formatted := payment.FormatAmount(amount)
	normalized, err := decimal.NewFromString(formatted)
	if err != nil {
		return nil, err
	}

	orderID := payment.NewOrderID()
	checksum := s.gateway.CheckoutChecksum(orderID, formatted)

	order := &models.Order{
		OrderID:    orderID,
		ChildID:    req.ChildID,
		PayerEmail: req.PayerEmail,
		PlanID:     req.PlanID,
		Amount:     normalized,
		Currency:   s.gateway.Currency,
		Status:     models.OrderStatusPending,
	}

	if err := s.orderRepo.Create(db, order); err != nil {
		return nil, err
	}

	return &dto.CheckoutResponse{
		MerchantID:  s.gateway.MerchantID,
		OrderID:     orderID,
		Amount:      formatted,
		Currency:    s.gateway.Currency,
		Checksum:    checksum,
		CheckoutURL: s.gateway.CheckoutURL,
		ReturnURL:   s.gateway.ReturnURL,
		CancelURL:   s.gateway.CancelURL,
		NotifyURL:   s.gateway.NotifyURL,
		FirstName:   "Daycare",
		LastName:    "Parent",
		Email:       req.PayerEmail,
		Items:       fmt.Sprintf("Daycare fee %s", orderID),
	}, nil
}

func (s *paymentService) ProcessNotification(db *gorm.DB, n *dto.GatewayNotification) error {
	log := logger.With("order_id", n.OrderID, "status_code", n.StatusCode)

	result := s.gateway.Verify(n.MerchantID, n.OrderID, n.Amount, n.Currency, n.StatusCode, n.Checksum)

	if result == payment.ResultAuthentic && n.StatusCode == payment.StatusCodeSuccess {
		transitioned, err := s.orderRepo.MarkPaid(db, n.OrderID, n.StatusCode, time.Now())
		if err != nil {
			return err
		}
		if !transitioned {
			// Duplicate delivery or an order already in a terminal
			// state: a no-op by design.
			log.Info("payment notification ignored, order not pending")
			return nil
		}
		log.Info("payment confirmed")
		s.notifyPaid(db, n.OrderID)
		return nil
	}

	// Checksum mismatch or non-success status code: a legitimate
	// negative outcome, recorded and acknowledged.
	transitioned, err := s.orderRepo.MarkFailed(db, n.OrderID, n.StatusCode)
	if err != nil {
		return err
	}
	if transitioned {
		log.Warn("payment marked failed", "verification", result.String())
	} else {
		log.Warn("failed notification ignored, order not pending", "verification", result.String())
	}
	return nil
}

// notifyPaid records an in-app notification for the paying parent.
// Failures here must not fail the webhook: the order is already paid.
func (s *paymentService) notifyPaid(db *gorm.DB, orderID string) {
	order, err := s.orderRepo.FindByOrderID(db, orderID)
	if err != nil {
		logger.WithError(err).Warn("paid order lookup failed", "order_id", orderID)
		return
	}

	child, err := s.childRepo.FindByID(db, order.ChildID)
	if err != nil {
		return
	}

	notification := &models.Notification{
		UserID:  child.ParentID,
		Type:    "payment_received",
		Title:   "Payment received",
		Message: fmt.Sprintf("Payment of %s %s for %s was received.", payment.FormatAmount(order.Amount), order.Currency, child.FirstName),
		Data:    datatypes.JSON([]byte(fmt.Sprintf(`{"order_id": %q}`, orderID))),
	}
	if err := s.notificationRepo.Create(db, notification); err != nil {
		logger.WithError(err).Warn("payment notification row failed", "order_id", orderID)
	}
}

func (s *paymentService) GetOrderStatus(db *gorm.DB, orderID string) (*dto.OrderStatusResponse, error) {
	order, err := s.orderRepo.FindByOrderID(db, orderID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrOrderNotFound) {
			return nil, apperrors.ErrOrderNotFound
		}
		return nil, err
	}
	resp := toOrderStatus(order)
	return &resp, nil
}

func (s *paymentService) GetHistoryByPayer(db *gorm.DB, payerEmail string) ([]dto.OrderStatusResponse, error) {
	orders, err := s.orderRepo.FindByPayer(db, payerEmail)
	if err != nil {
		return nil, err
	}
	return toOrderStatuses(orders), nil
}

func (s *paymentService) GetHistoryByChild(db *gorm.DB, childID string) ([]dto.OrderStatusResponse, error) {
	orders, err := s.orderRepo.FindByChild(db, childID)
	if err != nil {
		return nil, err
	}
	return toOrderStatuses(orders), nil
}

func (s *paymentService) ListOrders(db *gorm.DB, status models.OrderStatus, from, to time.Time) ([]models.Order, error) {
	return s.orderRepo.FindAll(db, status, from, to)
}

func toOrderStatus(order *models.Order) dto.OrderStatusResponse {
	return dto.OrderStatusResponse{
		OrderID:    order.OrderID,
		ChildID:    order.ChildID,
		PayerEmail: order.PayerEmail,
		Amount:     payment.FormatAmount(order.Amount),
		Currency:   order.Currency,
		Status:     string(order.Status),
		CreatedAt:  order.CreatedAt,
		PaidAt:     order.PaidAt,
	}
}

func toOrderStatuses(orders []models.Order) []dto.OrderStatusResponse {
	result := make([]dto.OrderStatusResponse, 0, len(orders))
	for i := range orders {
		result = append(result, toOrderStatus(&orders[i]))
	}
	return result
}
