package services

import (
	"errors"
	"testing"
	"time"

	"daycare_backend/internal/dto"
	"daycare_backend/internal/models"
	"daycare_backend/internal/repositories"
	"daycare_backend/internal/services/payment"
	"daycare_backend/pkg/apperrors"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// fakeOrderRepo keeps orders in memory and mirrors the conditional
// pending-only transition of the real repository.
type fakeOrderRepo struct {
	orders  map[string]*models.Order
	failing bool
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*models.Order)}
}

var errInfra = errors.New("datastore unavailable")

func (f *fakeOrderRepo) Create(_ *gorm.DB, order *models.Order) error {
	if f.failing {
		return errInfra
	}
	copied := *order
	copied.CreatedAt = time.Now()
	f.orders[order.OrderID] = &copied
	return nil
}

func (f *fakeOrderRepo) FindByOrderID(_ *gorm.DB, orderID string) (*models.Order, error) {
	order, ok := f.orders[orderID]
	if !ok {
		return nil, repositories.ErrOrderNotFound
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderRepo) FindByPayer(_ *gorm.DB, payerEmail string) ([]models.Order, error) {
	var result []models.Order
	for _, o := range f.orders {
		if o.PayerEmail == payerEmail {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (f *fakeOrderRepo) FindByChild(_ *gorm.DB, childID string) ([]models.Order, error) {
	var result []models.Order
	for _, o := range f.orders {
		if o.ChildID == childID {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (f *fakeOrderRepo) FindAll(_ *gorm.DB, status models.OrderStatus, from, to time.Time) ([]models.Order, error) {
	var result []models.Order
	for _, o := range f.orders {
		if status == "" || o.Status == status {
			result = append(result, *o)
		}
	}
	return result, nil
}

func (f *fakeOrderRepo) MarkPaid(_ *gorm.DB, orderID, statusCode string, paidAt time.Time) (bool, error) {
	if f.failing {
		return false, errInfra
	}
	order, ok := f.orders[orderID]
	if !ok || order.Status != models.OrderStatusPending {
		return false, nil
	}
	order.Status = models.OrderStatusPaid
	order.StatusCode = statusCode
	order.PaidAt = &paidAt
	return true, nil
}

func (f *fakeOrderRepo) MarkFailed(_ *gorm.DB, orderID, statusCode string) (bool, error) {
	if f.failing {
		return false, errInfra
	}
	order, ok := f.orders[orderID]
	if !ok || order.Status != models.OrderStatusPending {
		return false, nil
	}
	order.Status = models.OrderStatusFailed
	order.StatusCode = statusCode
	return true, nil
}

type fakePlanRepo struct {
	repositories.PlanRepository
	plans map[string]*models.SubscriptionPlan
}

func (f *fakePlanRepo) FindPlanByID(_ *gorm.DB, id string) (*models.SubscriptionPlan, error) {
	plan, ok := f.plans[id]
	if !ok {
		return nil, repositories.ErrPlanNotFound
	}
	return plan, nil
}

type fakeChildRepo struct {
	repositories.ChildRepository
	children map[string]*models.Child
}

func (f *fakeChildRepo) FindByID(_ *gorm.DB, id string) (*models.Child, error) {
	child, ok := f.children[id]
	if !ok {
		return nil, repositories.ErrChildNotFound
	}
	return child, nil
}

type fakeNotificationRepo struct {
	repositories.NotificationRepository
	created []models.Notification
}

func (f *fakeNotificationRepo) Create(_ *gorm.DB, n *models.Notification) error {
	f.created = append(f.created, *n)
	return nil
}

func newTestPaymentService(orders *fakeOrderRepo) (PaymentService, *payment.GatewayService, *fakeNotificationRepo) {
	gateway := &payment.GatewayService{
		MerchantID:     "1211149",
		MerchantSecret: "super-secret-merchant-key",
		Currency:       "LKR",
		CheckoutURL:    "https://sandbox.gateway.example/pay/checkout",
	}
	plans := &fakePlanRepo{plans: map[string]*models.SubscriptionPlan{
		"plan-1": {
			BaseModel:  models.BaseModel{ID: "plan-1"},
			Name:       "Full Day",
			MonthlyFee: decimal.RequireFromString("25000.00"),
			IsActive:   true,
		},
	}}
	children := &fakeChildRepo{children: map[string]*models.Child{
		"child-1": {
			BaseModel: models.BaseModel{ID: "child-1"},
			FirstName: "Amara",
			ParentID:  "parent-1",
		},
	}}
	notifications := &fakeNotificationRepo{}

	svc := NewPaymentService(gateway, orders, plans, children, notifications)
	return svc, gateway, notifications
}

func successNotification(g *payment.GatewayService, orderID, amount string) *dto.GatewayNotification {
	return &dto.GatewayNotification{
		MerchantID: g.MerchantID,
		OrderID:    orderID,
		Amount:     amount,
		Currency:   g.Currency,
		StatusCode: payment.StatusCodeSuccess,
		Checksum:   g.NotifyChecksum(g.MerchantID, orderID, payment.FormatAmountString(amount), g.Currency, payment.StatusCodeSuccess),
	}
}

func TestCreateOrderNormalizesAmount(t *testing.T) {
	orders := newFakeOrderRepo()
	svc, gateway, _ := newTestPaymentService(orders)

	resp, err := svc.CreateOrder(nil, "parent-1", &dto.CreateOrderRequest{
		ChildID:    "child-1",
		PayerEmail: "parent@example.com",
		Amount:     1500,
	})
	require.NoError(t, err)

	assert.Equal(t, "1500.00", resp.Amount)
	assert.Equal(t, "LKR", resp.Currency)
	assert.Equal(t, gateway.CheckoutChecksum(resp.OrderID, "1500.00"), resp.Checksum)

	stored, err := orders.FindByOrderID(nil, resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, stored.Status)
	assert.Nil(t, stored.PaidAt)
}

func TestCreateOrderFromPlanFee(t *testing.T) {
	orders := newFakeOrderRepo()
	svc, _, _ := newTestPaymentService(orders)

	resp, err := svc.CreateOrder(nil, "parent-1", &dto.CreateOrderRequest{
		ChildID:    "child-1",
		PayerEmail: "parent@example.com",
		PlanID:     "plan-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "25000.00", resp.Amount)
}

func TestCreateOrderRejectsNonPositiveAmount(t *testing.T) {
	svc, _, _ := newTestPaymentService(newFakeOrderRepo())

	for _, amount := range []float64{0, -10} {
		_, err := svc.CreateOrder(nil, "parent-1", &dto.CreateOrderRequest{
			ChildID:    "child-1",
			PayerEmail: "parent@example.com",
			Amount:     amount,
		})
		assert.ErrorIs(t, err, apperrors.ErrInvalidPaymentAmount)
	}
}

func TestCreateOrderPersistenceFailure(t *testing.T) {
	orders := newFakeOrderRepo()
	orders.failing = true
	svc, _, _ := newTestPaymentService(orders)

	_, err := svc.CreateOrder(nil, "parent-1", &dto.CreateOrderRequest{
		ChildID:    "child-1",
		PayerEmail: "parent@example.com",
		Amount:     100,
	})
	assert.ErrorIs(t, err, errInfra)
}

func TestProcessNotificationSuccessTransition(t *testing.T) {
	orders := newFakeOrderRepo()
	svc, gateway, notifications := newTestPaymentService(orders)

	resp, err := svc.CreateOrder(nil, "parent-1", &dto.CreateOrderRequest{
		ChildID:    "child-1",
		PayerEmail: "parent@example.com",
		Amount:     1500,
	})
	require.NoError(t, err)

	// Gateway reports the raw value; normalization must converge.
	err = svc.ProcessNotification(nil, successNotification(gateway, resp.OrderID, "1500"))
	require.NoError(t, err)

	stored, err := orders.FindByOrderID(nil, resp.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPaid, stored.Status)
	require.NotNil(t, stored.PaidAt)

	require.Len(t, notifications.created, 1)
	assert.Equal(t, "parent-1", notifications.created[0].UserID)
	assert.Equal(t, "payment_received", notifications.created[0].Type)
}

func TestProcessNotificationTamperMarksFailed(t *testing.T) {
	orders := newFakeOrderRepo()
	svc, gateway, _ := newTestPaymentService(orders)

	resp, err := svc.CreateOrder(nil, "parent-1", &dto.CreateOrderRequest{
		ChildID:    "child-1",
		PayerEmail: "parent@example.com",
		Amount:     1500,
	})
	require.NoError(t, err)

	n := successNotification(gateway, resp.OrderID, "1500")
	n.Amount = "9999" // amount changed without recomputing the checksum

	require.NoError(t, svc.ProcessNotification(nil, n))

	stored, _ := orders.FindByOrderID(nil, resp.OrderID)
	assert.Equal(t, models.OrderStatusFailed, stored.Status)
	assert.Nil(t, stored.PaidAt)
}

func TestProcessNotificationTerminalStateIsSticky(t *testing.T) {
	orders := newFakeOrderRepo()
	svc, gateway, _ := newTestPaymentService(orders)

	resp, err := svc.CreateOrder(nil, "parent-1", &dto.CreateOrderRequest{
		ChildID:    "child-1",
		PayerEmail: "parent@example.com",
		Amount:     1500,
	})
	require.NoError(t, err)

	require.NoError(t, svc.ProcessNotification(nil, successNotification(gateway, resp.OrderID, "1500.00")))

	stored, _ := orders.FindByOrderID(nil, resp.OrderID)
	require.Equal(t, models.OrderStatusPaid, stored.Status)
	firstPaidAt := *stored.PaidAt

	// Duplicate success delivery: no-op.
	require.NoError(t, svc.ProcessNotification(nil, successNotification(gateway, resp.OrderID, "1500.00")))

	// Stale failure callback after success: must not downgrade.
	failed := successNotification(gateway, resp.OrderID, "1500.00")
	failed.StatusCode = "-2"
	failed.Checksum = gateway.NotifyChecksum(gateway.MerchantID, resp.OrderID, "1500.00", gateway.Currency, "-2")
	require.NoError(t, svc.ProcessNotification(nil, failed))

	stored, _ = orders.FindByOrderID(nil, resp.OrderID)
	assert.Equal(t, models.OrderStatusPaid, stored.Status)
	assert.Equal(t, firstPaidAt, *stored.PaidAt)
}

func TestProcessNotificationUnknownOrderAcknowledged(t *testing.T) {
	svc, gateway, _ := newTestPaymentService(newFakeOrderRepo())

	err := svc.ProcessNotification(nil, successNotification(gateway, "DC-unknown", "10.00"))
	assert.NoError(t, err)
}

func TestProcessNotificationInfraFailurePropagates(t *testing.T) {
	orders := newFakeOrderRepo()
	svc, gateway, _ := newTestPaymentService(orders)

	resp, err := svc.CreateOrder(nil, "parent-1", &dto.CreateOrderRequest{
		ChildID:    "child-1",
		PayerEmail: "parent@example.com",
		Amount:     1500,
	})
	require.NoError(t, err)

	orders.failing = true
	err = svc.ProcessNotification(nil, successNotification(gateway, resp.OrderID, "1500.00"))
	assert.ErrorIs(t, err, errInfra)
}
