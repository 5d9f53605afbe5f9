package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"daycare_backend/internal/dto"
	"daycare_backend/internal/models"
	"daycare_backend/internal/validator"
	"daycare_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type stubPaymentService struct {
	notifyErr error
	lastNotify *dto.GatewayNotification
}

func (s *stubPaymentService) CreateOrder(db *gorm.DB, parentID string, req *dto.CreateOrderRequest) (*dto.CheckoutResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *stubPaymentService) ProcessNotification(db *gorm.DB, n *dto.GatewayNotification) error {
	s.lastNotify = n
	return s.notifyErr
}

func (s *stubPaymentService) GetOrderStatus(db *gorm.DB, orderID string) (*dto.OrderStatusResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *stubPaymentService) GetHistoryByPayer(db *gorm.DB, payerEmail string) ([]dto.OrderStatusResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *stubPaymentService) GetHistoryByChild(db *gorm.DB, childID string) ([]dto.OrderStatusResponse, error) {
	return nil, errors.New("not implemented")
}

func (s *stubPaymentService) ListOrders(db *gorm.DB, status models.OrderStatus, from, to time.Time) ([]models.Order, error) {
	return nil, errors.New("not implemented")
}

func newNotifyRouter(svc *stubPaymentService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	// Handlers pull the db handle from the context; the stub service
	// never touches it.
	router.Use(func(c *gin.Context) {
		c.Set(string(contextkeys.DBContextKey), (*gorm.DB)(nil))
		c.Next()
	})

	base := NewBaseHandler(validator.New())
	handler := NewPaymentHandler(base, svc, nil)
	router.POST("/payments/notify", handler.Notify)
	return router
}

func postNotify(router *gin.Engine, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/payments/notify", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestNotifyAcknowledgesBusinessOutcome(t *testing.T) {
	svc := &stubPaymentService{}
	router := newNotifyRouter(svc)

	w := postNotify(router, url.Values{
		"merchant_id":      {"M1001"},
		"order_id":         {"DC1700000000000001"},
		"payment_amount":   {"1500.00"},
		"payment_currency": {"LKR"},
		"status_code":      {"2"},
		"checksum":         {"ABCDEF"},
	})

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastNotify)
	assert.Equal(t, "DC1700000000000001", svc.lastNotify.OrderID)
	assert.Equal(t, "2", svc.lastNotify.StatusCode)
}

func TestNotifyReturns500OnPersistenceFailure(t *testing.T) {
	svc := &stubPaymentService{notifyErr: errors.New("db down")}
	router := newNotifyRouter(svc)

	w := postNotify(router, url.Values{
		"order_id": {"DC1700000000000001"},
	})

	// Non-2xx makes the gateway redeliver
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestNotifyAcknowledgesMissingFields(t *testing.T) {
	svc := &stubPaymentService{}
	router := newNotifyRouter(svc)

	// Incomplete payloads still reach the service, which treats them
	// as tampered; the handler acknowledges so there is no retry loop.
	w := postNotify(router, url.Values{})

	assert.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, svc.lastNotify)
	assert.Empty(t, svc.lastNotify.Checksum)
}
