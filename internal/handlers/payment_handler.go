package handlers

import (
	"net/http"

	"daycare_backend/internal/dto"
	"daycare_backend/internal/logger"
	"daycare_backend/internal/middleware"
	"daycare_backend/internal/models"
	"daycare_backend/internal/services"
	"daycare_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type PaymentHandler struct {
	*BaseHandler
	paymentService services.PaymentService
	childService   services.ChildService
}

func NewPaymentHandler(base *BaseHandler, paymentService services.PaymentService, childService services.ChildService) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler:    base,
		paymentService: paymentService,
		childService:   childService,
	}
}

func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	// Server-to-server callback from the gateway; no auth, the
	// checksum is the authentication.
	rg.POST("/payments/notify", h.Notify)

	parents := rg.Group("/payments")
	parents.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleParent))
	{
		parents.POST("/orders", h.CreateOrder)
	}

	shared := rg.Group("/payments")
	shared.Use(middleware.AuthMiddleware())
	{
		shared.GET("/orders/:orderId", h.GetOrderStatus)
		shared.GET("/history", h.History)
		shared.GET("/child/:childId", h.HistoryForChild)
	}

	admin := rg.Group("/payments")
	admin.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleSupervisor, models.UserRoleAdmin))
	{
		admin.GET("/orders", h.ListOrders)
	}
}

func (h *PaymentHandler) CreateOrder(c *gin.Context) {
	parentID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateOrderRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	resp, err := h.paymentService.CreateOrder(h.GetDB(c), parentID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// Notify is the gateway webhook. The gateway retries until it sees a
// 2xx, so the only non-2xx answer is for a persistence failure: a
// tampered or failed payload is acknowledged and recorded, never
// retried.
func (h *PaymentHandler) Notify(c *gin.Context) {
	var n dto.GatewayNotification
	if err := c.ShouldBind(&n); err != nil {
		// A body we cannot even parse is treated like a tampered
		// payload: acknowledge so the gateway stops retrying.
		logger.CtxWithError(c.Request.Context(), "unparseable payment notification", err)
		c.String(http.StatusOK, "OK")
		return
	}

	if err := h.paymentService.ProcessNotification(h.GetDB(c), &n); err != nil {
		logger.CtxWithError(c.Request.Context(), "payment notification processing failed", err, "order_id", n.OrderID)
		c.String(http.StatusInternalServerError, "error")
		return
	}

	c.String(http.StatusOK, "OK")
}

func (h *PaymentHandler) GetOrderStatus(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	status, err := h.paymentService.GetOrderStatus(db, c.Param("orderId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if h.GetUserRole(c) == models.UserRoleParent {
		if _, err := h.childService.AuthorizeParent(db, status.ChildID, userID); err != nil {
			h.HandleServiceError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, status)
}

func (h *PaymentHandler) History(c *gin.Context) {
	payerEmail := c.Query("payer_email")
	if payerEmail == "" {
		h.HandleServiceError(c, apperrors.NewBadRequestError("payer_email query parameter is required"))
		return
	}

	history, err := h.paymentService.GetHistoryByPayer(h.GetDB(c), payerEmail)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": history, "count": len(history)})
}

func (h *PaymentHandler) HistoryForChild(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	childID := c.Param("childId")
	db := h.GetDB(c)

	if h.GetUserRole(c) == models.UserRoleParent {
		if _, err := h.childService.AuthorizeParent(db, childID, userID); err != nil {
			h.HandleServiceError(c, err)
			return
		}
	}

	history, err := h.paymentService.GetHistoryByChild(db, childID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": history, "count": len(history)})
}

func (h *PaymentHandler) ListOrders(c *gin.Context) {
	from, to, err := ParseQueryDateRange(c, 90)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	status := models.OrderStatus(c.Query("status"))

	orders, svcErr := h.paymentService.ListOrders(h.GetDB(c), status, from, to)
	if svcErr != nil {
		h.HandleServiceError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders, "count": len(orders)})
}
