package handlers

import (
	"fmt"
	"net/http"
	"time"

	"daycare_backend/internal/middleware"
	"daycare_backend/internal/models"
	"daycare_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ExportHandler struct {
	*BaseHandler
	exportService  services.ExportService
	paymentService services.PaymentService
	childService   services.ChildService
}

func NewExportHandler(base *BaseHandler, exportService services.ExportService, paymentService services.PaymentService, childService services.ChildService) *ExportHandler {
	return &ExportHandler{
		BaseHandler:    base,
		exportService:  exportService,
		paymentService: paymentService,
		childService:   childService,
	}
}

func (h *ExportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	exports := rg.Group("/exports")
	exports.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleSupervisor, models.UserRoleAdmin))
	{
		exports.GET("/attendance/:groupName", h.AttendanceXLSX)
		exports.GET("/payments", h.Payments)
	}

	receipts := rg.Group("/exports")
	receipts.Use(middleware.AuthMiddleware())
	{
		receipts.GET("/receipts/:orderId", h.ReceiptPDF)
	}
}

func (h *ExportHandler) AttendanceXLSX(c *gin.Context) {
	from, to, err := ParseQueryDateRange(c, 30)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	groupName := c.Param("groupName")
	data, svcErr := h.exportService.AttendanceXLSX(h.GetDB(c), groupName, from, to)
	if svcErr != nil {
		h.HandleServiceError(c, svcErr)
		return
	}

	filename := fmt.Sprintf("attendance_%s_%s.xlsx", groupName, time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

func (h *ExportHandler) Payments(c *gin.Context) {
	from, to, err := ParseQueryDateRange(c, 90)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	status := models.OrderStatus(c.Query("status"))
	day := time.Now().Format("2006-01-02")

	if c.DefaultQuery("format", "csv") == "xlsx" {
		data, svcErr := h.exportService.PaymentsXLSX(h.GetDB(c), status, from, to)
		if svcErr != nil {
			h.HandleServiceError(c, svcErr)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="payments_%s.xlsx"`, day))
		c.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
		return
	}

	data, svcErr := h.exportService.PaymentsCSV(h.GetDB(c), status, from, to)
	if svcErr != nil {
		h.HandleServiceError(c, svcErr)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="payments_%s.csv"`, day))
	c.Data(http.StatusOK, "text/csv", data)
}

func (h *ExportHandler) ReceiptPDF(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	orderID := c.Param("orderId")
	db := h.GetDB(c)

	// Parents may only fetch receipts for their own children's orders.
	if h.GetUserRole(c) == models.UserRoleParent {
		status, err := h.paymentService.GetOrderStatus(db, orderID)
		if err != nil {
			h.HandleServiceError(c, err)
			return
		}
		if _, err := h.childService.AuthorizeParent(db, status.ChildID, userID); err != nil {
			h.HandleServiceError(c, err)
			return
		}
	}

	data, err := h.exportService.ReceiptPDF(db, orderID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.Header("Content-Disposition", `attachment; filename="receipt_`+orderID+`.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
