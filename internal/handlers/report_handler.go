package handlers

import (
	"net/http"

	"daycare_backend/internal/dto"
	"daycare_backend/internal/middleware"
	"daycare_backend/internal/models"
	"daycare_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type ReportHandler struct {
	*BaseHandler
	reportService services.ReportService
	childService  services.ChildService
}

func NewReportHandler(base *BaseHandler, reportService services.ReportService, childService services.ChildService) *ReportHandler {
	return &ReportHandler{
		BaseHandler:   base,
		reportService: reportService,
		childService:  childService,
	}
}

func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	staff := rg.Group("/reports")
	staff.Use(middleware.AuthMiddleware(), middleware.StaffOnly())
	{
		staff.POST("", h.Create)
		staff.PUT("/:reportId", h.Update)
	}

	shared := rg.Group("/reports")
	shared.Use(middleware.AuthMiddleware())
	{
		shared.GET("/:reportId", h.Get)
		shared.GET("/child/:childId", h.GetForChild)
	}
}

func (h *ReportHandler) Create(c *gin.Context) {
	teacherID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateReportRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	report, err := h.reportService.Create(h.GetDB(c), teacherID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, report)
}

func (h *ReportHandler) Update(c *gin.Context) {
	var req dto.UpdateReportRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	report, err := h.reportService.Update(h.GetDB(c), c.Param("reportId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	db := h.GetDB(c)
	report, err := h.reportService.GetByID(db, c.Param("reportId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	if h.GetUserRole(c) == models.UserRoleParent {
		if _, err := h.childService.AuthorizeParent(db, report.ChildID, userID); err != nil {
			h.HandleServiceError(c, err)
			return
		}
	}

	c.JSON(http.StatusOK, report)
}

func (h *ReportHandler) GetForChild(c *gin.Context) {
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

	from, to, err := ParseQueryDateRange(c, 30)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	reports, svcErr := h.reportService.GetForChild(db, childID, from, to)
	if svcErr != nil {
		h.HandleServiceError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"reports": reports, "count": len(reports)})
}
