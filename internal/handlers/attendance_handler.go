package handlers

import (
	"net/http"
	"time"

	"daycare_backend/internal/dto"
	"daycare_backend/internal/middleware"
	"daycare_backend/internal/models"
	"daycare_backend/internal/services"
	"daycare_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type AttendanceHandler struct {
	*BaseHandler
	attendanceService services.AttendanceService
	childService      services.ChildService
}

func NewAttendanceHandler(base *BaseHandler, attendanceService services.AttendanceService, childService services.ChildService) *AttendanceHandler {
	return &AttendanceHandler{
		BaseHandler:       base,
		attendanceService: attendanceService,
		childService:      childService,
	}
}

func (h *AttendanceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	staff := rg.Group("/attendance")
	staff.Use(middleware.AuthMiddleware(), middleware.StaffOnly())
	{
		staff.POST("/check-in", h.CheckIn)
		staff.POST("/check-out", h.CheckOut)
		staff.GET("/group/:groupName", h.GetForGroup)
	}

	shared := rg.Group("/attendance")
	shared.Use(middleware.AuthMiddleware())
	{
		shared.GET("/child/:childId", h.GetForChild)
	}
}

func (h *AttendanceHandler) CheckIn(c *gin.Context) {
	staffID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CheckInRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	record, err := h.attendanceService.CheckIn(h.GetDB(c), staffID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, record)
}

func (h *AttendanceHandler) CheckOut(c *gin.Context) {
	staffID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CheckOutRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	record, err := h.attendanceService.CheckOut(h.GetDB(c), staffID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, record)
}

func (h *AttendanceHandler) GetForChild(c *gin.Context) {
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

	records, svcErr := h.attendanceService.GetForChild(db, childID, from, to)
	if svcErr != nil {
		h.HandleServiceError(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"attendance": records, "count": len(records)})
}

func (h *AttendanceHandler) GetForGroup(c *gin.Context) {
	day := time.Now()
	if s := c.Query("day"); s != "" {
		parsed, err := time.Parse("2006-01-02", s)
		if err != nil {
			h.HandleServiceError(c, apperrors.NewBadRequestError("Invalid day format. Use YYYY-MM-DD"))
			return
		}
		day = parsed
	}

	records, err := h.attendanceService.GetForGroup(h.GetDB(c), c.Param("groupName"), day)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"attendance": records, "count": len(records)})
}
