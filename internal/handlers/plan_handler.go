package handlers

import (
	"net/http"

	"daycare_backend/internal/dto"
	"daycare_backend/internal/middleware"
	"daycare_backend/internal/models"
	"daycare_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type PlanHandler struct {
	*BaseHandler
	planService services.PlanService
}

func NewPlanHandler(base *BaseHandler, planService services.PlanService) *PlanHandler {
	return &PlanHandler{
		BaseHandler: base,
		planService: planService,
	}
}

func (h *PlanHandler) RegisterRoutes(rg *gin.RouterGroup) {
	plans := rg.Group("/plans")
	plans.Use(middleware.AuthMiddleware())
	{
		plans.GET("", h.ListActive)
		plans.GET("/:planId", h.Get)
	}

	admin := rg.Group("/plans")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.POST("", h.Create)
		admin.PUT("/:planId", h.Update)
		admin.DELETE("/:planId", h.Deactivate)
	}

	enrollments := rg.Group("/enrollments")
	enrollments.Use(middleware.AuthMiddleware())
	{
		enrollments.POST("", h.Enroll)
		enrollments.DELETE("/:enrollmentId", h.Cancel)
		enrollments.GET("/child/:childId", h.ListForChild)
	}
}

func (h *PlanHandler) Create(c *gin.Context) {
	var req dto.CreatePlanRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	plan, err := h.planService.CreatePlan(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, plan)
}

func (h *PlanHandler) Update(c *gin.Context) {
	var req dto.UpdatePlanRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	plan, err := h.planService.UpdatePlan(h.GetDB(c), c.Param("planId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) Get(c *gin.Context) {
	plan, err := h.planService.GetPlan(h.GetDB(c), c.Param("planId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) ListActive(c *gin.Context) {
	plans, err := h.planService.ListActivePlans(h.GetDB(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"plans": plans, "count": len(plans)})
}

func (h *PlanHandler) Deactivate(c *gin.Context) {
	if err := h.planService.DeactivatePlan(h.GetDB(c), c.Param("planId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Plan deactivated"})
}

func (h *PlanHandler) Enroll(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.EnrollChildRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	enrollment, err := h.planService.Enroll(h.GetDB(c), userID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, enrollment)
}

func (h *PlanHandler) Cancel(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	// Staff may cancel any enrollment
	parentID := userID
	if h.GetUserRole(c) != models.UserRoleParent {
		parentID = ""
	}

	if err := h.planService.CancelEnrollment(h.GetDB(c), parentID, c.Param("enrollmentId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Enrollment cancelled"})
}

func (h *PlanHandler) ListForChild(c *gin.Context) {
	enrollments, err := h.planService.ListEnrollments(h.GetDB(c), c.Param("childId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"enrollments": enrollments, "count": len(enrollments)})
}
