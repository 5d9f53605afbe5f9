package handlers

import (
	"net/http"

	"daycare_backend/internal/dto"
	"daycare_backend/internal/middleware"
	"daycare_backend/internal/models"
	"daycare_backend/internal/services"
	"daycare_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

type ComplaintHandler struct {
	*BaseHandler
	complaintService services.ComplaintService
}

func NewComplaintHandler(base *BaseHandler, complaintService services.ComplaintService) *ComplaintHandler {
	return &ComplaintHandler{
		BaseHandler:      base,
		complaintService: complaintService,
	}
}

func (h *ComplaintHandler) RegisterRoutes(rg *gin.RouterGroup) {
	parents := rg.Group("/complaints")
	parents.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleParent))
	{
		parents.POST("", h.Create)
		parents.GET("/my", h.ListMine)
	}

	staff := rg.Group("/complaints")
	staff.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleSupervisor, models.UserRoleAdmin))
	{
		staff.GET("", h.List)
		staff.PUT("/:complaintId/respond", h.Respond)
	}

	shared := rg.Group("/complaints")
	shared.Use(middleware.AuthMiddleware())
	{
		shared.GET("/:complaintId", h.Get)
	}
}

func (h *ComplaintHandler) Create(c *gin.Context) {
	parentID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateComplaintRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	complaint, err := h.complaintService.Create(h.GetDB(c), parentID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, complaint)
}

func (h *ComplaintHandler) ListMine(c *gin.Context) {
	parentID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	complaints, err := h.complaintService.ListForParent(h.GetDB(c), parentID)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"complaints": complaints, "count": len(complaints)})
}

func (h *ComplaintHandler) List(c *gin.Context) {
	complaints, err := h.complaintService.List(h.GetDB(c), c.Query("status"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"complaints": complaints, "count": len(complaints)})
}

func (h *ComplaintHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	complaint, err := h.complaintService.GetByID(h.GetDB(c), c.Param("complaintId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	role := h.GetUserRole(c)
	if role == models.UserRoleParent && complaint.ParentID != userID {
		h.HandleServiceError(c, apperrors.ErrForbidden)
		return
	}
	if role == models.UserRoleTeacher {
		h.HandleServiceError(c, apperrors.ErrForbidden)
		return
	}

	c.JSON(http.StatusOK, complaint)
}

func (h *ComplaintHandler) Respond(c *gin.Context) {
	staffID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RespondComplaintRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	complaint, err := h.complaintService.Respond(h.GetDB(c), staffID, c.Param("complaintId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, complaint)
}
