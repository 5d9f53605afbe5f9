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

type ChildHandler struct {
	*BaseHandler
	childService services.ChildService
}

func NewChildHandler(base *BaseHandler, childService services.ChildService) *ChildHandler {
	return &ChildHandler{
		BaseHandler:  base,
		childService: childService,
	}
}

func (h *ChildHandler) RegisterRoutes(rg *gin.RouterGroup) {
	children := rg.Group("/children")
	children.Use(middleware.AuthMiddleware())
	{
		children.GET("", h.List)
		children.GET("/:childId", h.Get)
	}

	staff := rg.Group("/children")
	staff.Use(middleware.AuthMiddleware(), middleware.StaffOnly())
	{
		staff.POST("", h.Create)
		staff.PUT("/:childId", h.Update)
		staff.GET("/group/:groupName", h.ListByGroup)
	}

	admin := rg.Group("/children")
	admin.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleAdmin))
	{
		admin.DELETE("/:childId", h.Delete)
	}
}

func (h *ChildHandler) Create(c *gin.Context) {
	var req dto.CreateChildRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	child, err := h.childService.Create(h.GetDB(c), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, child)
}

func (h *ChildHandler) Get(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	child, err := h.childService.GetByID(h.GetDB(c), c.Param("childId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	// Parents may only see their own children
	if h.GetUserRole(c) == models.UserRoleParent && child.ParentID != userID {
		h.HandleServiceError(c, apperrors.ErrNotChildParent)
		return
	}

	c.JSON(http.StatusOK, child)
}

func (h *ChildHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	children, err := h.childService.ListForUser(h.GetDB(c), userID, h.GetUserRole(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"children": children, "count": len(children)})
}

func (h *ChildHandler) ListByGroup(c *gin.Context) {
	children, err := h.childService.ListByGroup(h.GetDB(c), c.Param("groupName"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"children": children, "count": len(children)})
}

func (h *ChildHandler) Update(c *gin.Context) {
	var req dto.UpdateChildRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	child, err := h.childService.Update(h.GetDB(c), c.Param("childId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, child)
}

func (h *ChildHandler) Delete(c *gin.Context) {
	if err := h.childService.Delete(h.GetDB(c), c.Param("childId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Child record removed"})
}
