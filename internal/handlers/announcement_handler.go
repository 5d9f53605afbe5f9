package handlers

import (
	"net/http"

	"daycare_backend/internal/dto"
	"daycare_backend/internal/middleware"
	"daycare_backend/internal/models"
	"daycare_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type AnnouncementHandler struct {
	*BaseHandler
	announcementService services.AnnouncementService
}

func NewAnnouncementHandler(base *BaseHandler, announcementService services.AnnouncementService) *AnnouncementHandler {
	return &AnnouncementHandler{
		BaseHandler:         base,
		announcementService: announcementService,
	}
}

func (h *AnnouncementHandler) RegisterRoutes(rg *gin.RouterGroup) {
	announcements := rg.Group("/announcements")
	announcements.Use(middleware.AuthMiddleware())
	{
		announcements.GET("", h.List)
	}

	staff := rg.Group("/announcements")
	staff.Use(middleware.AuthMiddleware(), middleware.RequireRoles(models.UserRoleSupervisor, models.UserRoleAdmin))
	{
		staff.POST("", h.Create)
		staff.DELETE("/:announcementId", h.Delete)
	}
}

func (h *AnnouncementHandler) Create(c *gin.Context) {
	authorID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.CreateAnnouncementRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	announcement, err := h.announcementService.Create(h.GetDB(c), authorID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, announcement)
}

func (h *AnnouncementHandler) List(c *gin.Context) {
	limit := ParseQueryInt(c, "limit", 20)

	announcements, err := h.announcementService.ListForRole(h.GetDB(c), h.GetUserRole(c), limit)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"announcements": announcements, "count": len(announcements)})
}

func (h *AnnouncementHandler) Delete(c *gin.Context) {
	if err := h.announcementService.Delete(h.GetDB(c), c.Param("announcementId")); err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Announcement removed"})
}
