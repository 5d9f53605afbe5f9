package handlers

import (
	"net/http"

	"daycare_backend/internal/dto"
	"daycare_backend/internal/middleware"
	"daycare_backend/internal/models"
	"daycare_backend/internal/services"

	"github.com/gin-gonic/gin"
)

type MeetingHandler struct {
	*BaseHandler
	meetingService services.MeetingService
}

func NewMeetingHandler(base *BaseHandler, meetingService services.MeetingService) *MeetingHandler {
	return &MeetingHandler{
		BaseHandler:    base,
		meetingService: meetingService,
	}
}

func (h *MeetingHandler) RegisterRoutes(rg *gin.RouterGroup) {
	parents := rg.Group("/meetings")
	parents.Use(middleware.AuthMiddleware(), middleware.RoleMiddleware(models.UserRoleParent))
	{
		parents.POST("", h.Request)
	}

	staff := rg.Group("/meetings")
	staff.Use(middleware.AuthMiddleware(), middleware.StaffOnly())
	{
		staff.PUT("/:meetingId/decide", h.Decide)
		staff.PUT("/:meetingId/complete", h.Complete)
	}

	shared := rg.Group("/meetings")
	shared.Use(middleware.AuthMiddleware())
	{
		shared.GET("", h.List)
		shared.GET("/:meetingId", h.Get)
	}
}

func (h *MeetingHandler) Request(c *gin.Context) {
	parentID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.RequestMeetingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	meeting, err := h.meetingService.Request(h.GetDB(c), parentID, &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, meeting)
}

func (h *MeetingHandler) Decide(c *gin.Context) {
	deciderID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	var req dto.DecideMeetingRequest
	if !h.BindAndValidate_JSON(c, &req) {
		return
	}

	meeting, err := h.meetingService.Decide(h.GetDB(c), deciderID, c.Param("meetingId"), &req)
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, meeting)
}

func (h *MeetingHandler) Complete(c *gin.Context) {
	meeting, err := h.meetingService.Complete(h.GetDB(c), c.Param("meetingId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, meeting)
}

func (h *MeetingHandler) Get(c *gin.Context) {
	meeting, err := h.meetingService.GetByID(h.GetDB(c), c.Param("meetingId"))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, meeting)
}

func (h *MeetingHandler) List(c *gin.Context) {
	userID, ok := h.GetAndAuthorizeUserID(c)
	if !ok {
		return
	}

	meetings, err := h.meetingService.ListForUser(h.GetDB(c), userID, h.GetUserRole(c))
	if err != nil {
		h.HandleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"meetings": meetings, "count": len(meetings)})
}
