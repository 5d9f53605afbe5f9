package services

import (
	"daycare_backend/internal/email"
	"daycare_backend/internal/push"
)

// ServiceContainer holds all application services.
type ServiceContainer struct {
	AuthService         AuthService
	UserService         UserService
	ChildService        ChildService
	AttendanceService   AttendanceService
	ReportService       ReportService
	ComplaintService    ComplaintService
	MeetingService      MeetingService
	AnnouncementService AnnouncementService
	NotificationService NotificationService
	PlanService         PlanService
	PaymentService      PaymentService
	ExportService       ExportService
	EmailProvider       email.Provider
	PushProvider        push.Provider
}
