package handlers

// AppHandlers holds all HTTP handlers of the application.
type AppHandlers struct {
	AuthHandler         *AuthHandler
	UserHandler         *UserHandler
	ChildHandler        *ChildHandler
	AttendanceHandler   *AttendanceHandler
	ReportHandler       *ReportHandler
	ComplaintHandler    *ComplaintHandler
	MeetingHandler      *MeetingHandler
	AnnouncementHandler *AnnouncementHandler
	NotificationHandler *NotificationHandler
	PlanHandler         *PlanHandler
	PaymentHandler      *PaymentHandler
	ExportHandler       *ExportHandler
}
