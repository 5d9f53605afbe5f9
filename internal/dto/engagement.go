package dto

type CreateComplaintRequest struct {
	ChildID     string `json:"child_id"`
	Subject     string `json:"subject" binding:"required"`
	Description string `json:"description" binding:"required"`
}

type RespondComplaintRequest struct {
	Response string `json:"response" binding:"required"`
	Status   string `json:"status" binding:"required" validate:"is-complaint-status"`
}

type RequestMeetingRequest struct {
	TeacherID   string `json:"teacher_id" binding:"required"`
	ChildID     string `json:"child_id"`
	Subject     string `json:"subject" binding:"required"`
	ScheduledAt string `json:"scheduled_at" binding:"required"` // RFC3339
}

type DecideMeetingRequest struct {
	Approve bool   `json:"approve"`
	Notes   string `json:"notes"`
}

type CreateAnnouncementRequest struct {
	Title    string `json:"title" binding:"required"`
	Body     string `json:"body" binding:"required"`
	Audience string `json:"audience" binding:"omitempty,oneof=all parents staff"`
}
