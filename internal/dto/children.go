package dto

type CreateChildRequest struct {
	FirstName    string                 `json:"first_name" binding:"required"`
	LastName     string                 `json:"last_name" binding:"required"`
	BirthDate    string                 `json:"birth_date" binding:"required" validate:"datetime=2006-01-02"`
	GroupName    string                 `json:"group_name"`
	ParentID     string                 `json:"parent_id" binding:"required"`
	TeacherID    string                 `json:"teacher_id"`
	MedicalNotes map[string]interface{} `json:"medical_notes"`
}

type UpdateChildRequest struct {
	FirstName    string                 `json:"first_name"`
	LastName     string                 `json:"last_name"`
	GroupName    string                 `json:"group_name"`
	TeacherID    string                 `json:"teacher_id"`
	MedicalNotes map[string]interface{} `json:"medical_notes"`
}

type CheckInRequest struct {
	ChildID string `json:"child_id" binding:"required"`
	Status  string `json:"status" binding:"required" validate:"is-attendance-status"`
	Notes   string `json:"notes"`
}

type CheckOutRequest struct {
	ChildID string `json:"child_id" binding:"required"`
	Notes   string `json:"notes"`
}

type CreateReportRequest struct {
	ChildID    string                 `json:"child_id" binding:"required"`
	Day        string                 `json:"day" validate:"omitempty,datetime=2006-01-02"`
	Mood       string                 `json:"mood"`
	Meals      map[string]interface{} `json:"meals"`
	Naps       []map[string]string    `json:"naps"`
	Activities []string               `json:"activities"`
	Notes      string                 `json:"notes"`
}

type UpdateReportRequest struct {
	Mood       string                 `json:"mood"`
	Meals      map[string]interface{} `json:"meals"`
	Naps       []map[string]string    `json:"naps"`
	Activities []string               `json:"activities"`
	Notes      string                 `json:"notes"`
}
