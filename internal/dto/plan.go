package dto

type CreatePlanRequest struct {
	Name       string                 `json:"name" binding:"required"`
	MonthlyFee float64                `json:"monthly_fee" binding:"required,gt=0"`
	Currency   string                 `json:"currency"`
	Features   map[string]interface{} `json:"features"`
	IsActive   bool                   `json:"is_active"`
}

type UpdatePlanRequest struct {
	Name       string                 `json:"name"`
	MonthlyFee float64                `json:"monthly_fee" binding:"omitempty,gt=0"`
	Features   map[string]interface{} `json:"features"`
	IsActive   *bool                  `json:"is_active"`
}

type EnrollChildRequest struct {
	ChildID string `json:"child_id" binding:"required"`
	PlanID  string `json:"plan_id" binding:"required"`
	Months  int    `json:"months" binding:"omitempty,min=1,max=12"`
}
