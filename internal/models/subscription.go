package models

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type SubscriptionPlan struct {
	BaseModel
	Name       string          `gorm:"not null;uniqueIndex"`
	MonthlyFee decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency   string          `gorm:"type:varchar(3);default:'LKR'"`
	Features   datatypes.JSON  `gorm:"type:jsonb"` // {"meals": true, "extended_hours": false}
	IsActive   bool            `gorm:"default:true"`
}

type Enrollment struct {
	BaseModel
	ChildID     string           `gorm:"not null;index"`
	PlanID      string           `gorm:"not null;index"`
	Status      EnrollmentStatus `gorm:"type:varchar(20);default:'active'"`
	StartDate   time.Time        `gorm:"not null"`
	EndDate     time.Time        `gorm:"not null;index"`
	CancelledAt *time.Time

	// Relations
	Child *Child            `gorm:"foreignKey:ChildID"`
	Plan  *SubscriptionPlan `gorm:"foreignKey:PlanID"`
}
