package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Order is a single payment attempt against the checkout gateway.
// OrderID is the external correlation key shared with the gateway; the
// amount is stored already normalized to two decimal places because the
// gateway checksum is computed over the formatted string, not the value.
type Order struct {
	BaseModel
	OrderID    string          `gorm:"not null;uniqueIndex"`
	ChildID    string          `gorm:"not null;index"`
	PayerEmail string          `gorm:"not null;index"`
	PlanID     string          `gorm:"index"` // optional: set when paying a plan fee
	Amount     decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Currency   string          `gorm:"type:varchar(3);not null"`
	Status     OrderStatus     `gorm:"type:varchar(20);default:'pending';index"`
	StatusCode string          // last status code reported by the gateway
	PaidAt     *time.Time

	// Relations
	Child *Child            `gorm:"foreignKey:ChildID"`
	Plan  *SubscriptionPlan `gorm:"foreignKey:PlanID"`
}
