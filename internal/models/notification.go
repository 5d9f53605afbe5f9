package models

import (
	"time"

	"gorm.io/datatypes"
)

type Notification struct {
	BaseModel
	UserID  string `gorm:"not null;index"`
	Type    string `gorm:"not null"` // "announcement", "meeting_reminder", "payment_received"
	Title   string `gorm:"not null"`
	Message string
	Data    datatypes.JSON `gorm:"type:jsonb"` // {"order_id": "...", "meeting_id": "..."}
	IsRead  bool           `gorm:"default:false"`
	ReadAt  *time.Time
}
