package models

import (
	"time"

	"gorm.io/datatypes"
)

type DailyReport struct {
	BaseModel
	ChildID   string    `gorm:"not null;index:idx_report_child_day,unique"`
	Day       time.Time `gorm:"type:date;not null;index:idx_report_child_day,unique"`
	TeacherID string    `gorm:"not null;index"`
	Mood      string    // "happy", "tired", "upset"
	Meals     datatypes.JSON `gorm:"type:jsonb"` // {"breakfast": "all", "lunch": "some"}
	Naps      datatypes.JSON `gorm:"type:jsonb"` // [{"from": "12:30", "to": "14:00"}]
	Activities datatypes.JSON `gorm:"type:jsonb"`
	Notes     string

	// Relations
	Child   *Child `gorm:"foreignKey:ChildID"`
	Teacher *User  `gorm:"foreignKey:TeacherID"`
}
