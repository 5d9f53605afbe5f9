package models

import "time"

type Attendance struct {
	BaseModel
	ChildID      string           `gorm:"not null;index:idx_attendance_child_day,unique"`
	Day          time.Time        `gorm:"type:date;not null;index:idx_attendance_child_day,unique"`
	Status       AttendanceStatus `gorm:"type:varchar(20);not null"`
	CheckInTime  *time.Time
	CheckOutTime *time.Time
	RecordedByID string `gorm:"not null;index"` // staff member
	Notes        string

	// Relations
	Child      *Child `gorm:"foreignKey:ChildID"`
	RecordedBy *User  `gorm:"foreignKey:RecordedByID"`
}
