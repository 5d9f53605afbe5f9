package models

import "time"

type Meeting struct {
	BaseModel
	ParentID    string        `gorm:"not null;index"`
	TeacherID   string        `gorm:"not null;index"`
	ChildID     string        `gorm:"index"`
	Subject     string        `gorm:"not null"`
	ScheduledAt time.Time     `gorm:"not null;index"`
	Status      MeetingStatus `gorm:"type:varchar(20);default:'requested'"`
	DecidedByID string
	DecidedAt   *time.Time
	Notes       string

	// Relations
	Parent  *User  `gorm:"foreignKey:ParentID"`
	Teacher *User  `gorm:"foreignKey:TeacherID"`
	Child   *Child `gorm:"foreignKey:ChildID"`
}
