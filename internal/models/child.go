package models

import (
	"time"

	"gorm.io/datatypes"
)

type Child struct {
	BaseModel
	FirstName    string    `gorm:"not null"`
	LastName     string    `gorm:"not null"`
	BirthDate    time.Time `gorm:"not null"`
	GroupName    string    `gorm:"index"` // e.g. "Sunflowers", "Busy Bees"
	ParentID     string    `gorm:"not null;index"`
	TeacherID    string    `gorm:"index"`
	MedicalNotes datatypes.JSON `gorm:"type:jsonb"` // {"allergies": [...], "medication": "..."}

	// Relations
	Parent  *User `gorm:"foreignKey:ParentID"`
	Teacher *User `gorm:"foreignKey:TeacherID"`
}
