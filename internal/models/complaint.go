package models

import "time"

type Complaint struct {
	BaseModel
	ParentID     string          `gorm:"not null;index"`
	ChildID      string          `gorm:"index"`
	Subject      string          `gorm:"not null"`
	Description  string          `gorm:"not null"`
	Status       ComplaintStatus `gorm:"type:varchar(20);default:'open'"`
	Response     string
	ResolvedByID string
	ResolvedAt   *time.Time

	// Relations
	Parent     *User  `gorm:"foreignKey:ParentID"`
	Child      *Child `gorm:"foreignKey:ChildID"`
	ResolvedBy *User  `gorm:"foreignKey:ResolvedByID"`
}
