package models

type Announcement struct {
	BaseModel
	AuthorID string   `gorm:"not null;index"`
	Title    string   `gorm:"not null"`
	Body     string   `gorm:"not null"`
	Audience Audience `gorm:"type:varchar(20);default:'all'"`

	// Relations
	Author *User `gorm:"foreignKey:AuthorID"`
}
