package db_models

import "github.com/google/uuid"

type Course struct {
	BaseModel
	Name        string `gorm:"size:100;not null"`
	Description string `gorm:"type:text"`
	Preview     *string
	Price       int64      `gorm:"not null;default:0;check:price >= 0"`
	OwnerID     *uuid.UUID `gorm:"type:uuid;index"`

	Owner   *User    `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL"`
	Lessons []Lesson `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}
