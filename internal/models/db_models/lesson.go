package db_models

import "github.com/google/uuid"

type Lesson struct {
	BaseModel
	CourseID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"size:100;not null"`
	Description string    `gorm:"type:text"`
	Preview     *string
	VideoURL    *string
	Price       int64      `gorm:"not null;default:0;check:price >= 0"`
	OwnerID     *uuid.UUID `gorm:"type:uuid;index"`

	Course *Course `gorm:"foreignKey:CourseID"`
	Owner  *User   `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL"`
}
