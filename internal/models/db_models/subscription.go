package db_models

import "github.com/google/uuid"

type Subscription struct {
	BaseModel
	UserID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscription_user_course"`
	CourseID     uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_subscription_user_course;index"`
	IsSubscribed bool      `gorm:"not null;default:true"`

	User   *User   `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	Course *Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
}

// AllModels lists every table managed by AutoMigrate.
func AllModels() []any {
	return []any{&User{}, &Course{}, &Lesson{}, &Payment{}, &Subscription{}}
}
