package db_models

import (
	"github.com/google/uuid"
	"gorm.io/datatypes"
)

type PaymentMethod string

const (
	PaymentMethodCash     PaymentMethod = "cash"
	PaymentMethodTransfer PaymentMethod = "transfer"
)

func (m PaymentMethod) Valid() bool {
	return m == PaymentMethodCash || m == PaymentMethodTransfer
}

type Payment struct {
	BaseModel
	CourseID *uuid.UUID `gorm:"type:uuid;index"`
	LessonID *uuid.UUID `gorm:"type:uuid;index"`
	OwnerID  *uuid.UUID `gorm:"type:uuid;index"`

	PaidAt int64         `gorm:"not null;index"`
	Amount int64         `gorm:"not null"`
	Method PaymentMethod `gorm:"size:20;not null;default:transfer"`

	// Gateway price handle and related snapshot, never the checkout URL.
	Provider         string         `gorm:"size:20"`
	ProviderMetadata datatypes.JSON `gorm:"default:'{}'"`

	Course *Course `gorm:"foreignKey:CourseID;constraint:OnDelete:CASCADE"`
	Lesson *Lesson `gorm:"foreignKey:LessonID;constraint:OnDelete:CASCADE"`
	Owner  *User   `gorm:"foreignKey:OwnerID;constraint:OnDelete:SET NULL"`
}
