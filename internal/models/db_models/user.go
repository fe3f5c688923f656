package db_models

import "gorm.io/gorm"

type UserRole string

const (
	RoleMember    UserRole = "member"
	RoleModerator UserRole = "moderator"
)

func (r UserRole) Valid() bool {
	return r == RoleMember || r == RoleModerator
}

type User struct {
	BaseModel
	Email        string `gorm:"uniqueIndex;not null"`
	PasswordHash string `gorm:"not null"`
	DisplayName  string
	Avatar       *string
	Phone        *string        `gorm:"size:35"`
	Country      *string        `gorm:"size:50"`
	Role         UserRole       `gorm:"size:9;not null;default:member"`
	DeletedAt    gorm.DeletedAt `gorm:"index"`
}
