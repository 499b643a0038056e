package entities

import (
	"github.com/google/uuid"
)

type Warning struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID  uuid.UUID `gorm:"not null;index" json:"user_id"`
	Message string    `gorm:"not null" json:"message"`
	IsRead  bool      `gorm:"default:false" json:"is_read"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
