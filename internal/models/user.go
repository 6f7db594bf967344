package models

import "time"

// PasswordHash is empty for accounts provisioned through OAuth.
// Those accounts never authenticate through the credentials flow.
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	Name         string `gorm:"size:100" json:"name"`
	PasswordHash string `gorm:"size:255" json:"-"`
	Role         string `gorm:"size:20;not null;default:'CLIENT'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
