package models

import "time"

type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Nombre       string `gorm:"size:100;not null" json:"nombre"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Telefono     string `gorm:"size:20" json:"telefono"`
	Role         string `gorm:"size:20;default:'operador'" json:"role"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
