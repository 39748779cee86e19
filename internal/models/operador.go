package models

import "time"

// Operador se administra en otro módulo; aquí solo lectura.
type Operador struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Nombre   string `gorm:"size:100;not null" json:"nombre"`
	Apellido string `gorm:"size:100" json:"apellido"`
	Telefono string `gorm:"size:20" json:"telefono"`

	CargoID   uint `json:"cargo_id"`
	EntidadID uint `json:"entidad_id"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Operador) TableName() string {
	return "operadores"
}
