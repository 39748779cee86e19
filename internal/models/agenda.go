package models

import "time"

type Agenda struct {
	ID uint `gorm:"primaryKey" json:"id"`

	OperadorID uint     `json:"operador_id"`
	Operador   Operador `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"operador"`

	Nombre      string `gorm:"size:100;not null" json:"nombre"`
	Descripcion string `gorm:"size:255" json:"descripcion,omitempty"`
	Activa      bool   `gorm:"default:true" json:"activa"`

	Horarios []Horario `json:"horarios,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
