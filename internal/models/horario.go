package models

import "time"

// Horario es un bloque semanal recurrente (horario base) de una agenda.
// Fecha solo se usa en horarios personalizados de un único día.
type Horario struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	AgendaID uint `gorm:"index" json:"agenda_id"`

	Titulo     string `gorm:"size:100;not null" json:"titulo"`
	HoraInicio string `gorm:"size:8;not null" json:"hora_inicio"`
	HoraFin    string `gorm:"size:8;not null" json:"hora_fin"`
	DiaSemana  string `gorm:"size:10;not null" json:"dia_semana"`
	Fecha      string `gorm:"size:10" json:"fecha,omitempty"`

	Color  string `gorm:"size:20;default:'#3B82F6'" json:"color"`
	Notas  string `gorm:"size:255" json:"notas,omitempty"`
	Activo bool   `gorm:"default:true" json:"activo"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
