package models

import "time"

// PersonaListaEspera espera un espacio en una fecha, sin ocurrencia asignada
// hasta que se promueve a Cita.
type PersonaListaEspera struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Nombre   string `gorm:"size:100;not null" json:"nombre"`
	Servicio string `gorm:"size:150;not null" json:"servicio"`
	Telefono string `gorm:"size:20" json:"telefono,omitempty"`
	Notas    string `gorm:"size:255" json:"notas,omitempty"`

	Fecha string `gorm:"size:10;not null;index" json:"fecha"`

	CreatedAt time.Time `json:"created_at"`
}

func (PersonaListaEspera) TableName() string {
	return "lista_espera"
}
